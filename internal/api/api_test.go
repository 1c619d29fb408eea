package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kekarehab/intakebot/internal/dialog"
	"github.com/kekarehab/intakebot/internal/models"
	"github.com/kekarehab/intakebot/internal/store"
	"github.com/kekarehab/intakebot/internal/testutil"
)

// summaryWindow returns a window wide enough to cover events stored during a
// test run.
func summaryWindow() (time.Time, time.Time) {
	now := time.Now().UTC()
	return now.Add(-time.Hour), now.Add(time.Hour)
}

func newTestServer(t *testing.T, opts ...Option) (*Server, *store.InMemoryStore) {
	t.Helper()
	st := store.NewInMemoryStore()
	engine := dialog.NewEngine(st, nil)
	base := []Option{WithAnalyticsEnabled(true), WithAdminToken("secret")}
	return NewServer(engine, st, append(base, opts...)...), st
}

func postJSON(t *testing.T, handler http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.CreateHTTPRequest(t, http.MethodPost, path, payload)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestChatHandlerReturnsHomeScreen(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	w := postJSON(t, handler, "/api/chat", models.ChatRequest{Message: "home", SessionID: "s1"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Status string             `json:"status"`
		Result models.BotResponse `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected ok status, got %q", resp.Status)
	}
	if !strings.Contains(resp.Result.Text, "Welcome to Keka Rehab Services") {
		t.Errorf("expected welcome text, got %q", resp.Result.Text)
	}
	if resp.Result.SessionData.State != models.StateUserChoice {
		t.Errorf("expected awaiting_user_choice state, got %q", resp.Result.SessionData.State)
	}
}

func TestChatHandlerRejectsBadRequests(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	// Empty message
	w := postJSON(t, handler, "/api/chat", models.ChatRequest{SessionID: "s1"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty message: expected 400, got %d", w.Code)
	}

	// Oversized message
	w = postJSON(t, handler, "/api/chat", models.ChatRequest{
		Message:   strings.Repeat("a", models.MaxMessageLength+1),
		SessionID: "s1",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("long message: expected 400, got %d", w.Code)
	}

	// Malformed JSON
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad JSON: expected 400, got %d", rec.Code)
	}

	// Wrong method
	req = httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET: expected 405, got %d", rec.Code)
	}
	if rec.Header().Get("Allow") != http.MethodPost {
		t.Errorf("expected Allow: POST header, got %q", rec.Header().Get("Allow"))
	}
}

func TestEventsHandlerStoresEvent(t *testing.T) {
	srv, st := newTestServer(t)
	handler := srv.Handler()

	w := postJSON(t, handler, "/api/events", models.AnalyticsEvent{
		SessionID: "s1",
		EventType: models.EventChatOpened,
	})
	testutil.AssertHTTPStatus(t, http.StatusCreated, w.Code, "store event")
	testutil.AssertJSONResponse(t, w, "ok")

	start, end := summaryWindow()
	summary, err := st.EventSummary(context.Background(), start, end)
	if err != nil {
		t.Fatalf("EventSummary failed: %v", err)
	}
	if summary.TotalEvents != 1 {
		t.Errorf("expected 1 stored event, got %d", summary.TotalEvents)
	}
}

func TestEventsHandlerDisabledAnalytics(t *testing.T) {
	srv, st := newTestServer(t, WithAnalyticsEnabled(false))
	handler := srv.Handler()

	w := postJSON(t, handler, "/api/events", models.AnalyticsEvent{
		SessionID: "s1",
		EventType: models.EventChatOpened,
	})
	// Acknowledged but not persisted
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	start, end := summaryWindow()
	summary, err := st.EventSummary(context.Background(), start, end)
	if err != nil {
		t.Fatalf("EventSummary failed: %v", err)
	}
	if summary.TotalEvents != 0 {
		t.Errorf("expected no stored events, got %d", summary.TotalEvents)
	}
}

func TestEventsHandlerRejectsUnknownType(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	w := postJSON(t, handler, "/api/events", models.AnalyticsEvent{
		SessionID: "s1",
		EventType: "made_up_event",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown event type, got %d", w.Code)
	}
}

func TestHandoffsHandlerRequiresToken(t *testing.T) {
	srv, st := newTestServer(t)
	handler := srv.Handler()

	if _, err := st.SaveHandoff(context.Background(), models.HandoffRecord{
		ServiceType:  models.ServiceTypePatientIntake,
		ContactName:  "Jane Doe",
		ContactValue: "jane@example.com",
	}); err != nil {
		t.Fatalf("SaveHandoff failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/handoffs", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/handoffs", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("with token: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Result []models.HandoffRecord `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Result) != 1 || resp.Result[0].ContactName != "Jane Doe" {
		t.Errorf("unexpected handoffs: %+v", resp.Result)
	}
}

func TestAnalyticsSummaryHandler(t *testing.T) {
	srv, st := newTestServer(t)
	handler := srv.Handler()

	if err := st.SaveEvent(context.Background(), models.AnalyticsEvent{
		SessionID: "s1",
		EventType: models.EventSessionStarted,
	}); err != nil {
		t.Fatalf("SaveEvent failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/summary", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Result models.AnalyticsSummary `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Result.TotalEvents != 1 {
		t.Errorf("expected 1 event in summary, got %d", resp.Result.TotalEvents)
	}

	// Invalid dates are rejected
	req = httptest.NewRequest(http.MethodGet, "/api/analytics/summary?start=nonsense", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad start date, got %d", w.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("expected healthy status, got %s", w.Body.String())
	}
}

func TestClientIPHashIsStableAndSalted(t *testing.T) {
	srvA, _ := newTestServer(t, WithIPHashSalt("salt-a"))
	srvB, _ := newTestServer(t, WithIPHashSalt("salt-b"))

	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req.RemoteAddr = "203.0.113.9:4455"

	h1 := srvA.clientIPHash(req)
	h2 := srvA.clientIPHash(req)
	if h1 == "" || h1 != h2 {
		t.Errorf("hash should be stable for the same IP: %q vs %q", h1, h2)
	}
	if srvB.clientIPHash(req) == h1 {
		t.Error("different salts should produce different hashes")
	}

	// X-Forwarded-For takes precedence over RemoteAddr
	fwd := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	fwd.RemoteAddr = "10.0.0.1:1234"
	fwd.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if srvA.clientIPHash(fwd) != h1 {
		t.Error("forwarded IP should hash the same as the direct IP")
	}
}
