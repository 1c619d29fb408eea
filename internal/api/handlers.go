// This file holds the HTTP handlers for the intake bot endpoints.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/kekarehab/intakebot/internal/models"
)

// DefaultHandoffListLimit caps how many handoffs the admin listing returns
// when no limit is given.
const DefaultHandoffListLimit = 100

// chatHandler processes one chat turn (POST /api/chat).
func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.chatHandler: processing chat request", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.chatHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.chatHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server.chatHandler: validation failed", "error", err, "session_id", req.SessionID)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	resp := s.engine.HandleMessage(r.Context(), req, s.clientIPHash(r))
	writeJSONResponse(w, http.StatusOK, models.Success(resp))
}

// eventsHandler records an analytics event (POST /api/events). When analytics
// is disabled the event is acknowledged and dropped, so the widget never has
// to care about server configuration.
func (s *Server) eventsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.eventsHandler: processing event", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.eventsHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var ev models.AnalyticsEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		slog.Warn("Server.eventsHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := ev.Validate(); err != nil {
		slog.Warn("Server.eventsHandler: validation failed", "error", err, "event_type", ev.EventType)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}
	if !s.cfg.AnalyticsEnabled {
		writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Event recorded", nil))
		return
	}
	ev.IPHash = s.clientIPHash(r)
	if err := s.st.SaveEvent(r.Context(), ev); err != nil {
		slog.Error("Server.eventsHandler: failed to store event", "error", err, "event_type", ev.EventType)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to store event"))
		return
	}
	writeJSONResponse(w, http.StatusCreated, models.SuccessWithMessage("Event recorded", nil))
}

// handoffsHandler returns recent handoffs for staff review (GET /api/handoffs).
func (s *Server) handoffsHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.handoffsHandler: processing handoffs request", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		slog.Warn("Server.handoffsHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !s.authorized(r) {
		slog.Warn("Server.handoffsHandler: unauthorized request")
		writeJSONResponse(w, http.StatusUnauthorized, models.Error("Unauthorized"))
		return
	}
	limit := DefaultHandoffListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid limit parameter"))
			return
		}
		limit = parsed
	}
	records, err := s.st.ListHandoffs(r.Context(), limit)
	if err != nil {
		slog.Error("Server.handoffsHandler: failed to list handoffs", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to fetch handoffs"))
		return
	}
	slog.Debug("Server.handoffsHandler: handoffs fetched", "count", len(records))
	writeJSONResponse(w, http.StatusOK, models.Success(records))
}

// analyticsSummaryHandler returns aggregated analytics for a date window
// (GET /api/analytics/summary?start=YYYY-MM-DD&end=YYYY-MM-DD).
func (s *Server) analyticsSummaryHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.analyticsSummaryHandler: processing summary request", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		slog.Warn("Server.analyticsSummaryHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !s.authorized(r) {
		slog.Warn("Server.analyticsSummaryHandler: unauthorized request")
		writeJSONResponse(w, http.StatusUnauthorized, models.Error("Unauthorized"))
		return
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -7)
	if raw := r.URL.Query().Get("start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid start date, expected YYYY-MM-DD"))
			return
		}
		start = parsed
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid end date, expected YYYY-MM-DD"))
			return
		}
		// Make the end date inclusive
		end = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if end.Before(start) {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("End date before start date"))
		return
	}

	summary, err := s.st.EventSummary(r.Context(), start, end)
	if err != nil {
		slog.Error("Server.analyticsSummaryHandler: failed to build summary", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to build analytics summary"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(summary))
}

// healthHandler provides a health check endpoint for monitoring and load balancing
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	healthData := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	// The store is the only dependency worth probing; a dead store degrades
	// the service but the chat flow itself keeps working.
	if s.st != nil {
		if _, err := s.st.ListHandoffs(r.Context(), 1); err != nil {
			slog.Warn("Server.healthHandler: store probe failed", "error", err)
			healthData["status"] = "degraded"
			healthData["error"] = "Store unavailable"
		}
	}

	statusCode := http.StatusOK
	if healthData["status"] == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	writeJSONResponse(w, statusCode, healthData)
}
