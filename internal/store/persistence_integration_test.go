package store

import (
	"context"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/kekarehab/intakebot/internal/models"
)

// Integration tests for the SQL backends. The Postgres test needs a running
// instance reachable via DATABASE_URL; the SQLite test just needs the cgo
// driver and a writable temp dir.

func TestPostgresStoreRoundTrip(t *testing.T) {
	connStr := getenvOrSkip(t, "DATABASE_URL")
	st, err := NewPostgresStore(WithDSN(connStr))
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	defer st.Close()
	st.db.Exec("DELETE FROM handoffs")
	st.db.Exec("DELETE FROM analytics_events")

	roundTrip(t, st)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	if _, ok := syscall.Getenv("INTAKEBOT_SQLITE_TESTS"); !ok {
		t.Skip("env INTAKEBOT_SQLITE_TESTS not set")
	}
	st, err := NewSQLiteStore(WithDSN(filepath.Join(t.TempDir(), "intake.db")))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer st.Close()

	roundTrip(t, st)
}

func roundTrip(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()

	rec := testHandoff("Jane Doe")
	rec.AssistiveDevices = []string{"cane"}
	saved, err := st.SaveHandoff(ctx, rec)
	if err != nil {
		t.Fatalf("SaveHandoff: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("SaveHandoff should assign an ID")
	}

	records, err := st.ListHandoffs(ctx, 10)
	if err != nil {
		t.Fatalf("ListHandoffs: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	got := records[0]
	if got.ContactName != "Jane Doe" || got.CareSetting != "in_home" {
		t.Errorf("record fields not round-tripped: %+v", got)
	}
	if len(got.AssistiveDevices) != 1 || got.AssistiveDevices[0] != "cane" {
		t.Errorf("nested fields lost in form_data: %v", got.AssistiveDevices)
	}

	ev := models.AnalyticsEvent{
		SessionID: "s_int",
		EventType: models.EventIntakeFlowCompleted,
		Metadata:  map[string]interface{}{"service_type": "patient_intake"},
		CreatedAt: time.Now().UTC(),
	}
	if err := st.SaveEvent(ctx, ev); err != nil {
		t.Fatalf("SaveEvent: %v", err)
	}

	summary, err := st.EventSummary(ctx, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("EventSummary: %v", err)
	}
	if summary.TotalEvents != 1 || summary.HandoffCount != 1 {
		t.Errorf("summary = %+v, want 1 event and 1 handoff", summary)
	}
}

func getenvOrSkip(t *testing.T, key string) string {
	v := ""
	if val, ok := syscall.Getenv(key); ok {
		v = val
	}
	if v == "" {
		t.Skipf("env %s not set", key)
	}
	return v
}
