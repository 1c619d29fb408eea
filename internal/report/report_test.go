package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kekarehab/intakebot/internal/models"
	"github.com/kekarehab/intakebot/internal/store"
)

type capturingNotifier struct {
	subject string
	body    string
}

func (n *capturingNotifier) SendHandoff(context.Context, models.HandoffRecord) error {
	return nil
}

func (n *capturingNotifier) SendReport(_ context.Context, subject, body string) error {
	n.subject = subject
	n.body = body
	return nil
}

func TestGeneratorRun(t *testing.T) {
	ctx := context.Background()
	st := store.NewInMemoryStore()

	if _, err := st.SaveHandoff(ctx, models.HandoffRecord{
		ServiceType:  models.ServiceTypePatientIntake,
		ContactName:  "Jane Doe",
		ContactValue: "jane@example.com",
	}); err != nil {
		t.Fatalf("SaveHandoff failed: %v", err)
	}
	events := []models.EventType{
		models.EventSessionStarted,
		models.EventIntakeFlowStarted,
		models.EventIntakeFlowCompleted,
		models.EventPHIWarningTriggered,
	}
	for _, et := range events {
		if err := st.SaveEvent(ctx, models.AnalyticsEvent{SessionID: "s1", EventType: et}); err != nil {
			t.Fatalf("SaveEvent failed: %v", err)
		}
	}

	notifier := &capturingNotifier{}
	gen := NewGenerator(st, notifier)

	end := time.Now().UTC().Add(time.Hour)
	start := end.AddDate(0, 0, -7)
	if err := gen.Run(ctx, start, end); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !strings.Contains(notifier.subject, "weekly report") {
		t.Errorf("unexpected subject: %q", notifier.subject)
	}
	for _, want := range []string{
		"Sessions: 1",
		"Handoffs: 1",
		"Intake conversion: 100%",
		"PHI warnings: 1",
		"patient_intake: 1",
	} {
		if !strings.Contains(notifier.body, want) {
			t.Errorf("report body missing %q:\n%s", want, notifier.body)
		}
	}
}

func TestFormatSummaryEmpty(t *testing.T) {
	body := FormatSummary(models.AnalyticsSummary{})
	if !strings.Contains(body, "Sessions: 0") {
		t.Errorf("empty summary should render zero counts: %q", body)
	}
	if strings.Contains(body, "Handoffs by service") {
		t.Errorf("empty summary should omit service breakdown: %q", body)
	}
}
