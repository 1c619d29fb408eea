// Package report builds periodic analytics summaries from the store and
// delivers them through the notifier.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/kekarehab/intakebot/internal/models"
	"github.com/kekarehab/intakebot/internal/notify"
	"github.com/kekarehab/intakebot/internal/store"
)

// DefaultReportTimeout bounds how long a single report run may take.
const DefaultReportTimeout = 60 * time.Second

// Generator assembles analytics reports and sends them to staff.
type Generator struct {
	store    store.Store
	notifier notify.Notifier
}

// NewGenerator creates a report generator.
func NewGenerator(st store.Store, notifier notify.Notifier) *Generator {
	return &Generator{store: st, notifier: notifier}
}

// RunWeekly builds the report covering the last 7 days and delivers it.
// It is the function the scheduler invokes.
func (g *Generator) RunWeekly() {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultReportTimeout)
	defer cancel()
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -7)
	if err := g.Run(ctx, start, end); err != nil {
		slog.Error("Generator.RunWeekly: report run failed", "error", err)
	}
}

// Run builds and delivers the report for the given window.
func (g *Generator) Run(ctx context.Context, start, end time.Time) error {
	summary, err := g.store.EventSummary(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to build analytics summary: %w", err)
	}
	subject := fmt.Sprintf("Keka Intake Bot weekly report (%s - %s)",
		start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	body := FormatSummary(summary)
	if err := g.notifier.SendReport(ctx, subject, body); err != nil {
		return fmt.Errorf("failed to deliver report: %w", err)
	}
	slog.Info("Generator.Run: report delivered", "handoffs", summary.HandoffCount, "sessions", summary.TotalSessions)
	return nil
}

// FormatSummary renders an analytics summary as plain text.
func FormatSummary(summary models.AnalyticsSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sessions: %d\n", summary.TotalSessions)
	fmt.Fprintf(&b, "Events: %d\n", summary.TotalEvents)
	fmt.Fprintf(&b, "Handoffs: %d\n", summary.HandoffCount)
	fmt.Fprintf(&b, "Intake conversion: %.0f%%\n", summary.ConversionRate*100)
	fmt.Fprintf(&b, "PHI warnings: %d\n", summary.PHIWarnings)
	fmt.Fprintf(&b, "Back navigation uses: %d\n", summary.BackUsage)

	if len(summary.ByServiceType) > 0 {
		b.WriteString("\nHandoffs by service:\n")
		for _, stc := range summary.ByServiceType {
			fmt.Fprintf(&b, "  %s: %d\n", stc.ServiceType, stc.Count)
		}
	}

	if len(summary.EventCounts) > 0 {
		types := make([]string, 0, len(summary.EventCounts))
		for et := range summary.EventCounts {
			types = append(types, string(et))
		}
		sort.Strings(types)
		b.WriteString("\nEvents by type:\n")
		for _, et := range types {
			fmt.Fprintf(&b, "  %s: %d\n", et, summary.EventCounts[models.EventType(et)])
		}
	}
	return b.String()
}
