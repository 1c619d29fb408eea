// Package notify delivers intake handoffs and analytics reports to the
// clinic staff over SMS and email.
package notify

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kekarehab/intakebot/internal/models"
)

// Notifier delivers handoff notifications and periodic reports.
type Notifier interface {
	// SendHandoff notifies staff that a new handoff arrived.
	SendHandoff(ctx context.Context, rec models.HandoffRecord) error
	// SendReport delivers a periodic report with the given subject and body.
	SendReport(ctx context.Context, subject, body string) error
}

// LogNotifier writes notifications to the structured log. It is the default
// when no delivery channel is configured.
type LogNotifier struct{}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) SendHandoff(_ context.Context, rec models.HandoffRecord) error {
	slog.Info("LogNotifier.SendHandoff: new handoff", "id", rec.ID, "service_type", rec.ServiceType, "topic", rec.Topic)
	return nil
}

func (n *LogNotifier) SendReport(_ context.Context, subject, _ string) error {
	slog.Info("LogNotifier.SendReport: report generated", "subject", subject)
	return nil
}

// MultiNotifier fans a notification out to several channels. Every channel is
// attempted; failures are joined into one error.
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier creates a notifier that delivers to all given channels.
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

func (n *MultiNotifier) SendHandoff(ctx context.Context, rec models.HandoffRecord) error {
	var errs []error
	for _, notifier := range n.notifiers {
		if err := notifier.SendHandoff(ctx, rec); err != nil {
			slog.Error("MultiNotifier.SendHandoff: channel failed", "error", err, "id", rec.ID)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (n *MultiNotifier) SendReport(ctx context.Context, subject, body string) error {
	var errs []error
	for _, notifier := range n.notifiers {
		if err := notifier.SendReport(ctx, subject, body); err != nil {
			slog.Error("MultiNotifier.SendReport: channel failed", "error", err, "subject", subject)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
