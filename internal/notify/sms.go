// This file implements SMS delivery of handoff notifications via Twilio.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kekarehab/intakebot/internal/models"
	"github.com/kekarehab/intakebot/internal/twiliosms"
)

// MaxSMSBodyLength caps notification bodies so a handoff never fans out into
// a long chain of segmented messages.
const MaxSMSBodyLength = 1200

// SMSNotifier sends handoff notifications as text messages to the intake
// coordinator's phone.
type SMSNotifier struct {
	sender twiliosms.SMSSender
	to     string
}

// NewSMSNotifier creates an SMS notifier delivering to the given number.
func NewSMSNotifier(sender twiliosms.SMSSender, to string) (*SMSNotifier, error) {
	if sender == nil {
		return nil, fmt.Errorf("SMS sender must be provided")
	}
	if to == "" {
		return nil, fmt.Errorf("notification phone number must be provided")
	}
	return &SMSNotifier{sender: sender, to: to}, nil
}

func (n *SMSNotifier) SendHandoff(ctx context.Context, rec models.HandoffRecord) error {
	body := FormatHandoffBody(rec)
	if len(body) > MaxSMSBodyLength {
		body = body[:MaxSMSBodyLength]
	}
	if err := n.sender.SendSMS(ctx, n.to, body); err != nil {
		return fmt.Errorf("failed to send handoff SMS: %w", err)
	}
	slog.Debug("SMSNotifier.SendHandoff: notification sent", "id", rec.ID, "service_type", rec.ServiceType)
	return nil
}

func (n *SMSNotifier) SendReport(ctx context.Context, subject, body string) error {
	msg := subject + "\n\n" + body
	if len(msg) > MaxSMSBodyLength {
		msg = msg[:MaxSMSBodyLength]
	}
	if err := n.sender.SendSMS(ctx, n.to, msg); err != nil {
		return fmt.Errorf("failed to send report SMS: %w", err)
	}
	slog.Debug("SMSNotifier.SendReport: report sent", "subject", subject)
	return nil
}
