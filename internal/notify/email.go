// This file implements email delivery of handoff notifications over SMTP.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/kekarehab/intakebot/internal/models"
)

// EmailOpts holds SMTP configuration for the email notifier.
type EmailOpts struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
}

// EmailOption defines a configuration option for the email notifier.
type EmailOption func(*EmailOpts)

// WithSMTPServer sets the SMTP host and port.
func WithSMTPServer(host string, port int) EmailOption {
	return func(o *EmailOpts) {
		o.Host = host
		o.Port = port
	}
}

// WithSMTPAuth sets the SMTP credentials.
func WithSMTPAuth(username, password string) EmailOption {
	return func(o *EmailOpts) {
		o.Username = username
		o.Password = password
	}
}

// WithSender sets the From address.
func WithSender(from string) EmailOption {
	return func(o *EmailOpts) { o.From = from }
}

// WithRecipients sets the To addresses.
func WithRecipients(to ...string) EmailOption {
	return func(o *EmailOpts) { o.To = to }
}

// sendMailFunc matches smtp.SendMail and can be swapped out in tests.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailNotifier sends handoff notifications and reports over SMTP.
type EmailNotifier struct {
	cfg      EmailOpts
	sendMail sendMailFunc
}

// NewEmailNotifier creates an email notifier from the given options.
func NewEmailNotifier(opts ...EmailOption) (*EmailNotifier, error) {
	var cfg EmailOpts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host must be provided")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("sender address must be provided")
	}
	if len(cfg.To) == 0 {
		return nil, fmt.Errorf("at least one recipient must be provided")
	}
	return &EmailNotifier{cfg: cfg, sendMail: smtp.SendMail}, nil
}

func (n *EmailNotifier) SendHandoff(ctx context.Context, rec models.HandoffRecord) error {
	return n.send(ctx, FormatHandoffSubject(rec), FormatHandoffBody(rec))
}

func (n *EmailNotifier) SendReport(ctx context.Context, subject, body string) error {
	return n.send(ctx, subject, body)
}

func (n *EmailNotifier) send(_ context.Context, subject, body string) error {
	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		n.cfg.From, strings.Join(n.cfg.To, ", "), subject, body)
	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	if err := n.sendMail(addr, auth, n.cfg.From, n.cfg.To, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email via %s: %w", addr, err)
	}
	slog.Debug("EmailNotifier.send: email sent", "subject", subject, "recipients", len(n.cfg.To))
	return nil
}
