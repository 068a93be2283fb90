// Package email provides outbound email delivery behind a narrow Sender
// interface so callers can be tested with a fake implementation.
package email

import (
	"context"
	"fmt"

	"leadchat_backend/platform/config"
)

// Message is a single outbound plain-text email.
type Message struct {
	To      string
	Subject string
	Text    string
	ReplyTo string // optional; set when replies should go to a visitor
}

// Sender delivers a message. Implementations must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NoopSender discards messages. Used when email delivery is disabled.
type NoopSender struct{}

// Send implements Sender.
func (NoopSender) Send(ctx context.Context, msg Message) error {
	return nil
}

// NewSender builds the configured Sender implementation.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}

	switch cfg.GetEmailProvider() {
	case "brevo":
		return NewBrevoSender(cfg.GetBrevoAPIKey(), cfg.GetEmailFromName(), cfg.GetEmailFromAddress()), nil
	case "smtp":
		return NewSMTPSender(
			cfg.GetSMTPHost(),
			cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(),
			cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(),
			cfg.GetEmailFromName(),
		), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.GetEmailProvider())
	}
}
