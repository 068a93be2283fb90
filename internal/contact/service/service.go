// Package service relays contact-form submissions to the operator inbox.
package service

import (
	"context"
	"fmt"
	"strings"

	"leadchat_backend/internal/contact/transport"
	"leadchat_backend/internal/email"
	"leadchat_backend/internal/events"
	"leadchat_backend/platform/apperr"
	"leadchat_backend/platform/logger"
	"leadchat_backend/platform/sanitize"
)

// Service is the contact relay.
type Service struct {
	sender email.Sender
	to     string
	bus    events.Bus
	log    *logger.Logger
}

// New creates the contact relay service.
func New(sender email.Sender, to string, bus events.Bus, log *logger.Logger) *Service {
	return &Service{sender: sender, to: to, bus: bus, log: log}
}

// Relay forwards one submission. Unlike the chat notification this send is
// the whole point of the request, so a delivery failure is surfaced.
func (s *Service) Relay(ctx context.Context, req transport.ContactRequest) error {
	name := sanitize.Text(req.Name)
	body := sanitize.Text(req.Message)

	msg := email.Message{
		To:      s.to,
		Subject: email.ContactRelaySubject(name),
		Text:    buildRelayBody(name, req.Email, body),
		ReplyTo: req.Email,
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		s.log.Error("contact relay send failed", "error", err)
		return apperr.Unavailable("message could not be delivered, please try again later")
	}

	s.bus.Publish(ctx, events.ContactRelayed{
		BaseEvent: events.NewBaseEvent(),
		FromEmail: req.Email,
	})

	return nil
}

func buildRelayBody(name, fromEmail, message string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New message from the website contact form.\n\n")
	fmt.Fprintf(&b, "Name:  %s\n", name)
	fmt.Fprintf(&b, "Email: %s\n\n", fromEmail)
	fmt.Fprintf(&b, "%s\n", message)
	return b.String()
}
