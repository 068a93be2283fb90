package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"leadchat_backend/internal/chat/domain"
	"leadchat_backend/internal/email"
	"leadchat_backend/platform/logger"
)

// Dispatcher sends the one-time lead summary email to the operator inbox.
// Sends are best-effort: a failure is logged and reported as not-sent, never
// surfaced to the visitor.
type Dispatcher struct {
	sender email.Sender
	to     string
	log    *logger.Logger
}

// NewDispatcher creates a notification dispatcher.
func NewDispatcher(sender email.Sender, to string, log *logger.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, to: to, log: log}
}

// ShouldNotify evaluates the send precondition: the visitor wants follow-up,
// no prior send was signaled for this conversation, and enough contact
// information exists to actually reach them.
//
// The alreadyNotified flag is supplied by the caller and trusted as a
// best-effort hint only; retried or concurrent requests for the same
// conversation can still produce a duplicate send.
func (d *Dispatcher) ShouldNotify(lead domain.Lead, followUp, alreadyNotified bool) bool {
	if !followUp || alreadyNotified {
		return false
	}
	switch domain.Value(lead.PreferredContact) {
	case domain.ContactEmail:
		return domain.Has(lead.Email)
	case domain.ContactPhone, domain.ContactText:
		return domain.Has(lead.Phone)
	default:
		return domain.Has(lead.Email) || domain.Has(lead.Phone)
	}
}

// Dispatch sends the lead summary. It returns a reference id and true on
// success, and "" and false on failure. Errors never propagate.
func (d *Dispatcher) Dispatch(ctx context.Context, conversationID string, lead domain.Lead, lastVisitorMessage, finalReply string) (string, bool) {
	msg := email.Message{
		To:      d.to,
		Subject: email.LeadNotificationSubject(domain.Value(lead.Name)),
		Text:    buildLeadSummary(conversationID, lead, lastVisitorMessage, finalReply),
		ReplyTo: domain.Value(lead.Email),
	}

	if err := d.sender.Send(ctx, msg); err != nil {
		d.log.NotificationFailure(conversationID, err)
		return "", false
	}
	return uuid.NewString(), true
}

// buildLeadSummary renders the plain-text notification body.
func buildLeadSummary(conversationID string, lead domain.Lead, lastVisitorMessage, finalReply string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A visitor asked for a follow-up.\n\n")
	fmt.Fprintf(&b, "Conversation: %s\n\n", conversationID)
	fmt.Fprintf(&b, "Name:              %s\n", orDash(lead.Name))
	fmt.Fprintf(&b, "Email:             %s\n", orDash(lead.Email))
	fmt.Fprintf(&b, "Phone:             %s\n", orDash(lead.Phone))
	fmt.Fprintf(&b, "Company:           %s\n", orDash(lead.Company))
	fmt.Fprintf(&b, "Website:           %s\n", orDash(lead.Website))
	fmt.Fprintf(&b, "Preferred contact: %s\n\n", orDash(lead.PreferredContact))
	fmt.Fprintf(&b, "Last visitor message:\n%s\n\n", lastVisitorMessage)
	fmt.Fprintf(&b, "Assistant's final reply:\n%s\n", finalReply)
	return b.String()
}

func orDash(s *string) string {
	if !domain.Has(s) {
		return "-"
	}
	return *s
}
