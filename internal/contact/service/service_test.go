package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"leadchat_backend/internal/contact/transport"
	"leadchat_backend/internal/email"
	"leadchat_backend/internal/events"
	"leadchat_backend/platform/apperr"
	"leadchat_backend/platform/logger"
)

type fakeSender struct {
	sent []email.Message
	err  error
}

func (f *fakeSender) Send(ctx context.Context, msg email.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func testService(sender email.Sender) *Service {
	log := logger.New("development")
	return New(sender, "hello@example.com", events.NewInMemoryBus(log), log)
}

func TestRelaySendsSanitizedMessage(t *testing.T) {
	sender := &fakeSender{}
	svc := testService(sender)

	err := svc.Relay(context.Background(), transport.ContactRequest{
		Name:    "<b>Dana</b>",
		Email:   "dana@example.com",
		Message: "I need a <script>alert(1)</script> new website",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(sender.sent))
	}

	msg := sender.sent[0]
	if msg.To != "hello@example.com" {
		t.Fatalf("unexpected recipient %q", msg.To)
	}
	if msg.ReplyTo != "dana@example.com" {
		t.Fatalf("reply-to must be the visitor's email, got %q", msg.ReplyTo)
	}
	if strings.Contains(msg.Subject, "<b>") || strings.Contains(msg.Text, "<script>") {
		t.Fatalf("markup must be stripped: subject=%q body=%q", msg.Subject, msg.Text)
	}
}

func TestRelaySurfacesDeliveryFailure(t *testing.T) {
	svc := testService(&fakeSender{err: errors.New("smtp down")})

	err := svc.Relay(context.Background(), transport.ContactRequest{
		Name:    "Dana",
		Email:   "dana@example.com",
		Message: "hello",
	})
	if err == nil {
		t.Fatal("expected a delivery error")
	}
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected an unavailable error, got %v", err)
	}
}
