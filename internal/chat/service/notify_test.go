package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"leadchat_backend/internal/chat/domain"
	"leadchat_backend/internal/email"
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

func testDispatcher(sender email.Sender) *Dispatcher {
	return NewDispatcher(sender, "ops@example.com", logger.New("development"))
}

func TestShouldNotifyRequiresFollowUp(t *testing.T) {
	d := testDispatcher(&fakeSender{})
	lead := domain.Lead{Email: domain.Ptr("dana@example.com")}

	if d.ShouldNotify(lead, false, false) {
		t.Fatal("must not notify without follow-up intent")
	}
}

func TestShouldNotifyRespectsAlreadyNotified(t *testing.T) {
	d := testDispatcher(&fakeSender{})
	lead := domain.Lead{
		Name:             domain.Ptr("Dana"),
		PreferredContact: domain.Ptr("phone"),
		Phone:            domain.Ptr("+16045551234"),
	}

	if d.ShouldNotify(lead, true, true) {
		t.Fatal("must not notify when the caller already signaled a send")
	}
	if !d.ShouldNotify(lead, true, false) {
		t.Fatal("expected notify for a resolved lead not yet notified")
	}
}

func TestShouldNotifyChannelRequiredField(t *testing.T) {
	d := testDispatcher(&fakeSender{})

	emailChosen := domain.Lead{PreferredContact: domain.Ptr("email")}
	if d.ShouldNotify(emailChosen, true, false) {
		t.Fatal("email channel without an email address must not notify")
	}
	emailChosen.Email = domain.Ptr("dana@example.com")
	if !d.ShouldNotify(emailChosen, true, false) {
		t.Fatal("email channel with address must notify")
	}

	textChosen := domain.Lead{PreferredContact: domain.Ptr("text")}
	if d.ShouldNotify(textChosen, true, false) {
		t.Fatal("text channel without a phone must not notify")
	}
	textChosen.Phone = domain.Ptr("+16045551234")
	if !d.ShouldNotify(textChosen, true, false) {
		t.Fatal("text channel with phone must notify")
	}
}

func TestShouldNotifyWithoutChannelAcceptsEitherAddress(t *testing.T) {
	d := testDispatcher(&fakeSender{})

	if d.ShouldNotify(domain.Lead{Name: domain.Ptr("Dana")}, true, false) {
		t.Fatal("no contact information at all must not notify")
	}
	if !d.ShouldNotify(domain.Lead{Email: domain.Ptr("dana@example.com")}, true, false) {
		t.Fatal("unresolved channel with email must notify")
	}
	if !d.ShouldNotify(domain.Lead{Phone: domain.Ptr("+16045551234")}, true, false) {
		t.Fatal("unresolved channel with phone must notify")
	}
}

func TestDispatchBuildsSummaryAndReturnsID(t *testing.T) {
	sender := &fakeSender{}
	d := testDispatcher(sender)
	lead := domain.Lead{
		Name:             domain.Ptr("Dana"),
		Email:            domain.Ptr("dana@example.com"),
		Phone:            domain.Ptr("+16045551234"),
		PreferredContact: domain.Ptr("phone"),
	}

	id, sent := d.Dispatch(context.Background(), "conv-42", lead, "phone, 6045551234", "We'll call you.")
	if !sent || id == "" {
		t.Fatalf("expected a successful send with an id, got sent=%v id=%q", sent, id)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one outbound message, got %d", len(sender.sent))
	}

	msg := sender.sent[0]
	if msg.To != "ops@example.com" {
		t.Fatalf("unexpected recipient %q", msg.To)
	}
	if msg.ReplyTo != "dana@example.com" {
		t.Fatalf("reply-to must be the lead's email, got %q", msg.ReplyTo)
	}
	if !strings.Contains(msg.Subject, "Dana") {
		t.Fatalf("subject must name the lead, got %q", msg.Subject)
	}
	for _, want := range []string{"conv-42", "+16045551234", "phone, 6045551234", "We'll call you."} {
		if !strings.Contains(msg.Text, want) {
			t.Fatalf("summary missing %q:\n%s", want, msg.Text)
		}
	}
}

func TestDispatchSwallowsSendFailure(t *testing.T) {
	d := testDispatcher(&fakeSender{err: errors.New("smtp down")})

	id, sent := d.Dispatch(context.Background(), "conv-43", domain.Lead{}, "hi", "bye")
	if sent || id != "" {
		t.Fatalf("failure must report not-sent, got sent=%v id=%q", sent, id)
	}
}
