package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"leadchat_backend/internal/chat/agent"
	"leadchat_backend/internal/chat/domain"
	"leadchat_backend/platform/logger"
)

// fakeGateway returns canned extractions in order, or a fixed error.
type fakeGateway struct {
	extractions []agent.Extraction
	err         error
	calls       int
}

func (f *fakeGateway) ExtractTurn(ctx context.Context, messages []domain.Message, known domain.Lead, followUpIntent bool) (agent.Extraction, error) {
	if f.err != nil {
		return agent.Extraction{}, f.err
	}
	ext := f.extractions[f.calls]
	if f.calls < len(f.extractions)-1 {
		f.calls++
	}
	return ext, nil
}

func testOrchestrator(gw agent.Gateway) *Orchestrator {
	return NewOrchestrator(gw, logger.New("development"))
}

func visitor(content string) domain.Message {
	return domain.Message{Role: domain.RoleVisitor, Content: content}
}

func assistant(content string) domain.Message {
	return domain.Message{Role: domain.RoleAssistant, Content: content}
}

func TestRunTurnQualificationSequenceEndToEnd(t *testing.T) {
	gw := &fakeGateway{extractions: []agent.Extraction{
		{Reply: "Sure, our pricing depends on scope.", WantsFollowUp: true},
		{Reply: "Nice to meet you!", Lead: domain.Lead{Name: domain.Ptr("Dana")}, WantsFollowUp: true},
		{
			Reply:         "Got it.",
			Lead:          domain.Lead{PreferredContact: domain.Ptr("phone"), Phone: domain.Ptr("6045551234")},
			WantsFollowUp: true,
		},
	}}
	orc := testOrchestrator(gw)
	ctx := context.Background()

	// Turn 1: explicit follow-up intent, no name yet.
	messages := []domain.Message{visitor("please call me about pricing")}
	r1 := orc.RunTurn(ctx, TurnInput{ConversationID: "c1", Messages: messages, Known: domain.Lead{}})
	if r1.Stage != domain.StageCollectName {
		t.Fatalf("turn 1: expected collect_name, got %s", r1.Stage)
	}
	if !strings.Contains(strings.ToLower(r1.Reply), "name") {
		t.Fatalf("turn 1: reply must ask for the name, got %q", r1.Reply)
	}

	// Turn 2: visitor supplies the name.
	messages = append(messages, assistant(r1.Reply), visitor("I'm Dana"))
	r2 := orc.RunTurn(ctx, TurnInput{ConversationID: "c1", Messages: messages, Known: r1.Lead})
	if r2.Stage != domain.StageCollectMethod {
		t.Fatalf("turn 2: expected collect_method, got %s", r2.Stage)
	}
	if !strings.Contains(r2.Reply, "email, phone call, or text") {
		t.Fatalf("turn 2: reply must ask for the contact method, got %q", r2.Reply)
	}
	if strings.Contains(strings.ToLower(r2.Reply), "your name") {
		t.Fatalf("turn 2: reply must not repeat the name question, got %q", r2.Reply)
	}

	// Turn 3: method and number arrive together; no international markers.
	messages = append(messages, assistant(r2.Reply), visitor("phone, here's my number 6045551234"))
	r3 := orc.RunTurn(ctx, TurnInput{ConversationID: "c1", Messages: messages, Known: r2.Lead})
	if r3.Stage != domain.StageConfirmed {
		t.Fatalf("turn 3: expected confirmed, got %s", r3.Stage)
	}
	if !strings.Contains(r3.Reply, "+1-604-555-1234") {
		t.Fatalf("turn 3: confirmation must name the formatted number, got %q", r3.Reply)
	}
	if strings.Contains(r3.Reply, "?") {
		t.Fatalf("turn 3: terminal confirmation must not ask anything, got %q", r3.Reply)
	}
	if r3.Lead.Phone == nil || *r3.Lead.Phone != "+16045551234" {
		t.Fatalf("turn 3: expected normalized phone, got %v", r3.Lead.Phone)
	}
	if !r3.FollowUp {
		t.Fatal("turn 3: follow-up must be active")
	}
}

func TestRunTurnAmbiguousNumberTriggersCountryCodeQuestion(t *testing.T) {
	gw := &fakeGateway{extractions: []agent.Extraction{
		{
			Reply:         "Got it.",
			Lead:          domain.Lead{PreferredContact: domain.Ptr("phone"), Phone: domain.Ptr("6045551234")},
			WantsFollowUp: true,
		},
	}}
	orc := testOrchestrator(gw)

	messages := []domain.Message{
		visitor("I'm in London, please call me"),
		visitor("phone is fine, 6045551234"),
	}
	known := domain.Lead{Name: domain.Ptr("Dana")}

	r := orc.RunTurn(context.Background(), TurnInput{ConversationID: "c2", Messages: messages, Known: known})
	if !r.IntlHint {
		t.Fatal("expected the international hint to fire")
	}
	if r.Stage != domain.StageCollectCountryCode {
		t.Fatalf("expected collect_country_code, got %s", r.Stage)
	}
	if !strings.Contains(r.Reply, "country code") {
		t.Fatalf("reply must ask for the country code, got %q", r.Reply)
	}
	if r.Lead.Phone == nil || *r.Lead.Phone != "6045551234" {
		t.Fatalf("ambiguous number must be kept unchanged, got %v", r.Lead.Phone)
	}
}

func TestRunTurnModelFailureFallsBack(t *testing.T) {
	gw := &fakeGateway{err: errors.New("upstream 500")}
	orc := testOrchestrator(gw)

	known := domain.Lead{Name: domain.Ptr("Dana")}
	r := orc.RunTurn(context.Background(), TurnInput{
		ConversationID: "c3",
		Messages:       []domain.Message{visitor("please call me")},
		Known:          known,
	})

	if !r.ModelFallback {
		t.Fatal("expected fallback to be flagged")
	}
	if r.Reply == "" {
		t.Fatal("fallback must still produce a reply")
	}
	if r.Stage != domain.StageNoFollowUp {
		t.Fatalf("fallback must not enter the sequence, got %s", r.Stage)
	}
	if r.Lead.Name == nil || *r.Lead.Name != "Dana" {
		t.Fatalf("fallback must preserve the known lead, got %v", r.Lead.Name)
	}
}

func TestRunTurnOutsideSequenceUsesModelReply(t *testing.T) {
	q := "What kind of project do you have in mind?"
	gw := &fakeGateway{extractions: []agent.Extraction{
		{Reply: "We build web and mobile apps.", NextQuestion: &q},
	}}
	orc := testOrchestrator(gw)

	r := orc.RunTurn(context.Background(), TurnInput{
		ConversationID: "c4",
		Messages:       []domain.Message{visitor("what do you do?")},
		Known:          domain.Lead{},
	})

	if r.Stage != domain.StageNoFollowUp {
		t.Fatalf("expected no_follow_up, got %s", r.Stage)
	}
	if !strings.HasPrefix(r.Reply, "We build web and mobile apps.") || !strings.Contains(r.Reply, q) {
		t.Fatalf("expected model reply with question appended, got %q", r.Reply)
	}
	if strings.Count(r.Reply, q) != 1 {
		t.Fatalf("question must appear exactly once, got %q", r.Reply)
	}
}

func TestRunTurnDoesNotAppendQuestionAlreadyInReply(t *testing.T) {
	q := "What kind of project do you have in mind?"
	gw := &fakeGateway{extractions: []agent.Extraction{
		{Reply: "We build web and mobile apps. " + q, NextQuestion: &q},
	}}
	orc := testOrchestrator(gw)

	r := orc.RunTurn(context.Background(), TurnInput{
		ConversationID: "c5",
		Messages:       []domain.Message{visitor("what do you do?")},
		Known:          domain.Lead{},
	})

	if strings.Count(r.Reply, q) != 1 {
		t.Fatalf("question must not be duplicated, got %q", r.Reply)
	}
}

func TestRunTurnEmailChannelConfirmation(t *testing.T) {
	gw := &fakeGateway{extractions: []agent.Extraction{
		{
			Reply:         "Got it.",
			Lead:          domain.Lead{Email: domain.Ptr("dana@example.com")},
			WantsFollowUp: true,
		},
	}}
	orc := testOrchestrator(gw)

	known := domain.Lead{Name: domain.Ptr("Dana"), PreferredContact: domain.Ptr("email")}
	r := orc.RunTurn(context.Background(), TurnInput{
		ConversationID: "c6",
		Messages:       []domain.Message{visitor("dana@example.com")},
		Known:          known,
	})

	if r.Stage != domain.StageConfirmed {
		t.Fatalf("expected confirmed, got %s", r.Stage)
	}
	if !strings.Contains(r.Reply, "email") || !strings.Contains(r.Reply, "dana@example.com") {
		t.Fatalf("confirmation must name the channel and destination, got %q", r.Reply)
	}
}
