package service

import (
	"context"
	"testing"

	"leadchat_backend/internal/events"
)

func TestMetricsCountsChatTurns(t *testing.T) {
	m := NewMetrics()
	ctx := context.Background()

	_ = m.Handle(ctx, events.ChatTurnCompleted{BaseEvent: events.NewBaseEvent(), FollowUp: true})
	_ = m.Handle(ctx, events.ChatTurnCompleted{BaseEvent: events.NewBaseEvent(), ModelFallback: true})
	_ = m.Handle(ctx, events.ChatTurnCompleted{BaseEvent: events.NewBaseEvent()})

	snap := m.Snapshot()
	if snap.ChatTurns != 3 {
		t.Fatalf("expected 3 turns, got %d", snap.ChatTurns)
	}
	if snap.FollowUpTurns != 1 {
		t.Fatalf("expected 1 follow-up turn, got %d", snap.FollowUpTurns)
	}
	if snap.ModelFallbacks != 1 {
		t.Fatalf("expected 1 fallback, got %d", snap.ModelFallbacks)
	}
}

func TestMetricsCountsNotificationOutcomes(t *testing.T) {
	m := NewMetrics()
	ctx := context.Background()

	_ = m.Handle(ctx, events.LeadNotified{BaseEvent: events.NewBaseEvent(), Sent: true})
	_ = m.Handle(ctx, events.LeadNotified{BaseEvent: events.NewBaseEvent(), Sent: false})
	_ = m.Handle(ctx, events.ContactRelayed{BaseEvent: events.NewBaseEvent(), FromEmail: "a@b.c"})

	snap := m.Snapshot()
	if snap.NotificationsSent != 1 || snap.NotificationsLost != 1 {
		t.Fatalf("unexpected notification counters: %+v", snap)
	}
	if snap.ContactRelays != 1 {
		t.Fatalf("expected 1 contact relay, got %d", snap.ContactRelays)
	}
}

func TestMetricsReceivesEventsThroughBus(t *testing.T) {
	m := NewMetrics()
	bus := events.NewInMemoryBus(nil)
	m.RegisterHandlers(bus)

	if err := bus.PublishSync(context.Background(), events.ChatTurnCompleted{BaseEvent: events.NewBaseEvent()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := m.Snapshot().ChatTurns; got != 1 {
		t.Fatalf("expected 1 turn via bus, got %d", got)
	}
}
