// Package service collects operational counters from domain events and
// serves admin operations.
package service

import (
	"context"
	"sync"
	"time"

	"leadchat_backend/internal/events"
)

// Metrics is an in-process counter set fed by the event bus. Counters reset
// on restart; this is operational visibility, not billing.
type Metrics struct {
	mu sync.Mutex

	startedAt         time.Time
	chatTurns         int64
	modelFallbacks    int64
	followUpTurns     int64
	notificationsSent int64
	notificationsLost int64
	contactRelays     int64
}

// NewMetrics creates an empty metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{startedAt: time.Now()}
}

// RegisterHandlers subscribes the collector to the events it counts.
func (m *Metrics) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.ChatTurnCompleted{}.EventName(), m)
	bus.Subscribe(events.LeadNotified{}.EventName(), m)
	bus.Subscribe(events.ContactRelayed{}.EventName(), m)
}

// Handle routes events to the appropriate counter.
func (m *Metrics) Handle(ctx context.Context, event events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch e := event.(type) {
	case events.ChatTurnCompleted:
		m.chatTurns++
		if e.ModelFallback {
			m.modelFallbacks++
		}
		if e.FollowUp {
			m.followUpTurns++
		}
	case events.LeadNotified:
		if e.Sent {
			m.notificationsSent++
		} else {
			m.notificationsLost++
		}
	case events.ContactRelayed:
		m.contactRelays++
	}
	return nil
}

// Snapshot is a point-in-time view of the counters.
type Snapshot struct {
	UptimeSeconds     int64 `json:"uptimeSeconds"`
	ChatTurns         int64 `json:"chatTurns"`
	ModelFallbacks    int64 `json:"modelFallbacks"`
	FollowUpTurns     int64 `json:"followUpTurns"`
	NotificationsSent int64 `json:"notificationsSent"`
	NotificationsLost int64 `json:"notificationsLost"`
	ContactRelays     int64 `json:"contactRelays"`
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		UptimeSeconds:     int64(time.Since(m.startedAt).Seconds()),
		ChatTurns:         m.chatTurns,
		ModelFallbacks:    m.modelFallbacks,
		FollowUpTurns:     m.followUpTurns,
		NotificationsSent: m.notificationsSent,
		NotificationsLost: m.notificationsLost,
		ContactRelays:     m.contactRelays,
	}
}
