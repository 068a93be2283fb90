// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"leadchat_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Chat Domain Events
// =============================================================================

// ChatTurnCompleted is published after every successfully served chat turn.
type ChatTurnCompleted struct {
	BaseEvent
	ConversationID string `json:"conversationId"`
	Stage          string `json:"stage"`
	FollowUp       bool   `json:"followUp"`
	ModelFallback  bool   `json:"modelFallback"`
}

func (e ChatTurnCompleted) EventName() string { return "chat.turn.completed" }

// LeadNotified is published when the lead summary notification was attempted.
type LeadNotified struct {
	BaseEvent
	ConversationID string `json:"conversationId"`
	ReturnID       string `json:"returnId,omitempty"`
	Sent           bool   `json:"sent"`
}

func (e LeadNotified) EventName() string { return "chat.lead.notified" }

// ContactRelayed is published when a contact-form message was relayed.
type ContactRelayed struct {
	BaseEvent
	FromEmail string `json:"fromEmail"`
}

func (e ContactRelayed) EventName() string { return "contact.relayed" }
