// Package transport defines the chat wire contracts.
package transport

import "leadchat_backend/internal/chat/domain"

// ChatMessage is one transcript entry on the wire.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=visitor assistant"`
	Content string `json:"content" validate:"required"`
}

// ChatTurnRequest is one chat turn. The caller resends its last known lead
// and notified state every turn; the server stores nothing in between.
type ChatTurnRequest struct {
	ConversationID string        `json:"conversationId" validate:"required,max=128"`
	Messages       []ChatMessage `json:"messages" validate:"required,min=1,max=100,dive"`
	Lead           *domain.Lead  `json:"lead"`
	Notified       bool          `json:"notified"`
}

// ChatTurnResponse is the authoritative outcome of one turn. Lead always has
// all keys present, possibly null, so the caller can resend it verbatim.
type ChatTurnResponse struct {
	OK       bool        `json:"ok"`
	Reply    string      `json:"reply"`
	Lead     domain.Lead `json:"lead"`
	ReturnID *string     `json:"returnId"`
	Notified bool        `json:"notified"`
	Error    string      `json:"error,omitempty"`
}
