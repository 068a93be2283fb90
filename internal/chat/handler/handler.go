// Package handler exposes the chat turn endpoint.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadchat_backend/internal/chat/domain"
	"leadchat_backend/internal/chat/service"
	"leadchat_backend/internal/chat/transport"
	"leadchat_backend/internal/events"
	"leadchat_backend/platform/httpkit"
	"leadchat_backend/platform/logger"
	"leadchat_backend/platform/sanitize"
	"leadchat_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for chat turns.
type Handler struct {
	orc *service.Orchestrator
	dsp *service.Dispatcher
	bus events.Bus
	val *validator.Validator
	log *logger.Logger
}

// New creates a new chat handler.
func New(orc *service.Orchestrator, dsp *service.Dispatcher, bus events.Bus, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{orc: orc, dsp: dsp, bus: bus, val: val, log: log}
}

// Turn serves one chat turn.
// POST /api/v1/chat
func (h *Handler) Turn(c *gin.Context) {
	var req transport.ChatTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		h.fail(c, http.StatusBadRequest, msgValidationFailed)
		return
	}

	ctx := c.Request.Context()

	known := domain.Lead{}
	if req.Lead != nil {
		known = req.Lead.Sanitized()
	}
	messages := toDomainMessages(req.Messages)

	result := h.orc.RunTurn(ctx, service.TurnInput{
		ConversationID: req.ConversationID,
		Messages:       messages,
		Known:          known,
	})

	notified := req.Notified
	var returnID *string
	if h.dsp.ShouldNotify(result.Lead, result.FollowUp, req.Notified) {
		id, sent := h.dsp.Dispatch(ctx, req.ConversationID, result.Lead,
			domain.LatestVisitorMessage(messages), result.Reply)
		if sent {
			returnID = &id
			notified = true
		}
		h.bus.Publish(ctx, events.LeadNotified{
			BaseEvent:      events.NewBaseEvent(),
			ConversationID: req.ConversationID,
			ReturnID:       id,
			Sent:           sent,
		})
	}

	h.bus.Publish(ctx, events.ChatTurnCompleted{
		BaseEvent:      events.NewBaseEvent(),
		ConversationID: req.ConversationID,
		Stage:          result.Stage.String(),
		FollowUp:       result.FollowUp,
		ModelFallback:  result.ModelFallback,
	})

	httpkit.OK(c, transport.ChatTurnResponse{
		OK:       true,
		Reply:    result.Reply,
		Lead:     result.Lead,
		ReturnID: returnID,
		Notified: notified,
	})
}

// fail emits the chat wire error shape. Lead progress is never lost on
// failure; the caller resends its last known state next turn.
func (h *Handler) fail(c *gin.Context, status int, message string) {
	httpkit.JSON(c, status, transport.ChatTurnResponse{OK: false, Error: message})
}

// toDomainMessages converts wire messages, stripping markup from visitor-
// supplied content before it reaches the model or the notification email.
func toDomainMessages(messages []transport.ChatMessage) []domain.Message {
	converted := make([]domain.Message, 0, len(messages))
	for _, m := range messages {
		converted = append(converted, domain.Message{
			Role:    m.Role,
			Content: sanitize.Text(m.Content),
		})
	}
	return converted
}
