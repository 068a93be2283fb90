// Package handler exposes the contact-form endpoint.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadchat_backend/internal/contact/service"
	"leadchat_backend/internal/contact/transport"
	"leadchat_backend/platform/httpkit"
	"leadchat_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the contact form.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new contact handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Submit relays one contact-form submission.
// POST /api/v1/contact
func (h *Handler) Submit(c *gin.Context) {
	var req transport.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, nil)
		return
	}

	err := h.svc.Relay(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ContactResponse{OK: true})
}
