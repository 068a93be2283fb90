// Package contact provides the contact-form relay bounded context module.
package contact

import (
	"leadchat_backend/internal/contact/handler"
	"leadchat_backend/internal/contact/service"
	"leadchat_backend/internal/email"
	"leadchat_backend/internal/events"
	apphttp "leadchat_backend/internal/http"
	"leadchat_backend/platform/config"
	"leadchat_backend/platform/logger"
	"leadchat_backend/platform/validator"
)

// Module is the contact bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the contact module.
func NewModule(cfg config.NotifyConfig, sender email.Sender, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(sender, cfg.GetContactToAddress(), bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "contact"
}

// RegisterRoutes mounts contact routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Public.POST("/contact", m.handler.Submit)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
