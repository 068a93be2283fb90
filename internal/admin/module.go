// Package admin provides the operator-facing bounded context module:
// metrics and maintenance operations behind the admin token guard.
package admin

import (
	"leadchat_backend/internal/admin/handler"
	"leadchat_backend/internal/admin/service"
	"leadchat_backend/internal/events"
	apphttp "leadchat_backend/internal/http"
	"leadchat_backend/internal/scheduler"
	"leadchat_backend/platform/validator"
)

// Module is the admin bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	metrics *service.Metrics
}

// NewModule creates and initializes the admin module.
func NewModule(enqueuer scheduler.GeoBackfiller, val *validator.Validator) *Module {
	metrics := service.NewMetrics()
	h := handler.New(metrics, enqueuer, val)

	return &Module{handler: h, metrics: metrics}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "admin"
}

// RegisterHandlers subscribes the metrics collector to domain events.
func (m *Module) RegisterHandlers(bus events.Bus) {
	m.metrics.RegisterHandlers(bus)
}

// RegisterRoutes mounts admin routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/metrics", m.handler.Metrics)
	ctx.Admin.POST("/geo/backfill", m.handler.GeoBackfill)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
