// Package handler exposes the admin endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadchat_backend/internal/admin/service"
	"leadchat_backend/internal/admin/transport"
	"leadchat_backend/internal/scheduler"
	"leadchat_backend/platform/httpkit"
	"leadchat_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgQueueUnavailable = "task queue not configured"
)

// Handler handles admin HTTP requests.
type Handler struct {
	metrics  *service.Metrics
	enqueuer scheduler.GeoBackfiller
	val      *validator.Validator
}

// New creates a new admin handler. enqueuer may be nil when no task queue
// is configured; the backfill endpoint then reports unavailability.
func New(metrics *service.Metrics, enqueuer scheduler.GeoBackfiller, val *validator.Validator) *Handler {
	return &Handler{metrics: metrics, enqueuer: enqueuer, val: val}
}

// Metrics returns the operational counters.
// GET /api/v1/admin/metrics
func (h *Handler) Metrics(c *gin.Context) {
	httpkit.OK(c, h.metrics.Snapshot())
}

// GeoBackfill enqueues a geolocation backfill batch.
// POST /api/v1/admin/geo/backfill
func (h *Handler) GeoBackfill(c *gin.Context) {
	var req transport.GeoBackfillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, nil)
		return
	}
	if h.enqueuer == nil {
		httpkit.Error(c, http.StatusServiceUnavailable, msgQueueUnavailable, nil)
		return
	}

	err := h.enqueuer.EnqueueGeoBackfill(c.Request.Context(), scheduler.GeoBackfillPayload{IPs: req.IPs})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.GeoBackfillResponse{Enqueued: len(req.IPs)})
}
