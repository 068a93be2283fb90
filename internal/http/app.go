// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"github.com/gin-gonic/gin"

	"leadchat_backend/internal/events"
	"leadchat_backend/platform/config"
	"leadchat_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.AdminConfig
	config.RateLimitConfig
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP, admin, and rate limit settings).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// EventBus is the domain event bus for cross-module communication.
	EventBus events.Bus
	// RateLimit guards the public routes. Nil disables limiting.
	RateLimit gin.HandlerFunc
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
