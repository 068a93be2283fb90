package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"leadchat_backend/internal/admin"
	"leadchat_backend/internal/chat"
	"leadchat_backend/internal/contact"
	"leadchat_backend/internal/email"
	"leadchat_backend/internal/events"
	apphttp "leadchat_backend/internal/http"
	"leadchat_backend/internal/http/router"
	"leadchat_backend/internal/ratelimit"
	"leadchat_backend/internal/scheduler"
	"leadchat_backend/platform/config"
	"leadchat_backend/platform/httpkit"
	"leadchat_backend/platform/logger"
	"leadchat_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	rateLimitMiddleware, closeLimiter := initRateLimiter(cfg, log)
	if closeLimiter != nil {
		defer closeLimiter()
	}

	geoEnqueuer, closeEnqueuer := initGeoEnqueuer(cfg, log)
	if closeEnqueuer != nil {
		defer closeEnqueuer()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	chatModule, err := chat.NewModule(ctx, cfg, sender, eventBus, val, log)
	if err != nil {
		log.Error("failed to initialize chat module", "error", err)
		panic("failed to initialize chat module: " + err.Error())
	}
	contactModule := contact.NewModule(cfg, sender, eventBus, val, log)

	adminModule := admin.NewModule(geoEnqueuer, val)
	adminModule.RegisterHandlers(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:    cfg,
		Logger:    log,
		EventBus:  eventBus,
		RateLimit: rateLimitMiddleware,
		Modules: []apphttp.Module{
			chatModule,
			contactModule,
			adminModule,
		},
	}

	engine := router.New(app)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initRateLimiter prefers the Redis fixed-window limiter and falls back to an
// in-process token bucket when Redis is not configured.
func initRateLimiter(cfg *config.Config, log *logger.Logger) (gin.HandlerFunc, func()) {
	if cfg.GetRedisURL() != "" {
		limiter, err := ratelimit.NewRedisLimiter(cfg, log)
		if err == nil {
			return limiter.Middleware(), func() {
				_ = limiter.Close()
			}
		}
		log.Warn("redis rate limiter unavailable, using in-process limiter", "error", err)
	}

	perSecond := rate.Limit(float64(cfg.RateLimitMax) / cfg.RateLimitWindow.Seconds())
	return httpkit.NewIPRateLimiter(perSecond, cfg.RateLimitMax, log).RateLimit(), nil
}

// initGeoEnqueuer wires the task queue client when Redis is configured.
func initGeoEnqueuer(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.GeoBackfiller, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; geo backfill disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize task queue client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}
