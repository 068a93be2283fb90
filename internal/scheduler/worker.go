package scheduler

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"leadchat_backend/internal/geo"
	"leadchat_backend/platform/config"
	"leadchat_backend/platform/logger"
)

// Worker consumes queued tasks. It runs in its own process (cmd/worker).
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	geo    *geo.Client
	log    *logger.Logger
}

// NewWorker creates the task worker.
func NewWorker(cfg config.SchedulerConfig, geoClient *geo.Client, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		geo:    geoClient,
		log:    log,
	}

	mux.HandleFunc(TaskGeoBackfill, w.handleGeoBackfill)

	return w, nil
}

// handleGeoBackfill resolves each IP once, warming the geo cache. Individual
// lookup failures are logged and skipped rather than failing the whole task.
func (w *Worker) handleGeoBackfill(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseGeoBackfillPayload(task)
	if err != nil {
		return err
	}

	resolved := 0
	for _, ip := range payload.IPs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		loc, err := w.geo.Lookup(ctx, ip)
		if err != nil {
			w.log.Warn("geo backfill lookup failed", "ip", ip, "error", err)
			continue
		}
		resolved++
		w.log.Debug("geo backfill resolved", "ip", ip, "country", loc.CountryCode)
	}

	w.log.Info("geo backfill complete", "requested", len(payload.IPs), "resolved", resolved)
	return nil
}

// Run starts the worker and blocks until the context is canceled.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil || w.server == nil {
		return nil
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	return w.server.Run(w.mux)
}
