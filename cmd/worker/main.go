package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"leadchat_backend/internal/geo"
	"leadchat_backend/internal/scheduler"
	"leadchat_backend/platform/config"
	"leadchat_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env, "queue", cfg.AsynqQueueName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	geoClient := geo.NewClient(cfg, log)

	worker, err := scheduler.NewWorker(cfg, geoClient, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	if err := worker.Run(ctx); err != nil {
		log.Error("worker stopped with error", "error", err)
		panic("worker error: " + err.Error())
	}

	log.Info("worker stopped")
}
