package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"butik/internal/app"
	"butik/internal/config"
	"butik/internal/database"
	"butik/internal/events"
	"butik/pkg/logger"
	"butik/pkg/metrics"

	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	log, err := logger.New(&logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.AppEnv,
		ServiceName: "butik",
	})
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// --- Database ---
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Events ---
	publisher, err := events.NewPublisher(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize event publisher", zap.Error(err))
	}
	defer publisher.Close()

	stopConsumer, err := events.StartConsumer(ctx, cfg, log)
	if err != nil {
		// The consumer only mirrors events into the log; serving continues without it.
		log.Warn("order event consumer not started", zap.Error(err))
		stopConsumer = func() error { return nil }
	}
	defer stopConsumer()

	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		log.Warn("RAZORPAY_KEY_ID or RAZORPAY_KEY_SECRET not set; checkout will fail")
	}

	server := app.New(app.Options{
		Config:    cfg,
		DB:        db,
		Logger:    log,
		Publisher: publisher,
		Metrics:   metrics.NewServerMetrics("butik"),
	})

	// --- Start HTTP Server ---
	go func() {
		log.Info("starting server", zap.String("port", cfg.AppPort))
		if err := server.Listen(cfg.AppPort); err != nil {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-ctx.Done()
	log.Info("shutting down server")

	if err := server.Shutdown(); err != nil {
		log.Error("error during Fiber shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("server gracefully stopped")
}
