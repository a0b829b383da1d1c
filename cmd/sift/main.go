package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nimblehire/sift/internal/api"
	"github.com/nimblehire/sift/internal/batch"
	"github.com/nimblehire/sift/internal/config"
	"github.com/nimblehire/sift/internal/events"
	"github.com/nimblehire/sift/internal/gemini"
	"github.com/nimblehire/sift/internal/processor"
	"github.com/nimblehire/sift/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("sift starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	db, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database connected")

	// Gemini client
	if cfg.GeminiAPIKey == "" {
		slog.Error("GEMINI_API_KEY is required")
		os.Exit(1)
	}
	model, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		slog.Error("failed to create gemini client", "error", err)
		os.Exit(1)
	}
	slog.Info("gemini client ready", "model", model.Model())

	// NATS events (optional — sift works without eventing)
	var ev *events.Client
	if cfg.NatsURL != "" {
		ev, err = events.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Warn("failed to connect to NATS — running without events", "error", err)
			ev = nil
		} else {
			defer ev.Close()
			slog.Info("NATS connected", "url", cfg.NatsURL)
		}
	}

	// Pipeline
	proc := processor.New(model, slog.Default())
	scheduler := batch.NewScheduler(
		proc,
		cfg.BatchWidth,
		time.Duration(cfg.BatchPacingMS)*time.Millisecond,
		ev,
		slog.Default(),
	)

	// HTTP API
	if cfg.APIToken == "" {
		slog.Warn("SIFT_API_TOKEN not set — batch endpoint is unauthenticated")
	}
	srv := api.NewServer(cfg.Port, cfg.APIToken, db, scheduler, ev, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("sift ready", "port", cfg.Port, "batch_width", cfg.BatchWidth)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("sift stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
