package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ficachi/omeyo-goal-app/internal/api"
	"github.com/ficachi/omeyo-goal-app/internal/auth"
	"github.com/ficachi/omeyo-goal-app/internal/chat"
	"github.com/ficachi/omeyo-goal-app/internal/config"
	"github.com/ficachi/omeyo-goal-app/internal/events"
	"github.com/ficachi/omeyo-goal-app/internal/gemini"
	"github.com/ficachi/omeyo-goal-app/internal/imagen"
	"github.com/ficachi/omeyo-goal-app/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("omeyo starting", "port", cfg.Port)

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
	if err := db.EnsureSchema(ctx); err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}
	slog.Info("database connected")

	// Completion client
	if cfg.GeminiAPIKey == "" {
		slog.Error("GEMINI_API_KEY is required")
		os.Exit(1)
	}
	llm := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	slog.Info("gemini client ready", "model", cfg.GeminiModel)

	// Image generation (optional, placeholder images without it)
	var images api.ImageGenerator
	if cfg.GoogleProjectID != "" && cfg.GoogleCredentials != "" {
		imgClient, err := imagen.NewClientFromCredentials(ctx, cfg.GoogleProjectID, cfg.GoogleCredentials)
		if err != nil {
			slog.Warn("image generation unavailable", "error", err)
		} else {
			images = imgClient
			slog.Info("imagen client ready", "project", cfg.GoogleProjectID)
		}
	} else {
		slog.Warn("image generation not configured, serving placeholder images")
	}

	// Events (optional, service runs without NATS)
	var publisher chat.Publisher
	var natsPub *events.Publisher
	if cfg.NatsURL != "" {
		natsPub, err = events.NewPublisher(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer natsPub.Close()
		publisher = natsPub
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured, running without event publishing")
	}

	// Auth
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)

	// Chat pipeline
	chatSvc := chat.NewService(llm, db, publisher, slog.Default())

	// HTTP API
	srv := api.NewServer(cfg.Port, db, chatSvc, images, tokens, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	if natsPub != nil {
		if err := natsPub.Publish(events.SubjectStarted, map[string]any{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"port":      cfg.Port,
		}); err != nil {
			slog.Warn("failed to publish startup event", "error", err)
		}
	}

	slog.Info("omeyo ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("omeyo stopped")
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
