// Package main implements the entry point for the exam grading server,
// which scores student answers against reference answers over HTTP.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/phrazzld/exam-checker/internal/config"
	"github.com/phrazzld/exam-checker/internal/platform/logger"
)

// main is the entry point for the grading server. It loads configuration,
// sets up logging, builds the grading pipeline and serves HTTP until it
// receives SIGINT or SIGTERM.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, l, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		l.Error("failed to build application", slog.String("error", err.Error()))
		stop()
		log.Fatalf("Failed to build application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		l.Error("server stopped with error", slog.String("error", err.Error()))
		stop()
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"grammar_provider", cfg.Grammar.Provider,
		"embedding_provider", cfg.Embedding.Provider)
	if cfg.Auth.Enabled {
		l.Debug("Auth configuration", "jwt_secret_present", cfg.Auth.JWTSecret != "")
	}

	return cfg, l, nil
}
