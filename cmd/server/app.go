package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/exam-checker/internal/api"
	"github.com/phrazzld/exam-checker/internal/bootstrap"
	"github.com/phrazzld/exam-checker/internal/config"
	"github.com/phrazzld/exam-checker/internal/service/auth"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	grader     *bootstrap.Grader
	jwtService auth.JWTService
}

// newApplication creates a new application instance with all dependencies
// initialized. Capabilities are built once here and shared by every request.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := os.MkdirAll(cfg.Server.UploadDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	if cfg.Auth.Enabled {
		jwtService, err := auth.NewJWTService(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		app.jwtService = jwtService
		logger.Info("JWT authentication enabled",
			"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)
	}

	grader, err := bootstrap.Build(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize grading pipeline: %w", err)
	}
	app.grader = grader

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := api.NewRouter(api.RouterConfig{
		Grading:        app.grader.Service,
		JWTService:     app.jwtService,
		AllowedOrigins: app.config.Server.AllowedOrigins,
		MaxUploadBytes: int64(app.config.Server.MaxUploadMB) << 20,
		Logger:         app.logger,
	})

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if err := app.grader.Close(); err != nil {
		app.logger.Error("Error closing grading pipeline", "error", err)
	}
	app.logger.Info("Application shutdown completed")
}
