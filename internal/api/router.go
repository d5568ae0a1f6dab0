package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	apiMiddleware "github.com/phrazzld/exam-checker/internal/api/middleware"
	"github.com/phrazzld/exam-checker/internal/service/auth"
	"github.com/phrazzld/exam-checker/internal/service/grading"
)

// RouterConfig carries the dependencies of the HTTP surface.
type RouterConfig struct {
	Grading grading.Service

	// JWTService guards the grading endpoints; nil leaves them open.
	JWTService auth.JWTService

	// AllowedOrigins lists CORS origins; empty allows any origin.
	AllowedOrigins []string

	// MaxUploadBytes caps request bodies on the grading endpoints.
	MaxUploadBytes int64

	Logger *slog.Logger
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	gradingHandler := NewGradingHandler(cfg.Grading, cfg.MaxUploadBytes, logger)

	r.Group(func(r chi.Router) {
		if cfg.JWTService != nil {
			r.Use(apiMiddleware.NewAuthMiddleware(cfg.JWTService).Authenticate)
		}
		r.Post("/evaluate-pdf", gradingHandler.EvaluateDocuments)
		r.Post("/evaluate", gradingHandler.EvaluateManual)
	})

	// Health check endpoint
	r.Get("/health", Health)

	return r
}
