package ollama

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/exam-checker/internal/config"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"golang.org/x/time/rate"
)

var (
	// ErrInvalidConfig is returned when the embedder is built from incomplete settings.
	ErrInvalidConfig = errors.New("invalid ollama configuration")

	// ErrEmptyEmbedding is returned when the server answers with no vector.
	ErrEmptyEmbedding = errors.New("ollama returned an empty embedding")
)

// queryEmbedder is the part of embeddings.Embedder this package uses.
type queryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Embedder produces sentence embeddings with an Ollama-served model.
// It is safe for concurrent use.
type Embedder struct {
	embedder queryEmbedder
	limiter  *rate.Limiter
	model    string
	logger   *slog.Logger
}

// NewEmbedder connects to the Ollama server at cfg.OllamaURL using cfg.Model.
func NewEmbedder(cfg config.EmbeddingConfig, logger *slog.Logger) (*Embedder, error) {
	if cfg.OllamaURL == "" {
		return nil, fmt.Errorf("%w: server URL cannot be empty", ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}

	llm, err := ollama.New(
		ollama.WithServerURL(cfg.OllamaURL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to initialize ollama client: %v", ErrInvalidConfig, err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create embedder: %v", ErrInvalidConfig, err)
	}

	return newEmbedder(embedder, cfg, logger), nil
}

func newEmbedder(embedder queryEmbedder, cfg config.EmbeddingConfig, logger *slog.Logger) *Embedder {
	if logger == nil {
		logger = slog.Default()
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Embedder{
		embedder: embedder,
		limiter:  limiter,
		model:    cfg.Model,
		logger:   logger.With(slog.String("component", "ollama_embedder")),
	}
}

// Embed implements scoring.Embedder. Blank text yields an empty vector
// without a server call.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return []float32{}, nil
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	vector, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("ollama embed with model %s: %w", e.model, err)
	}
	if len(vector) == 0 {
		return nil, ErrEmptyEmbedding
	}

	e.logger.DebugContext(ctx, "text embedded",
		"text_length", len(text),
		"dimensions", len(vector))
	return vector, nil
}
