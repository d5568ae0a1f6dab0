package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/exam-checker/internal/config"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// semanticSimilarityTask tunes embeddings for pairwise comparison.
const semanticSimilarityTask = "SEMANTIC_SIMILARITY"

// Embedder produces sentence embeddings with a Gemini embedding model.
// Requests are rate limited and retried. It is safe for concurrent use.
type Embedder struct {
	logger  *slog.Logger
	models  modelsAPI
	model   string
	limiter *rate.Limiter
	retry   retryPolicy
}

// NewEmbedder creates an Embedder using the Gemini API key and retry
// settings from cfg and the model and rate limit from emb.
func NewEmbedder(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.GeminiConfig,
	emb config.EmbeddingConfig,
) (*Embedder, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}
	if emb.Model == "" {
		return nil, fmt.Errorf("%w: embedding model name cannot be empty", ErrInvalidConfig)
	}

	models, err := newModels(ctx, cfg.APIKey)
	if err != nil {
		return nil, err
	}

	return newEmbedder(logger, models, cfg, emb), nil
}

func newEmbedder(logger *slog.Logger, models modelsAPI, cfg config.GeminiConfig, emb config.EmbeddingConfig) *Embedder {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if emb.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(emb.RequestsPerSecond), 1)
	}

	logger = logger.With(slog.String("component", "gemini_embedder"))
	return &Embedder{
		logger:  logger,
		models:  models,
		model:   emb.Model,
		limiter: limiter,
		retry:   newRetryPolicy(logger, cfg.MaxRetries, cfg.RetryDelaySeconds),
	}
}

// Embed implements scoring.Embedder. Blank text yields an empty vector
// without an API call.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return []float32{}, nil
	}

	var values []float32
	err := e.retry.do(ctx, "embed_content", func(ctx context.Context) error {
		if err := e.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limiter: %w", ErrTransientFailure, err)
		}

		resp, err := e.models.EmbedContent(ctx, e.model, userContent(text), &genai.EmbedContentConfig{
			TaskType: semanticSimilarityTask,
		})
		if err != nil {
			return err
		}

		if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
			return fmt.Errorf("%w: no embedding returned", ErrInvalidResponse)
		}
		if len(resp.Embeddings[0].Values) == 0 {
			return fmt.Errorf("%w: empty embedding", ErrInvalidResponse)
		}
		values = resp.Embeddings[0].Values
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.DebugContext(ctx, "text embedded",
		"text_length", len(text),
		"dimensions", len(values))
	return values, nil
}
