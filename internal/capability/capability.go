package capability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/exam-checker/internal/config"
	"github.com/phrazzld/exam-checker/internal/domain/scoring"
	"github.com/phrazzld/exam-checker/internal/platform/gemini"
	"github.com/phrazzld/exam-checker/internal/platform/languagetool"
	"github.com/phrazzld/exam-checker/internal/platform/ollama"
)

// Provider names accepted in configuration.
const (
	ProviderLanguageTool = "languagetool"
	ProviderGemini       = "gemini"
	ProviderOllama       = "ollama"
)

// ErrUnknownProvider is returned for a provider name no constructor handles.
var ErrUnknownProvider = errors.New("unknown capability provider")

// NewGrammarChecker builds the grammar checker selected by cfg.Grammar.Provider.
func NewGrammarChecker(ctx context.Context, cfg *config.Config, logger *slog.Logger) (scoring.GrammarChecker, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Grammar.Provider {
	case ProviderLanguageTool:
		client, err := languagetool.NewClient(cfg.Grammar, nil, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create LanguageTool client: %w", err)
		}
		logger.Info("grammar checker initialized",
			slog.String("provider", ProviderLanguageTool),
			slog.String("language", cfg.Grammar.Language))
		return client, nil

	case ProviderGemini:
		checker, err := gemini.NewGrammarChecker(ctx, logger, cfg.Gemini, cfg.Grammar.Language)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini grammar checker: %w", err)
		}
		logger.Info("grammar checker initialized",
			slog.String("provider", ProviderGemini),
			slog.String("model", cfg.Gemini.GrammarModel))
		return checker, nil

	default:
		return nil, fmt.Errorf("%w: grammar provider %q", ErrUnknownProvider, cfg.Grammar.Provider)
	}
}

// NewEmbedder builds the embedder selected by cfg.Embedding.Provider.
func NewEmbedder(ctx context.Context, cfg *config.Config, logger *slog.Logger) (scoring.Embedder, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Embedding.Provider {
	case ProviderOllama:
		embedder, err := ollama.NewEmbedder(cfg.Embedding, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama embedder: %w", err)
		}
		logger.Info("embedder initialized",
			slog.String("provider", ProviderOllama),
			slog.String("model", cfg.Embedding.Model))
		return embedder, nil

	case ProviderGemini:
		embedder, err := gemini.NewEmbedder(ctx, logger, cfg.Gemini, cfg.Embedding)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini embedder: %w", err)
		}
		logger.Info("embedder initialized",
			slog.String("provider", ProviderGemini),
			slog.String("model", cfg.Embedding.Model))
		return embedder, nil

	default:
		return nil, fmt.Errorf("%w: embedding provider %q", ErrUnknownProvider, cfg.Embedding.Provider)
	}
}

// NewEngine builds both capabilities and the scoring engine over them.
func NewEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger) (scoring.Engine, error) {
	grammar, err := NewGrammarChecker(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	embedder, err := NewEmbedder(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return scoring.NewEngine(grammar, embedder, logger)
}
