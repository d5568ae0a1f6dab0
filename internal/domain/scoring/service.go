package scoring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/exam-checker/internal/domain"
)

// GrammarChecker counts grammar and spelling issues in a piece of text.
type GrammarChecker interface {
	CountIssues(ctx context.Context, text string) (int, error)
}

// Embedder maps text to a fixed-length vector. Every vector produced by one
// Embedder has the same dimension.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Engine scores a single student answer against a model answer.
type Engine interface {
	// Evaluate computes the keyword, grammar and semantic sub-scores and the
	// final score for studentAnswer.
	//
	// Returns:
	//   - (ScoreRecord, nil): sub-scores within their weight bounds
	//   - (ScoreRecord{}, error): wrapping ErrCapabilityFailure when the grammar
	//     checker or embedder fails; no partial score is produced
	Evaluate(
		ctx context.Context,
		studentAnswer string,
		keywords []string,
		modelAnswer string,
	) (domain.ScoreRecord, error)
}

// engine is the standard Engine. It holds only the injected capabilities.
type engine struct {
	grammar  GrammarChecker
	embedder Embedder
	logger   *slog.Logger
}

// NewEngine creates an Engine backed by the given capabilities. They are
// shared by reference and must be safe for concurrent use when the engine is.
func NewEngine(grammar GrammarChecker, embedder Embedder, logger *slog.Logger) (Engine, error) {
	if grammar == nil {
		return nil, ErrNilGrammarChecker
	}
	if embedder == nil {
		return nil, ErrNilEmbedder
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &engine{
		grammar:  grammar,
		embedder: embedder,
		logger:   logger.With(slog.String("component", "scoring_engine")),
	}, nil
}

// Evaluate implements Engine.
func (e *engine) Evaluate(
	ctx context.Context,
	studentAnswer string,
	keywords []string,
	modelAnswer string,
) (domain.ScoreRecord, error) {
	keyword := KeywordScore(studentAnswer, keywords)

	issues, err := e.grammar.CountIssues(ctx, studentAnswer)
	if err != nil {
		return domain.ScoreRecord{}, fmt.Errorf("%w: grammar check: %w", ErrCapabilityFailure, err)
	}
	grammar := GrammarScore(issues, WordCount(studentAnswer))

	similarity, err := e.similarity(ctx, studentAnswer, modelAnswer)
	if err != nil {
		return domain.ScoreRecord{}, err
	}
	semantic := SemanticScore(similarity)

	record := Compose(keyword, grammar, semantic)

	e.logger.DebugContext(ctx, "answer evaluated",
		slog.Int("answer_length", len(studentAnswer)),
		slog.Int("keyword_count", len(keywords)),
		slog.Int("grammar_issues", issues),
		slog.Float64("similarity", similarity),
		slog.Float64("final_score", record.FinalScore))

	return record, nil
}

func (e *engine) similarity(ctx context.Context, studentAnswer, modelAnswer string) (float64, error) {
	studentVec, err := e.embedder.Embed(ctx, studentAnswer)
	if err != nil {
		return 0, fmt.Errorf("%w: embed student answer: %w", ErrCapabilityFailure, err)
	}

	modelVec, err := e.embedder.Embed(ctx, modelAnswer)
	if err != nil {
		return 0, fmt.Errorf("%w: embed model answer: %w", ErrCapabilityFailure, err)
	}

	similarity, err := CosineSimilarity(studentVec, modelVec)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCapabilityFailure, err)
	}
	return similarity, nil
}
