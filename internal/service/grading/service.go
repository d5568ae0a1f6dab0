package grading

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/exam-checker/internal/document"
	"github.com/phrazzld/exam-checker/internal/domain"
	"github.com/phrazzld/exam-checker/internal/domain/scoring"
)

// Upload is one document received from a client.
type Upload struct {
	// Filename is the client-side name; only its extension is used.
	Filename string
	Content  io.Reader
}

// DocumentRequest asks for a student document to be graded against a
// reference document.
type DocumentRequest struct {
	Student   *Upload
	Reference *Upload
	// Handwritten routes the student document through OCR.
	Handwritten bool
}

// ProgressFunc is called after each answer is scored with the number of
// answers scored so far and the total. Calls are serialised.
type ProgressFunc func(completed, total int)

// Service grades student answers against reference answers.
type Service interface {
	// Grade scores student[i] against reference[i] for every i and returns
	// records annotated with the student question and answer, in input order.
	//
	// Returns:
	//   - domain.ErrPairCountMismatch when the lengths differ
	//   - domain.ErrNoQuestions when both are empty
	//   - an error wrapping scoring.ErrCapabilityFailure when scoring fails
	Grade(
		ctx context.Context,
		student []domain.QAPair,
		reference []domain.ReferenceQAPair,
	) ([]domain.ScoreRecord, error)

	// GradeManual scores each answer against one model answer and keyword
	// list. Records are not annotated. No answers yields an empty result.
	GradeManual(
		ctx context.Context,
		answers []string,
		keywords []string,
		modelAnswer string,
	) ([]domain.ScoreRecord, error)

	// GradeDocuments stages both uploads, extracts and parses them, and
	// grades the result. Staged files are removed before it returns.
	GradeDocuments(ctx context.Context, req DocumentRequest) ([]domain.ScoreRecord, error)

	// GradeFiles grades documents already on disk.
	GradeFiles(
		ctx context.Context,
		studentPath, referencePath string,
		handwritten bool,
	) ([]domain.ScoreRecord, error)

	// ExtractText reads a document with the extractor GradeFiles would use.
	ExtractText(ctx context.Context, path string, handwritten bool) (string, error)
}

// Config holds the orchestration settings.
type Config struct {
	// Concurrency is the number of answers scored at once; values below 1
	// mean sequential.
	Concurrency int

	// UploadDir receives staged uploads. It is created when missing.
	UploadDir string
}

// Option customises a Service.
type Option func(*service)

// WithProgress registers fn to observe scoring progress.
func WithProgress(fn ProgressFunc) Option {
	return func(s *service) {
		s.progress = fn
	}
}

// ErrNilDependency is returned by NewService when a collaborator is missing.
var ErrNilDependency = errors.New("grading service dependency cannot be nil")

// NewService creates a grading Service.
//
// Parameters:
//   - engine: scores individual answers
//   - textLayer: reads typed documents
//   - ocr: reads handwritten or scanned documents
//   - cfg: concurrency and upload settings
//   - logger: structured logger, slog.Default() when nil
func NewService(
	engine scoring.Engine,
	textLayer document.Extractor,
	ocr document.Extractor,
	cfg Config,
	logger *slog.Logger,
	opts ...Option,
) (Service, error) {
	if engine == nil {
		return nil, fmt.Errorf("%w: engine", ErrNilDependency)
	}
	if textLayer == nil {
		return nil, fmt.Errorf("%w: text layer extractor", ErrNilDependency)
	}
	if ocr == nil {
		return nil, fmt.Errorf("%w: ocr extractor", ErrNilDependency)
	}
	if logger == nil {
		logger = slog.Default()
	}

	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	uploadDir := cfg.UploadDir
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	s := &service{
		engine:      engine,
		textLayer:   textLayer,
		ocr:         ocr,
		concurrency: concurrency,
		uploadDir:   uploadDir,
		logger:      logger.With(slog.String("component", "grading_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}
