package grading

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/exam-checker/internal/document"
	"github.com/phrazzld/exam-checker/internal/domain"
	"github.com/phrazzld/exam-checker/internal/domain/scoring"
	"github.com/phrazzld/exam-checker/internal/parser"
	"github.com/phrazzld/exam-checker/internal/platform/logger"
	"golang.org/x/sync/errgroup"
)

const (
	roleStudent   = "student"
	roleReference = "reference"
)

// Verify interface compliance at compile time
var _ Service = (*service)(nil)

// service implements the Service interface.
type service struct {
	engine      scoring.Engine
	textLayer   document.Extractor
	ocr         document.Extractor
	concurrency int
	uploadDir   string
	progress    ProgressFunc
	logger      *slog.Logger
}

// Grade implements Service.Grade.
func (s *service) Grade(
	ctx context.Context,
	student []domain.QAPair,
	reference []domain.ReferenceQAPair,
) ([]domain.ScoreRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := domain.NewGradingSession(student, reference)
	if err != nil {
		log.Warn("cannot align answers",
			slog.Int("student_pairs", len(student)),
			slog.Int("reference_pairs", len(reference)),
			slog.String("error", err.Error()))
		return nil, err
	}

	records, err := s.scoreAll(ctx, session.Len(), func(ctx context.Context, i int) (domain.ScoreRecord, error) {
		ref := session.Reference[i]
		rec, err := s.engine.Evaluate(ctx, session.Student[i].StudentAnswer, ref.Keywords, ref.ModelAnswer)
		if err != nil {
			return domain.ScoreRecord{}, err
		}
		return rec.Annotate(session.Student[i]), nil
	})
	if err != nil {
		log.Error("grading failed", slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("answers graded", slog.Int("questions", len(records)))
	return records, nil
}

// GradeManual implements Service.GradeManual.
func (s *service) GradeManual(
	ctx context.Context,
	answers []string,
	keywords []string,
	modelAnswer string,
) ([]domain.ScoreRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	normalized := domain.NormalizeKeywords(keywords)
	records, err := s.scoreAll(ctx, len(answers), func(ctx context.Context, i int) (domain.ScoreRecord, error) {
		return s.engine.Evaluate(ctx, answers[i], normalized, modelAnswer)
	})
	if err != nil {
		log.Error("manual grading failed", slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("manual answers graded",
		slog.Int("answers", len(records)),
		slog.Int("keywords", len(normalized)))
	return records, nil
}

// GradeDocuments implements Service.GradeDocuments.
func (s *service) GradeDocuments(ctx context.Context, req DocumentRequest) ([]domain.ScoreRecord, error) {
	if req.Student == nil || req.Reference == nil {
		return nil, domain.ErrMissingDocument
	}
	if err := s.checkFormats(req.Student.Filename, req.Reference.Filename, req.Handwritten); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.uploadDir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	studentPath, err := s.stage(roleStudent, "student_", req.Student)
	if err != nil {
		return nil, err
	}
	defer s.remove(ctx, studentPath)

	referencePath, err := s.stage(roleReference, "ideal_", req.Reference)
	if err != nil {
		return nil, err
	}
	defer s.remove(ctx, referencePath)

	return s.GradeFiles(ctx, studentPath, referencePath, req.Handwritten)
}

// GradeFiles implements Service.GradeFiles.
func (s *service) GradeFiles(
	ctx context.Context,
	studentPath, referencePath string,
	handwritten bool,
) ([]domain.ScoreRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.checkFormats(studentPath, referencePath, handwritten); err != nil {
		return nil, err
	}

	studentText, err := s.ExtractText(ctx, studentPath, handwritten)
	if err != nil {
		return nil, documentError(roleStudent, err)
	}
	referenceText, err := s.ExtractText(ctx, referencePath, false)
	if err != nil {
		return nil, documentError(roleReference, err)
	}

	student := parser.ParseStudent(studentText)
	reference := parser.ParseReference(referenceText)

	log.Debug("documents parsed",
		slog.Bool("handwritten", handwritten),
		slog.Int("student_text_length", len(studentText)),
		slog.Int("reference_text_length", len(referenceText)),
		slog.Int("student_pairs", len(student)),
		slog.Int("reference_pairs", len(reference)))

	return s.Grade(ctx, student, reference)
}

// ExtractText implements Service.ExtractText.
func (s *service) ExtractText(ctx context.Context, path string, handwritten bool) (string, error) {
	extractor := s.textLayer
	if handwritten {
		extractor = s.ocr
	}

	text, err := extractor.Extract(ctx, path)
	if err != nil {
		if errors.Is(err, document.ErrUnsupportedFormat) ||
			errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}
	return text, nil
}

// checkFormats rejects documents no extractor can read before any work is done.
func (s *service) checkFormats(studentName, referenceName string, handwritten bool) error {
	studentExt := document.Extension(studentName)
	studentOK := slices.Contains(document.TextLayerExtensions, studentExt)
	if handwritten {
		studentOK = studentExt == ".pdf" || slices.Contains(document.ImageExtensions, studentExt)
	}
	if !studentOK {
		return documentError(roleStudent, fmt.Errorf("%w: %q", document.ErrUnsupportedFormat, studentExt))
	}

	referenceExt := document.Extension(referenceName)
	if !slices.Contains(document.TextLayerExtensions, referenceExt) {
		return documentError(roleReference, fmt.Errorf("%w: %q", document.ErrUnsupportedFormat, referenceExt))
	}
	return nil
}

// stage copies an upload to <uploadDir>/<prefix><uuid><ext>.
func (s *service) stage(role, prefix string, upload *Upload) (string, error) {
	if upload.Content == nil {
		return "", domain.ErrMissingDocument
	}

	path := filepath.Join(s.uploadDir, prefix+uuid.NewString()+document.Extension(upload.Filename))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", documentError(role, fmt.Errorf("%w: %v", ErrUploadFailed, err))
	}

	_, copyErr := io.Copy(f, upload.Content)
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(path)
		return "", documentError(role, fmt.Errorf("%w: %v", ErrUploadFailed, err))
	}
	return path, nil
}

func (s *service) remove(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to remove staged upload",
			slog.String("error", err.Error()))
	}
}

// scoreAll runs score for indexes 0..n-1 with at most s.concurrency in
// flight. Records keep index order. The first failure cancels the rest and
// no records are returned.
func (s *service) scoreAll(
	ctx context.Context,
	n int,
	score func(ctx context.Context, i int) (domain.ScoreRecord, error),
) ([]domain.ScoreRecord, error) {
	records := make([]domain.ScoreRecord, n)
	if n == 0 {
		return records, nil
	}

	var (
		mu        sync.Mutex
		completed int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := score(gctx, i)
			if err != nil {
				return fmt.Errorf("question %d: %w", i+1, err)
			}
			records[i] = rec

			if s.progress != nil {
				mu.Lock()
				completed++
				s.progress(completed, n)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
