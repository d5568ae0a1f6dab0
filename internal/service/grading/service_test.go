package grading_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phrazzld/exam-checker/internal/document"
	"github.com/phrazzld/exam-checker/internal/domain"
	"github.com/phrazzld/exam-checker/internal/domain/scoring"
	"github.com/phrazzld/exam-checker/internal/mocks"
	"github.com/phrazzld/exam-checker/internal/service/grading"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	studentDoc = `Q1: What is photosynthesis? Ans: Plants use light energy to make food.
Q2: What gas do plants release? Ans: Oxygen is released.`

	referenceDoc = `Q1: What is photosynthesis? Ans: Conversion of light energy into chemical energy. Keywords: light, energy, chlorophyll
Q2: What gas do plants release? Ans: Plants release oxygen. Keywords: Oxygen`
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixture wires a service with a real scoring engine over mock capabilities.
type fixture struct {
	grammar   *mocks.MockGrammarChecker
	embedder  *mocks.MockEmbedder
	textLayer *mocks.MockExtractor
	ocr       *mocks.MockExtractor
	uploadDir string
	service   grading.Service
}

func newFixture(t *testing.T, cfg grading.Config, opts ...grading.Option) *fixture {
	t.Helper()

	f := &fixture{
		grammar:   mocks.NewMockGrammarCheckerWithIssues(0),
		embedder:  mocks.NewMockEmbedderWithVector([]float32{1, 0}),
		textLayer: &mocks.MockExtractor{},
		ocr:       &mocks.MockExtractor{},
	}

	engine, err := scoring.NewEngine(f.grammar, f.embedder, discardLogger())
	require.NoError(t, err)

	if cfg.UploadDir == "" {
		cfg.UploadDir = filepath.Join(t.TempDir(), "uploads")
	}
	f.uploadDir = cfg.UploadDir

	f.service, err = grading.NewService(engine, f.textLayer, f.ocr, cfg, discardLogger(), opts...)
	require.NoError(t, err)
	return f
}

// extractByRole returns studentText for staged student files and
// referenceText for staged reference files.
func extractByRole(studentText, referenceText string) func(ctx context.Context, path string) (string, error) {
	return func(ctx context.Context, path string) (string, error) {
		if strings.HasPrefix(filepath.Base(path), "student_") {
			return studentText, nil
		}
		return referenceText, nil
	}
}

func TestNewService_Validation(t *testing.T) {
	t.Parallel()

	engine, err := scoring.NewEngine(mocks.NewMockGrammarCheckerWithIssues(0),
		mocks.NewMockEmbedderWithVector([]float32{1}), discardLogger())
	require.NoError(t, err)
	extractor := &mocks.MockExtractor{}

	_, err = grading.NewService(nil, extractor, extractor, grading.Config{}, nil)
	assert.ErrorIs(t, err, grading.ErrNilDependency)
	_, err = grading.NewService(engine, nil, extractor, grading.Config{}, nil)
	assert.ErrorIs(t, err, grading.ErrNilDependency)
	_, err = grading.NewService(engine, extractor, nil, grading.Config{}, nil)
	assert.ErrorIs(t, err, grading.ErrNilDependency)

	svc, err := grading.NewService(engine, extractor, extractor, grading.Config{Concurrency: -3}, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGrade(t *testing.T) {
	t.Parallel()

	f := newFixture(t, grading.Config{})
	student := []domain.QAPair{
		domain.NewQAPair("Q1: What is X?", "X is light energy"),
		domain.NewQAPair("Q2: What is Y?", "no idea"),
	}
	reference := []domain.ReferenceQAPair{
		domain.NewReferenceQAPair("Q1: What is X?", "X is light.", []string{"light", "energy"}),
		domain.NewReferenceQAPair("Q2: What is Y?", "Y is dark.", []string{"dark"}),
	}

	records, err := f.service.Grade(context.Background(), student, reference)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 4.0, records[0].KeywordScore)
	assert.Equal(t, 3.0, records[0].GrammarScore)
	assert.Equal(t, 3.0, records[0].SemanticScore)
	assert.Equal(t, 10.0, records[0].FinalScore)
	assert.Equal(t, "Q1: What is X?", records[0].Question)
	assert.Equal(t, "X is light energy", records[0].StudentAnswer)

	assert.Equal(t, 0.0, records[1].KeywordScore)
	assert.Equal(t, 6.0, records[1].FinalScore)
	assert.Equal(t, "Q2: What is Y?", records[1].Question)
}

func TestGrade_Alignment(t *testing.T) {
	t.Parallel()

	f := newFixture(t, grading.Config{})
	student := []domain.QAPair{
		domain.NewQAPair("Q1: A?", "a"),
		domain.NewQAPair("Q2: B?", "b"),
	}
	reference := []domain.ReferenceQAPair{
		domain.NewReferenceQAPair("Q1: A?", "a", []string{"a"}),
		domain.NewReferenceQAPair("Q2: B?", "b", []string{"b"}),
		domain.NewReferenceQAPair("Q3: C?", "c", []string{"c"}),
	}

	records, err := f.service.Grade(context.Background(), student, reference)
	assert.ErrorIs(t, err, domain.ErrPairCountMismatch)
	assert.Nil(t, records)
	assert.Zero(t, f.grammar.Calls(), "nothing is scored on mismatch")

	_, err = f.service.Grade(context.Background(), nil, nil)
	assert.ErrorIs(t, err, domain.ErrNoQuestions)
}

func TestGrade_CapabilityFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t, grading.Config{})
	f.embedder.Err = errors.New("embedding backend down")

	records, err := f.service.Grade(context.Background(),
		[]domain.QAPair{domain.NewQAPair("Q1: A?", "a")},
		[]domain.ReferenceQAPair{domain.NewReferenceQAPair("Q1: A?", "a", nil)})
	assert.ErrorIs(t, err, scoring.ErrCapabilityFailure)
	assert.Contains(t, err.Error(), "question 1")
	assert.Nil(t, records, "no partial records")
}

func TestGrade_Concurrent(t *testing.T) {
	t.Parallel()

	var inFlight, maxInFlight atomic.Int32
	var progressCalls atomic.Int32
	f := newFixture(t, grading.Config{Concurrency: 3}, grading.WithProgress(func(completed, total int) {
		progressCalls.Add(1)
		assert.Equal(t, 8, total)
	}))
	f.grammar.CountIssuesFn = func(ctx context.Context, text string) (int, error) {
		n := inFlight.Add(1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return 0, nil
	}

	student := make([]domain.QAPair, 8)
	reference := make([]domain.ReferenceQAPair, 8)
	for i := range student {
		q := "Q" + string(rune('1'+i)) + ": Which?"
		student[i] = domain.NewQAPair(q, "answer "+string(rune('a'+i)))
		reference[i] = domain.NewReferenceQAPair(q, "model", []string{string(rune('a' + i))})
	}

	records, err := f.service.Grade(context.Background(), student, reference)
	require.NoError(t, err)
	require.Len(t, records, 8)
	for i, rec := range records {
		assert.Equal(t, student[i].Question, rec.Question, "records keep input order")
		assert.Equal(t, 4.0, rec.KeywordScore)
	}
	assert.LessOrEqual(t, maxInFlight.Load(), int32(3))
	assert.Equal(t, int32(8), progressCalls.Load())
}

func TestGrade_ConcurrentFailureCancelsRest(t *testing.T) {
	t.Parallel()

	f := newFixture(t, grading.Config{Concurrency: 2})
	var calls atomic.Int32
	f.grammar.CountIssuesFn = func(ctx context.Context, text string) (int, error) {
		calls.Add(1)
		if text == "bad" {
			return 0, errors.New("checker crashed")
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(10 * time.Millisecond):
			return 0, nil
		}
	}

	answers := []string{"bad", "ok", "ok", "ok", "ok", "ok", "ok", "ok", "ok", "ok"}
	records, err := f.service.GradeManual(context.Background(), answers, []string{"ok"}, "model")
	assert.ErrorIs(t, err, scoring.ErrCapabilityFailure)
	assert.Nil(t, records)
	assert.Less(t, calls.Load(), int32(len(answers)), "remaining answers are skipped")
}

func TestGradeManual(t *testing.T) {
	t.Parallel()

	f := newFixture(t, grading.Config{})

	records, err := f.service.GradeManual(context.Background(),
		[]string{"Chlorophyll absorbs LIGHT", ""},
		[]string{" Light ", "", "chlorophyll"},
		"Chlorophyll absorbs light.")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 4.0, records[0].KeywordScore)
	assert.Empty(t, records[0].Question, "manual records are not annotated")
	assert.Empty(t, records[0].StudentAnswer)

	assert.Equal(t, 0.0, records[1].KeywordScore)
	assert.Equal(t, 3.0, records[1].GrammarScore, "empty answers hit the word-count guard")

	empty, err := f.service.GradeManual(context.Background(), nil, []string{"x"}, "model")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestGradeDocuments(t *testing.T) {
	t.Parallel()

	f := newFixture(t, grading.Config{})
	f.textLayer.ExtractFn = extractByRole(studentDoc, referenceDoc)

	records, err := f.service.GradeDocuments(context.Background(), grading.DocumentRequest{
		Student:   &grading.Upload{Filename: "answers.PDF", Content: strings.NewReader("%PDF student")},
		Reference: &grading.Upload{Filename: "ideal.pdf", Content: strings.NewReader("%PDF ideal")},
	})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Q1: What is photosynthesis?", records[0].Question)
	assert.Equal(t, 2.67, records[0].KeywordScore)
	assert.Equal(t, "Q2: What gas do plants release?", records[1].Question)
	assert.Equal(t, 4.0, records[1].KeywordScore)

	paths := f.textLayer.Paths()
	require.Len(t, paths, 2)
	assert.Regexp(t, `student_[0-9a-f-]{36}\.pdf$`, paths[0])
	assert.Regexp(t, `ideal_[0-9a-f-]{36}\.pdf$`, paths[1])
	assert.Empty(t, f.ocr.Paths())

	entries, err := os.ReadDir(f.uploadDir)
	require.NoError(t, err, "upload directory is created")
	assert.Empty(t, entries, "staged uploads are removed")
}

func TestGradeDocuments_Handwritten(t *testing.T) {
	t.Parallel()

	f := newFixture(t, grading.Config{})
	f.ocr.Text = studentDoc
	f.textLayer.Text = referenceDoc

	records, err := f.service.GradeDocuments(context.Background(), grading.DocumentRequest{
		Student:     &grading.Upload{Filename: "scan.png", Content: strings.NewReader("png bytes")},
		Reference:   &grading.Upload{Filename: "ideal.docx", Content: strings.NewReader("docx bytes")},
		Handwritten: true,
	})
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Len(t, f.ocr.Paths(), 1)
	assert.Len(t, f.textLayer.Paths(), 1, "the reference always uses the text layer")
}

func TestGradeDocuments_Failures(t *testing.T) {
	t.Parallel()

	upload := func(name string) *grading.Upload {
		return &grading.Upload{Filename: name, Content: strings.NewReader("content")}
	}

	testCases := []struct {
		name      string
		req       grading.DocumentRequest
		student   string
		reference string
		extractor error
		wantErr   error
		wantRole  string
	}{
		{
			name:    "missing student",
			req:     grading.DocumentRequest{Reference: upload("ideal.pdf")},
			wantErr: domain.ErrMissingDocument,
		},
		{
			name:    "missing reference",
			req:     grading.DocumentRequest{Student: upload("answers.pdf")},
			wantErr: domain.ErrMissingDocument,
		},
		{
			name:     "unsupported student format",
			req:      grading.DocumentRequest{Student: upload("answers.xlsx"), Reference: upload("ideal.pdf")},
			wantErr:  document.ErrUnsupportedFormat,
			wantRole: "student",
		},
		{
			name:     "image reference",
			req:      grading.DocumentRequest{Student: upload("answers.pdf"), Reference: upload("ideal.png")},
			wantErr:  document.ErrUnsupportedFormat,
			wantRole: "reference",
		},
		{
			name:     "typed image student",
			req:      grading.DocumentRequest{Student: upload("answers.jpg"), Reference: upload("ideal.pdf")},
			wantErr:  document.ErrUnsupportedFormat,
			wantRole: "student",
		},
		{
			name:      "question count mismatch",
			req:       grading.DocumentRequest{Student: upload("answers.pdf"), Reference: upload("ideal.pdf")},
			student:   "Q1: A? Ans: a",
			reference: referenceDoc,
			wantErr:   domain.ErrPairCountMismatch,
		},
		{
			name:      "no questions found",
			req:       grading.DocumentRequest{Student: upload("answers.pdf"), Reference: upload("ideal.pdf")},
			student:   "nothing here",
			reference: "nor here",
			wantErr:   domain.ErrNoQuestions,
		},
		{
			name:      "unreadable document",
			req:       grading.DocumentRequest{Student: upload("answers.pdf"), Reference: upload("ideal.pdf")},
			extractor: errors.New("malformed xref"),
			wantErr:   grading.ErrExtractionFailed,
			wantRole:  "student",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, grading.Config{})
			f.textLayer.ExtractFn = extractByRole(tc.student, tc.reference)
			if tc.extractor != nil {
				f.textLayer.ExtractFn = func(ctx context.Context, path string) (string, error) {
					return "", tc.extractor
				}
			}

			records, err := f.service.GradeDocuments(context.Background(), tc.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, records)

			if tc.wantRole != "" {
				var docErr *grading.DocumentError
				require.ErrorAs(t, err, &docErr)
				assert.Equal(t, tc.wantRole, docErr.Role)
			}

			entries, _ := os.ReadDir(f.uploadDir)
			assert.Empty(t, entries, "no staged file survives a failure")
		})
	}
}

func TestExtractText(t *testing.T) {
	t.Parallel()

	f := newFixture(t, grading.Config{})
	f.textLayer.Text = "typed"
	f.ocr.Text = "handwritten"

	text, err := f.service.ExtractText(context.Background(), "a.pdf", false)
	require.NoError(t, err)
	assert.Equal(t, "typed", text)

	text, err = f.service.ExtractText(context.Background(), "a.pdf", true)
	require.NoError(t, err)
	assert.Equal(t, "handwritten", text)

	f.ocr.Err = document.ErrRecognitionFailed
	_, err = f.service.ExtractText(context.Background(), "a.pdf", true)
	assert.ErrorIs(t, err, grading.ErrExtractionFailed)
	assert.ErrorIs(t, err, document.ErrRecognitionFailed)
}
