package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/phrazzld/exam-checker/internal/domain"
	"github.com/phrazzld/exam-checker/internal/service/grading"
)

// MockGradingService implements grading.Service for testing
type MockGradingService struct {
	GradeFn func(
		ctx context.Context,
		student []domain.QAPair,
		reference []domain.ReferenceQAPair,
	) ([]domain.ScoreRecord, error)
	GradeManualFn func(
		ctx context.Context,
		answers []string,
		keywords []string,
		modelAnswer string,
	) ([]domain.ScoreRecord, error)
	GradeDocumentsFn func(ctx context.Context, req grading.DocumentRequest) ([]domain.ScoreRecord, error)
	GradeFilesFn     func(
		ctx context.Context,
		studentPath, referencePath string,
		handwritten bool,
	) ([]domain.ScoreRecord, error)
	ExtractTextFn func(ctx context.Context, path string, handwritten bool) (string, error)

	// Default response values
	Records []domain.ScoreRecord
	Text    string
	Err     error

	mu sync.Mutex

	// LastManual records the arguments of the most recent GradeManual call
	LastManual struct {
		Answers     []string
		Keywords    []string
		ModelAnswer string
	}

	// LastDocuments records the most recent GradeDocuments call with the
	// upload contents read into memory
	LastDocuments struct {
		StudentName      string
		StudentBody      string
		ReferenceName    string
		ReferenceBody    string
		Handwritten      bool
		StudentPresent   bool
		ReferencePresent bool
	}
}

// Grade implements grading.Service
func (m *MockGradingService) Grade(
	ctx context.Context,
	student []domain.QAPair,
	reference []domain.ReferenceQAPair,
) ([]domain.ScoreRecord, error) {
	if m.GradeFn != nil {
		return m.GradeFn(ctx, student, reference)
	}
	return m.Records, m.Err
}

// GradeManual implements grading.Service
func (m *MockGradingService) GradeManual(
	ctx context.Context,
	answers []string,
	keywords []string,
	modelAnswer string,
) ([]domain.ScoreRecord, error) {
	m.mu.Lock()
	m.LastManual.Answers = answers
	m.LastManual.Keywords = keywords
	m.LastManual.ModelAnswer = modelAnswer
	m.mu.Unlock()

	if m.GradeManualFn != nil {
		return m.GradeManualFn(ctx, answers, keywords, modelAnswer)
	}
	return m.Records, m.Err
}

// GradeDocuments implements grading.Service
func (m *MockGradingService) GradeDocuments(
	ctx context.Context,
	req grading.DocumentRequest,
) ([]domain.ScoreRecord, error) {
	m.mu.Lock()
	m.LastDocuments.Handwritten = req.Handwritten
	m.LastDocuments.StudentPresent = req.Student != nil
	m.LastDocuments.ReferencePresent = req.Reference != nil
	if req.Student != nil {
		m.LastDocuments.StudentName = req.Student.Filename
		m.LastDocuments.StudentBody = readAll(req.Student.Content)
	}
	if req.Reference != nil {
		m.LastDocuments.ReferenceName = req.Reference.Filename
		m.LastDocuments.ReferenceBody = readAll(req.Reference.Content)
	}
	m.mu.Unlock()

	if m.GradeDocumentsFn != nil {
		return m.GradeDocumentsFn(ctx, req)
	}
	return m.Records, m.Err
}

// GradeFiles implements grading.Service
func (m *MockGradingService) GradeFiles(
	ctx context.Context,
	studentPath, referencePath string,
	handwritten bool,
) ([]domain.ScoreRecord, error) {
	if m.GradeFilesFn != nil {
		return m.GradeFilesFn(ctx, studentPath, referencePath, handwritten)
	}
	return m.Records, m.Err
}

// ExtractText implements grading.Service
func (m *MockGradingService) ExtractText(ctx context.Context, path string, handwritten bool) (string, error) {
	if m.ExtractTextFn != nil {
		return m.ExtractTextFn(ctx, path, handwritten)
	}
	return m.Text, m.Err
}

func readAll(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	return string(b)
}
