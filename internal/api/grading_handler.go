package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/exam-checker/internal/api/shared"
	"github.com/phrazzld/exam-checker/internal/domain"
	"github.com/phrazzld/exam-checker/internal/platform/logger"
	"github.com/phrazzld/exam-checker/internal/service/grading"
)

// GradingHandler handles the grading endpoints.
type GradingHandler struct {
	service        grading.Service
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewGradingHandler creates a new GradingHandler. maxUploadBytes caps the
// request body of both endpoints.
func NewGradingHandler(
	service grading.Service,
	maxUploadBytes int64,
	logger *slog.Logger,
) *GradingHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GradingHandler")
	}
	if service == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("grading service cannot be nil for GradingHandler")
	}

	return &GradingHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "grading_handler")),
	}
}

// EvaluateDocuments handles POST /evaluate-pdf requests.
// It grades the student document in field "pdf" against the reference
// document in field "ideal_pdf". Field "handwritten" routes the student
// document through OCR.
func (h *GradingHandler) EvaluateDocuments(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			HandleAPIError(w, r, err, "")
		case errors.Is(err, http.ErrNotMultipart):
			// A form without files is a request missing its documents.
			HandleAPIError(w, r, domain.ErrMissingDocument, "")
		default:
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid multipart form", err)
		}
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Debug("failed to remove multipart temp files", slog.String("error", err.Error()))
		}
	}()

	student, studentCloser, err := formUpload(r, fieldStudent)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid student document", err)
		return
	}
	defer closeQuietly(studentCloser, log)

	reference, referenceCloser, err := formUpload(r, fieldReference)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid reference document", err)
		return
	}
	defer closeQuietly(referenceCloser, log)

	if student == nil || reference == nil {
		log.Debug("grading request missing a document",
			slog.Bool("has_student", student != nil),
			slog.Bool("has_reference", reference != nil))
		HandleAPIError(w, r, domain.ErrMissingDocument, "")
		return
	}

	handwritten := parseHandwritten(r.FormValue(fieldHandwritten))
	subject, _ := getSubjectFromContext(r)
	log.Debug("grading documents",
		slog.Bool("handwritten", handwritten),
		slog.String("subject", subject))

	records, err := h.service.GradeDocuments(r.Context(), grading.DocumentRequest{
		Student:     student,
		Reference:   reference,
		Handwritten: handwritten,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to grade documents")
		return
	}

	log.Info("documents graded", slog.Int("questions", len(records)))
	shared.RespondWithJSON(w, r, http.StatusOK, newResultsResponse(records))
}

// EvaluateManual handles POST /evaluate requests.
// It grades each answer against one model answer and keyword list.
func (h *GradingHandler) EvaluateManual(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	var req ManualRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			HandleAPIError(w, r, err, "")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	if len(req.Answers) == 0 {
		shared.RespondWithJSON(w, r, http.StatusOK, newResultsResponse(nil))
		return
	}

	records, err := h.service.GradeManual(r.Context(), req.Answers, req.Keywords, req.ModelAnswer)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to grade answers")
		return
	}

	log.Info("manual answers graded", slog.Int("answers", len(records)))
	shared.RespondWithJSON(w, r, http.StatusOK, newResultsResponse(records))
}

// Health handles GET /health requests.
func Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
