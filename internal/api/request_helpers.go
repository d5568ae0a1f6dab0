package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/exam-checker/internal/api/shared"
	"github.com/phrazzld/exam-checker/internal/service/grading"
)

// Multipart field names used by the browser client.
const (
	fieldStudent     = "pdf"
	fieldReference   = "ideal_pdf"
	fieldHandwritten = "handwritten"
)

// multipartMemory is the part of a multipart body kept in memory; the rest
// spills to temporary files.
const multipartMemory = 8 << 20

// getSubjectFromContext extracts the authenticated token subject placed in
// the context by the authentication middleware.
//
// Returns:
//   - (subject, true): when authentication ran and succeeded
//   - ("", false): when the route is unauthenticated
func getSubjectFromContext(r *http.Request) (string, bool) {
	subject, ok := r.Context().Value(shared.SubjectContextKey).(string)
	if !ok || subject == "" {
		return "", false
	}
	return subject, true
}

// parseHandwritten reports whether the handwritten form value enables OCR.
// Only "true", in any letter case, does.
func parseHandwritten(value string) bool {
	return strings.EqualFold(value, "true")
}

// formUpload returns the uploaded file for field, or nil when the field is
// absent. The caller closes the returned closer.
func formUpload(r *http.Request, field string) (*grading.Upload, io.Closer, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return &grading.Upload{Filename: header.Filename, Content: file}, file, nil
}

// closeQuietly closes c, logging failures at debug level.
func closeQuietly(c io.Closer, log *slog.Logger) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Debug("failed to close upload", slog.String("error", err.Error()))
	}
}
