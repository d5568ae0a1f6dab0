package api

import "github.com/phrazzld/exam-checker/internal/domain"

// Common request/response structures

// ManualRequest defines the payload for POST /evaluate. Every answer is graded
// against the same keywords and model answer.
type ManualRequest struct {
	Answers     []string `json:"answers"     validate:"dive,max=20000"`
	Keywords    []string `json:"keywords"    validate:"dive,max=200"`
	ModelAnswer string   `json:"modelAnswer" validate:"max=20000"`
}

// ResultsResponse wraps graded records in input order.
type ResultsResponse struct {
	Results []domain.ScoreRecord `json:"results"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func newResultsResponse(records []domain.ScoreRecord) ResultsResponse {
	if records == nil {
		records = []domain.ScoreRecord{}
	}
	return ResultsResponse{Results: records}
}
