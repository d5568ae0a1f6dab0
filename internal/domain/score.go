package domain

// Rubric weights. A perfect answer scores KeywordWeight + GrammarWeight +
// SemanticWeight.
const (
	KeywordWeight  = 4.0
	GrammarWeight  = 3.0
	SemanticWeight = 3.0

	MaxScore = KeywordWeight + GrammarWeight + SemanticWeight
)

// ScoreRecord is the graded result for one answer. Sub-scores are rounded to
// two decimals for reporting; FinalScore is rounded from the unrounded sum.
//
// Question and StudentAnswer are only set when the record was produced from
// parsed documents.
type ScoreRecord struct {
	KeywordScore  float64 `json:"keywordScore"`
	GrammarScore  float64 `json:"grammarScore"`
	SemanticScore float64 `json:"semanticScore"`
	FinalScore    float64 `json:"finalScore"`
	Question      string  `json:"question,omitempty"`
	StudentAnswer string  `json:"student_answer,omitempty"`
}

// Annotate returns a copy of r carrying the question and answer it grades.
func (r ScoreRecord) Annotate(pair QAPair) ScoreRecord {
	r.Question = pair.Question
	r.StudentAnswer = pair.StudentAnswer
	return r
}
