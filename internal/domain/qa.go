package domain

import "strings"

// QAPair is one question and the student's answer to it, in document order.
// Question keeps its "Q<n>:" label and trailing question mark.
type QAPair struct {
	Question      string `json:"question"`
	StudentAnswer string `json:"student_answer"`
}

// ReferenceQAPair is one question from the reference document together with
// the model answer and the keywords expected in a good answer.
type ReferenceQAPair struct {
	Question    string   `json:"question"`
	ModelAnswer string   `json:"model_answer"`
	Keywords    []string `json:"keywords"`
}

// NewQAPair builds a QAPair with both fields whitespace-trimmed.
func NewQAPair(question, answer string) QAPair {
	return QAPair{
		Question:      strings.TrimSpace(question),
		StudentAnswer: strings.TrimSpace(answer),
	}
}

// NewReferenceQAPair builds a ReferenceQAPair with trimmed text fields and
// normalized keywords.
func NewReferenceQAPair(question, modelAnswer string, keywords []string) ReferenceQAPair {
	return ReferenceQAPair{
		Question:    strings.TrimSpace(question),
		ModelAnswer: strings.TrimSpace(modelAnswer),
		Keywords:    NormalizeKeywords(keywords),
	}
}

// NormalizeKeywords trims and lower-cases each keyword and drops the empty
// ones. Duplicates and order are preserved. The result is never nil.
func NormalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		out = append(out, k)
	}
	return out
}

// SplitKeywords splits a comma-separated keyword list and normalizes it.
func SplitKeywords(list string) []string {
	return NormalizeKeywords(strings.Split(list, ","))
}
