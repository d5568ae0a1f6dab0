// Package report renders grading results and parsed documents for terminals.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/phrazzld/exam-checker/internal/domain"
	"github.com/phrazzld/exam-checker/internal/parser"
)

const defaultQuestionWidth = 48

// Summary totals a set of score records.
type Summary struct {
	Questions int     `json:"questions"`
	Total     float64 `json:"total"`
	Max       float64 `json:"max"`
	Percent   float64 `json:"percent"`
}

// Summarize adds up the final scores of records.
func Summarize(records []domain.ScoreRecord) Summary {
	s := Summary{
		Questions: len(records),
		Max:       float64(len(records)) * domain.MaxScore,
	}
	for _, r := range records {
		s.Total += r.FinalScore
	}
	if s.Max > 0 {
		s.Percent = s.Total / s.Max * 100
	}
	return s
}

// Renderer writes human-readable reports.
type Renderer struct {
	color         bool
	questionWidth int
}

// NewRenderer returns a Renderer. When useColor is false no escape codes are
// written, whatever the terminal supports.
func NewRenderer(useColor bool) *Renderer {
	return &Renderer{color: useColor, questionWidth: defaultQuestionWidth}
}

func (r *Renderer) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if r.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// scoreStyle picks green, yellow or red by the share of MaxScore earned.
func (r *Renderer) scoreStyle(final float64) *color.Color {
	switch ratio := final / domain.MaxScore; {
	case ratio >= 0.7:
		return r.style(color.FgGreen)
	case ratio >= 0.4:
		return r.style(color.FgYellow)
	default:
		return r.style(color.FgRed)
	}
}

// WriteTable writes one row per record followed by the total.
func (r *Renderer) WriteTable(w io.Writer, records []domain.ScoreRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, r.style(color.FgYellow).Sprint("No questions graded."))
		return err
	}

	header := fmt.Sprintf("%-3s  %-*s  %7s  %7s  %8s  %6s",
		"#", r.questionWidth, "QUESTION", "KEYWORD", "GRAMMAR", "SEMANTIC", "FINAL")
	if _, err := fmt.Fprintln(w, r.style(color.Bold).Sprint(header)); err != nil {
		return err
	}

	for i, rec := range records {
		question := rec.Question
		if question == "" {
			question = fmt.Sprintf("Answer %d", i+1)
		}
		final := r.scoreStyle(rec.FinalScore).Sprintf("%6.2f", rec.FinalScore)
		if _, err := fmt.Fprintf(w, "%-3d  %-*s  %7.2f  %7.2f  %8.2f  %s\n",
			i+1, r.questionWidth, truncate(question, r.questionWidth),
			rec.KeywordScore, rec.GrammarScore, rec.SemanticScore, final); err != nil {
			return err
		}
	}

	s := Summarize(records)
	total := r.scoreStyle(s.Total / float64(s.Questions)).
		Sprintf("Total %.2f / %.2f (%.1f%%)", s.Total, s.Max, s.Percent)
	_, err := fmt.Fprintf(w, "\n%s\n", total)
	return err
}

// WritePairs lists the pairs found in a parsed document.
func (r *Renderer) WritePairs(w io.Writer, result parser.Result) error {
	label := r.style(color.FgCyan)
	if _, err := fmt.Fprintf(w, "%s\n", r.style(color.Bold).Sprintf(
		"%s document: %d pairs", result.Mode, result.Len())); err != nil {
		return err
	}
	if result.Len() == 0 {
		_, err := fmt.Fprintln(w, r.style(color.FgYellow).Sprint(
			`No "Q<n>: ...? Ans: ..." blocks were found.`))
		return err
	}

	if result.Mode == parser.ModeReference {
		for _, p := range result.Reference {
			if _, err := fmt.Fprintf(w, "\n%s\n  %s %s\n  %s %s\n",
				p.Question,
				label.Sprint("Ans:"), oneLine(p.ModelAnswer),
				label.Sprint("Keywords:"), strings.Join(p.Keywords, ", ")); err != nil {
				return err
			}
		}
		return nil
	}

	for _, p := range result.Student {
		if _, err := fmt.Fprintf(w, "\n%s\n  %s %s\n",
			p.Question, label.Sprint("Ans:"), oneLine(p.StudentAnswer)); err != nil {
			return err
		}
	}
	return nil
}

// GradeOutput is the JSON document written by the grade command. Results
// has the same shape as the HTTP API response.
type GradeOutput struct {
	Results []domain.ScoreRecord `json:"results"`
	Summary Summary              `json:"summary"`
}

// NewGradeOutput wraps records, never leaving Results nil.
func NewGradeOutput(records []domain.ScoreRecord) GradeOutput {
	if records == nil {
		records = []domain.ScoreRecord{}
	}
	return GradeOutput{Results: records, Summary: Summarize(records)}
}

// ParseOutput is the JSON document written by the parse command.
type ParseOutput struct {
	Mode      string                   `json:"mode"`
	Student   []domain.QAPair          `json:"student,omitempty"`
	Reference []domain.ReferenceQAPair `json:"reference,omitempty"`
}

// NewParseOutput converts a parser result.
func NewParseOutput(result parser.Result) ParseOutput {
	return ParseOutput{
		Mode:      result.Mode.String(),
		Student:   result.Student,
		Reference: result.Reference,
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// oneLine collapses runs of whitespace, including newlines from PDF text,
// into single spaces.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, width int) string {
	s = oneLine(s)
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
