package parser

import (
	"regexp"

	"github.com/phrazzld/exam-checker/internal/domain"
)

// Mode selects which document layout Parse expects.
type Mode int

const (
	// ModeStudent parses "Q<n>: ...? Ans: ..." blocks.
	ModeStudent Mode = iota
	// ModeReference parses "Q<n>: ...? Ans: ... Keywords: a, b" blocks.
	ModeReference
)

// String returns the mode name used in logs and CLI output.
func (m Mode) String() string {
	switch m {
	case ModeStudent:
		return "student"
	case ModeReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Document markers. These form the authoring contract for exam documents:
// a question starts at "Q<digits>:", runs to the first "?" that is followed
// by "Ans:", and its answer runs until the next question label or the end of
// the text.
const (
	studentPattern   = `(?s)(Q\d+:\s*.+?\?)\s*Ans:\s*(.+?)(Q\d+:|$)`
	referencePattern = `(?s)(Q\d+:\s*.+?\?)\s*Ans:\s*(.+?)\s*Keywords:\s*(.+?)(Q\d+:|$)`
)

var (
	studentRegex   = regexp.MustCompile(studentPattern)
	referenceRegex = regexp.MustCompile(referencePattern)
)

// Result holds the pairs produced by Parse. Only the slice matching the
// requested mode is populated.
type Result struct {
	Mode      Mode
	Student   []domain.QAPair
	Reference []domain.ReferenceQAPair
}

// Len returns the number of parsed pairs.
func (r Result) Len() int {
	if r.Mode == ModeReference {
		return len(r.Reference)
	}
	return len(r.Student)
}

// Parse extracts pairs from text using the layout selected by mode.
func Parse(text string, mode Mode) Result {
	if mode == ModeReference {
		return Result{Mode: mode, Reference: ParseReference(text)}
	}
	return Result{Mode: ModeStudent, Student: ParseStudent(text)}
}

// ParseStudent extracts question/answer pairs from a student document in
// document order. Text without any complete pair yields an empty slice.
func ParseStudent(text string) []domain.QAPair {
	pairs := []domain.QAPair{}
	scan(studentRegex, text, func(groups []string) {
		pairs = append(pairs, domain.NewQAPair(groups[1], groups[2]))
	})
	return pairs
}

// ParseReference extracts question/model-answer/keyword triples from a
// reference document in document order. Keywords are split on commas,
// trimmed and lower-cased; empty entries are dropped.
func ParseReference(text string) []domain.ReferenceQAPair {
	pairs := []domain.ReferenceQAPair{}
	scan(referenceRegex, text, func(groups []string) {
		pairs = append(pairs, domain.NewReferenceQAPair(
			groups[1], groups[2], domain.SplitKeywords(groups[3])))
	})
	return pairs
}

// scan applies re repeatedly to text. The last capture group of re is the
// terminator: either the next question label or the empty end-of-text match.
// A label terminator is not consumed, so the next scan starts on it.
func scan(re *regexp.Regexp, text string, emit func(groups []string)) {
	term := re.NumSubexp()
	pos := 0
	for pos < len(text) {
		loc := re.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			return
		}

		groups := make([]string, term+1)
		for i := 0; i <= term; i++ {
			if loc[2*i] >= 0 {
				groups[i] = text[pos+loc[2*i] : pos+loc[2*i+1]]
			}
		}
		emit(groups)

		termStart, termEnd := loc[2*term], loc[2*term+1]
		if termStart == termEnd {
			return
		}
		pos += termStart
	}
}
