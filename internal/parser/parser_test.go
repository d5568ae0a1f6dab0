package parser

import (
	"testing"

	"github.com/phrazzld/exam-checker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStudent(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		text     string
		expected []domain.QAPair
	}{
		{
			name: "two pairs in document order",
			text: "Q1: What is X? Ans: X is Y.\nQ2: What is Z? Ans: Z is W.",
			expected: []domain.QAPair{
				{Question: "Q1: What is X?", StudentAnswer: "X is Y."},
				{Question: "Q2: What is Z?", StudentAnswer: "Z is W."},
			},
		},
		{
			name: "multi-line answer without trailing punctuation",
			text: "Q1: Describe the cell?\nAns: It has a membrane\nand a nucleus\n\nQ2: Name one organelle?\nAns:   mitochondria  ",
			expected: []domain.QAPair{
				{Question: "Q1: Describe the cell?", StudentAnswer: "It has a membrane\nand a nucleus"},
				{Question: "Q2: Name one organelle?", StudentAnswer: "mitochondria"},
			},
		},
		{
			name: "question labels are not renumbered or sorted",
			text: "Q7: Seventh? Ans: seven Q3: Third? Ans: three",
			expected: []domain.QAPair{
				{Question: "Q7: Seventh?", StudentAnswer: "seven"},
				{Question: "Q3: Third?", StudentAnswer: "three"},
			},
		},
		{
			name: "question text may contain an earlier question mark",
			text: "Q1: Why? Explain how? Ans: Because.",
			expected: []domain.QAPair{
				{Question: "Q1: Why? Explain how?", StudentAnswer: "Because."},
			},
		},
		{
			name: "preamble before the first label is ignored",
			text: "Name: Jo\nRoll: 12\nQ1: What is 2+2? Ans: 4",
			expected: []domain.QAPair{
				{Question: "Q1: What is 2+2?", StudentAnswer: "4"},
			},
		},
		{
			name:     "no markers",
			text:     "just some prose without any structure",
			expected: []domain.QAPair{},
		},
		{
			name:     "empty text",
			text:     "",
			expected: []domain.QAPair{},
		},
		{
			name:     "question without question mark is dropped",
			text:     "Q1: State the law. Ans: F = ma",
			expected: []domain.QAPair{},
		},
		{
			name: "incomplete trailing fragment is skipped",
			text: "Q1: What is X? Ans: X is Y.\nQ2: What is Z",
			expected: []domain.QAPair{
				{Question: "Q1: What is X?", StudentAnswer: "X is Y."},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ParseStudent(tc.text))
		})
	}
}

func TestParseReference(t *testing.T) {
	t.Parallel()

	t.Run("keywords are split, trimmed and lowercased", func(t *testing.T) {
		t.Parallel()

		text := "Q1: What is X? Ans: X is Y. Keywords: y, x\nQ2: What is Z? Ans: Z is W. Keywords: w"
		pairs := ParseReference(text)

		require.Len(t, pairs, 2)
		assert.Equal(t, domain.ReferenceQAPair{
			Question:    "Q1: What is X?",
			ModelAnswer: "X is Y.",
			Keywords:    []string{"y", "x"},
		}, pairs[0])
		assert.Equal(t, domain.ReferenceQAPair{
			Question:    "Q2: What is Z?",
			ModelAnswer: "Z is W.",
			Keywords:    []string{"w"},
		}, pairs[1])
	})

	t.Run("empty keyword entries are dropped", func(t *testing.T) {
		t.Parallel()

		pairs := ParseReference("Q1: Define energy? Ans: Capacity to do work.\nKeywords:  Work, ,CAPACITY ,")
		require.Len(t, pairs, 1)
		assert.Equal(t, []string{"work", "capacity"}, pairs[0].Keywords)
		assert.Equal(t, "Capacity to do work.", pairs[0].ModelAnswer)
	})

	t.Run("block without keywords marker is not recognised", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, ParseReference("Q1: What is X? Ans: X is Y."))
	})

	t.Run("student text does not parse as reference", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, ParseReference("Q1: What is X? Ans: X is Y.\nQ2: What is Z? Ans: Z is W."))
	})
}

func TestParseDispatch(t *testing.T) {
	t.Parallel()

	text := "Q1: What is X? Ans: X is Y. Keywords: y"

	ref := Parse(text, ModeReference)
	assert.Equal(t, ModeReference, ref.Mode)
	assert.Equal(t, 1, ref.Len())
	assert.Nil(t, ref.Student)

	student := Parse(text, ModeStudent)
	assert.Equal(t, ModeStudent, student.Mode)
	require.Equal(t, 1, student.Len())
	assert.Equal(t, "X is Y. Keywords: y", student.Student[0].StudentAnswer)

	assert.Equal(t, "reference", ModeReference.String())
	assert.Equal(t, "student", ModeStudent.String())
	assert.Equal(t, "unknown", Mode(9).String())
}
