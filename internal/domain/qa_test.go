package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "trims and lowercases",
			input:    []string{" Chlorophyll", "SUNLIGHT ", "glucose"},
			expected: []string{"chlorophyll", "sunlight", "glucose"},
		},
		{
			name:     "drops empty entries",
			input:    []string{"a", "", "   ", "b"},
			expected: []string{"a", "b"},
		},
		{
			name:     "keeps duplicates",
			input:    []string{"cell", "Cell"},
			expected: []string{"cell", "cell"},
		},
		{
			name:     "nil input",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, NormalizeKeywords(tc.input))
		})
	}
}

func TestSplitKeywords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"plants", "sunlight"}, SplitKeywords(" Plants , , sunlight,"))
	assert.Empty(t, SplitKeywords(""))
}

func TestNewQAPairTrims(t *testing.T) {
	t.Parallel()

	pair := NewQAPair("  Q1: What is Go?\n", "\tA language.  ")
	assert.Equal(t, "Q1: What is Go?", pair.Question)
	assert.Equal(t, "A language.", pair.StudentAnswer)

	ref := NewReferenceQAPair(" Q1: What is Go? ", " A language. ", []string{" Compiled "})
	assert.Equal(t, "Q1: What is Go?", ref.Question)
	assert.Equal(t, "A language.", ref.ModelAnswer)
	assert.Equal(t, []string{"compiled"}, ref.Keywords)
}

func TestNewGradingSession(t *testing.T) {
	t.Parallel()

	student := []QAPair{{Question: "Q1: a?"}, {Question: "Q2: b?"}}
	reference := []ReferenceQAPair{{Question: "Q1: a?"}, {Question: "Q2: b?"}, {Question: "Q3: c?"}}

	t.Run("mismatch", func(t *testing.T) {
		t.Parallel()
		session, err := NewGradingSession(student, reference)
		require.Error(t, err)
		assert.Nil(t, session)
		assert.True(t, errors.Is(err, ErrPairCountMismatch))
	})

	t.Run("both empty", func(t *testing.T) {
		t.Parallel()
		_, err := NewGradingSession(nil, nil)
		assert.ErrorIs(t, err, ErrNoQuestions)
	})

	t.Run("aligned", func(t *testing.T) {
		t.Parallel()
		session, err := NewGradingSession(student, reference[:2])
		require.NoError(t, err)
		assert.Equal(t, 2, session.Len())
	})
}

func TestScoreRecordAnnotate(t *testing.T) {
	t.Parallel()

	rec := ScoreRecord{FinalScore: 7.5}
	annotated := rec.Annotate(QAPair{Question: "Q1: x?", StudentAnswer: "y"})

	assert.Equal(t, "Q1: x?", annotated.Question)
	assert.Equal(t, "y", annotated.StudentAnswer)
	assert.Empty(t, rec.Question, "original record is not modified")
	assert.Equal(t, 10.0, MaxScore)
}
