package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordScore(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		answer   string
		keywords []string
		expected float64
	}{
		{
			name:     "empty keyword set scores zero",
			answer:   "anything at all",
			keywords: nil,
			expected: 0,
		},
		{
			name:     "all keywords present",
			answer:   "Light and ENERGY drive chlorophyll",
			keywords: []string{"light", "energy", "chlorophyll"},
			expected: 4,
		},
		{
			name:     "none present",
			answer:   "no match here",
			keywords: []string{"photosynthesis"},
			expected: 0,
		},
		{
			name:     "substring match counts",
			answer:   "Photosynthetic organisms",
			keywords: []string{"photosynth"},
			expected: 4,
		},
		{
			name:     "keyword case and padding ignored",
			answer:   "mitochondria",
			keywords: []string{"  Mitochondria ", "ribosome"},
			expected: 2,
		},
		{
			name:     "empty answer",
			answer:   "",
			keywords: []string{"a", "b"},
			expected: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := KeywordScore(tc.answer, tc.keywords)
			assert.InDelta(t, tc.expected, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 4.0)
		})
	}
}

func TestGrammarScore(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		issues   int
		words    int
		expected float64
	}{
		{name: "no issues is exactly full marks", issues: 0, words: 12, expected: 3},
		{name: "one issue in four words", issues: 1, words: 4, expected: 2.25},
		{name: "empty answer uses a denominator of one", issues: 0, words: 0, expected: 3},
		{name: "empty answer with an issue", issues: 1, words: 0, expected: 0},
		{name: "more issues than words floors at zero", issues: 9, words: 3, expected: 0},
		{name: "negative issue count treated as none", issues: -2, words: 5, expected: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := GrammarScore(tc.issues, tc.words)
			assert.InDelta(t, tc.expected, got, 1e-9)
		})
	}
}

func TestWordCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("  \n\t "))
	assert.Equal(t, 4, WordCount(" one two\nthree\tfour "))
}

func TestCosineSimilarity(t *testing.T) {
	t.Parallel()

	t.Run("self similarity", func(t *testing.T) {
		t.Parallel()
		v := []float32{0.12, -0.4, 0.33, 0.9}
		sim, err := CosineSimilarity(v, v)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, sim, 1e-6)
	})

	t.Run("orthogonal", func(t *testing.T) {
		t.Parallel()
		sim, err := CosineSimilarity([]float32{1, 0}, []float32{0, 1})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, sim, 1e-9)
	})

	t.Run("opposite", func(t *testing.T) {
		t.Parallel()
		sim, err := CosineSimilarity([]float32{1, 2}, []float32{-1, -2})
		require.NoError(t, err)
		assert.InDelta(t, -1.0, sim, 1e-9)
	})

	t.Run("zero vector", func(t *testing.T) {
		t.Parallel()
		sim, err := CosineSimilarity([]float32{0, 0}, []float32{1, 1})
		require.NoError(t, err)
		assert.Equal(t, 0.0, sim)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		t.Parallel()
		_, err := CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("empty vector", func(t *testing.T) {
		t.Parallel()
		sim, err := CosineSimilarity(nil, []float32{1, 2})
		require.NoError(t, err)
		assert.Equal(t, 0.0, sim)
	})
}

func TestSemanticScore(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 3.0, SemanticScore(1.0), 1e-9)
	assert.Equal(t, 3.0, SemanticScore(1.0000004), "similarity above one is clamped")
	assert.Equal(t, 0.0, SemanticScore(-0.3), "negative similarity earns nothing")
	assert.Equal(t, 0.0, SemanticScore(math.NaN()))
	assert.InDelta(t, 1.5, SemanticScore(0.5), 1e-9)
}

func TestRound2(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in       float64
		expected float64
	}{
		{2.0 / 3.0 * 4, 2.67},
		{2.675, 2.67}, // stored just below the tie
		{0.125, 0.12}, // exact tie rounds to even
		{3, 3},
		{0, 0},
		{9.999, 10},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Round2(tc.in), "Round2(%v)", tc.in)
	}
}

func TestComposeUsesRawSum(t *testing.T) {
	t.Parallel()

	// 1.004 + 1.004 + 1.004 = 3.012: each sub-score rounds down to 1.00 while
	// the final score keeps the contribution of the dropped thousandths.
	rec := Compose(1.004, 1.004, 1.004)
	assert.Equal(t, 1.0, rec.KeywordScore)
	assert.Equal(t, 1.0, rec.GrammarScore)
	assert.Equal(t, 1.0, rec.SemanticScore)
	assert.Equal(t, 3.01, rec.FinalScore)

	rec = Compose(4, 3, 3)
	assert.Equal(t, 10.0, rec.FinalScore)
}
