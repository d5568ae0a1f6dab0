package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/phrazzld/exam-checker/internal/domain"
)

// KeywordScore returns the share of keywords found in answer, scaled to
// domain.KeywordWeight. Matching is a case-insensitive substring test on the
// trimmed keyword, so "photosynthesis" counts inside "Photosynthesis's".
// An empty keyword set scores exactly 0.
func KeywordScore(answer string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}

	lower := strings.ToLower(answer)
	matched := 0
	for _, k := range keywords {
		if strings.Contains(lower, strings.ToLower(strings.TrimSpace(k))) {
			matched++
		}
	}

	return float64(matched) / float64(len(keywords)) * domain.KeywordWeight
}

// WordCount counts the whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// GrammarScore converts an issue count into a score in [0, domain.GrammarWeight].
//
// The issue density is issues per word, with the word count floored at 1 so
// an empty answer cannot divide by zero. More than one issue per word
// bottoms out at 0.
func GrammarScore(issues, wordCount int) float64 {
	words := wordCount
	if words < 1 {
		words = 1
	}
	if issues < 0 {
		issues = 0
	}

	score := (1 - float64(issues)/float64(words)) * domain.GrammarWeight
	return clamp(score, 0, domain.GrammarWeight)
}

// CosineSimilarity returns the cosine of the angle between a and b.
// A zero-length or zero-norm vector has similarity 0. Vectors of different
// dimension are rejected with ErrDimensionMismatch.
func CosineSimilarity(a, b []float32) (float64, error) {
	// Empty vectors come from blank text.
	if len(a) == 0 || len(b) == 0 {
		return 0, nil
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// SemanticScore scales a cosine similarity to [0, domain.SemanticWeight].
// Similarity is clamped to [0, 1] first; floating error can push identical
// vectors slightly above 1, and opposed vectors earn no credit.
func SemanticScore(similarity float64) float64 {
	if math.IsNaN(similarity) {
		return 0
	}
	return clamp(similarity, 0, 1) * domain.SemanticWeight
}

// Round2 rounds x to two decimal places using the shortest-decimal
// formatting of the exact binary value, so exact ties round half to even.
func Round2(x float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return x
	}
	return rounded
}

// Compose builds the reported record from raw sub-scores. Each sub-score is
// rounded on its own; the final score is rounded from the raw sum.
func Compose(keyword, grammar, semantic float64) domain.ScoreRecord {
	return domain.ScoreRecord{
		KeywordScore:  Round2(keyword),
		GrammarScore:  Round2(grammar),
		SemanticScore: Round2(semantic),
		FinalScore:    Round2(keyword + grammar + semantic),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
