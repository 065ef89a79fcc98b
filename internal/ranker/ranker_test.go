package ranker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/engramdb/internal/ranker"
)

// TestS5_HybridWeighted covers spec scenario S5: one engram matches
// keyword only (score 1.0), the other matches vector with cosine 0.9;
// weights keyword=1, vector=1, method Weighted.
func TestS5_HybridWeighted(t *testing.T) {
	sources := ranker.Sources{
		KeywordMatches: func(text string) map[string]bool {
			return map[string]bool{"keyword-hit": true}
		},
		VectorScores: func(vector []float64, text string) map[string]float64 {
			return map[string]float64{"vector-hit": 0.9}
		},
	}

	q := ranker.HybridQuery{
		Text:    "anything",
		Method:  ranker.Weighted,
		Weights: ranker.Weights{Keyword: 1, Vector: 1},
	}

	results := ranker.Rank(q, sources)
	assert.Len(t, results, 2)
	assert.Equal(t, "keyword-hit", results[0].EngramID)
	assert.InDelta(t, 0.5, results[0].Combined, 1e-9)
	assert.Equal(t, "vector-hit", results[1].EngramID)
	assert.InDelta(t, 0.45, results[1].Combined, 1e-9)
}

func TestRank_SumCombination(t *testing.T) {
	sources := ranker.Sources{
		KeywordMatches: func(text string) map[string]bool { return map[string]bool{"a": true} },
		VectorScores: func(vector []float64, text string) map[string]float64 {
			return map[string]float64{"a": 0.6}
		},
	}
	q := ranker.HybridQuery{Text: "x", Method: ranker.Sum}

	results := ranker.Rank(q, sources)
	assert.Len(t, results, 1)
	assert.InDelta(t, 1.6, results[0].Combined, 1e-9)
}

func TestRank_MaxCombination(t *testing.T) {
	sources := ranker.Sources{
		KeywordMatches: func(text string) map[string]bool { return map[string]bool{"a": true} },
		VectorScores: func(vector []float64, text string) map[string]float64 {
			return map[string]float64{"a": 0.6}
		},
	}
	q := ranker.HybridQuery{Text: "x", Method: ranker.Max}

	results := ranker.Rank(q, sources)
	assert.Len(t, results, 1)
	assert.InDelta(t, 1.0, results[0].Combined, 1e-9)
}

func TestRank_MetadataFilterIsHardAND(t *testing.T) {
	sources := ranker.Sources{
		KeywordMatches: func(text string) map[string]bool {
			return map[string]bool{"a": true, "b": true}
		},
		MetadataMatches: func(key, value string) map[string]bool {
			return map[string]bool{"a": true}
		},
	}
	q := ranker.HybridQuery{Text: "x", MetadataKey: "status", MetadataValue: "active", Method: ranker.Sum}

	results := ranker.Rank(q, sources)
	assert.Len(t, results, 1)
	assert.Equal(t, "a", results[0].EngramID)
}

func TestRank_SourceAndConfidenceFilters(t *testing.T) {
	sources := ranker.Sources{
		KeywordMatches: func(text string) map[string]bool {
			return map[string]bool{"a": true, "b": true}
		},
		SourceMatches: func(source string) map[string]bool {
			return map[string]bool{"a": true, "b": true}
		},
		ConfidenceAtLeast: func(min float64) map[string]bool {
			return map[string]bool{"a": true}
		},
	}
	q := ranker.HybridQuery{
		Text: "x", Source: "web", HasMinConfidence: true, MinConfidence: 0.5, Method: ranker.Sum,
	}

	results := ranker.Rank(q, sources)
	assert.Len(t, results, 1)
	assert.Equal(t, "a", results[0].EngramID)
}

func TestRank_WeightedZeroWeightSumYieldsZero(t *testing.T) {
	sources := ranker.Sources{
		KeywordMatches: func(text string) map[string]bool { return map[string]bool{"a": true} },
	}
	q := ranker.HybridQuery{Text: "x", Method: ranker.Weighted}

	results := ranker.Rank(q, sources)
	assert.Len(t, results, 1)
	assert.Equal(t, 0.0, results[0].Combined)
}

func TestRank_WeightedIncreasingWeightNeverDecreasesScore(t *testing.T) {
	sources := ranker.Sources{
		KeywordMatches: func(text string) map[string]bool { return map[string]bool{"a": true} },
		VectorScores: func(vector []float64, text string) map[string]float64 {
			return map[string]float64{"a": 0.5}
		},
	}

	low := ranker.Rank(ranker.HybridQuery{
		Text: "x", Method: ranker.Weighted, Weights: ranker.Weights{Keyword: 1, Vector: 1},
	}, sources)
	high := ranker.Rank(ranker.HybridQuery{
		Text: "x", Method: ranker.Weighted, Weights: ranker.Weights{Keyword: 3, Vector: 1},
	}, sources)

	require.Len(t, low, 1)
	require.Len(t, high, 1)
	assert.GreaterOrEqual(t, high[0].Combined, low[0].Combined)
}

func TestRank_LimitTruncates(t *testing.T) {
	sources := ranker.Sources{
		KeywordMatches: func(text string) map[string]bool {
			return map[string]bool{"a": true, "b": true, "c": true}
		},
	}
	q := ranker.HybridQuery{Text: "x", Method: ranker.Sum, Limit: 2}

	results := ranker.Rank(q, sources)
	assert.Len(t, results, 2)
}
