// Package ranker implements the hybrid query: fusing keyword, vector,
// and metadata component scores under a configurable combination method
// (spec.md §4.H).
package ranker

import "sort"

// CombinationMethod selects how per-component scores are fused into one
// final score.
type CombinationMethod int

const (
	Sum CombinationMethod = iota
	Max
	Weighted
)

// Weights gives each component's weight under the Weighted combination
// method. Unset weights default to 0.
type Weights struct {
	Keyword  float64
	Vector   float64
	Metadata float64
}

// HybridQuery bundles the composite query spec.md §4.H describes.
type HybridQuery struct {
	Text             string            // drives both keyword and vector components
	Vector           []float64         // explicit vector query; takes priority for the vector component when set
	MetadataKey      string            // metadata hard filter and component signal
	MetadataValue    string
	Source           string
	MinConfidence    float64
	HasMinConfidence bool
	Limit            int
	Method           CombinationMethod
	Weights          Weights
}

// Candidate is one engram surviving the hard filters, with its
// per-component scores and the combined score the ranker computed.
type Candidate struct {
	EngramID   string
	Keyword    float64
	HasKeyword bool
	Vector     float64
	HasVector  bool
	Metadata   float64
	HasMeta    bool
	Combined   float64
}

// Sources bundles the signal providers a Rank call consults: a keyword
// token-match lookup, a vector-similarity lookup, and a metadata
// exact-match lookup. Each returns nil/empty when the query does not
// activate that component.
type Sources struct {
	KeywordMatches  func(text string) map[string]bool
	VectorScores    func(vector []float64, text string) map[string]float64
	MetadataMatches func(key, value string) map[string]bool
	SourceMatches   func(source string) map[string]bool
	ConfidenceAtLeast func(min float64) map[string]bool
}

// Rank executes q against sources and returns surviving candidates
// sorted descending by combined score with a stable id tie-break,
// truncated to q.Limit (0 meaning unlimited).
func Rank(q HybridQuery, sources Sources) []Candidate {
	scores := make(map[string]*Candidate)

	if q.Text != "" && sources.KeywordMatches != nil {
		for id := range sources.KeywordMatches(q.Text) {
			c := candidateFor(scores, id)
			c.Keyword = 1.0
			c.HasKeyword = true
		}
	}

	if (len(q.Vector) > 0 || q.Text != "") && sources.VectorScores != nil {
		for id, score := range sources.VectorScores(q.Vector, q.Text) {
			c := candidateFor(scores, id)
			c.Vector = score
			c.HasVector = true
		}
	}

	var metadataSet map[string]bool
	if q.MetadataKey != "" && sources.MetadataMatches != nil {
		metadataSet = sources.MetadataMatches(q.MetadataKey, q.MetadataValue)
		for id := range metadataSet {
			c := candidateFor(scores, id)
			c.Metadata = 1.0
			c.HasMeta = true
		}
	}

	candidates := make([]*Candidate, 0, len(scores))
	for _, c := range scores {
		candidates = append(candidates, c)
	}

	if metadataSet != nil {
		candidates = restrictTo(candidates, metadataSet)
	}
	if q.Source != "" && sources.SourceMatches != nil {
		candidates = restrictTo(candidates, sources.SourceMatches(q.Source))
	}
	if q.HasMinConfidence && sources.ConfidenceAtLeast != nil {
		candidates = restrictTo(candidates, sources.ConfidenceAtLeast(q.MinConfidence))
	}

	for _, c := range candidates {
		c.Combined = combine(*c, q.Method, q.Weights)
	}

	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].Combined != candidates[b].Combined {
			return candidates[a].Combined > candidates[b].Combined
		}
		return candidates[a].EngramID < candidates[b].EngramID
	})

	if q.Limit > 0 && len(candidates) > q.Limit {
		candidates = candidates[:q.Limit]
	}

	out := make([]Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = *c
	}
	return out
}

func candidateFor(scores map[string]*Candidate, id string) *Candidate {
	c, ok := scores[id]
	if !ok {
		c = &Candidate{EngramID: id}
		scores[id] = c
	}
	return c
}

func restrictTo(candidates []*Candidate, allowed map[string]bool) []*Candidate {
	out := candidates[:0:0]
	for _, c := range candidates {
		if allowed[c.EngramID] {
			out = append(out, c)
		}
	}
	return out
}

func combine(c Candidate, method CombinationMethod, w Weights) float64 {
	switch method {
	case Max:
		max := 0.0
		found := false
		for _, v := range presentScores(c) {
			if !found || v > max {
				max = v
				found = true
			}
		}
		return max
	case Weighted:
		var weightedSum float64
		if c.HasKeyword {
			weightedSum += w.Keyword * c.Keyword
		}
		if c.HasVector {
			weightedSum += w.Vector * c.Vector
		}
		if c.HasMeta {
			weightedSum += w.Metadata * c.Metadata
		}
		weightTotal := w.Keyword + w.Vector + w.Metadata
		if weightTotal == 0 {
			return 0
		}
		return weightedSum / weightTotal
	default: // Sum
		var sum float64
		for _, v := range presentScores(c) {
			sum += v
		}
		return sum
	}
}

func presentScores(c Candidate) []float64 {
	var out []float64
	if c.HasKeyword {
		out = append(out, c.Keyword)
	}
	if c.HasVector {
		out = append(out, c.Vector)
	}
	if c.HasMeta {
		out = append(out, c.Metadata)
	}
	return out
}
