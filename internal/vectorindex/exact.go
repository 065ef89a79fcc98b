package vectorindex

import (
	"sort"
	"sync"

	"github.com/scrypster/engramdb/internal/embedding"
)

// ExactIndex stores (id, embedding) pairs of a fixed dimension and
// answers search by a full linear scan, guaranteeing true top-k by
// cosine similarity (spec.md §8 invariant 6). It is guarded by a
// reader-writer lock: concurrent searches proceed together, Add/Remove
// take the index exclusively.
type ExactIndex struct {
	mu         sync.RWMutex
	dimensions int
	vectors    map[string][]float64
}

// NewExactIndex returns an empty ExactIndex fixed to dimensions.
func NewExactIndex(dimensions int) *ExactIndex {
	return &ExactIndex{dimensions: dimensions, vectors: make(map[string][]float64)}
}

// Dimensions returns the index's fixed dimensionality.
func (idx *ExactIndex) Dimensions() int {
	return idx.dimensions
}

// Len returns the number of stored embeddings.
func (idx *ExactIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.vectors)
}

// Add stores e under id, replacing any prior entry. It fails if e's
// dimension does not match the index.
func (idx *ExactIndex) Add(id string, e embedding.Embedding) error {
	if e.Dimensions != idx.dimensions {
		return ErrDimensionMismatch
	}
	vector := make([]float64, len(e.Vector))
	copy(vector, e.Vector)

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.vectors[id] = vector
	return nil
}

// Remove drops id from the index, reporting whether it was present.
func (idx *ExactIndex) Remove(id string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, ok := idx.vectors[id]; !ok {
		return false
	}
	delete(idx.vectors, id)
	return true
}

// Search returns the k entries with highest cosine similarity to query,
// sorted descending by score. It fails on dimension mismatch; k <= 0
// returns an empty, non-nil result; fewer than k results are returned
// when the index holds fewer entries.
func (idx *ExactIndex) Search(query []float64, k int) ([]Result, error) {
	if len(query) != idx.dimensions {
		return nil, ErrDimensionMismatch
	}
	if k <= 0 {
		return []Result{}, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	results := make([]Result, 0, len(idx.vectors))
	for id, vec := range idx.vectors {
		score, err := embedding.CosineSimilarity(query, vec)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{ID: id, Score: score})
	}

	sort.Slice(results, func(a, b int) bool {
		if results[a].Score != results[b].Score {
			return results[a].Score > results[b].Score
		}
		return results[a].ID < results[b].ID
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// SearchByID resolves id's stored embedding and searches for its k
// nearest neighbors. When excludeSelf is true, id itself is omitted from
// the results (requesting k+1 internally to compensate).
func (idx *ExactIndex) SearchByID(id string, k int, excludeSelf bool) ([]Result, error) {
	idx.mu.RLock()
	vector, ok := idx.vectors[id]
	idx.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	searchK := k
	if excludeSelf {
		searchK++
	}

	results, err := idx.Search(vector, searchK)
	if err != nil {
		return nil, err
	}

	if !excludeSelf {
		return results, nil
	}

	out := make([]Result, 0, k)
	for _, r := range results {
		if r.ID == id {
			continue
		}
		out = append(out, r)
		if len(out) == k {
			break
		}
	}
	return out, nil
}
