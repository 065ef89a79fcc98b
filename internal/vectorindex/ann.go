package vectorindex

import (
	"sort"
	"sync"

	"github.com/scrypster/engramdb/internal/embedding"
)

// ANNConfig tunes the approximate index's neighbor graph, matching the
// knobs spec.md §9 asks an approximate structure to expose.
type ANNConfig struct {
	// M is the maximum number of graph neighbors maintained per node.
	M int
	// EfSearch is the candidate list size explored during search; larger
	// values trade latency for recall.
	EfSearch int
}

// DefaultANNConfig returns reasonable defaults for a single-node index.
func DefaultANNConfig() ANNConfig {
	return ANNConfig{M: 16, EfSearch: 64}
}

// ANNIndex is an approximate nearest-neighbor index over a single-layer
// navigable small-world graph: each node links to its M closest known
// neighbors at insertion time, and search is a greedy best-first walk
// seeded from an arbitrary entry point with a bounded candidate frontier.
// It trades the exact index's guaranteed recall for sub-linear search
// cost on large collections.
type ANNIndex struct {
	mu         sync.RWMutex
	dimensions int
	config     ANNConfig
	vectors    map[string][]float64
	edges      map[string]map[string]bool
	entryPoint string
}

// NewANNIndex returns an empty ANNIndex fixed to dimensions.
func NewANNIndex(dimensions int, config ANNConfig) *ANNIndex {
	if config.M <= 0 {
		config.M = DefaultANNConfig().M
	}
	if config.EfSearch <= 0 {
		config.EfSearch = DefaultANNConfig().EfSearch
	}
	return &ANNIndex{
		dimensions: dimensions,
		config:     config,
		vectors:    make(map[string][]float64),
		edges:      make(map[string]map[string]bool),
	}
}

// Dimensions returns the index's fixed dimensionality.
func (idx *ANNIndex) Dimensions() int {
	return idx.dimensions
}

// Len returns the number of stored embeddings.
func (idx *ANNIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.vectors)
}

func (idx *ANNIndex) similarity(a, b []float64) float64 {
	score, _ := embedding.CosineSimilarity(a, b)
	return score
}

// Add inserts e under id, connecting it to its M nearest existing nodes
// and backfilling reciprocal edges, pruning each affected node back down
// to its M best neighbors.
func (idx *ANNIndex) Add(id string, e embedding.Embedding) error {
	if e.Dimensions != idx.dimensions {
		return ErrDimensionMismatch
	}
	vector := make([]float64, len(e.Vector))
	copy(vector, e.Vector)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.vectors[id] = vector
	idx.edges[id] = make(map[string]bool)

	if idx.entryPoint == "" {
		idx.entryPoint = id
		return nil
	}

	type scored struct {
		id    string
		score float64
	}
	candidates := make([]scored, 0, len(idx.vectors)-1)
	for other, vec := range idx.vectors {
		if other == id {
			continue
		}
		candidates = append(candidates, scored{other, idx.similarity(vector, vec)})
	}
	sort.Slice(candidates, func(a, b int) bool { return candidates[a].score > candidates[b].score })

	limit := idx.config.M
	if limit > len(candidates) {
		limit = len(candidates)
	}
	for i := 0; i < limit; i++ {
		neighbor := candidates[i].id
		idx.edges[id][neighbor] = true
		idx.edges[neighbor][id] = true
		idx.pruneNeighbors(neighbor)
	}
	return nil
}

// pruneNeighbors keeps only node's M closest neighbors by similarity,
// dropping the rest (and their reciprocal edge back to node).
func (idx *ANNIndex) pruneNeighbors(node string) {
	neighbors := idx.edges[node]
	if len(neighbors) <= idx.config.M {
		return
	}

	type scored struct {
		id    string
		score float64
	}
	ranked := make([]scored, 0, len(neighbors))
	for n := range neighbors {
		ranked = append(ranked, scored{n, idx.similarity(idx.vectors[node], idx.vectors[n])})
	}
	sort.Slice(ranked, func(a, b int) bool { return ranked[a].score > ranked[b].score })

	for _, r := range ranked[idx.config.M:] {
		delete(idx.edges[node], r.id)
		delete(idx.edges[r.id], node)
	}
}

// Remove drops id and its edges from the graph, reporting whether it was
// present. If id was the entry point, an arbitrary remaining node (if
// any) is promoted.
func (idx *ANNIndex) Remove(id string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, ok := idx.vectors[id]; !ok {
		return false
	}
	for neighbor := range idx.edges[id] {
		delete(idx.edges[neighbor], id)
	}
	delete(idx.edges, id)
	delete(idx.vectors, id)

	if idx.entryPoint == id {
		idx.entryPoint = ""
		for other := range idx.vectors {
			idx.entryPoint = other
			break
		}
	}
	return true
}

// Search performs a greedy best-first walk bounded by EfSearch and
// returns up to k results sorted descending by cosine similarity. This
// is an approximate search: recall degrades as the graph grows relative
// to EfSearch.
func (idx *ANNIndex) Search(query []float64, k int) ([]Result, error) {
	if len(query) != idx.dimensions {
		return nil, ErrDimensionMismatch
	}
	if k <= 0 {
		return []Result{}, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.entryPoint == "" {
		return []Result{}, nil
	}

	visited := map[string]bool{idx.entryPoint: true}
	frontier := []string{idx.entryPoint}
	best := map[string]float64{idx.entryPoint: idx.similarity(query, idx.vectors[idx.entryPoint])}

	for len(frontier) > 0 {
		var next []string
		for _, node := range frontier {
			for neighbor := range idx.edges[node] {
				if visited[neighbor] {
					continue
				}
				visited[neighbor] = true
				best[neighbor] = idx.similarity(query, idx.vectors[neighbor])
				next = append(next, neighbor)
			}
		}

		sort.Slice(next, func(a, b int) bool { return best[next[a]] > best[next[b]] })
		if len(next) > idx.config.EfSearch {
			next = next[:idx.config.EfSearch]
		}
		frontier = next
	}

	results := make([]Result, 0, len(best))
	for id, score := range best {
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
// nearest neighbors, optionally excluding id itself from the results.
func (idx *ANNIndex) SearchByID(id string, k int, excludeSelf bool) ([]Result, error) {
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
