package vectorindex

import (
	"github.com/scrypster/engramdb/internal/embedding"
)

// searcher is the common contract ExactIndex and ANNIndex satisfy.
type searcher interface {
	Dimensions() int
	Len() int
	Add(id string, e embedding.Embedding) error
	Remove(id string) bool
	Search(query []float64, k int) ([]Result, error)
	SearchByID(id string, k int, excludeSelf bool) ([]Result, error)
}

// SizeThreshold is the entry count above which Index switches from exact
// linear scan to the approximate graph structure, matching spec.md §9's
// "MAY use linear scan for small indexes" guidance.
const SizeThreshold = 2000

// Index is the vector index spec.md §4.F describes: exact cosine-
// similarity search by default, falling over to an approximate
// single-layer navigable small-world graph once the collection grows past
// the size threshold (SizeThreshold unless NewIndexWithConfig sets another).
// Both structures are maintained in lockstep so the switch is invisible
// to callers; this costs the graph's maintenance overhead even while
// small, traded for an instant, consistent cutover.
type Index struct {
	dimension int
	exact     *ExactIndex
	ann       *ANNIndex
	threshold int
}

// NewIndex returns an Index fixed to dimensions, using the default ANN
// configuration and SizeThreshold.
func NewIndex(dimensions int) *Index {
	return NewIndexWithConfig(dimensions, DefaultANNConfig(), SizeThreshold)
}

// NewIndexWithConfig returns an Index fixed to dimensions with explicit
// ANN tuning and size threshold.
func NewIndexWithConfig(dimensions int, annConfig ANNConfig, threshold int) *Index {
	return &Index{
		dimension: dimensions,
		exact:     NewExactIndex(dimensions),
		ann:       NewANNIndex(dimensions, annConfig),
		threshold: threshold,
	}
}

// Dimensions returns the index's fixed dimensionality.
func (idx *Index) Dimensions() int { return idx.dimension }

// Len returns the number of stored embeddings.
func (idx *Index) Len() int { return idx.exact.Len() }

func (idx *Index) active() searcher {
	if idx.exact.Len() > idx.threshold {
		return idx.ann
	}
	return idx.exact
}

// Add stores e under id in both underlying structures.
func (idx *Index) Add(id string, e embedding.Embedding) error {
	if err := idx.exact.Add(id, e); err != nil {
		return err
	}
	return idx.ann.Add(id, e)
}

// Remove drops id from both underlying structures, reporting whether it
// was present.
func (idx *Index) Remove(id string) bool {
	removedExact := idx.exact.Remove(id)
	idx.ann.Remove(id)
	return removedExact
}

// Search returns the k highest-similarity entries to query, using exact
// search up to the index's size threshold and the approximate graph above it.
func (idx *Index) Search(query []float64, k int) ([]Result, error) {
	return idx.active().Search(query, k)
}

// SearchByID resolves id's stored embedding and searches for its k
// nearest neighbors.
func (idx *Index) SearchByID(id string, k int, excludeSelf bool) ([]Result, error) {
	return idx.active().SearchByID(id, k, excludeSelf)
}
