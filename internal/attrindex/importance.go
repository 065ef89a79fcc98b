package attrindex

import "sort"

// ImportanceIndex keeps engram ids ranked by importance descending,
// supporting a "k most important" query without a full sort on every
// call (spec §4.D).
type ImportanceIndex struct {
	importance map[string]float64
	dirty      bool
	ordered    []string
}

// NewImportanceIndex returns an empty ImportanceIndex.
func NewImportanceIndex() *ImportanceIndex {
	return &ImportanceIndex{importance: make(map[string]float64)}
}

// Set records engramID's importance, replacing any prior value.
func (i *ImportanceIndex) Set(engramID string, importance float64) {
	i.importance[engramID] = importance
	i.dirty = true
}

// Remove drops engramID from the index.
func (i *ImportanceIndex) Remove(engramID string) {
	delete(i.importance, engramID)
	i.dirty = true
}

func (i *ImportanceIndex) resort() {
	if !i.dirty {
		return
	}
	ordered := make([]string, 0, len(i.importance))
	for id := range i.importance {
		ordered = append(ordered, id)
	}
	sort.Slice(ordered, func(a, b int) bool {
		ia, ib := i.importance[ordered[a]], i.importance[ordered[b]]
		if ia != ib {
			return ia > ib
		}
		return ordered[a] < ordered[b]
	})
	i.ordered = ordered
	i.dirty = false
}

// Top returns the k engram ids with the highest importance, descending.
// Ties break by id for determinism. If k exceeds the index size, every
// known id is returned.
func (i *ImportanceIndex) Top(k int) []string {
	i.resort()
	if k > len(i.ordered) {
		k = len(i.ordered)
	}
	if k <= 0 {
		return nil
	}
	out := make([]string, k)
	copy(out, i.ordered[:k])
	return out
}
