// Package queryengine implements the read-side query surface over the
// durable store and its derived indexes: filtered engram scans,
// relationship queries anchored at an engram, and bounded connectivity
// traversal (spec.md §4.G).
package queryengine

import (
	"context"
	"sort"

	"github.com/scrypster/engramdb/internal/attrindex"
	"github.com/scrypster/engramdb/internal/storage"
	"github.com/scrypster/engramdb/pkg/types"
)

// AttributeIndexes bundles the attribute indexes an EngramQuery may
// consult. A nil index is treated as "this predicate matches nothing".
type AttributeIndexes struct {
	Source     *attrindex.SourceIndex
	Confidence *attrindex.ConfidenceIndex
	Metadata   *attrindex.MetadataIndex
	Text       *attrindex.TextIndex
}

// EngramQuery bundles the optional predicates spec.md §4.G describes.
// Zero-value fields mean "no constraint on this predicate".
type EngramQuery struct {
	Text             string
	Source           string
	MinConfidence    float64
	HasMinConfidence bool
	MetadataKey      string
	MetadataValue    string
	ExactMatch       bool // when true, MetadataKey+MetadataValue must both match; otherwise MetadataKey alone suffices
	Limit            int
}

// Engine executes queries against a store and its attribute/relationship
// indexes.
type Engine struct {
	store   *storage.Store
	attrs   AttributeIndexes
	relates Relationships
}

// New returns an Engine bound to store and its derived indexes.
func New(store *storage.Store, attrs AttributeIndexes, relates Relationships) *Engine {
	return &Engine{store: store, attrs: attrs, relates: relates}
}

// Engrams executes q and returns the matching engrams, sorted by
// confidence descending and truncated to q.Limit (0 meaning unlimited).
func (e *Engine) Engrams(ctx context.Context, q EngramQuery) ([]*types.Engram, error) {
	candidateSets := make([]map[string]bool, 0, 4)

	if q.Text != "" {
		if e.attrs.Text == nil {
			return nil, nil
		}
		candidateSets = append(candidateSets, e.attrs.Text.Search(q.Text))
	}
	if q.Source != "" {
		if e.attrs.Source == nil {
			return nil, nil
		}
		candidateSets = append(candidateSets, e.attrs.Source.Get(q.Source))
	}
	if q.HasMinConfidence {
		if e.attrs.Confidence == nil {
			return nil, nil
		}
		candidateSets = append(candidateSets, e.attrs.Confidence.AtLeast(q.MinConfidence))
	}
	if q.MetadataKey != "" {
		if e.attrs.Metadata == nil {
			return nil, nil
		}
		if q.ExactMatch {
			candidateSets = append(candidateSets, e.attrs.Metadata.Equals(q.MetadataKey, q.MetadataValue))
		} else {
			candidateSets = append(candidateSets, e.attrs.Metadata.HasKey(q.MetadataKey))
		}
	}

	var ids map[string]bool
	if len(candidateSets) == 0 {
		all, err := e.store.ListEngramIDs(ctx)
		if err != nil {
			return nil, err
		}
		ids = make(map[string]bool, len(all))
		for _, id := range all {
			ids[id] = true
		}
	} else {
		ids = intersect(candidateSets)
	}

	engrams := make([]*types.Engram, 0, len(ids))
	for id := range ids {
		eng, found, err := e.store.GetEngram(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			engrams = append(engrams, eng)
		}
	}

	sort.Slice(engrams, func(a, b int) bool {
		if engrams[a].Confidence != engrams[b].Confidence {
			return engrams[a].Confidence > engrams[b].Confidence
		}
		return engrams[a].ID < engrams[b].ID
	})

	if q.Limit > 0 && len(engrams) > q.Limit {
		engrams = engrams[:q.Limit]
	}
	return engrams, nil
}

func intersect(sets []map[string]bool) map[string]bool {
	sort.Slice(sets, func(a, b int) bool { return len(sets[a]) < len(sets[b]) })

	result := make(map[string]bool, len(sets[0]))
	for id := range sets[0] {
		result[id] = true
	}
	for _, set := range sets[1:] {
		for id := range result {
			if !set[id] {
				delete(result, id)
			}
		}
	}
	return result
}
