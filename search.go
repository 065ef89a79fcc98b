package engramdb

import (
	"context"

	"github.com/scrypster/engramdb/internal/queryengine"
	"github.com/scrypster/engramdb/internal/ranker"
	"github.com/scrypster/engramdb/internal/vectorindex"
	"github.com/scrypster/engramdb/pkg/types"
)

// SearchText executes an attribute-indexed engram query: text, source,
// minimum confidence, and metadata predicates intersected, materialized,
// sorted by confidence descending, and truncated to q.Limit (spec §4.G).
func (db *DB) SearchText(ctx context.Context, q queryengine.EngramQuery) ([]*types.Engram, error) {
	return db.query.Engrams(ctx, q)
}

// SearchVector returns the k engrams whose embedding is most similar to
// query by cosine similarity, sorted descending (spec §4.F).
func (db *DB) SearchVector(query []float64, k int) ([]vectorindex.Result, error) {
	return db.vectors.Search(query, k)
}

// Embed computes text's embedding vector through the configured embedding
// pipeline, including any active dimensionality reduction, so the result
// lands in the same space as vectors held in the vector index — for
// callers that want to build a SearchVector query from text themselves.
func (db *DB) Embed(ctx context.Context, text string) ([]float64, error) {
	emb, err := db.embedder.EmbedReduced(ctx, text)
	if err != nil {
		return nil, err
	}
	return emb.Vector, nil
}

// SearchHybrid fuses keyword, vector, and metadata component scores under
// q's combination method, applying source and confidence as hard filters
// alongside any metadata filter (spec §4.H).
func (db *DB) SearchHybrid(ctx context.Context, q ranker.HybridQuery) []ranker.Candidate {
	sources := ranker.Sources{
		KeywordMatches: func(text string) map[string]bool {
			return db.text.Search(text)
		},
		VectorScores: func(vector []float64, text string) map[string]float64 {
			return db.vectorScores(ctx, vector, text)
		},
		MetadataMatches: func(key, value string) map[string]bool {
			return db.metadata.Equals(key, value)
		},
		SourceMatches: func(source string) map[string]bool {
			return db.source.Get(source)
		},
		ConfidenceAtLeast: func(min float64) map[string]bool {
			return db.confidence.AtLeast(min)
		},
	}
	return ranker.Rank(q, sources)
}

// vectorScores resolves query, or, when empty, an embedding of text, and
// returns every indexed engram's cosine similarity to it.
func (db *DB) vectorScores(ctx context.Context, query []float64, text string) map[string]float64 {
	if len(query) == 0 {
		if text == "" {
			return nil
		}
		emb, err := db.embedder.EmbedReduced(ctx, text)
		if err != nil {
			return nil
		}
		query = emb.Vector
	}

	results, err := db.vectors.Search(query, db.vectors.Len())
	if err != nil {
		return nil
	}
	scores := make(map[string]float64, len(results))
	for _, r := range results {
		scores[r.ID] = r.Score
	}
	return scores
}
