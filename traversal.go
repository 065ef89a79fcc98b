package engramdb

import (
	"context"

	"github.com/scrypster/engramdb/internal/queryengine"
)

// FindPaths enumerates bounded simple paths from src to tgt over the
// relationship index (spec §4.C).
func (db *DB) FindPaths(ctx context.Context, src, tgt string, maxDepth int) ([][]string, error) {
	return db.rel.FindPaths(ctx, src, tgt, maxDepth)
}

// FindConnected performs a bounded DFS traversal from seed, optionally
// filtered by relationship type, returning every visited engram and
// traversed connection (spec §4.G).
func (db *DB) FindConnected(seed string, maxDepth int, relationshipType string) queryengine.TraversalResult {
	return db.query.FindConnected(seed, maxDepth, relationshipType)
}

// Relationships executes a relationship query anchored at an engram id:
// outgoing, incoming, both, by-type, or a path search to a target
// (spec §4.G).
func (db *DB) Relationships(ctx context.Context, q queryengine.RelationshipQuery) ([]string, []queryengine.PathResult, error) {
	return db.query.Relationships(ctx, q)
}
