package engramdb

import (
	"context"

	"github.com/scrypster/engramdb/internal/snapshot"
)

// Export serializes the store into a versioned envelope. When
// collectionID is non-empty, the export is scoped to that collection's
// membership: only its engrams and the connections whose endpoints both
// lie within it (spec §4.I).
func (db *DB) Export(ctx context.Context, collectionID string) (*snapshot.Envelope, error) {
	if collectionID != "" {
		return snapshot.ExportCollection(ctx, db.store, collectionID)
	}
	return snapshot.ExportStore(ctx, db.store)
}

// Import installs every entity in env as a single atomic batch and then
// rebuilds every derived index from the store's new contents.
// snapshot.Import only touches the primary families; it never updates the
// in-memory relationship, attribute, or vector indexes, so a full rebuild
// is required after every import to restore them to a consistent state.
func (db *DB) Import(ctx context.Context, env *snapshot.Envelope) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := snapshot.Import(ctx, db.store, env); err != nil {
		return err
	}
	db.resetIndexes(db.vectors.Dimensions())
	return db.rebuildIndexes(ctx)
}
