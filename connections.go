package engramdb

import (
	"context"

	"github.com/scrypster/engramdb/internal/storage"
	"github.com/scrypster/engramdb/pkg/types"
)

// CreateConnection constructs a new typed, weighted edge between two
// existing engrams, persists it (validating both endpoints), and adds it
// to the relationship index.
func (db *DB) CreateConnection(ctx context.Context, sourceID, targetID, relationshipType string, weight float64) (*types.Connection, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	c := types.NewConnection(sourceID, targetID, relationshipType, weight)
	if err := db.store.PutConnection(ctx, c); err != nil {
		return nil, err
	}
	db.rel.Add(c)
	return c, nil
}

// GetConnection returns the connection stored under id, or (nil, false,
// nil) if absent.
func (db *DB) GetConnection(ctx context.Context, id string) (*types.Connection, bool, error) {
	return db.store.GetConnection(ctx, id)
}

// UpdateConnection persists c's current field values and refreshes its
// relationship-index entry.
func (db *DB) UpdateConnection(ctx context.Context, c *types.Connection) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, found, err := db.store.GetConnection(ctx, c.ID)
	if err != nil {
		return err
	}
	if !found {
		return storage.ErrNotFound
	}

	if err := db.store.PutConnection(ctx, c); err != nil {
		return err
	}
	db.rel.Add(c)
	return nil
}

// DeleteConnection removes the connection and its relationship-index
// entry.
func (db *DB) DeleteConnection(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.store.DeleteConnection(ctx, id); err != nil {
		return err
	}
	db.rel.Remove(id)
	return nil
}

// ListConnections returns up to pageSize connections ordered by ascending
// id, starting after pageToken.
func (db *DB) ListConnections(ctx context.Context, pageSize int, pageToken string) ([]*types.Connection, string, error) {
	ids, err := db.store.ListConnectionIDs(ctx)
	if err != nil {
		return nil, "", err
	}
	page, next := paginate(ids, pageSize, pageToken)

	conns := make([]*types.Connection, 0, len(page))
	for _, id := range page {
		c, found, err := db.store.GetConnection(ctx, id)
		if err != nil {
			return nil, "", err
		}
		if found {
			conns = append(conns, c)
		}
	}
	return conns, next, nil
}
