package engramdb

import (
	"context"

	"github.com/scrypster/engramdb/pkg/types"
)

// CreateContext constructs a new, empty named context and persists it.
func (db *DB) CreateContext(ctx context.Context, name string) (*types.Context, error) {
	c := types.NewContext(name)
	if err := db.store.PutContext(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetContext returns the context stored under id, or (nil, false, nil) if
// absent.
func (db *DB) GetContext(ctx context.Context, id string) (*types.Context, bool, error) {
	return db.store.GetContext(ctx, id)
}

// UpdateContext persists c's current field values, including its engram
// and agent membership sets.
func (db *DB) UpdateContext(ctx context.Context, c *types.Context) error {
	return db.store.PutContext(ctx, c)
}

// DeleteContext removes the context.
func (db *DB) DeleteContext(ctx context.Context, id string) error {
	return db.store.DeleteContext(ctx, id)
}

// ListContexts returns up to pageSize contexts ordered by ascending id,
// starting after pageToken.
func (db *DB) ListContexts(ctx context.Context, pageSize int, pageToken string) ([]*types.Context, string, error) {
	ids, err := db.store.ListContextIDs(ctx)
	if err != nil {
		return nil, "", err
	}
	page, next := paginate(ids, pageSize, pageToken)

	ctxs := make([]*types.Context, 0, len(page))
	for _, id := range page {
		c, found, err := db.store.GetContext(ctx, id)
		if err != nil {
			return nil, "", err
		}
		if found {
			ctxs = append(ctxs, c)
		}
	}
	return ctxs, next, nil
}
