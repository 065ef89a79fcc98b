package engramdb

import (
	"context"

	"github.com/scrypster/engramdb/pkg/types"
)

// CreateCollection constructs a new, empty named collection and persists
// it.
func (db *DB) CreateCollection(ctx context.Context, name, description string) (*types.Collection, error) {
	c := types.NewCollection(name, description)
	if err := db.store.PutCollection(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCollection returns the collection stored under id, or (nil, false,
// nil) if absent.
func (db *DB) GetCollection(ctx context.Context, id string) (*types.Collection, bool, error) {
	return db.store.GetCollection(ctx, id)
}

// UpdateCollection persists coll's current field values, including its
// membership set.
func (db *DB) UpdateCollection(ctx context.Context, coll *types.Collection) error {
	return db.store.PutCollection(ctx, coll)
}

// DeleteCollection removes the collection. The engrams it referenced are
// untouched — a collection owns membership, not the engrams themselves.
func (db *DB) DeleteCollection(ctx context.Context, id string) error {
	return db.store.DeleteCollection(ctx, id)
}

// ListCollections returns up to pageSize collections ordered by ascending
// id, starting after pageToken.
func (db *DB) ListCollections(ctx context.Context, pageSize int, pageToken string) ([]*types.Collection, string, error) {
	ids, err := db.store.ListCollectionIDs(ctx)
	if err != nil {
		return nil, "", err
	}
	page, next := paginate(ids, pageSize, pageToken)

	colls := make([]*types.Collection, 0, len(page))
	for _, id := range page {
		c, found, err := db.store.GetCollection(ctx, id)
		if err != nil {
			return nil, "", err
		}
		if found {
			colls = append(colls, c)
		}
	}
	return colls, next, nil
}
