package engramdb

import (
	"context"
	"time"

	"github.com/scrypster/engramdb/internal/storage"
	"github.com/scrypster/engramdb/pkg/types"
)

// CreateEngram constructs a new engram, persists it, and updates every
// derived index (relationship index is untouched; engrams have no
// relationships at creation time).
func (db *DB) CreateEngram(ctx context.Context, content, source string, confidence float64) (*types.Engram, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	e := types.NewEngram(content, source, confidence)
	if err := db.store.PutEngram(ctx, e); err != nil {
		return nil, err
	}
	db.indexEngram(e)
	if db.cfg.Features.EnableVectorSearch {
		if err := db.embedAndIndex(ctx, e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// GetEngram returns the engram stored under id, or (nil, false, nil) if
// absent.
func (db *DB) GetEngram(ctx context.Context, id string) (*types.Engram, bool, error) {
	return db.store.GetEngram(ctx, id)
}

// UpdateEngram persists e's current field values and re-derives every
// index entry that depends on a field that may have changed.
func (db *DB) UpdateEngram(ctx context.Context, e *types.Engram) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	old, found, err := db.store.GetEngram(ctx, e.ID)
	if err != nil {
		return err
	}
	if !found {
		return storage.ErrNotFound
	}

	if err := db.store.PutEngram(ctx, e); err != nil {
		return err
	}

	db.deindexEngram(old)
	db.indexEngram(e)

	if db.cfg.Features.EnableVectorSearch && old.Content != e.Content {
		if err := db.embedAndIndex(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// DeleteEngram removes the engram and, cascading in the same store batch,
// every connection touching it, then updates every derived index.
func (db *DB) DeleteEngram(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	e, found, err := db.store.GetEngram(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return storage.ErrNotFound
	}
	return db.deleteEngramLocked(ctx, e)
}

// deleteEngramLocked removes e, assuming db.mu is already held and e was
// already confirmed present.
func (db *DB) deleteEngramLocked(ctx context.Context, e *types.Engram) error {
	connIDs, err := db.store.FindConnectionsForEngram(ctx, e.ID)
	if err != nil {
		return err
	}
	conns := make([]*types.Connection, 0, len(connIDs))
	for _, cid := range connIDs {
		c, found, err := db.store.GetConnection(ctx, cid)
		if err != nil {
			return err
		}
		if found {
			conns = append(conns, c)
		}
	}

	if err := db.store.DeleteEngram(ctx, e.ID); err != nil {
		return err
	}

	db.deindexEngram(e)
	db.vectors.Remove(e.ID)
	for _, c := range conns {
		db.rel.Remove(c.ID)
	}
	return nil
}

// ListEngrams returns up to pageSize engrams ordered by ascending id,
// starting after pageToken ("" selects the first page). It returns the
// token identifying the next page, or "" once no further pages remain.
func (db *DB) ListEngrams(ctx context.Context, pageSize int, pageToken string) ([]*types.Engram, string, error) {
	ids, err := db.store.ListEngramIDs(ctx)
	if err != nil {
		return nil, "", err
	}
	page, next := paginate(ids, pageSize, pageToken)

	engrams := make([]*types.Engram, 0, len(page))
	for _, id := range page {
		e, found, err := db.store.GetEngram(ctx, id)
		if err != nil {
			return nil, "", err
		}
		if found {
			engrams = append(engrams, e)
		}
	}
	return engrams, next, nil
}

// TopImportant returns the k engram ids with the highest importance score.
func (db *DB) TopImportant(k int) []string {
	return db.importance.Top(k)
}

// Sweep reclaims every engram whose TTL has elapsed as of now, cascading
// to their connections, and returns the ids it removed (spec §3, "reclaimed
// by a forgetting sweep when expired").
func (db *DB) Sweep(ctx context.Context, now time.Time) ([]string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	ids, err := db.store.ListEngramIDs(ctx)
	if err != nil {
		return nil, err
	}

	var expired []*types.Engram
	for _, id := range ids {
		e, found, err := db.store.GetEngram(ctx, id)
		if err != nil {
			return nil, err
		}
		if found && e.IsExpiredAt(now) {
			expired = append(expired, e)
		}
	}

	removed := make([]string, 0, len(expired))
	for _, e := range expired {
		if err := db.deleteEngramLocked(ctx, e); err != nil {
			return removed, err
		}
		removed = append(removed, e.ID)
	}
	return removed, nil
}
