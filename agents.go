package engramdb

import (
	"context"

	"github.com/scrypster/engramdb/pkg/types"
)

// CreateAgent constructs a new agent with no capabilities or accessible
// collections and persists it.
func (db *DB) CreateAgent(ctx context.Context, name string) (*types.Agent, error) {
	a := types.NewAgent(name)
	if err := db.store.PutAgent(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetAgent returns the agent stored under id, or (nil, false, nil) if
// absent.
func (db *DB) GetAgent(ctx context.Context, id string) (*types.Agent, bool, error) {
	return db.store.GetAgent(ctx, id)
}

// UpdateAgent persists a's current field values, including its capability
// and access sets.
func (db *DB) UpdateAgent(ctx context.Context, a *types.Agent) error {
	return db.store.PutAgent(ctx, a)
}

// DeleteAgent removes the agent.
func (db *DB) DeleteAgent(ctx context.Context, id string) error {
	return db.store.DeleteAgent(ctx, id)
}

// ListAgents returns up to pageSize agents ordered by ascending id,
// starting after pageToken.
func (db *DB) ListAgents(ctx context.Context, pageSize int, pageToken string) ([]*types.Agent, string, error) {
	ids, err := db.store.ListAgentIDs(ctx)
	if err != nil {
		return nil, "", err
	}
	page, next := paginate(ids, pageSize, pageToken)

	agents := make([]*types.Agent, 0, len(page))
	for _, id := range page {
		a, found, err := db.store.GetAgent(ctx, id)
		if err != nil {
			return nil, "", err
		}
		if found {
			agents = append(agents, a)
		}
	}
	return agents, next, nil
}
