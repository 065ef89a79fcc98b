package snapshot

import (
	"context"

	"github.com/scrypster/engramdb/internal/storage"
)

// ExportStore serializes every family in store into a single Envelope.
func ExportStore(ctx context.Context, store *storage.Store) (*Envelope, error) {
	env := newEnvelope()

	engramIDs, err := store.ListEngramIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range engramIDs {
		e, found, err := store.GetEngram(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			env.Engrams[id] = e
		}
	}

	connIDs, err := store.ListConnectionIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range connIDs {
		c, found, err := store.GetConnection(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			env.Connections[id] = c
		}
	}

	collIDs, err := store.ListCollectionIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range collIDs {
		c, found, err := store.GetCollection(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			env.Collections[id] = c
		}
	}

	agentIDs, err := store.ListAgentIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range agentIDs {
		a, found, err := store.GetAgent(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			env.Agents[id] = a
		}
	}

	ctxIDs, err := store.ListContextIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range ctxIDs {
		c, found, err := store.GetContext(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			env.Contexts[id] = c
		}
	}

	return env, nil
}

// ExportCollection serializes collectionID, the engrams it contains, and
// every connection whose endpoints both lie in the collection.
func ExportCollection(ctx context.Context, store *storage.Store, collectionID string) (*Envelope, error) {
	coll, found, err := store.GetCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, storage.ErrNotFound
	}

	env := newEnvelope()
	env.Collections[coll.ID] = coll

	for engramID := range coll.EngramIDs {
		e, found, err := store.GetEngram(ctx, engramID)
		if err != nil {
			return nil, err
		}
		if found {
			env.Engrams[engramID] = e
		}
	}

	connIDs, err := store.ListConnectionIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range connIDs {
		c, found, err := store.GetConnection(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		if coll.EngramIDs[c.SourceID] && coll.EngramIDs[c.TargetID] {
			env.Connections[id] = c
		}
	}

	return env, nil
}
