package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/scrypster/engramdb/pkg/types"
)

// PutEngram writes e as a single-operation batch.
func (s *Store) PutEngram(ctx context.Context, e *types.Engram) error {
	b := s.BeginBatch()
	if err := b.Put(FamilyEngram, e.ID, e); err != nil {
		return err
	}
	return b.Commit(ctx)
}

// GetEngram returns the engram stored under id, or (nil, false, nil) if
// absent.
func (s *Store) GetEngram(ctx context.Context, id string) (*types.Engram, bool, error) {
	var e types.Engram
	found, err := s.Get(ctx, FamilyEngram, id, &e)
	if err != nil || !found {
		return nil, found, err
	}
	return &e, true, nil
}

// ListEngramIDs returns every engram id in the store.
func (s *Store) ListEngramIDs(ctx context.Context) ([]string, error) {
	return s.List(ctx, FamilyEngram)
}

// DeleteEngram removes e and, in the same atomic batch, every connection
// with e as an endpoint (cascading delete, spec §3 and §8 invariant 2).
func (s *Store) DeleteEngram(ctx context.Context, id string) error {
	connIDs, err := s.FindConnectionsForEngram(ctx, id)
	if err != nil {
		return err
	}

	b := s.BeginBatch()

	otherEndpointRemovals := make(map[string][]string) // engramID -> connection ids to drop from its index
	for _, connID := range connIDs {
		var conn types.Connection
		found, err := s.Get(ctx, FamilyConnection, connID, &conn)
		if err != nil {
			return err
		}
		if !found {
			continue
		}
		if err := b.Delete(FamilyConnection, connID); err != nil {
			return err
		}
		other := conn.TargetID
		if other == id {
			other = conn.SourceID
		}
		if other != id {
			otherEndpointRemovals[other] = append(otherEndpointRemovals[other], connID)
		}
	}

	for engramID, removed := range otherEndpointRemovals {
		if err := s.queueIndexRemoval(ctx, b, engramID, removed); err != nil {
			return err
		}
	}

	if err := b.Delete(FamilyEngram, id); err != nil {
		return err
	}
	if err := b.Delete(FamilyMetadata, connIndexKey(id)); err != nil {
		return err
	}

	return b.Commit(ctx)
}

// Sweep collects and cascade-deletes every engram expired as of now
// (spec §3, "reclaimed by a forgetting sweep when expired"). Each expired
// engram is removed together with its connections in a batch of its own,
// so the sweep as a whole is not atomic: it stops at the first failed
// removal and the removals already committed stay in place. It returns
// the ids of the engrams it removed.
func (s *Store) Sweep(ctx context.Context, now time.Time) ([]string, error) {
	ids, err := s.ListEngramIDs(ctx)
	if err != nil {
		return nil, err
	}

	var expired []string
	for _, id := range ids {
		e, found, err := s.GetEngram(ctx, id)
		if err != nil || !found {
			continue
		}
		if e.IsExpiredAt(now) {
			expired = append(expired, id)
		}
	}

	for i, id := range expired {
		if err := s.DeleteEngram(ctx, id); err != nil {
			return expired[:i], err
		}
	}
	return expired, nil
}

// PutConnection writes c after verifying both endpoints refer to live
// engrams, maintaining the metadata-family acceleration index for both
// endpoints in the same atomic batch (spec §3 connection invariant, §9
// design notes).
func (s *Store) PutConnection(ctx context.Context, c *types.Connection) error {
	srcFound, err := s.Get(ctx, FamilyEngram, c.SourceID, nil)
	if err != nil {
		return err
	}
	tgtFound, err := s.Get(ctx, FamilyEngram, c.TargetID, nil)
	if err != nil {
		return err
	}
	if !srcFound || !tgtFound {
		return fmt.Errorf("%w: connection %s", ErrConnectionEndpointMissing, c.ID)
	}

	b := s.BeginBatch()
	if err := b.Put(FamilyConnection, c.ID, c); err != nil {
		return err
	}
	if err := s.queueIndexAddition(ctx, b, c.SourceID, c.ID); err != nil {
		return err
	}
	if c.TargetID != c.SourceID {
		if err := s.queueIndexAddition(ctx, b, c.TargetID, c.ID); err != nil {
			return err
		}
	}
	return b.Commit(ctx)
}

// GetConnection returns the connection stored under id, or (nil, false,
// nil) if absent.
func (s *Store) GetConnection(ctx context.Context, id string) (*types.Connection, bool, error) {
	var c types.Connection
	found, err := s.Get(ctx, FamilyConnection, id, &c)
	if err != nil || !found {
		return nil, found, err
	}
	return &c, true, nil
}

// ListConnectionIDs returns every connection id in the store.
func (s *Store) ListConnectionIDs(ctx context.Context) ([]string, error) {
	return s.List(ctx, FamilyConnection)
}

// DeleteConnection removes connection id and its acceleration-index
// entries from both endpoints.
func (s *Store) DeleteConnection(ctx context.Context, id string) error {
	var c types.Connection
	found, err := s.Get(ctx, FamilyConnection, id, &c)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: connection %s", ErrNotFound, id)
	}

	b := s.BeginBatch()
	if err := b.Delete(FamilyConnection, id); err != nil {
		return err
	}
	if err := s.queueIndexRemoval(ctx, b, c.SourceID, []string{id}); err != nil {
		return err
	}
	if c.TargetID != c.SourceID {
		if err := s.queueIndexRemoval(ctx, b, c.TargetID, []string{id}); err != nil {
			return err
		}
	}
	return b.Commit(ctx)
}

// queueIndexAddition adds connID to engramID's connection-index set and
// queues the resulting write on b.
func (s *Store) queueIndexAddition(ctx context.Context, b *Batch, engramID, connID string) error {
	var ids []string
	if _, err := s.Get(ctx, FamilyMetadata, connIndexKey(engramID), &ids); err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == connID {
			return nil
		}
	}
	ids = append(ids, connID)
	return b.Put(FamilyMetadata, connIndexKey(engramID), ids)
}

// queueIndexRemoval removes every id in removed from engramID's
// connection-index set and queues the resulting write (or delete, if the
// set becomes empty) on b.
func (s *Store) queueIndexRemoval(ctx context.Context, b *Batch, engramID string, removed []string) error {
	var ids []string
	if _, err := s.Get(ctx, FamilyMetadata, connIndexKey(engramID), &ids); err != nil {
		return err
	}
	removeSet := make(map[string]bool, len(removed))
	for _, r := range removed {
		removeSet[r] = true
	}
	kept := ids[:0:0]
	for _, id := range ids {
		if !removeSet[id] {
			kept = append(kept, id)
		}
	}
	if len(kept) == 0 {
		return b.Delete(FamilyMetadata, connIndexKey(engramID))
	}
	return b.Put(FamilyMetadata, connIndexKey(engramID), kept)
}

// PutCollection writes coll as a single-operation batch.
func (s *Store) PutCollection(ctx context.Context, coll *types.Collection) error {
	b := s.BeginBatch()
	if err := b.Put(FamilyCollection, coll.ID, coll); err != nil {
		return err
	}
	return b.Commit(ctx)
}

// GetCollection returns the collection stored under id, or (nil, false,
// nil) if absent.
func (s *Store) GetCollection(ctx context.Context, id string) (*types.Collection, bool, error) {
	var c types.Collection
	found, err := s.Get(ctx, FamilyCollection, id, &c)
	if err != nil || !found {
		return nil, found, err
	}
	return &c, true, nil
}

// ListCollectionIDs returns every collection id in the store.
func (s *Store) ListCollectionIDs(ctx context.Context) ([]string, error) {
	return s.List(ctx, FamilyCollection)
}

// DeleteCollection removes the collection. It does not touch the engrams
// the collection referenced — a collection owns membership, not the
// engrams themselves (spec §3).
func (s *Store) DeleteCollection(ctx context.Context, id string) error {
	b := s.BeginBatch()
	if err := b.Delete(FamilyCollection, id); err != nil {
		return err
	}
	return b.Commit(ctx)
}

// PutAgent writes a as a single-operation batch.
func (s *Store) PutAgent(ctx context.Context, a *types.Agent) error {
	b := s.BeginBatch()
	if err := b.Put(FamilyAgent, a.ID, a); err != nil {
		return err
	}
	return b.Commit(ctx)
}

// GetAgent returns the agent stored under id, or (nil, false, nil) if
// absent.
func (s *Store) GetAgent(ctx context.Context, id string) (*types.Agent, bool, error) {
	var a types.Agent
	found, err := s.Get(ctx, FamilyAgent, id, &a)
	if err != nil || !found {
		return nil, found, err
	}
	return &a, true, nil
}

// ListAgentIDs returns every agent id in the store.
func (s *Store) ListAgentIDs(ctx context.Context) ([]string, error) {
	return s.List(ctx, FamilyAgent)
}

// DeleteAgent removes the agent.
func (s *Store) DeleteAgent(ctx context.Context, id string) error {
	b := s.BeginBatch()
	if err := b.Delete(FamilyAgent, id); err != nil {
		return err
	}
	return b.Commit(ctx)
}

// PutContext writes c as a single-operation batch.
func (s *Store) PutContext(ctx context.Context, c *types.Context) error {
	b := s.BeginBatch()
	if err := b.Put(FamilyContext, c.ID, c); err != nil {
		return err
	}
	return b.Commit(ctx)
}

// GetContext returns the context stored under id, or (nil, false, nil) if
// absent.
func (s *Store) GetContext(ctx context.Context, id string) (*types.Context, bool, error) {
	var c types.Context
	found, err := s.Get(ctx, FamilyContext, id, &c)
	if err != nil || !found {
		return nil, found, err
	}
	return &c, true, nil
}

// ListContextIDs returns every context id in the store.
func (s *Store) ListContextIDs(ctx context.Context) ([]string, error) {
	return s.List(ctx, FamilyContext)
}

// DeleteContext removes the context.
func (s *Store) DeleteContext(ctx context.Context, id string) error {
	b := s.BeginBatch()
	if err := b.Delete(FamilyContext, id); err != nil {
		return err
	}
	return b.Commit(ctx)
}
