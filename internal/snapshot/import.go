package snapshot

import (
	"context"

	"github.com/scrypster/engramdb/internal/storage"
)

// Import writes every entity in env into store as a single atomic batch:
// either every item is installed, or none is (spec.md §4.I). Replaying
// the same envelope is idempotent since every write is keyed by the
// entity's own id.
func Import(ctx context.Context, store *storage.Store, env *Envelope) error {
	b := store.BeginBatch()

	for id, e := range env.Engrams {
		if err := b.Put(storage.FamilyEngram, id, e); err != nil {
			return err
		}
	}
	for id, c := range env.Connections {
		if err := b.Put(storage.FamilyConnection, id, c); err != nil {
			return err
		}
	}
	for id, c := range env.Collections {
		if err := b.Put(storage.FamilyCollection, id, c); err != nil {
			return err
		}
	}
	for id, a := range env.Agents {
		if err := b.Put(storage.FamilyAgent, id, a); err != nil {
			return err
		}
	}
	for id, c := range env.Contexts {
		if err := b.Put(storage.FamilyContext, id, c); err != nil {
			return err
		}
	}

	return b.Commit(ctx)
}
