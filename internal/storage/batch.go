package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

type opKind int

const (
	opPut opKind = iota
	opDelete
)

type op struct {
	kind   opKind
	family Family
	id     string
	value  []byte
}

// Batch accumulates Put and Delete operations for atomic application.
// Commit applies every queued operation inside a single database
// transaction: either every operation becomes observable, or none does
// (spec §4.B, §8 invariant 3). A Batch must not be reused after Commit or
// Abort.
type Batch struct {
	store *Store
	ops   []op
	done  bool
}

// BeginBatch returns a new Batch that accumulates operations against s.
func (s *Store) BeginBatch() *Batch {
	return &Batch{store: s}
}

// Put queues a write of entity under (family, id). The entity is encoded
// immediately so that a caller mutating it afterwards cannot change what
// gets committed.
func (b *Batch) Put(family Family, id string, entity interface{}) error {
	if b.done {
		return fmt.Errorf("%w: batch already closed", ErrInvalidState)
	}
	if !family.valid() {
		return fmt.Errorf("%w: unknown family %q", ErrInvalidInput, family)
	}
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidInput)
	}
	value, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("%w: encoding %s/%s: %v", ErrSerialization, family, id, err)
	}
	b.ops = append(b.ops, op{kind: opPut, family: family, id: id, value: value})
	return nil
}

// Delete queues a removal of (family, id).
func (b *Batch) Delete(family Family, id string) error {
	if b.done {
		return fmt.Errorf("%w: batch already closed", ErrInvalidState)
	}
	if !family.valid() {
		return fmt.Errorf("%w: unknown family %q", ErrInvalidInput, family)
	}
	b.ops = append(b.ops, op{kind: opDelete, family: family, id: id})
	return nil
}

// Len reports the number of operations queued so far.
func (b *Batch) Len() int {
	return len(b.ops)
}

// Commit applies every queued operation atomically. Within the batch,
// writes to the same (family, id) are applied in queue order — last
// writer wins, per spec §4.B. A get that follows a successful Commit
// observes every operation in this batch.
func (b *Batch) Commit(ctx context.Context) error {
	if b.done {
		return fmt.Errorf("%w: batch already closed", ErrInvalidState)
	}
	b.done = true

	tx, err := b.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", ErrTransaction, err)
	}

	for _, o := range b.ops {
		switch o.kind {
		case opPut:
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO kv(family, id, value) VALUES (?, ?, ?)
				 ON CONFLICT(family, id) DO UPDATE SET value = excluded.value`,
				string(o.family), o.id, o.value); err != nil {
				tx.Rollback()
				return fmt.Errorf("%w: writing %s/%s: %v", ErrTransaction, o.family, o.id, err)
			}
		case opDelete:
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM kv WHERE family = ? AND id = ?`, string(o.family), o.id); err != nil {
				tx.Rollback()
				return fmt.Errorf("%w: deleting %s/%s: %v", ErrTransaction, o.family, o.id, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", ErrTransaction, err)
	}
	return nil
}

// Abort discards every queued operation. It is always safe to call Abort
// on a Batch that has already been committed or aborted.
func (b *Batch) Abort() {
	b.done = true
	b.ops = nil
}
