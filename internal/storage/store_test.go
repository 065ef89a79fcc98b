package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/engramdb/internal/storage"
	"github.com/scrypster/engramdb/pkg/types"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// TestS1_InsertAndFetch covers spec scenario S1.
func TestS1_InsertAndFetch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := types.NewEngram("hello", "s", 0.9)
	require.NoError(t, s.PutEngram(ctx, e))

	got, found, err := s.GetEngram(ctx, e.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "hello", got.Content)

	ids, err := s.ListEngramIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

// TestS2_CascadingDelete covers spec scenario S2.
func TestS2_CascadingDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := types.NewEngram("A", "s", 0.5)
	b := types.NewEngram("B", "s", 0.5)
	require.NoError(t, s.PutEngram(ctx, a))
	require.NoError(t, s.PutEngram(ctx, b))

	conn := types.NewConnection(a.ID, b.ID, "r", 0.5)
	require.NoError(t, s.PutConnection(ctx, conn))

	require.NoError(t, s.DeleteEngram(ctx, a.ID))

	_, found, err := s.GetConnection(ctx, conn.ID)
	require.NoError(t, err)
	assert.False(t, found)

	outgoing, err := s.FindConnectionsForEngram(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, outgoing)

	incoming, err := s.FindConnectionsForEngram(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, incoming)
}

func TestPutConnection_MissingEndpointFails(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := types.NewEngram("A", "s", 0.5)
	require.NoError(t, s.PutEngram(ctx, a))

	conn := types.NewConnection(a.ID, "engram:does-not-exist", "r", 0.5)
	err := s.PutConnection(ctx, conn)
	require.ErrorIs(t, err, storage.ErrConnectionEndpointMissing)
}

func TestGetNotFound_IsNotAnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got, found, err := s.GetEngram(ctx, "engram:missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestBatch_ReuseAfterCommitIsInvalidState(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := s.BeginBatch()
	require.NoError(t, b.Put(storage.FamilyEngram, "engram:1", types.NewEngram("x", "s", 1)))
	require.NoError(t, b.Commit(ctx))

	// Reusing a committed batch is invalid state, not a silent success.
	err := b.Put(storage.FamilyEngram, "engram:2", types.NewEngram("y", "s", 1))
	require.ErrorIs(t, err, storage.ErrInvalidState)

	ids, err := s.ListEngramIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestBatch_Abort(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := s.BeginBatch()
	require.NoError(t, b.Put(storage.FamilyEngram, "engram:1", types.NewEngram("x", "s", 1)))
	b.Abort()

	ids, err := s.ListEngramIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSweep_RemovesExpiredEngrams(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := types.NewEngram("temp", "s", 1)
	e.SetTTL(1)
	require.NoError(t, s.PutEngram(ctx, e))

	removed, err := s.Sweep(ctx, e.CreatedAt.Add(10*time.Second))
	require.NoError(t, err)
	assert.Equal(t, []string{e.ID}, removed)

	_, found, err := s.GetEngram(ctx, e.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCompact_IsANoOpSemantically(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := types.NewEngram("x", "s", 1)
	require.NoError(t, s.PutEngram(ctx, e))
	require.NoError(t, s.Compact(ctx))

	_, found, err := s.GetEngram(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, found)
}
