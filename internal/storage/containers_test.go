package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/engramdb/pkg/types"
)

func TestCollectionCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := types.NewCollection("work", "")
	c.AddEngram("engram:1")
	require.NoError(t, s.PutCollection(ctx, c))

	got, found, err := s.GetCollection(ctx, c.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.HasEngram("engram:1"))

	require.NoError(t, s.DeleteCollection(ctx, c.ID))
	_, found, err = s.GetCollection(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAgentCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := types.NewAgent("scribe")
	a.GrantCapability("write")
	require.NoError(t, s.PutAgent(ctx, a))

	got, found, err := s.GetAgent(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.HasCapability("write"))

	ids, err := s.ListAgentIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, a.ID)

	require.NoError(t, s.DeleteAgent(ctx, a.ID))
	_, found, err = s.GetAgent(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestContextCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := types.NewContext("session")
	c.AddAgent("agent:1")
	require.NoError(t, s.PutContext(ctx, c))

	got, found, err := s.GetContext(ctx, c.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.AgentIDs["agent:1"])

	require.NoError(t, s.DeleteContext(ctx, c.ID))
	_, found, err = s.GetContext(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, found)
}
