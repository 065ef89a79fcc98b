package relindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/engramdb/internal/relindex"
	"github.com/scrypster/engramdb/pkg/types"
)

func TestIndex_AddAndQuery(t *testing.T) {
	idx := relindex.New()
	c := types.NewConnection("A", "B", "likes", 0.5)
	idx.Add(c)

	assert.Equal(t, []string{c.ID}, idx.Outgoing("A"))
	assert.Equal(t, []string{c.ID}, idx.Incoming("B"))
	assert.Equal(t, []string{c.ID}, idx.ByType("likes"))
	assert.Equal(t, []string{"B"}, idx.Neighbors("A"))
}

func TestIndex_RemoveErasesZombieKeys(t *testing.T) {
	idx := relindex.New()
	c := types.NewConnection("A", "B", "likes", 0.5)
	idx.Add(c)
	idx.Remove(c.ID)

	assert.Empty(t, idx.Outgoing("A"))
	assert.Empty(t, idx.Incoming("B"))
	assert.Empty(t, idx.ByType("likes"))
	assert.Empty(t, idx.Neighbors("A"))

	_, ok := idx.Connection(c.ID)
	assert.False(t, ok)
}

func TestIndex_RemoveKeepsSharedAdjacencyWhenAnotherEdgeRemains(t *testing.T) {
	idx := relindex.New()
	c1 := types.NewConnection("A", "B", "likes", 0.5)
	c2 := types.NewConnection("A", "B", "dislikes", 0.2)
	idx.Add(c1)
	idx.Add(c2)

	idx.Remove(c1.ID)

	assert.Equal(t, []string{"B"}, idx.Neighbors("A"))
	assert.Empty(t, idx.ByType("likes"))
	assert.Equal(t, []string{c2.ID}, idx.ByType("dislikes"))
}

func TestIndex_FindBySourceAndType(t *testing.T) {
	idx := relindex.New()
	c1 := types.NewConnection("A", "B", "likes", 0.5)
	c2 := types.NewConnection("A", "C", "dislikes", 0.2)
	idx.Add(c1)
	idx.Add(c2)

	assert.Equal(t, []string{c1.ID}, idx.FindBySourceAndType("A", "likes"))
	assert.Empty(t, idx.FindBySourceAndType("A", "unknown"))
}

func TestIndex_Rebuild(t *testing.T) {
	idx := relindex.New()
	c1 := types.NewConnection("A", "B", "likes", 0.5)
	idx.Add(c1)

	c2 := types.NewConnection("X", "Y", "r", 0.1)
	idx.Rebuild([]*types.Connection{c2})

	assert.Empty(t, idx.Outgoing("A"))
	assert.Equal(t, []string{c2.ID}, idx.Outgoing("X"))
}

func TestIndex_AddTwiceUpdatesEdge(t *testing.T) {
	idx := relindex.New()
	c := types.NewConnection("A", "B", "likes", 0.5)
	idx.Add(c)

	mutated := *c
	mutated.TargetID = "C"
	idx.Add(&mutated)

	require.Empty(t, idx.Outgoing("B"))
	assert.Equal(t, []string{"C"}, idx.Neighbors("A"))
	assert.Equal(t, []string{c.ID}, idx.Incoming("C"))
	assert.Empty(t, idx.Incoming("B"))
}
