package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scrypster/engramdb/pkg/types"
)

func TestNewConnection_WeightClamp(t *testing.T) {
	c := types.NewConnection("engram:a", "engram:b", "relates_to", 1.5)
	assert.Equal(t, 1.0, c.Weight)
	assert.Equal(t, "engram:a", c.SourceID)
	assert.Equal(t, "engram:b", c.TargetID)
	assert.Equal(t, "relates_to", c.RelationshipType)
}

func TestConnection_SetWeightClamps(t *testing.T) {
	c := types.NewConnection("a", "b", "r", 0.5)
	c.SetWeight(-1)
	assert.Equal(t, 0.0, c.Weight)
	c.SetWeight(0.33)
	assert.Equal(t, 0.33, c.Weight)
}
