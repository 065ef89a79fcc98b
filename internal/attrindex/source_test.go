package attrindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scrypster/engramdb/internal/attrindex"
)

func TestSourceIndex_AddAndGet(t *testing.T) {
	idx := attrindex.NewSourceIndex()
	idx.Add("web", "E1")
	idx.Add("web", "E2")
	idx.Add("cli", "E3")

	assert.Len(t, idx.Get("web"), 2)
	assert.True(t, idx.Get("web")["E1"])
	assert.Len(t, idx.Get("cli"), 1)
	assert.Empty(t, idx.Get("unknown"))
}

func TestSourceIndex_RemoveErasesEmptySet(t *testing.T) {
	idx := attrindex.NewSourceIndex()
	idx.Add("web", "E1")
	idx.Remove("web", "E1")

	assert.Empty(t, idx.Get("web"))
}
