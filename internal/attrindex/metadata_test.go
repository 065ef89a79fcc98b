package attrindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scrypster/engramdb/internal/attrindex"
)

func TestMetadataIndex_HasKeyAndEquals(t *testing.T) {
	idx := attrindex.NewMetadataIndex()
	idx.Add("status", "active", "E1")
	idx.Add("status", "archived", "E2")
	idx.Add("priority", 5, "E1")

	assert.Len(t, idx.HasKey("status"), 2)
	assert.Len(t, idx.HasKey("priority"), 1)
	assert.Equal(t, map[string]bool{"E1": true}, idx.Equals("status", "active"))
	assert.Empty(t, idx.Equals("priority", "5"))
}

func TestMetadataIndex_RemoveErasesEmptySets(t *testing.T) {
	idx := attrindex.NewMetadataIndex()
	idx.Add("status", "active", "E1")
	idx.Remove("status", "active", "E1")

	assert.Empty(t, idx.HasKey("status"))
	assert.Empty(t, idx.Equals("status", "active"))
}
