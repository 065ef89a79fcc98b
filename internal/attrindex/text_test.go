package attrindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scrypster/engramdb/internal/attrindex"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"the", "quick", "fox"}, attrindex.Tokenize("The, quick-fox!"))
	assert.Empty(t, attrindex.Tokenize("   !!! ,,,"))
}

func TestTextIndex_Search(t *testing.T) {
	idx := attrindex.NewTextIndex()
	idx.Add("the quick brown fox", "E1")
	idx.Add("lazy dog sleeps", "E2")

	result := idx.Search("fox dog")
	assert.Len(t, result, 2)
}

func TestTextIndex_SearchAll(t *testing.T) {
	idx := attrindex.NewTextIndex()
	idx.Add("the quick brown fox", "E1")
	idx.Add("quick silver car", "E2")

	result := idx.SearchAll("quick fox")
	assert.Equal(t, map[string]bool{"E1": true}, result)

	assert.Empty(t, idx.SearchAll(""))
}

func TestTextIndex_RemoveErasesTokens(t *testing.T) {
	idx := attrindex.NewTextIndex()
	idx.Add("quick fox", "E1")
	idx.Remove("quick fox", "E1")

	assert.Empty(t, idx.Search("quick"))
}
