package queryengine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scrypster/engramdb/internal/attrindex"
	"github.com/scrypster/engramdb/internal/queryengine"
	"github.com/scrypster/engramdb/internal/relindex"
	"github.com/scrypster/engramdb/internal/storage"
	"github.com/scrypster/engramdb/pkg/types"
)

// testFixture wires a store plus freshly indexed attribute/relationship
// indexes, mirroring how the top-level facade maintains them in lockstep
// with store writes.
type testFixture struct {
	store   *storage.Store
	attrs   queryengine.AttributeIndexes
	relates *relindex.Index
	engine  *queryengine.Engine
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()
	s, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	attrs := queryengine.AttributeIndexes{
		Source:     attrindex.NewSourceIndex(),
		Confidence: attrindex.NewConfidenceIndex(),
		Metadata:   attrindex.NewMetadataIndex(),
		Text:       attrindex.NewTextIndex(),
	}
	relates := relindex.New()

	return &testFixture{
		store:   s,
		attrs:   attrs,
		relates: relates,
		engine:  queryengine.New(s, attrs, relates),
	}
}

func (f *testFixture) putEngram(t *testing.T, e *types.Engram) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.store.PutEngram(ctx, e))

	f.attrs.Source.Add(e.Source, e.ID)
	f.attrs.Confidence.Add(e.Confidence, e.ID)
	f.attrs.Text.Add(e.Content, e.ID)
	for k, v := range e.Metadata {
		f.attrs.Metadata.Add(k, v, e.ID)
	}
}

func (f *testFixture) putConnection(t *testing.T, c *types.Connection) {
	t.Helper()
	require.NoError(t, f.store.PutConnection(context.Background(), c))
	f.relates.Add(c)
}

func TestEngrams_TextFilter(t *testing.T) {
	f := newFixture(t)
	e1 := types.NewEngram("the quick brown fox", "web", 0.8)
	e2 := types.NewEngram("a slow turtle", "web", 0.5)
	f.putEngram(t, e1)
	f.putEngram(t, e2)

	results, err := f.engine.Engrams(context.Background(), queryengine.EngramQuery{Text: "fox"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, e1.ID, results[0].ID)
}

// TestS4_ConfidenceFilter covers spec scenario S4.
func TestS4_ConfidenceFilter(t *testing.T) {
	f := newFixture(t)
	high := types.NewEngram("important fact", "web", 0.9)
	low := types.NewEngram("minor detail", "web", 0.2)
	f.putEngram(t, high)
	f.putEngram(t, low)

	results, err := f.engine.Engrams(context.Background(), queryengine.EngramQuery{
		HasMinConfidence: true,
		MinConfidence:    0.6,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, high.ID, results[0].ID)
}

func TestEngrams_SortsByConfidenceDescendingAndTruncates(t *testing.T) {
	f := newFixture(t)
	low := types.NewEngram("c1", "web", 0.1)
	mid := types.NewEngram("c2", "web", 0.5)
	high := types.NewEngram("c3", "web", 0.9)
	f.putEngram(t, low)
	f.putEngram(t, mid)
	f.putEngram(t, high)

	results, err := f.engine.Engrams(context.Background(), queryengine.EngramQuery{Source: "web", Limit: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, high.ID, results[0].ID)
	require.Equal(t, mid.ID, results[1].ID)
}

func TestEngrams_MetadataKeyAndExactMatch(t *testing.T) {
	f := newFixture(t)
	e1 := types.NewEngram("a", "web", 0.5)
	e1.Metadata["status"] = "active"
	e2 := types.NewEngram("b", "web", 0.5)
	e2.Metadata["status"] = "archived"
	f.putEngram(t, e1)
	f.putEngram(t, e2)

	results, err := f.engine.Engrams(context.Background(), queryengine.EngramQuery{MetadataKey: "status"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	results, err = f.engine.Engrams(context.Background(), queryengine.EngramQuery{
		MetadataKey:   "status",
		MetadataValue: "active",
		ExactMatch:    true,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, e1.ID, results[0].ID)
}

func TestEngrams_NoPredicatesReturnsEverything(t *testing.T) {
	f := newFixture(t)
	e1 := types.NewEngram("a", "web", 0.5)
	e2 := types.NewEngram("b", "web", 0.5)
	f.putEngram(t, e1)
	f.putEngram(t, e2)

	results, err := f.engine.Engrams(context.Background(), queryengine.EngramQuery{})
	require.NoError(t, err)
	require.Len(t, results, 2)
}
