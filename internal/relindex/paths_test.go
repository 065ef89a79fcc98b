package relindex_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/engramdb/internal/relindex"
	"github.com/scrypster/engramdb/pkg/types"
)

func pathsAsStrings(paths [][]string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		s := ""
		for i, id := range p {
			if i > 0 {
				s += ">"
			}
			s += id
		}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// TestS3_BoundedPaths covers spec scenario S3.
func TestS3_BoundedPaths(t *testing.T) {
	idx := relindex.New()
	idx.Add(types.NewConnection("E1", "E2", "r", 0.5))
	idx.Add(types.NewConnection("E2", "E3", "r", 0.5))
	idx.Add(types.NewConnection("E1", "E4", "r", 0.5))
	idx.Add(types.NewConnection("E4", "E3", "r", 0.5))

	paths, err := idx.FindPaths(context.Background(), "E1", "E3", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"E1>E2>E3", "E1>E4>E3"}, pathsAsStrings(paths))
}

func TestFindPaths_NoPathWithinBound(t *testing.T) {
	idx := relindex.New()
	idx.Add(types.NewConnection("E1", "E2", "r", 0.5))
	idx.Add(types.NewConnection("E2", "E3", "r", 0.5))
	idx.Add(types.NewConnection("E3", "E4", "r", 0.5))

	paths, err := idx.FindPaths(context.Background(), "E1", "E4", 1)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

// TestInvariant9_PathSimplicity covers spec §8 invariant 9.
func TestInvariant9_PathSimplicity(t *testing.T) {
	idx := relindex.New()
	idx.Add(types.NewConnection("E1", "E2", "r", 0.5))
	idx.Add(types.NewConnection("E2", "E1", "r", 0.5)) // cycle back
	idx.Add(types.NewConnection("E2", "E3", "r", 0.5))

	paths, err := idx.FindPaths(context.Background(), "E1", "E3", 5)
	require.NoError(t, err)
	require.Len(t, paths, 1)

	for _, p := range paths {
		seen := make(map[string]bool)
		for _, node := range p {
			require.False(t, seen[node], "node %s repeated in path %v", node, p)
			seen[node] = true
		}
	}
}

func TestFindPaths_SameSourceAndTarget(t *testing.T) {
	idx := relindex.New()
	paths, err := idx.FindPaths(context.Background(), "E1", "E1", 3)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"E1"}}, paths)
}

func TestFindPaths_RespectsCancellation(t *testing.T) {
	idx := relindex.New()
	idx.Add(types.NewConnection("E1", "E2", "r", 0.5))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := idx.FindPaths(ctx, "E1", "E2", 3)
	require.ErrorIs(t, err, relindex.ErrCancelled)
}
