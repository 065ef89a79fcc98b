package relindex

import (
	"context"
	"fmt"
)

// ErrCancelled is returned when the caller's context is done between node
// expansions during traversal (spec §5, "interior DFS must check the
// cancellation flag between node expansions").
var ErrCancelled = fmt.Errorf("relindex: traversal cancelled")

// FindPaths performs a bounded depth-first search from src to tgt over
// src_to_tgt, enforcing the simple-path constraint (no node repeats
// within a path) and a max-depth bound. It returns every distinct simple
// path whose length is at most maxDepth+1 nodes (spec §4.C). The order of
// returned paths reflects discovery order and is not itself a contract.
func (idx *Index) FindPaths(ctx context.Context, src, tgt string, maxDepth int) ([][]string, error) {
	if maxDepth < 0 {
		maxDepth = 0
	}

	var paths [][]string
	inPath := map[string]bool{src: true}
	path := []string{src}

	var dfs func(current string, depthLeft int) error
	dfs = func(current string, depthLeft int) error {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		default:
		}

		if current == tgt {
			found := make([]string, len(path))
			copy(found, path)
			paths = append(paths, found)
			return nil
		}

		if depthLeft == 0 {
			return nil
		}

		for _, next := range idx.Neighbors(current) {
			if inPath[next] {
				continue
			}
			inPath[next] = true
			path = append(path, next)

			if err := dfs(next, depthLeft-1); err != nil {
				return err
			}

			path = path[:len(path)-1]
			delete(inPath, next)
		}
		return nil
	}

	if err := dfs(src, maxDepth); err != nil {
		return paths, err
	}
	return paths, nil
}
