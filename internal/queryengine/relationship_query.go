package queryengine

import (
	"context"

	"github.com/scrypster/engramdb/pkg/types"
)

// Direction selects which edge set a RelationshipQuery consults.
type Direction int

const (
	Outgoing Direction = iota
	Incoming
	Both
	ByType
	Path
)

// RelationshipQuery selects one relationship-query variant anchored at
// an engram id (spec.md §4.G).
type RelationshipQuery struct {
	EngramID         string
	Direction        Direction
	RelationshipType string // used by ByType
	TargetID         string // used by Path
	MaxDepth         int    // used by Path
}

// Relationships is the relationship-index surface a RelationshipQuery
// consults.
type Relationships interface {
	Outgoing(engramID string) []string
	Incoming(engramID string) []string
	ByType(relationshipType string) []string
	FindBySourceAndType(engramID, relationshipType string) []string
	Connection(id string) (*types.Connection, bool)
	FindPaths(ctx context.Context, src, tgt string, maxDepth int) ([][]string, error)
}

// PathResult is one connection hop in a Path-variant result.
type PathResult struct {
	Path        []string
	Connections []*types.Connection
}

// Relationships executes q and returns the connection ids it selects
// (Outgoing/Incoming/Both/ByType), or, for the Path variant, the
// enumerated paths with the connections joining each consecutive pair.
func (e *Engine) Relationships(ctx context.Context, q RelationshipQuery) ([]string, []PathResult, error) {
	switch q.Direction {
	case Outgoing:
		return e.relates.Outgoing(q.EngramID), nil, nil
	case Incoming:
		return e.relates.Incoming(q.EngramID), nil, nil
	case Both:
		out := e.relates.Outgoing(q.EngramID)
		in := e.relates.Incoming(q.EngramID)
		return append(out, in...), nil, nil
	case ByType:
		all := e.relates.ByType(q.RelationshipType)
		filtered := make([]string, 0, len(all))
		for _, connID := range all {
			conn, ok := e.relates.Connection(connID)
			if ok && (conn.SourceID == q.EngramID || conn.TargetID == q.EngramID) {
				filtered = append(filtered, connID)
			}
		}
		return filtered, nil, nil
	case Path:
		paths, err := e.relates.FindPaths(ctx, q.EngramID, q.TargetID, q.MaxDepth)
		if err != nil {
			return nil, nil, err
		}
		results := make([]PathResult, 0, len(paths))
		for _, path := range paths {
			conns := make([]*types.Connection, 0, len(path)-1)
			for i := 0; i+1 < len(path); i++ {
				conns = append(conns, e.findConnectionBetween(path[i], path[i+1]))
			}
			results = append(results, PathResult{Path: path, Connections: conns})
		}
		return nil, results, nil
	default:
		return nil, nil, nil
	}
}

func (e *Engine) findConnectionBetween(src, tgt string) *types.Connection {
	for _, connID := range e.relates.Outgoing(src) {
		conn, ok := e.relates.Connection(connID)
		if ok && conn.TargetID == tgt {
			return conn
		}
	}
	return nil
}

// TraversalResult is the output of a bounded FindConnected traversal.
type TraversalResult struct {
	EngramIDs     []string
	ConnectionIDs []string
}

// FindConnected performs a bounded depth-first traversal from seed,
// following outgoing connections (filtered by relationshipType when
// non-empty) up to maxDepth hops. The visited set handles cycles (spec.md
// §4.G).
func (e *Engine) FindConnected(seed string, maxDepth int, relationshipType string) TraversalResult {
	visitedEngrams := map[string]bool{seed: true}
	visitedConns := map[string]bool{}

	var dfs func(current string, depthLeft int)
	dfs = func(current string, depthLeft int) {
		if depthLeft == 0 {
			return
		}

		var connIDs []string
		if relationshipType != "" {
			connIDs = e.relates.FindBySourceAndType(current, relationshipType)
		} else {
			connIDs = e.relates.Outgoing(current)
		}

		for _, connID := range connIDs {
			conn, ok := e.relates.Connection(connID)
			if !ok {
				continue
			}
			visitedConns[connID] = true
			if !visitedEngrams[conn.TargetID] {
				visitedEngrams[conn.TargetID] = true
				dfs(conn.TargetID, depthLeft-1)
			}
		}
	}
	dfs(seed, maxDepth)

	result := TraversalResult{
		EngramIDs:     make([]string, 0, len(visitedEngrams)),
		ConnectionIDs: make([]string, 0, len(visitedConns)),
	}
	for id := range visitedEngrams {
		result.EngramIDs = append(result.EngramIDs, id)
	}
	for id := range visitedConns {
		result.ConnectionIDs = append(result.ConnectionIDs, id)
	}
	return result
}
