// Package relindex maintains the in-memory relationship index over
// connections: forward/reverse adjacency, a type index, and bounded
// simple-path enumeration between engrams. It is a derived projection of
// the primary connection records in internal/storage — it holds only ids,
// never authoritative copies, and can always be rebuilt from a full scan
// (spec §3, §8 invariant 1).
package relindex

import "github.com/scrypster/engramdb/pkg/types"

// Index maintains five maps in lockstep: outgoing, incoming, by-type, and
// the two engram-to-engram adjacency maps used by path enumeration.
// Index is not safe for concurrent use without external synchronization;
// callers serialize writes the same way the persistent store does
// (spec §5, single-writer).
type Index struct {
	outgoing  map[string]map[string]bool // engramID -> connectionIDs
	incoming  map[string]map[string]bool // engramID -> connectionIDs
	byType    map[string]map[string]bool // relationshipType -> connectionIDs
	srcToTgt  map[string]map[string]bool // engramID -> engramIDs
	tgtToSrc  map[string]map[string]bool // engramID -> engramIDs
	conns     map[string]*types.Connection
}

// New returns an empty relationship index.
func New() *Index {
	return &Index{
		outgoing: make(map[string]map[string]bool),
		incoming: make(map[string]map[string]bool),
		byType:   make(map[string]map[string]bool),
		srcToTgt: make(map[string]map[string]bool),
		tgtToSrc: make(map[string]map[string]bool),
		conns:    make(map[string]*types.Connection),
	}
}

func addTo(m map[string]map[string]bool, key, value string) {
	set, ok := m[key]
	if !ok {
		set = make(map[string]bool)
		m[key] = set
	}
	set[value] = true
}

// removeFrom deletes value from m[key], and erases the key entirely if
// its set becomes empty so that no zombie keys remain (spec §4.C).
func removeFrom(m map[string]map[string]bool, key, value string) {
	set, ok := m[key]
	if !ok {
		return
	}
	delete(set, value)
	if len(set) == 0 {
		delete(m, key)
	}
}

// Add inserts a connection into all five maps. Adding a connection whose
// id is already present first removes the old entry, so Add is safe to
// call to update a mutated connection.
func (idx *Index) Add(c *types.Connection) {
	if existing, ok := idx.conns[c.ID]; ok {
		idx.remove(existing)
	}
	// Keep a copy so that mutating c in place later cannot change the
	// fields the index's entries were added under.
	stored := *c
	idx.conns[c.ID] = &stored

	addTo(idx.outgoing, c.SourceID, c.ID)
	addTo(idx.incoming, c.TargetID, c.ID)
	addTo(idx.byType, c.RelationshipType, c.ID)
	addTo(idx.srcToTgt, c.SourceID, c.TargetID)
	addTo(idx.tgtToSrc, c.TargetID, c.SourceID)
}

// Remove deletes a connection from all five maps, erasing keys whose sets
// become empty.
func (idx *Index) Remove(connectionID string) {
	c, ok := idx.conns[connectionID]
	if !ok {
		return
	}
	idx.remove(c)
	delete(idx.conns, connectionID)
}

func (idx *Index) remove(c *types.Connection) {
	removeFrom(idx.outgoing, c.SourceID, c.ID)
	removeFrom(idx.incoming, c.TargetID, c.ID)
	removeFrom(idx.byType, c.RelationshipType, c.ID)

	// srcToTgt/tgtToSrc summarize edges by engram pair, not by connection
	// id; only drop the pair if no remaining connection shares it.
	if !idx.hasConnectionBetween(c.SourceID, c.TargetID, c.ID) {
		removeFrom(idx.srcToTgt, c.SourceID, c.TargetID)
		removeFrom(idx.tgtToSrc, c.TargetID, c.SourceID)
	}
}

// hasConnectionBetween reports whether any connection other than exclude
// still links src -> tgt.
func (idx *Index) hasConnectionBetween(src, tgt, exclude string) bool {
	for connID := range idx.outgoing[src] {
		if connID == exclude {
			continue
		}
		if c, ok := idx.conns[connID]; ok && c.TargetID == tgt {
			return true
		}
	}
	return false
}

// Rebuild discards all state and re-adds every connection in conns. Used
// to restore the index from a full scan of the primary store (spec §8
// invariant 1: "every attribute/relationship index can be rebuilt by
// scanning the primary families").
func (idx *Index) Rebuild(conns []*types.Connection) {
	*idx = *New()
	for _, c := range conns {
		idx.Add(c)
	}
}

func toSlice(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

// Outgoing returns the connection ids whose source is engramID.
func (idx *Index) Outgoing(engramID string) []string { return toSlice(idx.outgoing[engramID]) }

// Incoming returns the connection ids whose target is engramID.
func (idx *Index) Incoming(engramID string) []string { return toSlice(idx.incoming[engramID]) }

// ByType returns every connection id with the given relationship type.
func (idx *Index) ByType(relationshipType string) []string { return toSlice(idx.byType[relationshipType]) }

// FindBySourceAndType intersects Outgoing(engramID) with ByType(relationshipType).
func (idx *Index) FindBySourceAndType(engramID, relationshipType string) []string {
	out := idx.outgoing[engramID]
	byT := idx.byType[relationshipType]
	result := make([]string, 0)
	for connID := range out {
		if byT[connID] {
			result = append(result, connID)
		}
	}
	return result
}

// Connection returns the index's copy of the connection most recently
// passed to Add under id.
func (idx *Index) Connection(id string) (*types.Connection, bool) {
	c, ok := idx.conns[id]
	return c, ok
}

// Neighbors returns the distinct engram ids reachable in one hop from
// engramID following src_to_tgt (i.e. outgoing edges).
func (idx *Index) Neighbors(engramID string) []string { return toSlice(idx.srcToTgt[engramID]) }
