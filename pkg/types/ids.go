// Package types defines the entity model for the memory graph: engrams,
// connections, collections, agents, and contexts, along with the shared
// metadata value helpers used by the attribute indexes.
package types

import "github.com/google/uuid"

// newID returns a fresh opaque unique identifier prefixed with the given
// entity tag (e.g. "engram", "conn"), mirroring the "mem:domain:slug"-style
// prefixed ids the teacher generates for memories.
func newID(prefix string) string {
	return prefix + ":" + uuid.NewString()
}
