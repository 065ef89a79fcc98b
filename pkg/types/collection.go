package types

import "time"

// Collection is a named set of engram ids. A collection owns membership,
// not the engrams themselves — deleting a collection never deletes the
// engrams it references.
type Collection struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	EngramIDs   map[string]bool `json:"engram_ids"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewCollection constructs an empty Collection with a fresh id.
func NewCollection(name, description string) *Collection {
	now := time.Now().UTC()
	return &Collection{
		ID:          newID("collection"),
		Name:        name,
		Description: description,
		EngramIDs:   make(map[string]bool),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AddEngram adds engramID to the collection's membership set.
func (c *Collection) AddEngram(engramID string) {
	if c.EngramIDs == nil {
		c.EngramIDs = make(map[string]bool)
	}
	c.EngramIDs[engramID] = true
	c.UpdatedAt = time.Now().UTC()
}

// RemoveEngram removes engramID from the collection's membership set.
func (c *Collection) RemoveEngram(engramID string) {
	delete(c.EngramIDs, engramID)
	c.UpdatedAt = time.Now().UTC()
}

// HasEngram reports whether engramID is a member of the collection.
func (c *Collection) HasEngram(engramID string) bool {
	return c.EngramIDs[engramID]
}

// Clone returns a copy of c with its own membership map.
func (c *Collection) Clone() *Collection {
	cp := *c
	cp.EngramIDs = make(map[string]bool, len(c.EngramIDs))
	for id := range c.EngramIDs {
		cp.EngramIDs[id] = true
	}
	return &cp
}
