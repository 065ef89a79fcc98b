package types

import "time"

// Connection is a directed, typed, weighted edge between two engrams.
//
// Invariant (enforced by the store, not by this type): both SourceID and
// TargetID must refer to live engrams at insertion time, and a connection
// is cascade-deleted in the same batch as either of its endpoints.
type Connection struct {
	ID               string    `json:"id"`
	SourceID         string    `json:"source_id"`
	TargetID         string    `json:"target_id"`
	RelationshipType string    `json:"relationship_type"`
	Weight           float64   `json:"weight"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Metadata         Metadata  `json:"metadata,omitempty"`
}

// NewConnection constructs a Connection with a fresh id, current
// timestamps, and weight clamped to [0,1].
func NewConnection(sourceID, targetID, relationshipType string, weight float64) *Connection {
	now := time.Now().UTC()
	return &Connection{
		ID:               newID("conn"),
		SourceID:         sourceID,
		TargetID:         targetID,
		RelationshipType: relationshipType,
		Weight:           clamp01(weight),
		CreatedAt:        now,
		UpdatedAt:        now,
		Metadata:         Metadata{},
	}
}

// SetWeight updates Weight, re-clamping to [0,1], and refreshes UpdatedAt.
func (c *Connection) SetWeight(w float64) {
	c.Weight = clamp01(w)
	c.UpdatedAt = time.Now().UTC()
}

// Clone returns a copy of c with its own metadata map.
func (c *Connection) Clone() *Connection {
	cp := *c
	cp.Metadata = c.Metadata.Clone()
	return &cp
}
