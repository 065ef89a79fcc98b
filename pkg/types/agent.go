package types

import "time"

// Agent is a principal carrying a set of capability strings and a set of
// collection ids it may access. Access is a relation the agent holds, not
// an ownership claim over the collections.
type Agent struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Capabilities  map[string]bool `json:"capabilities"`
	CollectionIDs map[string]bool `json:"collection_ids"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewAgent constructs an Agent with a fresh id and no capabilities or
// accessible collections.
func NewAgent(name string) *Agent {
	now := time.Now().UTC()
	return &Agent{
		ID:            newID("agent"),
		Name:          name,
		Capabilities:  make(map[string]bool),
		CollectionIDs: make(map[string]bool),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// GrantCapability adds capability to the agent's capability set.
func (a *Agent) GrantCapability(capability string) {
	a.Capabilities[capability] = true
	a.UpdatedAt = time.Now().UTC()
}

// RevokeCapability removes capability from the agent's capability set.
func (a *Agent) RevokeCapability(capability string) {
	delete(a.Capabilities, capability)
	a.UpdatedAt = time.Now().UTC()
}

// HasCapability reports whether the agent holds the given capability.
func (a *Agent) HasCapability(capability string) bool {
	return a.Capabilities[capability]
}

// GrantAccess gives the agent access to the given collection id.
func (a *Agent) GrantAccess(collectionID string) {
	a.CollectionIDs[collectionID] = true
	a.UpdatedAt = time.Now().UTC()
}

// RevokeAccess removes the agent's access to the given collection id.
func (a *Agent) RevokeAccess(collectionID string) {
	delete(a.CollectionIDs, collectionID)
	a.UpdatedAt = time.Now().UTC()
}

// HasAccess reports whether the agent may access the given collection id.
func (a *Agent) HasAccess(collectionID string) bool {
	return a.CollectionIDs[collectionID]
}

// Clone returns a copy of a with its own capability and access sets.
func (a *Agent) Clone() *Agent {
	cp := *a
	cp.Capabilities = make(map[string]bool, len(a.Capabilities))
	for k := range a.Capabilities {
		cp.Capabilities[k] = true
	}
	cp.CollectionIDs = make(map[string]bool, len(a.CollectionIDs))
	for k := range a.CollectionIDs {
		cp.CollectionIDs[k] = true
	}
	return &cp
}
