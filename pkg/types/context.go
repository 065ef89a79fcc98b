package types

import "time"

// Context is a sharable workspace: a set of engram ids plus a set of agent
// ids. Contexts and collections are disjoint concepts — a context adds
// agents to a working set, a collection never does.
type Context struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	EngramIDs map[string]bool `json:"engram_ids"`
	AgentIDs  map[string]bool `json:"agent_ids"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewContext constructs an empty Context with a fresh id.
func NewContext(name string) *Context {
	now := time.Now().UTC()
	return &Context{
		ID:        newID("context"),
		Name:      name,
		EngramIDs: make(map[string]bool),
		AgentIDs:  make(map[string]bool),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddEngram adds engramID to the context's working set.
func (c *Context) AddEngram(engramID string) {
	c.EngramIDs[engramID] = true
	c.UpdatedAt = time.Now().UTC()
}

// RemoveEngram removes engramID from the context's working set.
func (c *Context) RemoveEngram(engramID string) {
	delete(c.EngramIDs, engramID)
	c.UpdatedAt = time.Now().UTC()
}

// AddAgent adds agentID to the context.
func (c *Context) AddAgent(agentID string) {
	c.AgentIDs[agentID] = true
	c.UpdatedAt = time.Now().UTC()
}

// RemoveAgent removes agentID from the context.
func (c *Context) RemoveAgent(agentID string) {
	delete(c.AgentIDs, agentID)
	c.UpdatedAt = time.Now().UTC()
}

// Clone returns a copy of c with its own membership sets.
func (c *Context) Clone() *Context {
	cp := *c
	cp.EngramIDs = make(map[string]bool, len(c.EngramIDs))
	for id := range c.EngramIDs {
		cp.EngramIDs[id] = true
	}
	cp.AgentIDs = make(map[string]bool, len(c.AgentIDs))
	for id := range c.AgentIDs {
		cp.AgentIDs[id] = true
	}
	return &cp
}
