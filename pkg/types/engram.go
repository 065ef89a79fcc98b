package types

import "time"

// clamp01 restricts v to the closed interval [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Engram is the atomic unit of knowledge stored by the system: immutable
// content with provenance, a confidence score, an importance score, access
// tracking, an optional time-to-live, and an open metadata mapping.
//
// Invariants (enforced by every setter): 0 <= Confidence <= 1,
// 0 <= Importance <= 1, AccessCount is monotonically non-decreasing.
type Engram struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	Source       string    `json:"source"`
	CreatedAt    time.Time `json:"created_at"`
	Confidence   float64   `json:"confidence"`
	Importance   float64   `json:"importance"`
	AccessCount  int       `json:"access_count"`
	LastAccessed time.Time `json:"last_accessed"`

	// TTLSeconds is the engram's time-to-live in seconds from CreatedAt.
	// A nil value means the engram is permanent.
	TTLSeconds *int64 `json:"ttl_seconds,omitempty"`

	Metadata Metadata `json:"metadata,omitempty"`
}

// NewEngram constructs an Engram with a fresh id, the current timestamp,
// default importance of 0.5, and confidence/importance clamped to [0,1].
func NewEngram(content, source string, confidence float64) *Engram {
	now := time.Now().UTC()
	return &Engram{
		ID:           newID("engram"),
		Content:      content,
		Source:       source,
		CreatedAt:    now,
		Confidence:   clamp01(confidence),
		Importance:   0.5,
		AccessCount:  0,
		LastAccessed: now,
		Metadata:     Metadata{},
	}
}

// SetConfidence updates Confidence, re-clamping to [0,1].
func (e *Engram) SetConfidence(c float64) {
	e.Confidence = clamp01(c)
}

// SetImportance updates Importance, re-clamping to [0,1].
func (e *Engram) SetImportance(i float64) {
	e.Importance = clamp01(i)
}

// RecordAccess increments AccessCount and refreshes LastAccessed to now.
func (e *Engram) RecordAccess() {
	e.AccessCount++
	e.LastAccessed = time.Now().UTC()
}

// SetTTL gives the engram a time-to-live of the given number of seconds
// from CreatedAt.
func (e *Engram) SetTTL(seconds int64) {
	e.TTLSeconds = &seconds
}

// ClearTTL makes the engram permanent.
func (e *Engram) ClearTTL() {
	e.TTLSeconds = nil
}

// IsExpired reports whether the engram has a TTL and that TTL has elapsed
// as of now.
func (e *Engram) IsExpired() bool {
	return e.IsExpiredAt(time.Now().UTC())
}

// IsExpiredAt reports expiry relative to an explicit "now", used by tests
// and by the forgetting sweep to evaluate a consistent instant across a
// batch of engrams.
func (e *Engram) IsExpiredAt(now time.Time) bool {
	if e.TTLSeconds == nil {
		return false
	}
	return now.Sub(e.CreatedAt) > time.Duration(*e.TTLSeconds)*time.Second
}

// TimeRemaining returns the duration until expiry, or a negative duration
// if already expired. The second return value is false for permanent
// engrams (no TTL set).
func (e *Engram) TimeRemaining() (time.Duration, bool) {
	if e.TTLSeconds == nil {
		return 0, false
	}
	deadline := e.CreatedAt.Add(time.Duration(*e.TTLSeconds) * time.Second)
	return time.Until(deadline), true
}

// Clone returns a deep-enough copy of e (metadata map copied) suitable for
// returning from store reads without aliasing internal state.
func (e *Engram) Clone() *Engram {
	cp := *e
	cp.Metadata = e.Metadata.Clone()
	if e.TTLSeconds != nil {
		ttl := *e.TTLSeconds
		cp.TTLSeconds = &ttl
	}
	return &cp
}
