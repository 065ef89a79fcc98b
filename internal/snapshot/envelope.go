// Package snapshot implements the versioned export/import envelope
// (spec.md §4.I / §6): whole-store or per-collection export to a single
// JSON document, and atomic, idempotent import from one.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/scrypster/engramdb/pkg/types"
)

// EnvelopeVersion is the only version this package writes or accepts.
const EnvelopeVersion = "1.0"

// ErrUnknownVersion is returned when an import envelope's version field
// does not match EnvelopeVersion.
var ErrUnknownVersion = errors.New("snapshot: unknown envelope version")

// Envelope is the versioned JSON document produced by Export and
// consumed by Import.
type Envelope struct {
	Version     string                       `json:"version"`
	Engrams     map[string]*types.Engram     `json:"engrams"`
	Connections map[string]*types.Connection `json:"connections"`
	Collections map[string]*types.Collection `json:"collections"`
	Agents      map[string]*types.Agent      `json:"agents"`
	Contexts    map[string]*types.Context    `json:"contexts"`
}

func newEnvelope() *Envelope {
	return &Envelope{
		Version:     EnvelopeVersion,
		Engrams:     make(map[string]*types.Engram),
		Connections: make(map[string]*types.Connection),
		Collections: make(map[string]*types.Collection),
		Agents:      make(map[string]*types.Agent),
		Contexts:    make(map[string]*types.Context),
	}
}

// Marshal renders e as canonical JSON.
func (e *Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// Unmarshal parses data into an Envelope, failing if the version field is
// not EnvelopeVersion.
func Unmarshal(data []byte) (*Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("snapshot: decoding envelope: %w", err)
	}
	if e.Version != EnvelopeVersion {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVersion, e.Version)
	}
	return &e, nil
}
