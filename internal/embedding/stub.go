package embedding

import (
	"context"
	"hash/fnv"
	"math"
)

// StubEmbedder is a deterministic Embedder for tests: it derives a
// fixed-dimension vector from a hash of the input text, never calls out
// to a network, and always returns identical output for identical input.
type StubEmbedder struct {
	Model      string
	Dimensions int
}

// NewStubEmbedder returns a StubEmbedder producing vectors of the given
// dimension under the given model name.
func NewStubEmbedder(model string, dimensions int) *StubEmbedder {
	return &StubEmbedder{Model: model, Dimensions: dimensions}
}

// Embed deterministically derives a vector from text via a seeded hash
// chain, so identical text always yields an identical vector.
func (s *StubEmbedder) Embed(_ context.Context, text string) (Embedding, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum64()

	vector := make([]float64, s.Dimensions)
	state := seed
	for i := range vector {
		state = state*6364136223846793005 + 1442695040888963407
		vector[i] = (float64(state>>11) / float64(1<<53)) * 2 * math.Pi
		vector[i] = math.Sin(vector[i])
	}

	return Embedding{
		Vector:     vector,
		Model:      s.Model,
		Dimensions: s.Dimensions,
		Metadata:   map[string]string{},
	}, nil
}
