package embedding

import "math/rand"

// RandomProjectionReducer reduces dimensionality via a fixed random
// projection matrix drawn from a standard Gaussian, per the
// Johnson-Lindenstrauss approach: a random linear map approximately
// preserves pairwise distances with high probability.
type RandomProjectionReducer struct {
	originalDims int
	targetDims   int
	matrix       [][]float64 // targetDims x originalDims
	trained      bool
	seed         int64
}

// NewRandomProjectionReducer returns an untrained RandomProjectionReducer.
// seed fixes the projection matrix so results are reproducible across
// runs given the same seed.
func NewRandomProjectionReducer(seed int64) *RandomProjectionReducer {
	return &RandomProjectionReducer{seed: seed}
}

// Method returns "random_projection".
func (r *RandomProjectionReducer) Method() string { return "random_projection" }

// Trained reports whether Train has succeeded.
func (r *RandomProjectionReducer) Trained() bool { return r.trained }

// OriginalDimensions returns the trained input dimensionality, or 0 if
// untrained.
func (r *RandomProjectionReducer) OriginalDimensions() int { return r.originalDims }

// TargetDimensions returns the trained output dimensionality, or 0 if
// untrained.
func (r *RandomProjectionReducer) TargetDimensions() int { return r.targetDims }

// Train validates batch and draws a fixed targetDims x originalDims
// projection matrix from a seeded Gaussian source. Only batch's
// dimensionality is used; its values do not influence the matrix.
func (r *RandomProjectionReducer) Train(batch []Embedding, targetDims int) error {
	dims, err := validateBatch(batch)
	if err != nil {
		return err
	}
	if targetDims <= 0 || targetDims >= dims {
		return ErrTargetTooLarge
	}

	rng := rand.New(rand.NewSource(r.seed))
	matrix := make([][]float64, targetDims)
	for i := range matrix {
		row := make([]float64, dims)
		for j := range row {
			row[j] = rng.NormFloat64()
		}
		matrix[i] = row
	}

	r.originalDims = dims
	r.targetDims = targetDims
	r.matrix = matrix
	r.trained = true
	return nil
}

// Reduce projects e through the trained random matrix.
func (r *RandomProjectionReducer) Reduce(e Embedding) (Embedding, error) {
	if !r.trained {
		return Embedding{}, ErrUntrained
	}
	if e.Dimensions != r.originalDims {
		return Embedding{}, ErrDimensionMismatch
	}

	vector := make([]float64, r.targetDims)
	for i, row := range r.matrix {
		var sum float64
		for j, v := range row {
			sum += v * e.Vector[j]
		}
		vector[i] = sum
	}

	return Embedding{
		Vector:     vector,
		Model:      e.Model + "_reduced",
		Dimensions: r.targetDims,
		Metadata:   reducedMetadata(r.originalDims, r.targetDims, r.Method()),
	}, nil
}

// ReduceBatch maps Reduce over every element of batch.
func (r *RandomProjectionReducer) ReduceBatch(batch []Embedding) ([]Embedding, error) {
	out := make([]Embedding, len(batch))
	for i, e := range batch {
		reduced, err := r.Reduce(e)
		if err != nil {
			return nil, err
		}
		out[i] = reduced
	}
	return out, nil
}
