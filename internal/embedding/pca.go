package embedding

import "math"

// PCAReducer reduces dimensionality via principal-component projection:
// it centers the training batch, extracts the top TargetDimensions
// eigenvectors of the covariance matrix by power iteration with
// deflation, and projects onto that basis.
type PCAReducer struct {
	originalDims int
	targetDims   int
	mean         []float64
	components   [][]float64 // targetDims x originalDims, orthonormal
	trained      bool
}

// NewPCAReducer returns an untrained PCAReducer.
func NewPCAReducer() *PCAReducer {
	return &PCAReducer{}
}

// Method returns "PCA".
func (p *PCAReducer) Method() string { return "PCA" }

// Trained reports whether Train has succeeded.
func (p *PCAReducer) Trained() bool { return p.trained }

// OriginalDimensions returns the trained input dimensionality, or 0 if
// untrained.
func (p *PCAReducer) OriginalDimensions() int { return p.originalDims }

// TargetDimensions returns the trained output dimensionality, or 0 if
// untrained.
func (p *PCAReducer) TargetDimensions() int { return p.targetDims }

const (
	powerIterationSteps = 200
	powerIterationEps   = 1e-12
)

// Train computes the mean and covariance of batch and extracts the top
// targetDims eigenvectors by power iteration with deflation.
func (p *PCAReducer) Train(batch []Embedding, targetDims int) error {
	dims, err := validateBatch(batch)
	if err != nil {
		return err
	}
	if targetDims <= 0 || targetDims >= dims {
		return ErrTargetTooLarge
	}

	mean := make([]float64, dims)
	for _, e := range batch {
		for i, v := range e.Vector {
			mean[i] += v
		}
	}
	n := float64(len(batch))
	for i := range mean {
		mean[i] /= n
	}

	centered := make([][]float64, len(batch))
	for i, e := range batch {
		row := make([]float64, dims)
		for j, v := range e.Vector {
			row[j] = v - mean[j]
		}
		centered[i] = row
	}

	cov := make([][]float64, dims)
	for i := range cov {
		cov[i] = make([]float64, dims)
	}
	for _, row := range centered {
		for i := 0; i < dims; i++ {
			if row[i] == 0 {
				continue
			}
			for j := 0; j < dims; j++ {
				cov[i][j] += row[i] * row[j]
			}
		}
	}
	for i := range cov {
		for j := range cov[i] {
			cov[i][j] /= n
		}
	}

	components := make([][]float64, 0, targetDims)
	for k := 0; k < targetDims; k++ {
		vec, eigenvalue, err := dominantEigenvector(cov, dims)
		if err != nil {
			return err
		}
		components = append(components, vec)
		deflate(cov, vec, eigenvalue, dims)
	}

	p.mean = mean
	p.components = components
	p.originalDims = dims
	p.targetDims = targetDims
	p.trained = true
	return nil
}

// dominantEigenvector finds the top eigenvector/eigenvalue pair of a
// symmetric matrix m by power iteration.
func dominantEigenvector(m [][]float64, dims int) ([]float64, float64, error) {
	v := make([]float64, dims)
	for i := range v {
		v[i] = 1.0 / math.Sqrt(float64(dims))
	}

	var eigenvalue float64
	for iter := 0; iter < powerIterationSteps; iter++ {
		next := make([]float64, dims)
		for i := 0; i < dims; i++ {
			var sum float64
			for j := 0; j < dims; j++ {
				sum += m[i][j] * v[j]
			}
			next[i] = sum
		}

		var norm float64
		for _, x := range next {
			norm += x * x
		}
		norm = math.Sqrt(norm)
		if norm < powerIterationEps {
			return nil, 0, ErrComputationFailure
		}
		for i := range next {
			next[i] /= norm
		}

		eigenvalue = norm
		v = next
	}
	return v, eigenvalue, nil
}

// deflate subtracts eigenvalue * v * v^T from m in place, so the next
// power iteration converges to the next-largest eigenvector.
func deflate(m [][]float64, v []float64, eigenvalue float64, dims int) {
	for i := 0; i < dims; i++ {
		for j := 0; j < dims; j++ {
			m[i][j] -= eigenvalue * v[i] * v[j]
		}
	}
}

// Reduce centers e by the training mean and projects onto the trained
// component basis.
func (p *PCAReducer) Reduce(e Embedding) (Embedding, error) {
	if !p.trained {
		return Embedding{}, ErrUntrained
	}
	if e.Dimensions != p.originalDims {
		return Embedding{}, ErrDimensionMismatch
	}

	centered := make([]float64, p.originalDims)
	for i, v := range e.Vector {
		centered[i] = v - p.mean[i]
	}

	vector := make([]float64, p.targetDims)
	for k, component := range p.components {
		var sum float64
		for i, v := range centered {
			sum += v * component[i]
		}
		vector[k] = sum
	}

	return Embedding{
		Vector:     vector,
		Model:      e.Model + "_reduced",
		Dimensions: p.targetDims,
		Metadata:   reducedMetadata(p.originalDims, p.targetDims, p.Method()),
	}, nil
}

// ReduceBatch projects every element of batch onto the trained component
// basis by calling Reduce on each element in turn.
func (p *PCAReducer) ReduceBatch(batch []Embedding) ([]Embedding, error) {
	out := make([]Embedding, len(batch))
	for i, e := range batch {
		reduced, err := p.Reduce(e)
		if err != nil {
			return nil, err
		}
		out[i] = reduced
	}
	return out, nil
}
