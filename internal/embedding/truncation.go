package embedding

// TruncationReducer reduces dimensionality by keeping the first N
// components and dropping the rest. It needs no training batch; the
// original and target dimensions are fixed at construction.
type TruncationReducer struct {
	originalDims int
	targetDims   int
}

// NewTruncationReducer returns a TruncationReducer that maps vectors of
// originalDims down to targetDims. It fails if targetDims is not
// strictly smaller than originalDims.
func NewTruncationReducer(originalDims, targetDims int) (*TruncationReducer, error) {
	if targetDims >= originalDims {
		return nil, ErrTargetTooLarge
	}
	return &TruncationReducer{originalDims: originalDims, targetDims: targetDims}, nil
}

// Method returns "truncation".
func (t *TruncationReducer) Method() string { return "truncation" }

// Trained always returns true: truncation needs no training step.
func (t *TruncationReducer) Trained() bool { return true }

// OriginalDimensions returns the expected input dimensionality.
func (t *TruncationReducer) OriginalDimensions() int { return t.originalDims }

// TargetDimensions returns the produced output dimensionality.
func (t *TruncationReducer) TargetDimensions() int { return t.targetDims }

// Reduce keeps e's first TargetDimensions components.
func (t *TruncationReducer) Reduce(e Embedding) (Embedding, error) {
	if e.Dimensions != t.originalDims {
		return Embedding{}, ErrDimensionMismatch
	}
	vector := make([]float64, t.targetDims)
	copy(vector, e.Vector[:t.targetDims])

	return Embedding{
		Vector:     vector,
		Model:      e.Model + "_reduced",
		Dimensions: t.targetDims,
		Metadata:   reducedMetadata(t.originalDims, t.targetDims, t.Method()),
	}, nil
}

// ReduceBatch maps Reduce over every element of batch.
func (t *TruncationReducer) ReduceBatch(batch []Embedding) ([]Embedding, error) {
	out := make([]Embedding, len(batch))
	for i, e := range batch {
		reduced, err := t.Reduce(e)
		if err != nil {
			return nil, err
		}
		out[i] = reduced
	}
	return out, nil
}
