package embedding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/engramdb/internal/embedding"
)

func TestTruncationReducer_Reduce(t *testing.T) {
	r, err := embedding.NewTruncationReducer(5, 2)
	require.NoError(t, err)
	assert.True(t, r.Trained())

	e := embedding.Embedding{Vector: []float64{1, 2, 3, 4, 5}, Model: "m", Dimensions: 5}
	reduced, err := r.Reduce(e)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, reduced.Vector)
	assert.Equal(t, "m_reduced", reduced.Model)
	assert.Equal(t, 2, reduced.Dimensions)
	assert.Equal(t, "truncation", reduced.Metadata["reduction_method"])
	assert.Equal(t, "5", reduced.Metadata["original_dimensions"])
	assert.Equal(t, "2", reduced.Metadata["target_dimensions"])
}

func TestTruncationReducer_TargetTooLarge(t *testing.T) {
	_, err := embedding.NewTruncationReducer(5, 5)
	assert.ErrorIs(t, err, embedding.ErrTargetTooLarge)
}

func TestTruncationReducer_DimensionMismatch(t *testing.T) {
	r, err := embedding.NewTruncationReducer(5, 2)
	require.NoError(t, err)

	_, err = r.Reduce(embedding.Embedding{Vector: []float64{1, 2, 3}, Dimensions: 3})
	assert.ErrorIs(t, err, embedding.ErrDimensionMismatch)
}
