package embedding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/engramdb/internal/embedding"
)

// TestS6_ReducerRoundTrip covers spec scenario S6.
func TestS6_ReducerRoundTrip(t *testing.T) {
	batch := makeBatch(10, 20)

	p := embedding.NewPCAReducer()
	require.NoError(t, p.Train(batch, 5))

	reduced, err := p.Reduce(batch[0])
	require.NoError(t, err)

	assert.Len(t, reduced.Vector, 5)
	assert.Equal(t, 5, reduced.Dimensions)
	assert.Equal(t, map[string]string{
		"original_dimensions": "20",
		"reduction_method":    "PCA",
		"target_dimensions":   "5",
	}, reduced.Metadata)
}

func TestPCAReducer_ReduceBeforeTrainFails(t *testing.T) {
	p := embedding.NewPCAReducer()
	_, err := p.Reduce(embedding.Embedding{Vector: []float64{1, 2}, Dimensions: 2})
	assert.ErrorIs(t, err, embedding.ErrUntrained)
}

func TestPCAReducer_EmptyBatchFails(t *testing.T) {
	p := embedding.NewPCAReducer()
	err := p.Train(nil, 2)
	assert.ErrorIs(t, err, embedding.ErrEmptyBatch)
}

func TestPCAReducer_TargetTooLargeFails(t *testing.T) {
	p := embedding.NewPCAReducer()
	batch := makeBatch(5, 10)
	err := p.Train(batch, 10)
	assert.ErrorIs(t, err, embedding.ErrTargetTooLarge)
}

func TestPCAReducer_DimensionMismatchOnReduce(t *testing.T) {
	p := embedding.NewPCAReducer()
	batch := makeBatch(10, 20)
	require.NoError(t, p.Train(batch, 5))

	_, err := p.Reduce(embedding.Embedding{Vector: []float64{1, 2}, Dimensions: 2})
	assert.ErrorIs(t, err, embedding.ErrDimensionMismatch)
}

func TestPCAReducer_ReduceBatchMatchesReduce(t *testing.T) {
	batch := makeBatch(10, 20)
	p := embedding.NewPCAReducer()
	require.NoError(t, p.Train(batch, 5))

	reducedBatch, err := p.ReduceBatch(batch[:3])
	require.NoError(t, err)
	require.Len(t, reducedBatch, 3)

	for i, e := range batch[:3] {
		single, err := p.Reduce(e)
		require.NoError(t, err)
		assert.Equal(t, single.Vector, reducedBatch[i].Vector)
	}
}
