package embedding_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/engramdb/internal/embedding"
)

func makeBatch(n, dims int) []embedding.Embedding {
	batch := make([]embedding.Embedding, n)
	for i := range batch {
		vec := make([]float64, dims)
		for j := range vec {
			a := float64(i + 1)
			b := float64(j + 1)
			vec[j] = math.Sin(a*0.7+b*0.3) + math.Cos(a*0.2-b*0.5)
		}
		batch[i] = embedding.Embedding{Vector: vec, Model: "m", Dimensions: dims}
	}
	return batch
}

func TestRandomProjectionReducer_ReduceBeforeTrainFails(t *testing.T) {
	r := embedding.NewRandomProjectionReducer(1)
	_, err := r.Reduce(embedding.Embedding{Vector: []float64{1, 2}, Dimensions: 2})
	assert.ErrorIs(t, err, embedding.ErrUntrained)
}

func TestRandomProjectionReducer_TrainAndReduce(t *testing.T) {
	r := embedding.NewRandomProjectionReducer(42)
	batch := makeBatch(10, 20)

	require.NoError(t, r.Train(batch, 5))
	assert.True(t, r.Trained())
	assert.Equal(t, 20, r.OriginalDimensions())
	assert.Equal(t, 5, r.TargetDimensions())

	reduced, err := r.Reduce(batch[0])
	require.NoError(t, err)
	assert.Len(t, reduced.Vector, 5)
	assert.Equal(t, "random_projection", reduced.Metadata["reduction_method"])
}

func TestRandomProjectionReducer_Deterministic(t *testing.T) {
	batch := makeBatch(5, 10)

	r1 := embedding.NewRandomProjectionReducer(7)
	require.NoError(t, r1.Train(batch, 3))
	out1, err := r1.Reduce(batch[0])
	require.NoError(t, err)

	r2 := embedding.NewRandomProjectionReducer(7)
	require.NoError(t, r2.Train(batch, 3))
	out2, err := r2.Reduce(batch[0])
	require.NoError(t, err)

	assert.Equal(t, out1.Vector, out2.Vector)
}

func TestRandomProjectionReducer_EmptyBatchFails(t *testing.T) {
	r := embedding.NewRandomProjectionReducer(1)
	err := r.Train(nil, 2)
	assert.ErrorIs(t, err, embedding.ErrEmptyBatch)
}

func TestRandomProjectionReducer_InconsistentDimensionsFails(t *testing.T) {
	r := embedding.NewRandomProjectionReducer(1)
	batch := []embedding.Embedding{
		{Vector: []float64{1, 2}, Dimensions: 2},
		{Vector: []float64{1, 2, 3}, Dimensions: 3},
	}
	err := r.Train(batch, 1)
	assert.ErrorIs(t, err, embedding.ErrInconsistentDimensions)
}

func TestRandomProjectionReducer_TargetTooLargeFails(t *testing.T) {
	r := embedding.NewRandomProjectionReducer(1)
	batch := makeBatch(3, 5)
	err := r.Train(batch, 5)
	assert.ErrorIs(t, err, embedding.ErrTargetTooLarge)
}
