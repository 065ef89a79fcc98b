package embedding

import "errors"

var (
	// ErrDimensionMismatch is returned when two vectors or an embedding and
	// a reducer disagree on dimensionality.
	ErrDimensionMismatch = errors.New("embedding: dimension mismatch")

	// ErrUnknownModel is returned when a model descriptor name has no
	// registered dimension and none was supplied explicitly.
	ErrUnknownModel = errors.New("embedding: unknown model descriptor")

	// ErrUntrained is returned when reduce is called before the reducer
	// has been trained.
	ErrUntrained = errors.New("embedding: reducer not trained")

	// ErrEmptyBatch is returned when training is attempted on an empty
	// batch.
	ErrEmptyBatch = errors.New("embedding: training batch is empty")

	// ErrInconsistentDimensions is returned when a training batch's
	// embeddings do not all share one dimensionality.
	ErrInconsistentDimensions = errors.New("embedding: training batch has inconsistent dimensions")

	// ErrTargetTooLarge is returned when a reducer's target dimension is
	// not strictly smaller than the training dimension.
	ErrTargetTooLarge = errors.New("embedding: target dimensions must be smaller than original dimensions")

	// ErrCircuitOpen is returned when the embedding capability's circuit
	// breaker is open and rejects calls to prevent cascading failures.
	ErrCircuitOpen = errors.New("embedding: circuit breaker is open")

	// ErrComputationFailure signals a numerical failure during training
	// (e.g. a singular covariance matrix for PCA).
	ErrComputationFailure = errors.New("embedding: computation failure")
)
