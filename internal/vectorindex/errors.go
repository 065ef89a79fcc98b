package vectorindex

import "errors"

var (
	// ErrDimensionMismatch is returned when an embedding's dimension
	// does not match the index's fixed dimension.
	ErrDimensionMismatch = errors.New("vectorindex: dimension mismatch")

	// ErrNotFound is returned by SearchByID when id is not present in
	// the index.
	ErrNotFound = errors.New("vectorindex: id not found")

	// ErrConcurrency is returned when a guard cannot be acquired
	// promptly rather than blocking a caller indefinitely.
	ErrConcurrency = errors.New("vectorindex: concurrency failure")
)
