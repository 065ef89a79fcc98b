// Package storage implements the persistent key/value store: six
// family-partitioned keyspaces (engram, connection, collection, agent,
// context, metadata) backed by an embedded modernc.org/sqlite database,
// with atomic write-batch transactions and forward prefix-scan listing.
package storage

import "errors"

// Error taxonomy (spec §7). NotFound is represented as an absent optional
// on lookup (Get reports found == false, and GetEngram and the other typed
// getters return (nil, false, nil)) rather than an error; it only
// appears here as a distinct error variant surfaced from mutations that
// require the target to already exist.
var (
	// ErrNotFound indicates the requested entity id is absent.
	ErrNotFound = errors.New("storage: not found")

	// ErrInvalidInput indicates a malformed id, out-of-range value, or
	// dimension mismatch supplied by the caller.
	ErrInvalidInput = errors.New("storage: invalid input")

	// ErrConnectionEndpointMissing indicates a connection write whose
	// source or target engram is not present in the store.
	ErrConnectionEndpointMissing = errors.New("storage: connection endpoint missing")

	// ErrAccessDenied indicates a collection/agent access relation
	// predicate failed.
	ErrAccessDenied = errors.New("storage: access denied")

	// ErrStorageFailure wraps an underlying I/O failure.
	ErrStorageFailure = errors.New("storage: I/O failure")

	// ErrSerialization wraps an encode/decode failure, indicating
	// corruption.
	ErrSerialization = errors.New("storage: serialization failure")

	// ErrTransaction wraps a batch commit failure.
	ErrTransaction = errors.New("storage: transaction failure")

	// ErrInvalidState indicates an operation invoked in the wrong
	// lifecycle state (batch already committed/aborted, reducer untrained,
	// etc).
	ErrInvalidState = errors.New("storage: invalid state")

	// ErrConcurrency indicates a guard acquisition failed; callers may
	// retry.
	ErrConcurrency = errors.New("storage: concurrency failure")

	// ErrComputation indicates a numerical failure (e.g. a singular
	// matrix during reducer training).
	ErrComputation = errors.New("storage: computation failure")
)
