package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist. The cache
	// store returns it when no blob has been persisted yet.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCacheInvalid indicates a persisted cache blob that could not be
	// read or fails structural validation. Never fatal: the loader deletes
	// the blob and regenerates.
	ErrCacheInvalid = errors.New("cache invalid")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable. Semantic search is disabled without it;
	// listing operations keep working.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
