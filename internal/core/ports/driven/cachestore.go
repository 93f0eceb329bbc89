package driven

import (
	"context"

	"github.com/docquery/docquery/internal/core/domain"
)

// CacheStore persists the (fingerprint, chunk-list) pair between process
// runs so an unchanged corpus skips re-parsing and re-embedding.
//
// Lifecycle: the blob is absent initially, written only after a successful
// regeneration, fully overwritten on every save, and deleted outright when
// found invalid. Implementations must round-trip every chunk field,
// including embedding presence: an absent embedding must come back absent,
// never as a zero-length vector.
type CacheStore interface {
	// Load reads and structurally validates the persisted blob.
	// Returns domain.ErrNotFound when no blob exists. Any other error means
	// the blob is unreadable or malformed; callers treat that as an invalid
	// cache, delete it and regenerate.
	Load(ctx context.Context) (domain.Fingerprint, []domain.Chunk, error)

	// Save replaces the blob with the given pair.
	Save(ctx context.Context, fp domain.Fingerprint, chunks []domain.Chunk) error

	// Delete removes the blob. Deleting a missing blob is not an error.
	Delete() error
}
