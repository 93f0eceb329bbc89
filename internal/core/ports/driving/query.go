package driving

import (
	"context"

	"github.com/docquery/docquery/internal/core/domain"
)

// QueryService exposes the three read-only query operations over a loaded
// corpus. All operations are safe for concurrent use and never fail:
// unknown filenames and degraded embedding state produce empty results,
// not errors.
type QueryService interface {
	// ListDocuments returns the sorted unique filenames that contributed
	// at least one chunk.
	ListDocuments(ctx context.Context) []string

	// DocumentHeadings returns the heading structure of one document in
	// first-occurrence order, unique by (title, level). Unknown filenames
	// yield an empty list.
	DocumentHeadings(ctx context.Context, filename string) []domain.Heading

	// Search returns up to maxResults chunks ranked by semantic similarity
	// to the query. An empty filename means unfiltered; maxResults is
	// clamped to [1,20].
	Search(ctx context.Context, query, filename string, maxResults int) []domain.SearchResult
}
