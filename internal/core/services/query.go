package services

import (
	"context"

	"github.com/docquery/docquery/internal/core/domain"
	"github.com/docquery/docquery/internal/core/ports/driving"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService is the read-only facade over the corpus and search engine.
// It backs every external boundary (MCP tools, CLI, TUI) with identical
// semantics.
type QueryService struct {
	corpus *domain.Corpus
	search *SearchService
}

// NewQueryService creates the facade over an already loaded corpus.
func NewQueryService(corpus *domain.Corpus, search *SearchService) *QueryService {
	return &QueryService{corpus: corpus, search: search}
}

// ListDocuments returns the sorted unique filenames with at least one chunk.
func (q *QueryService) ListDocuments(_ context.Context) []string {
	return q.corpus.Documents()
}

// DocumentHeadings returns one document's heading structure. Unknown
// filenames yield an empty list, not an error.
func (q *QueryService) DocumentHeadings(_ context.Context, filename string) []domain.Heading {
	return q.corpus.Headings(filename)
}

// Search runs a ranked similarity query. maxResults is clamped to [1,20];
// an empty filename means unfiltered.
func (q *QueryService) Search(ctx context.Context, query, filename string, maxResults int) []domain.SearchResult {
	return q.search.Search(ctx, query, filename, domain.ClampMaxResults(maxResults))
}
