package mcp

import (
	"context"

	"github.com/docquery/docquery/internal/core/domain"
	"github.com/docquery/docquery/internal/core/ports/driving"
)

// Ensure mock implements the interface.
var _ driving.QueryService = (*mockQueryService)(nil)

// mockQueryService is a configurable QueryService for handler tests.
// It records the arguments of the last Search call.
type mockQueryService struct {
	docs     []string
	headings map[string][]domain.Heading
	results  []domain.SearchResult

	lastQuery      string
	lastFilename   string
	lastMaxResults int
}

func (m *mockQueryService) ListDocuments(_ context.Context) []string {
	return m.docs
}

func (m *mockQueryService) DocumentHeadings(_ context.Context, filename string) []domain.Heading {
	return m.headings[filename]
}

func (m *mockQueryService) Search(_ context.Context, query, filename string, maxResults int) []domain.SearchResult {
	m.lastQuery = query
	m.lastFilename = filename
	m.lastMaxResults = maxResults
	return m.results
}
