package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docquery/docquery/internal/core/domain"
)

// snippetLimit caps the content returned per search result. Full sections
// are available through the headings resource.
const snippetLimit = 500

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []string `json:"documents"`
	Count     int      `json:"count"`
}

// HeadingsInput is the input schema for the get_document_headings tool.
type HeadingsInput struct {
	Filename string `json:"filename" jsonschema:"name of the documentation file to inspect"`
}

// HeadingsOutput is the output schema for the get_document_headings tool.
type HeadingsOutput struct {
	Filename string          `json:"filename"`
	Headings []HeadingOutput `json:"headings"`
	Count    int             `json:"count"`
}

// HeadingOutput represents a single document heading.
type HeadingOutput struct {
	Level int    `json:"level"`
	Title string `json:"title"`
}

// SearchInput is the input schema for the search_documentation tool.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"the search query to find relevant documentation sections"`
	Filename   string `json:"filename,omitempty" jsonschema:"restrict results to one documentation file"`
	MaxResults *int   `json:"max_results,omitempty" jsonschema:"maximum number of results to return, 1 to 20 (default 5)"`
}

// SearchOutput is the output schema for the search_documentation tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Filename  string  `json:"filename"`
	Heading   string  `json:"heading"`
	Content   string  `json:"content"`
	Score     float64 `json:"score"`
	SourceURL string  `json:"source_url,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List all available documentation files",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_document_headings",
		Description: "Get the heading structure of a documentation file",
	}, s.handleDocumentHeadings)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documentation",
		Description: "Search the documentation by semantic similarity",
	}, s.handleSearch)
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs := s.ports.Query.ListDocuments(ctx)

	return nil, ListDocumentsOutput{
		Documents: docs,
		Count:     len(docs),
	}, nil
}

// handleDocumentHeadings handles the get_document_headings tool invocation.
func (s *Server) handleDocumentHeadings(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HeadingsInput,
) (*mcp.CallToolResult, HeadingsOutput, error) {
	headings := s.ports.Query.DocumentHeadings(ctx, input.Filename)

	output := HeadingsOutput{
		Filename: input.Filename,
		Headings: make([]HeadingOutput, len(headings)),
		Count:    len(headings),
	}
	for i := range headings {
		output.Headings[i] = HeadingOutput{
			Level: headings[i].Level,
			Title: headings[i].Title,
		}
	}

	return nil, output, nil
}

// handleSearch handles the search_documentation tool invocation.
// An omitted max_results defaults to 5; an explicit value is clamped to
// [1,20] by the query service.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	maxResults := domain.DefaultSearchResults
	if input.MaxResults != nil {
		maxResults = *input.MaxResults
	}

	results := s.ports.Query.Search(ctx, input.Query, input.Filename, maxResults)

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			Filename:  results[i].Filename,
			Heading:   results[i].Heading,
			Content:   truncateSnippet(results[i].Content),
			Score:     results[i].Score,
			SourceURL: results[i].SourceURL,
		}
	}

	return nil, output, nil
}

// truncateSnippet shortens content to snippetLimit characters, appending
// an ellipsis marker when anything was cut.
func truncateSnippet(content string) string {
	runes := []rune(content)
	if len(runes) <= snippetLimit {
		return content
	}
	return string(runes[:snippetLimit]) + "..."
}
