package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for docquery resources.
	uriScheme = "docquery://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing documents.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "List of all indexed documentation files",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for a document's heading structure.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{filename}/headings",
		Name:        "document-headings",
		Description: "Heading structure of a specific documentation file",
		MIMEType:    "application/json",
	}, s.handleHeadingsResource)
}

// handleDocumentsResource returns the list of indexed documents.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docs := s.ports.Query.ListDocuments(ctx)
	if docs == nil {
		docs = []string{}
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleHeadingsResource returns the heading structure of one document.
func (s *Server) handleHeadingsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract filename from URI: docquery://documents/{filename}/headings
	filename := extractFilename(req.Params.URI)
	if filename == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	headings := s.ports.Query.DocumentHeadings(ctx, filename)
	if len(headings) == 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	infos := make([]HeadingOutput, len(headings))
	for i := range headings {
		infos[i] = HeadingOutput{
			Level: headings[i].Level,
			Title: headings[i].Title,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling headings: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractFilename extracts the filename from a URI like
// docquery://documents/{filename}/headings.
func extractFilename(uri string) string {
	const prefix = uriScheme + "documents/"
	const suffix = "/headings"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
