package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/litarchive/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for litarchive resources.
	uriScheme = "litarchive://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "works",
		Name:        "works",
		Description: "Every work in the archive, in display order",
		MIMEType:    "application/json",
	}, s.handleWorksResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "works/{workId}",
		Name:        "work",
		Description: "Full analysis of a single work",
		MIMEType:    "application/json",
	}, s.handleWorkResource)
}

// handleWorksResource lists every work. An empty query through the search
// port returns the whole corpus.
func (s *Server) handleWorksResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	works, err := s.ports.Search.Search(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing works: %w", err)
	}

	summaries := make([]WorkSummary, len(works))
	for i := range works {
		summaries[i] = toSummary(&works[i])
	}
	return jsonResource(req.Params.URI, summaries)
}

// handleWorkResource returns a single work.
func (s *Server) handleWorkResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Corpus == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract workId from URI: litarchive://works/{workId}
	id := extractWorkID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	work, err := s.ports.Corpus.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting work: %w", err)
	}
	return jsonResource(req.Params.URI, toWorkOutput(&work))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractWorkID extracts the work ID from a URI like litarchive://works/{workId}.
func extractWorkID(uri string) string {
	const prefix = uriScheme + "works/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
