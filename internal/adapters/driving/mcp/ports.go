package mcp

import (
	"github.com/custodia-labs/litarchive/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Search filters the corpus.
	Search driving.SearchService

	// Corpus resolves single works and authors.
	Corpus driving.CorpusService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Corpus is optional; get_work, list_authors and work resources need it.
	return nil
}
