// Package tui provides an interactive terminal user interface for litarchive.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/litarchive/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search filters the corpus for the browse view.
	Search driving.SearchService

	// Corpus resolves works and authors.
	Corpus driving.CorpusService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(search driving.SearchService, corpus driving.CorpusService) *Ports {
	return &Ports{
		Search: search,
		Corpus: corpus,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Corpus == nil {
		return ErrMissingCorpusService
	}
	return nil
}
