package httpapi

import (
	"github.com/custodia-labs/litarchive/internal/core/ports/driving"
)

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	Search driving.SearchService
	Corpus driving.CorpusService
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

// Options tunes the HTTP server.
type Options struct {
	// RateLimit is the sustained requests per second across all clients.
	// Zero disables rate limiting.
	RateLimit float64

	// Burst is the token bucket size. Ignored when RateLimit is zero.
	Burst int
}
