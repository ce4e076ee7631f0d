// Package httpapi exposes the corpus over HTTP: a JSON API for listing and
// filtering works and a websocket that filters on every received frame.
package httpapi

import "errors"

var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("httpapi: search service is required")

	// ErrMissingCorpusService is returned when the corpus service is not provided.
	ErrMissingCorpusService = errors.New("httpapi: corpus service is required")
)
