// Package mcp provides an MCP (Model Context Protocol) server adapter for litarchive.
// It lets AI assistants search the corpus and read individual works.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingCorpusService is returned by tools that need the corpus service
// when it was not provided.
var ErrMissingCorpusService = errors.New("mcp: corpus service is not configured")
