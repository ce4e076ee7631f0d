package domain

import (
	"path/filepath"
	"strings"
)

const unknownDescription = "Unknown"

// CorpusFormat identifies the serialization of a corpus payload.
type CorpusFormat string

// Supported corpus formats.
const (
	// CorpusFormatJSON is a JSON array of works or a processed envelope.
	CorpusFormatJSON CorpusFormat = "json"

	// CorpusFormatYAML is the YAML equivalent of the JSON payload.
	CorpusFormatYAML CorpusFormat = "yaml"

	// CorpusFormatSQLite is a SQLite database written by the export command.
	CorpusFormatSQLite CorpusFormat = "sqlite"

	// CorpusFormatSample is the corpus bundled with the binary.
	CorpusFormatSample CorpusFormat = "sample"
)

// IsValid returns true if the format is recognised.
func (f CorpusFormat) IsValid() bool {
	switch f {
	case CorpusFormatJSON, CorpusFormatYAML, CorpusFormatSQLite, CorpusFormatSample:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f CorpusFormat) String() string {
	return string(f)
}

// Description returns a human-readable description of the format.
func (f CorpusFormat) Description() string {
	switch f {
	case CorpusFormatJSON:
		return "JSON file"
	case CorpusFormatYAML:
		return "YAML file"
	case CorpusFormatSQLite:
		return "SQLite database"
	case CorpusFormatSample:
		return "Bundled sample corpus"
	default:
		return unknownDescription
	}
}

// FormatFromPath infers the corpus format from a file extension.
// An empty path selects the bundled sample.
func FormatFromPath(path string) (CorpusFormat, error) {
	if path == "" {
		return CorpusFormatSample, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return CorpusFormatJSON, nil
	case ".yaml", ".yml":
		return CorpusFormatYAML, nil
	case ".db", ".sqlite", ".sqlite3":
		return CorpusFormatSQLite, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// CorpusSettings holds where the corpus comes from.
type CorpusSettings struct {
	// Path is the corpus file. Empty selects the bundled sample.
	Path string

	// Watch reloads the corpus when the file changes.
	Watch bool
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// CacheSize is the number of memoized queries. Zero disables the cache.
	CacheSize int
}

// ServerSettings holds HTTP API configuration.
type ServerSettings struct {
	// Addr is the listen address, e.g. "127.0.0.1:8080".
	Addr string

	// RateLimit is the sustained requests per second. Zero disables limiting.
	RateLimit float64

	// Burst is the token bucket size.
	Burst int
}

// MCPSettings holds MCP server configuration.
type MCPSettings struct {
	// Port serves streamable HTTP when non-zero, stdio otherwise.
	Port int
}

// LogSettings holds logging configuration.
type LogSettings struct {
	Verbose bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Corpus CorpusSettings
	Search SearchSettings
	Server ServerSettings
	MCP    MCPSettings
	Log    LogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			CacheSize: 256,
		},
		Server: ServerSettings{
			Addr:      "127.0.0.1:8080",
			RateLimit: 20,
			Burst:     40,
		},
	}
}

// Validate checks settings values are usable.
func (s AppSettings) Validate() error {
	if s.Search.CacheSize < 0 {
		return &SettingsError{Key: "search.cache_size", Reason: "must not be negative"}
	}
	if s.Server.RateLimit < 0 {
		return &SettingsError{Key: "server.rate_limit", Reason: "must not be negative"}
	}
	if s.Server.RateLimit > 0 && s.Server.Burst < 1 {
		return &SettingsError{Key: "server.burst", Reason: "must be at least 1 when rate limiting"}
	}
	if s.MCP.Port < 0 || s.MCP.Port > 65535 {
		return &SettingsError{Key: "mcp.port", Reason: "out of range"}
	}
	if s.Corpus.Path != "" {
		if _, err := FormatFromPath(s.Corpus.Path); err != nil {
			return &SettingsError{Key: "corpus.path", Reason: "has an unsupported extension"}
		}
	}
	return nil
}
