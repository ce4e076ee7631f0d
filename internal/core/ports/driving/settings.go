package driving

import "github.com/custodia-labs/litarchive/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get resolves current application settings from defaults, the config
	// file and environment overrides.
	Get() (*domain.AppSettings, error)

	// Set parses and persists a single dotted key, e.g. "search.cache_size".
	Set(key, value string) error

	// Keys returns the supported setting keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Path returns the config file location.
	Path() string
}
