package services

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/custodia-labs/litarchive/internal/core/domain"
	"github.com/custodia-labs/litarchive/internal/core/ports/driven"
	"github.com/custodia-labs/litarchive/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyCorpusPath      = "corpus.path"
	KeyCorpusWatch     = "corpus.watch"
	KeySearchCacheSize = "search.cache_size"
	KeyServerAddr      = "server.addr"
	KeyServerRateLimit = "server.rate_limit"
	KeyServerBurst     = "server.burst"
	KeyMCPPort         = "mcp.port"
	KeyLogVerbose      = "log.verbose"
)

type settingKind int

const (
	kindString settingKind = iota
	kindBool
	kindInt
	kindFloat
)

// settingKeys maps every supported key to its value type.
var settingKeys = map[string]settingKind{
	KeyCorpusPath:      kindString,
	KeyCorpusWatch:     kindBool,
	KeySearchCacheSize: kindInt,
	KeyServerAddr:      kindString,
	KeyServerRateLimit: kindFloat,
	KeyServerBurst:     kindInt,
	KeyMCPPort:         kindInt,
	KeyLogVerbose:      kindBool,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Keys missing from the store
// keep their defaults; a present zero value overrides the default.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Corpus: domain.CorpusSettings{
			Path:  s.getString(KeyCorpusPath, d.Corpus.Path),
			Watch: s.getBool(KeyCorpusWatch, d.Corpus.Watch),
		},
		Search: domain.SearchSettings{
			CacheSize: s.getInt(KeySearchCacheSize, d.Search.CacheSize),
		},
		Server: domain.ServerSettings{
			Addr:      s.getString(KeyServerAddr, d.Server.Addr),
			RateLimit: s.getFloat(KeyServerRateLimit, d.Server.RateLimit),
			Burst:     s.getInt(KeyServerBurst, d.Server.Burst),
		},
		MCP: domain.MCPSettings{
			Port: s.getInt(KeyMCPPort, d.MCP.Port),
		},
		Log: domain.LogSettings{
			Verbose: s.getBool(KeyLogVerbose, d.Log.Verbose),
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Set parses value for key and persists it. The resulting settings must
// still validate.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	parsed, err := parseSetting(kind, value)
	if err != nil {
		return fmt.Errorf("setting %s: %w: %v", key, domain.ErrInvalidInput, err)
	}

	previous, existed := s.configStore.Get(key)
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	if _, err := s.Get(); err != nil {
		if existed {
			_ = s.configStore.Set(key, previous)
		} else {
			_ = s.configStore.Unset(key)
		}
		return err
	}
	return nil
}

// Keys returns the supported setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Path returns the config file location.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func parseSetting(kind settingKind, value string) (any, error) {
	switch kind {
	case kindBool:
		return strconv.ParseBool(value)
	case kindInt:
		return strconv.Atoi(value)
	case kindFloat:
		return strconv.ParseFloat(value, 64)
	default:
		return value, nil
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetString(key)
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
