package file

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/litarchive/internal/core/ports/driven"
	"github.com/custodia-labs/litarchive/internal/logger"
)

// Ensure EnvOverlay implements the interface.
var _ driven.ConfigStore = (*EnvOverlay)(nil)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LITARCHIVE_"

// LoadDotEnv loads .env files into the process environment. Variables
// already set are not overwritten. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		logger.Debug("Loaded environment from %s", p)
	}
	return nil
}

// EnvKey returns the environment variable that overrides a config key,
// e.g. "server.rate_limit" becomes LITARCHIVE_SERVER_RATE_LIMIT.
func EnvKey(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// EnvOverlay reads environment variables before falling back to a base
// store. Writes go to the base store only, so overrides never get persisted.
type EnvOverlay struct {
	base   driven.ConfigStore
	lookup func(string) (string, bool)
}

// NewEnvOverlay wraps base with environment overrides.
func NewEnvOverlay(base driven.ConfigStore) *EnvOverlay {
	return &EnvOverlay{base: base, lookup: os.LookupEnv}
}

func (o *EnvOverlay) env(key string) (string, bool) {
	v, ok := o.lookup(EnvKey(key))
	if ok {
		logger.Debug("Config %s overridden by %s", key, EnvKey(key))
	}
	return v, ok
}

// Get returns the raw environment string when overridden.
func (o *EnvOverlay) Get(key string) (any, bool) {
	if v, ok := o.env(key); ok {
		return v, true
	}
	return o.base.Get(key)
}

// GetString retrieves a string configuration value.
func (o *EnvOverlay) GetString(key string) string {
	if v, ok := o.env(key); ok {
		return v
	}
	return o.base.GetString(key)
}

// GetInt retrieves an integer configuration value. Unparseable overrides
// read as 0.
func (o *EnvOverlay) GetInt(key string) int {
	if v, ok := o.env(key); ok {
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	}
	return o.base.GetInt(key)
}

// GetFloat retrieves a float configuration value.
func (o *EnvOverlay) GetFloat(key string) float64 {
	if v, ok := o.env(key); ok {
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	}
	return o.base.GetFloat(key)
}

// GetBool retrieves a boolean configuration value.
func (o *EnvOverlay) GetBool(key string) bool {
	if v, ok := o.env(key); ok {
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	}
	return o.base.GetBool(key)
}

// Set stores a value in the base store.
func (o *EnvOverlay) Set(key string, value any) error {
	return o.base.Set(key, value)
}

// Unset removes a value from the base store.
func (o *EnvOverlay) Unset(key string) error {
	return o.base.Unset(key)
}

// Keys returns the base store keys.
func (o *EnvOverlay) Keys() []string {
	return o.base.Keys()
}

// Save persists the base store.
func (o *EnvOverlay) Save() error {
	return o.base.Save()
}

// Load reloads the base store.
func (o *EnvOverlay) Load() error {
	return o.base.Load()
}

// Path returns the base store path.
func (o *EnvOverlay) Path() string {
	return o.base.Path()
}
