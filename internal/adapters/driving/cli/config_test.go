package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/litarchive/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/litarchive/internal/core/domain"
	"github.com/custodia-labs/litarchive/internal/core/services"
)

func TestConfigCmd_Subcommands(t *testing.T) {
	names := make([]string, 0, len(configCmd.Commands()))
	for _, c := range configCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"show", "set", "path"}, names)
}

func TestConfigShow_Defaults(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Path:  (bundled sample)")
	assert.Contains(t, out, "Cache size: 256 queries")
	assert.Contains(t, out, "Address:    127.0.0.1:8080")
	assert.Contains(t, out, "Rate limit: 20 req/s (burst 40)")
	assert.Contains(t, out, "Port: stdio")
}

func TestConfigShow_IsDefaultSubcommand(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "config")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
}

func TestConfigShow_CorpusFlagOverrides(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "--corpus", "/data/works.json", "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Path:  /data/works.json")
}

func TestConfigSet(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "config", "set", "search.cache_size", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Set search.cache_size = 0")

	out, err = run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Cache size: disabled")
}

func TestConfigSet_InvalidValue(t *testing.T) {
	setupTestServices(t)

	_, err := run(t, "config", "set", "mcp.port", "not-a-number")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigSet_FixesInvalidSettings(t *testing.T) {
	setupTestServices(t)
	store := memory.NewConfigStore()
	require.NoError(t, store.Set("server.rate_limit", -1.0))
	settingsService = services.NewSettingsService(store)

	_, err := run(t, "config", "show")
	require.Error(t, err)

	_, err = run(t, "config", "set", "server.rate_limit", "5")
	require.NoError(t, err)

	_, err = run(t, "config", "show")
	assert.NoError(t, err)
}

func TestConfigPath(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "config", "path")

	require.NoError(t, err)
	assert.Contains(t, out, ":memory:")
}
