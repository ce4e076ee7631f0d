package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/litarchive/internal/adapters/driven/corpus"
	"github.com/custodia-labs/litarchive/internal/core/domain"
)

func TestExportCmd_RequiresOut(t *testing.T) {
	setupTestServices(t)

	_, err := run(t, "export")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"out" not set`)
}

func TestExportCmd_NotConfigured(t *testing.T) {
	setupTestServices(t)

	_, err := run(t, "export", "--out", filepath.Join(t.TempDir(), "out.json"))

	assert.EqualError(t, err, "export not configured")
}

func TestExportCmd_RoundTrip(t *testing.T) {
	tests := []string{"out.json", "out.yaml", "out.db"}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			setupTestServices(t)
			SetWiring(Wiring{Writer: corpus.NewWriter})
			out := filepath.Join(t.TempDir(), name)

			stdout, err := run(t, "export", "--out", out)
			require.NoError(t, err)
			assert.Contains(t, stdout, "Exported 3 works to "+out)

			loader, err := corpus.Open(out)
			require.NoError(t, err)
			works, err := loader.Load(context.Background())
			require.NoError(t, err)

			require.Len(t, works, 3)
			assert.Equal(t, "Under the Yoke", works[0].Title())
			assert.Equal(t, "Journeys abroad", works[1].Analysis.Motifs[0].Info)
			assert.Equal(t, domain.YearOf("1884"), works[2].Analysis.Year)
			_, hasYear := works[1].Analysis.Year.Get()
			assert.False(t, hasYear)
		})
	}
}

func TestExportCmd_UnsupportedExtension(t *testing.T) {
	setupTestServices(t)
	SetWiring(Wiring{Writer: corpus.NewWriter})

	_, err := run(t, "export", "--out", filepath.Join(t.TempDir(), "out.csv"))

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
