package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/litarchive/internal/core/domain"
)

func TestNewWriter_RoundTrip(t *testing.T) {
	for _, name := range []string{"out.json", "out.yaml", "out.db"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			works := expectedBare()
			works[0].ID = "a"
			works[1].ID = "b"

			w, err := NewWriter(path)
			require.NoError(t, err)
			require.NoError(t, w.Write(context.Background(), works))
			require.NoError(t, w.Close())

			loader, err := Open(path)
			require.NoError(t, err)
			got, err := loader.Load(context.Background())
			require.NoError(t, err)

			assert.Equal(t, works, got)
		})
	}
}

func TestNewWriter_Unsupported(t *testing.T) {
	_, err := NewWriter(filepath.Join(t.TempDir(), "out.csv"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, err = NewWriter("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFileWriter_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(context.Background(), expectedBare()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"out.json", "out.json.lock"}, names)
}

func TestLockedWriter_Contention(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	held := flock.New(path + ".lock")
	locked, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer held.Unlock()

	w, err := NewWriter(path)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	err = w.Write(ctx, expectedBare())
	assert.ErrorIs(t, err, ErrLocked)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
