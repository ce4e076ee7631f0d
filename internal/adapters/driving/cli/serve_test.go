package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/litarchive/internal/core/domain"
	"github.com/custodia-labs/litarchive/internal/core/ports/driven"
)

func TestServeCmd_Flags(t *testing.T) {
	assert.NotNil(t, serveCmd.Flags().Lookup("addr"))
	assert.NotNil(t, serveCmd.Flags().Lookup("watch"))
	assert.NotNil(t, mcpServeCmd.Flags().Lookup("port"))
	assert.NotNil(t, mcpServeCmd.Flags().Lookup("watch"))
	assert.NotNil(t, tuiCmd.Flags().Lookup("watch"))
}

func TestCorpusWatcher(t *testing.T) {
	t.Cleanup(resetCLI)
	fake := newFakeWatcher()

	var gotPath string
	SetWiring(Wiring{Watcher: func(path string) (driven.CorpusWatcher, error) {
		gotPath = path
		return fake, nil
	}})

	tests := []struct {
		name     string
		settings domain.AppSettings
		flag     bool
		want     bool
	}{
		{"off", domain.AppSettings{Corpus: domain.CorpusSettings{Path: "w.json"}}, false, false},
		{"flag", domain.AppSettings{Corpus: domain.CorpusSettings{Path: "w.json"}}, true, true},
		{"setting", domain.AppSettings{Corpus: domain.CorpusSettings{Path: "w.json", Watch: true}}, false, true},
		{"sample corpus", domain.AppSettings{}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := corpusWatcher(&tt.settings, tt.flag)
			require.NoError(t, err)
			if tt.want {
				assert.Equal(t, driven.CorpusWatcher(fake), w)
				assert.Equal(t, "w.json", gotPath)
			} else {
				assert.Nil(t, w)
			}
		})
	}
}

func TestCorpusWatcher_NotConfigured(t *testing.T) {
	t.Cleanup(resetCLI)
	settings := domain.AppSettings{Corpus: domain.CorpusSettings{Path: "w.json"}}

	_, err := corpusWatcher(&settings, true)

	assert.EqualError(t, err, "watcher not configured")
}

func TestRunWithWatcher_ReloadsThenStops(t *testing.T) {
	loader := setupTestServices(t)
	require.Equal(t, 1, loader.Loads())

	fake := newFakeWatcher()
	stop := errors.New("listener closed")

	err := runWithWatcher(context.Background(), fake, func(ctx context.Context) error {
		<-fake.fired
		return stop
	})

	require.ErrorIs(t, err, stop)
	assert.Contains(t, err.Error(), "server stopped")
	assert.NoError(t, fake.err)
	assert.Equal(t, 2, loader.Loads())
}

func TestRunWithWatcher_NoWatcher(t *testing.T) {
	setupTestServices(t)
	ctx, cancel := context.WithCancel(context.Background())

	err := runWithWatcher(ctx, nil, func(ctx context.Context) error {
		cancel()
		<-ctx.Done()
		return nil
	})

	assert.NoError(t, err)
}

func TestReloadCorpus_RejectedKeepsSnapshot(t *testing.T) {
	loader := setupTestServices(t)
	works := testWorks()
	works[0].Analysis.Name = ""
	loader.SetWorks(works)

	notified := false
	err := reloadCorpus(func() { notified = true })(context.Background())

	assert.ErrorIs(t, err, domain.ErrInvalidCorpus)
	assert.False(t, notified)

	listed, err := corpusService.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Under the Yoke", listed[0].Title())
}

func TestReloadCorpus_Notifies(t *testing.T) {
	loader := setupTestServices(t)
	loader.SetWorks(testWorks()[:1])

	notified := false
	err := reloadCorpus(func() { notified = true })(context.Background())

	require.NoError(t, err)
	assert.True(t, notified)

	listed, err := corpusService.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
