package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/litarchive/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/litarchive/internal/core/domain"
	"github.com/custodia-labs/litarchive/internal/core/ports/driven"
	"github.com/custodia-labs/litarchive/internal/core/services"
)

func testWorks() []domain.Work {
	return []domain.Work{
		{
			Author: domain.Author{Name: "Ivan Vazov", YearOfBirth: "1850", YearOfDeath: "1921"},
			Analysis: domain.Analysis{
				Name:    "Under the Yoke",
				Year:    domain.YearOf("1894"),
				Genre:   "Novel",
				Themes:  []domain.Theme{{ThemeName: "Freedom", Info: "Liberation from Ottoman rule"}},
				Summary: "A novel about the April Uprising.",
			},
		},
		{
			Author: domain.Author{Name: "Aleko Konstantinov", YearOfBirth: "1863", YearOfDeath: "1897"},
			Analysis: domain.Analysis{
				Name:       "Bay Ganyo",
				Genre:      "Feuilletons",
				Motifs:     []domain.Motif{{MotifName: "Travel", Info: "Journeys abroad"}},
				Characters: []domain.Character{{Name: "Ganyo Balkanski", Info: "Rose oil trader"}},
			},
		},
		{
			Author:   domain.Author{Name: "Ivan Vazov"},
			Analysis: domain.Analysis{Name: "Epic of the Forgotten", Year: domain.YearOf("1884")},
		},
	}
}

// setupTestServices installs real services over an in-memory corpus and
// settings store. Everything is reset when the test ends.
func setupTestServices(t *testing.T) *memory.CorpusLoader {
	t.Helper()
	t.Cleanup(resetCLI)

	loader := memory.NewCorpusLoader(testWorks())
	corpus := services.NewCorpusService(loader)
	require.NoError(t, corpus.Load(context.Background()))

	settingsService = services.NewSettingsService(memory.NewConfigStore())
	corpusService = corpus
	searchService = services.NewSearchService(corpus, nil)
	return loader
}

// resetCLI clears injected services, wiring and flag values.
func resetCLI() {
	searchService = nil
	corpusService = nil
	settingsService = nil
	wiring = Wiring{}

	configDir = ""
	corpusPath = ""
	verbose = false
	searchJSON = false
	searchExplain = false
	listJSON = false
	showJSON = false
	authorsJSON = false
	exportOut = ""
	serveAddr = ""
	serveWatch = false
	tuiWatch = false
	mcpWatch = false

	rootCmd.SetArgs(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
}

// run executes the root command with args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// fakeWatcher calls onChange once, then blocks until ctx is done.
type fakeWatcher struct {
	fired chan struct{}
	err   error
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{fired: make(chan struct{})}
}

func (w *fakeWatcher) Watch(ctx context.Context, onChange func(ctx context.Context) error) error {
	w.err = onChange(ctx)
	close(w.fired)
	<-ctx.Done()
	return nil
}

var _ driven.CorpusWatcher = (*fakeWatcher)(nil)
