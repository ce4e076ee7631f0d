// Package cli provides the cobra command tree for litarchive.
// It is a driving adapter: commands talk to the core through driving ports
// and never construct driven adapters themselves. main installs a Wiring
// that builds them once flags are parsed.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/litarchive/internal/core/domain"
	"github.com/custodia-labs/litarchive/internal/core/ports/driven"
	"github.com/custodia-labs/litarchive/internal/core/ports/driving"
	"github.com/custodia-labs/litarchive/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	configDir  string
	corpusPath string
	verbose    bool
)

// Services used by commands. They are built lazily through wiring, or
// injected directly by tests.
var (
	searchService   driving.SearchService
	corpusService   driving.CorpusService
	settingsService driving.SettingsService
)

// Wiring constructs the driven side of the application.
type Wiring struct {
	// Settings opens the settings store in dir. An empty dir selects the
	// default location.
	Settings func(dir string) (driving.SettingsService, error)

	// Corpus loads the corpus at path and returns services over it.
	// An empty path selects the bundled sample corpus.
	Corpus func(ctx context.Context, path string, cacheSize int) (driving.CorpusService, driving.SearchService, error)

	// Watcher watches the corpus file at path.
	Watcher func(path string) (driven.CorpusWatcher, error)

	// Writer opens an export target at path.
	Writer func(path string) (driven.CorpusWriter, error)
}

var wiring Wiring

// SetWiring installs the constructors used to build services.
func SetWiring(w Wiring) {
	wiring = w
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "litarchive",
	Short: "Browse and search annotated literary works",
	Long: `litarchive browses a collection of literary works annotated with
authorship details and literary analysis (themes, motifs, characters).

Searching matches the query, case-insensitively, against work titles, author
names, and theme and motif names and descriptions. Results keep corpus order.

The corpus is read from --corpus, the LITARCHIVE_CORPUS_PATH environment
variable or corpus.path in the config file. JSON, YAML and SQLite payloads
are supported; without a path the bundled sample corpus is used.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.litarchive)")
	rootCmd.PersistentFlags().StringVar(&corpusPath, "corpus", "", "corpus file (.json, .yaml, .db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExitCode maps a command error to a process exit code. A corpus that
// breaks the data model exits with 2 so scripts can tell it apart.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrInvalidCorpus):
		return 2
	default:
		return 1
	}
}

// openSettings makes sure the settings service is available.
func openSettings() error {
	if settingsService != nil {
		return nil
	}
	if wiring.Settings == nil {
		return errors.New("settings service not configured")
	}
	svc, err := wiring.Settings(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService = svc
	return nil
}

// loadSettings resolves settings from the store, then applies flags.
func loadSettings() (*domain.AppSettings, error) {
	if err := openSettings(); err != nil {
		return nil, err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	if corpusPath != "" {
		settings.Corpus.Path = corpusPath
	}
	if settings.Log.Verbose {
		logger.SetVerbose(true)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// loadCorpus makes sure the corpus and search services are available.
// A corpus that fails validation is returned as domain.ErrInvalidCorpus.
func loadCorpus(ctx context.Context) (*domain.AppSettings, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	if corpusService != nil && searchService != nil {
		return settings, nil
	}
	if wiring.Corpus == nil {
		return nil, errors.New("corpus not configured")
	}

	corpus, search, err := wiring.Corpus(ctx, settings.Corpus.Path, settings.Search.CacheSize)
	if err != nil {
		return nil, err
	}
	corpusService = corpus
	searchService = search
	return settings, nil
}
