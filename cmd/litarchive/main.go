// Command litarchive browses and searches a corpus of annotated literary
// works from the terminal, over HTTP and over MCP.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/litarchive/internal/adapters/driven/cache/lru"
	"github.com/custodia-labs/litarchive/internal/adapters/driven/config/file"
	"github.com/custodia-labs/litarchive/internal/adapters/driven/corpus"
	"github.com/custodia-labs/litarchive/internal/adapters/driven/watcher"
	"github.com/custodia-labs/litarchive/internal/adapters/driving/cli"
	"github.com/custodia-labs/litarchive/internal/core/ports/driven"
	"github.com/custodia-labs/litarchive/internal/core/ports/driving"
	"github.com/custodia-labs/litarchive/internal/core/services"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := file.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}

	cli.SetVersion(version)
	cli.SetWiring(cli.Wiring{
		Settings: openSettings,
		Corpus:   openCorpus,
		Watcher:  openWatcher,
		Writer:   corpus.NewWriter,
	})

	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}

// openSettings opens config.toml in dir with environment overrides on top.
func openSettings(dir string) (driving.SettingsService, error) {
	store, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, err
	}
	return services.NewSettingsService(file.NewEnvOverlay(store)), nil
}

// openCorpus loads the corpus at path and builds the services over it.
func openCorpus(ctx context.Context, path string, cacheSize int) (driving.CorpusService, driving.SearchService, error) {
	loader, err := corpus.Open(path)
	if err != nil {
		return nil, nil, err
	}

	corpusService := services.NewCorpusService(loader)
	if err := corpusService.Load(ctx); err != nil {
		return nil, nil, err
	}

	var cache driven.ResultCache
	if cacheSize > 0 {
		c, err := lru.New(cacheSize)
		if err != nil {
			return nil, nil, fmt.Errorf("creating search cache: %w", err)
		}
		cache = c
	}

	return corpusService, services.NewSearchService(corpusService, cache), nil
}

func openWatcher(path string) (driven.CorpusWatcher, error) {
	w, err := watcher.New(path, watcher.Options{})
	if err != nil {
		return nil, err
	}
	return w, nil
}
