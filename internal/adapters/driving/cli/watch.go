package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/litarchive/internal/core/domain"
	"github.com/custodia-labs/litarchive/internal/core/ports/driven"
	"github.com/custodia-labs/litarchive/internal/logger"
)

// corpusWatcher returns a watcher for the corpus file when watching is
// enabled by flag or setting, or nil when it is not.
func corpusWatcher(settings *domain.AppSettings, flag bool) (driven.CorpusWatcher, error) {
	if !flag && !settings.Corpus.Watch {
		return nil, nil //nolint:nilnil // nil watcher means watching is off
	}
	if settings.Corpus.Path == "" {
		logger.Warn("Not watching: the bundled sample corpus cannot change")
		return nil, nil //nolint:nilnil // nil watcher means watching is off
	}
	if wiring.Watcher == nil {
		return nil, errors.New("watcher not configured")
	}
	return wiring.Watcher(settings.Corpus.Path)
}

// reloadCorpus is the watcher callback: reload, then notify.
func reloadCorpus(notify func()) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := corpusService.Reload(ctx); err != nil {
			return err
		}
		if notify != nil {
			notify()
		}
		return nil
	}
}
