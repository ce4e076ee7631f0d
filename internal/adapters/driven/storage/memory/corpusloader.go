package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/litarchive/internal/core/domain"
	"github.com/custodia-labs/litarchive/internal/core/ports/driven"
)

// Ensure CorpusLoader implements the interface.
var _ driven.CorpusLoader = (*CorpusLoader)(nil)

// CorpusLoader serves works held in memory. Tests use it to stand in for a
// file, and SetWorks simulates the payload changing between reloads.
type CorpusLoader struct {
	mu    sync.RWMutex
	works []domain.Work
	err   error
	loads int
}

// NewCorpusLoader creates a loader that returns a copy of works.
func NewCorpusLoader(works []domain.Work) *CorpusLoader {
	return &CorpusLoader{works: slices.Clone(works)}
}

// Load returns a copy of the held works, or the configured error.
func (l *CorpusLoader) Load(ctx context.Context) ([]domain.Work, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loads++
	if l.err != nil {
		return nil, l.err
	}
	return slices.Clone(l.works), nil
}

// SetWorks replaces the works returned by subsequent loads.
func (l *CorpusLoader) SetWorks(works []domain.Work) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.works = slices.Clone(works)
	l.err = nil
}

// SetError makes subsequent loads fail with err.
func (l *CorpusLoader) SetError(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}

// Loads returns how many times Load was called.
func (l *CorpusLoader) Loads() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loads
}

// Format returns the payload format.
func (l *CorpusLoader) Format() domain.CorpusFormat {
	return domain.CorpusFormatSample
}

// Source describes where the payload lives.
func (l *CorpusLoader) Source() string {
	return ":memory:"
}
