package driven

import (
	"context"

	"github.com/custodia-labs/litarchive/internal/core/domain"
)

// CorpusLoader reads a corpus payload into works.
// Loaders decode and return works in payload order. They do not assign IDs
// or validate invariants; the corpus service does both.
type CorpusLoader interface {
	// Load reads every work from the payload.
	Load(ctx context.Context) ([]domain.Work, error)

	// Format returns the payload format.
	Format() domain.CorpusFormat

	// Source describes where the payload lives, e.g. a file path.
	Source() string
}

// CorpusWriter persists works into a payload that a CorpusLoader can read.
type CorpusWriter interface {
	// Write replaces the payload contents with works, preserving order.
	Write(ctx context.Context, works []domain.Work) error

	// Close releases any underlying resources.
	Close() error
}

// CorpusWatcher notifies when the corpus payload changes.
type CorpusWatcher interface {
	// Watch blocks until ctx is cancelled, calling onChange after each
	// settled burst of changes. Errors from onChange are logged, not fatal.
	Watch(ctx context.Context, onChange func(ctx context.Context) error) error
}
