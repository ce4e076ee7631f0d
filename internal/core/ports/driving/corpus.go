package driving

import (
	"context"

	"github.com/custodia-labs/litarchive/internal/core/domain"
)

// CorpusService exposes the loaded corpus to external actors.
type CorpusService interface {
	// List returns every work in corpus order.
	List(ctx context.Context) ([]domain.Work, error)

	// Get returns a work by ID.
	Get(ctx context.Context, id string) (domain.Work, error)

	// Find resolves a work by ID, or else by case-insensitive exact title.
	Find(ctx context.Context, idOrTitle string) (domain.Work, error)

	// Authors returns the deduplicated authors in first-appearance order.
	Authors(ctx context.Context) ([]domain.AuthorEntry, error)

	// Stats returns aggregate counts.
	Stats(ctx context.Context) (domain.CorpusStats, error)

	// Reload reads the payload again and swaps in the new snapshot.
	// On failure the previous snapshot stays in place.
	Reload(ctx context.Context) error

	// Source describes the payload the corpus was loaded from.
	Source() string
}
