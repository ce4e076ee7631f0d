package driving

import (
	"context"

	"github.com/custodia-labs/litarchive/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search returns the works matching query in corpus order.
	// An empty query returns the whole corpus.
	Search(ctx context.Context, query string) ([]domain.Work, error)

	// Explain returns the same works as Search, each annotated with the
	// field kinds that matched.
	Explain(ctx context.Context, query string) ([]domain.Match, error)
}
