package driven

import "github.com/custodia-labs/litarchive/internal/core/domain"

// ResultCache memoizes filtered work lists by key.
// Implementations must be safe for concurrent use.
type ResultCache interface {
	// Get returns the cached works for key.
	Get(key string) ([]domain.Work, bool)

	// Add stores works under key, evicting as needed.
	Add(key string, works []domain.Work)

	// Purge removes every entry.
	Purge()

	// Len returns the number of cached entries.
	Len() int
}
