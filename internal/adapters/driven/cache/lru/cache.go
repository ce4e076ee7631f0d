// Package lru provides a bounded in-memory ResultCache backed by
// hashicorp/golang-lru.
package lru

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/litarchive/internal/core/domain"
	"github.com/custodia-labs/litarchive/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.ResultCache = (*Cache)(nil)

// Cache memoizes filtered work lists, evicting least recently used queries.
type Cache struct {
	entries *lru.Cache[string, []domain.Work]
}

// New creates a cache holding at most size queries.
// Callers disable caching by not constructing one; size must be positive.
func New(size int) (*Cache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("lru cache size must be positive, got %d", size)
	}
	entries, err := lru.New[string, []domain.Work](size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Get returns the cached works for key.
func (c *Cache) Get(key string) ([]domain.Work, bool) {
	return c.entries.Get(key)
}

// Add stores works under key.
func (c *Cache) Add(key string, works []domain.Work) {
	c.entries.Add(key, works)
}

// Purge removes every entry.
func (c *Cache) Purge() {
	c.entries.Purge()
}

// Len returns the number of cached queries.
func (c *Cache) Len() int {
	return c.entries.Len()
}
