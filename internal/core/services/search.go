package services

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync/atomic"

	"github.com/custodia-labs/litarchive/internal/core/domain"
	"github.com/custodia-labs/litarchive/internal/core/ports/driven"
	"github.com/custodia-labs/litarchive/internal/core/ports/driving"
	"github.com/custodia-labs/litarchive/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService filters the current corpus snapshot.
type SearchService struct {
	corpus *CorpusService
	cache  driven.ResultCache

	// cachedGen is the snapshot generation the cache entries belong to.
	cachedGen atomic.Uint64
}

// NewSearchService creates a new search service.
// The cache parameter is optional (can be nil).
func NewSearchService(corpus *CorpusService, cache driven.ResultCache) *SearchService {
	return &SearchService{
		corpus: corpus,
		cache:  cache,
	}
}

// Search returns the works matching query in corpus order.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.Work, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap, err := s.corpus.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	key := cacheKey(snap.Generation, query)
	if s.cache != nil {
		s.invalidate(snap.Generation)
		if works, ok := s.cache.Get(key); ok {
			logger.Debug("Cache hit: %d works", len(works))
			return slices.Clone(works), nil
		}
	}

	works := Filter(snap.Corpus.All(), query)
	logger.Debug("Matched %d of %d works", len(works), snap.Corpus.Len())

	if s.cache != nil {
		s.cache.Add(key, slices.Clone(works))
	}
	return works, nil
}

// Explain returns the matching works with the field kinds that matched.
func (s *SearchService) Explain(ctx context.Context, query string) ([]domain.Match, error) {
	logger.Section("Search Explain")
	logger.Debug("Query: %q", query)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap, err := s.corpus.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	matches := Explain(snap.Corpus.All(), query)
	logger.Debug("Matched %d of %d works", len(matches), snap.Corpus.Len())
	return matches, nil
}

// invalidate drops cached results from older snapshots.
func (s *SearchService) invalidate(gen uint64) {
	old := s.cachedGen.Load()
	if old == gen {
		return
	}
	if s.cachedGen.CompareAndSwap(old, gen) {
		logger.Debug("Snapshot changed (%d -> %d), purging %d cached queries", old, gen, s.cache.Len())
		s.cache.Purge()
	}
}

func cacheKey(gen uint64, query string) string {
	return strconv.FormatUint(gen, 10) + "\x00" + query
}
