package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/custodia-labs/litarchive/internal/core/domain"
	"github.com/custodia-labs/litarchive/internal/core/ports/driven"
	"github.com/custodia-labs/litarchive/internal/core/ports/driving"
	"github.com/custodia-labs/litarchive/internal/logger"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// workNamespace scopes work IDs so they never collide with other UUIDv5 users.
var workNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("litarchive:work"))

// minIDPrefix is the shortest ID prefix Find accepts.
const minIDPrefix = 8

// Snapshot is one immutable, validated corpus version.
type Snapshot struct {
	Corpus     *domain.Corpus
	Generation uint64
	LoadedAt   time.Time
}

// CorpusService holds the current corpus snapshot and swaps it on reload.
// Readers never block; a reload builds a new snapshot off to the side and
// publishes it atomically.
type CorpusService struct {
	loader   driven.CorpusLoader
	current  atomic.Pointer[Snapshot]
	reloadMu sync.Mutex
	gen      uint64
}

// NewCorpusService creates a new corpus service. Call Load before use.
func NewCorpusService(loader driven.CorpusLoader) *CorpusService {
	return &CorpusService{loader: loader}
}

// Load reads the payload and publishes the first snapshot.
// A payload that breaks an invariant returns domain.ErrInvalidCorpus.
func (s *CorpusService) Load(ctx context.Context) error {
	return s.Reload(ctx)
}

// Reload reads the payload again and swaps in a new snapshot.
// On failure the previous snapshot stays in place.
func (s *CorpusService) Reload(ctx context.Context) error {
	if s.loader == nil {
		return fmt.Errorf("load corpus: %w", domain.ErrCorpusUnavailable)
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	logger.Section("Corpus Load")
	logger.Debug("Source: %s (%s)", s.loader.Source(), s.loader.Format().Description())

	works, err := s.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	return s.publish(works)
}

// Replace validates works, assigns IDs and publishes them as a new snapshot.
func (s *CorpusService) Replace(works []domain.Work) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()
	return s.publish(works)
}

// publish must be called with reloadMu held.
func (s *CorpusService) publish(works []domain.Work) error {
	corpus, err := domain.NewCorpus(AssignIDs(works))
	if err != nil {
		logger.Warn("Corpus rejected: %v", err)
		return fmt.Errorf("load corpus: %w", err)
	}

	s.gen++
	s.current.Store(&Snapshot{
		Corpus:     corpus,
		Generation: s.gen,
		LoadedAt:   time.Now(),
	})
	logger.Info("Loaded %d works (generation %d)", corpus.Len(), s.gen)
	return nil
}

// Snapshot returns the current snapshot.
func (s *CorpusService) Snapshot() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, domain.ErrCorpusUnavailable
	}
	return snap, nil
}

// List returns every work in corpus order.
func (s *CorpusService) List(ctx context.Context) ([]domain.Work, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Corpus.All(), nil
}

// Get returns a work by ID.
func (s *CorpusService) Get(ctx context.Context, id string) (domain.Work, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return domain.Work{}, err
	}
	return snap.Corpus.Get(id)
}

// Find resolves a work by exact ID, a unique ID prefix of at least eight
// characters, or a case-insensitive exact title. Titles resolve to the
// first work in corpus order.
func (s *CorpusService) Find(ctx context.Context, idOrTitle string) (domain.Work, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return domain.Work{}, err
	}
	if w, err := snap.Corpus.Get(idOrTitle); err == nil {
		return w, nil
	}

	works := snap.Corpus.All()
	if len(idOrTitle) >= minIDPrefix {
		var found []domain.Work
		for _, w := range works {
			if strings.HasPrefix(w.ID, idOrTitle) {
				found = append(found, w)
			}
		}
		if len(found) == 1 {
			return found[0], nil
		}
		if len(found) > 1 {
			return domain.Work{}, fmt.Errorf("id prefix %q is ambiguous: %w", idOrTitle, domain.ErrInvalidInput)
		}
	}

	caser := cases.Lower(language.Und)
	want := caser.String(idOrTitle)
	for _, w := range works {
		if caser.String(w.Analysis.Name) == want {
			return w, nil
		}
	}
	return domain.Work{}, fmt.Errorf("work %q: %w", idOrTitle, domain.ErrNotFound)
}

// Authors returns the deduplicated authors in first-appearance order.
func (s *CorpusService) Authors(ctx context.Context) ([]domain.AuthorEntry, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Corpus.Authors(), nil
}

// Stats returns aggregate counts.
func (s *CorpusService) Stats(ctx context.Context) (domain.CorpusStats, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return domain.CorpusStats{}, err
	}
	return snap.Corpus.Stats(), nil
}

// Source describes the payload the corpus was loaded from.
func (s *CorpusService) Source() string {
	if s.loader == nil {
		return ""
	}
	return s.loader.Source()
}

// AssignIDs returns a copy of works where every work without an ID gets one
// derived from its author name and title. Repeated author/title pairs are
// told apart by their occurrence count, so IDs are stable across reloads of
// the same payload.
func AssignIDs(works []domain.Work) []domain.Work {
	out := make([]domain.Work, len(works))
	seen := make(map[string]int, len(works))
	for i, w := range works {
		key := w.Author.Name + "\x00" + w.Analysis.Name
		n := seen[key]
		seen[key] = n + 1
		if w.ID == "" {
			w.ID = WorkID(w.Author.Name, w.Analysis.Name, n)
		}
		out[i] = w
	}
	return out
}

// WorkID derives the ID of the occurrence-th work by author titled title.
func WorkID(author, title string, occurrence int) string {
	name := author + "\x00" + title
	if occurrence > 0 {
		name += "\x00" + strconv.Itoa(occurrence)
	}
	return uuid.NewSHA1(workNamespace, []byte(name)).String()
}
