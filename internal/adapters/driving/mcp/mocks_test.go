package mcp

import (
	"context"

	"github.com/custodia-labs/litarchive/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	works     []domain.Work
	err       error
	lastQuery string
}

func (m *mockSearchService) Search(_ context.Context, query string) ([]domain.Work, error) {
	m.lastQuery = query
	return m.works, m.err
}

func (m *mockSearchService) Explain(_ context.Context, query string) ([]domain.Match, error) {
	m.lastQuery = query
	matches := make([]domain.Match, len(m.works))
	for i := range m.works {
		matches[i] = domain.Match{Work: m.works[i]}
	}
	return matches, m.err
}

// mockCorpusService is a mock implementation of driving.CorpusService.
type mockCorpusService struct {
	works   []domain.Work
	authors []domain.AuthorEntry
	err     error
}

func (m *mockCorpusService) List(_ context.Context) ([]domain.Work, error) {
	return m.works, m.err
}

func (m *mockCorpusService) Get(_ context.Context, id string) (domain.Work, error) {
	if m.err != nil {
		return domain.Work{}, m.err
	}
	for _, w := range m.works {
		if w.ID == id {
			return w, nil
		}
	}
	return domain.Work{}, domain.ErrNotFound
}

func (m *mockCorpusService) Find(ctx context.Context, idOrTitle string) (domain.Work, error) {
	return m.Get(ctx, idOrTitle)
}

func (m *mockCorpusService) Authors(_ context.Context) ([]domain.AuthorEntry, error) {
	return m.authors, m.err
}

func (m *mockCorpusService) Stats(_ context.Context) (domain.CorpusStats, error) {
	return domain.CorpusStats{Works: len(m.works)}, m.err
}

func (m *mockCorpusService) Reload(_ context.Context) error {
	return m.err
}

func (m *mockCorpusService) Source() string {
	return "mock"
}

func yoke() domain.Work {
	return domain.Work{
		ID: "w-yoke",
		Author: domain.Author{
			Name:        "Ivan Vazov",
			YearOfBirth: "1850",
			YearOfDeath: "1921",
		},
		Analysis: domain.Analysis{
			Name:       "Under the Yoke",
			Year:       domain.YearOf("1894"),
			Genre:      "Novel",
			Themes:     []domain.Theme{{ThemeName: "Freedom", Info: "National liberation"}},
			Motifs:     []domain.Motif{{MotifName: "Sacrifice"}},
			Characters: []domain.Character{{Name: "Boycho Ognyanov", Info: "Revolutionary"}},
			Summary:    "Bulgarian life before the April Uprising.",
		},
	}
}
