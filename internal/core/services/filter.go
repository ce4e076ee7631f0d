package services

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/custodia-labs/litarchive/internal/core/domain"
)

// matcher tests fields of a work against a normalized query.
// A Caser keeps state, so each matcher owns one and must not be shared
// between goroutines.
type matcher struct {
	caser  cases.Caser
	needle string
}

func newMatcher(query string) *matcher {
	// Final sigma folding is context dependent and breaks substring
	// containment between a query and its extensions.
	m := &matcher{caser: cases.Lower(language.Und, cases.HandleFinalSigma(false))}
	m.needle = m.fold(query)
	return m
}

func (m *matcher) fold(s string) string {
	return m.caser.String(s)
}

func (m *matcher) contains(s string) bool {
	return strings.Contains(m.fold(s), m.needle)
}

// fields returns the matched field kinds of w. When first is set it stops
// at the first match.
func (m *matcher) fields(w *domain.Work, first bool) []domain.MatchField {
	var out []domain.MatchField
	if m.contains(w.Analysis.Name) {
		out = append(out, domain.MatchFieldTitle)
		if first {
			return out
		}
	}
	if m.contains(w.Author.Name) {
		out = append(out, domain.MatchFieldAuthor)
		if first {
			return out
		}
	}
	for _, t := range w.Analysis.Themes {
		if m.contains(t.ThemeName) || m.contains(t.Info) {
			out = append(out, domain.MatchFieldTheme)
			if first {
				return out
			}
			break
		}
	}
	for _, mo := range w.Analysis.Motifs {
		if m.contains(mo.MotifName) || m.contains(mo.Info) {
			out = append(out, domain.MatchFieldMotif)
			break
		}
	}
	// Characters are not searched.
	return out
}

// Filter returns the works whose title, author name, theme name or info, or
// motif name or info contains query, compared after Unicode lower-casing.
// The query is not trimmed. An empty query returns every work. The result
// keeps corpus order and is never nil.
func Filter(works []domain.Work, query string) []domain.Work {
	m := newMatcher(query)
	out := make([]domain.Work, 0, len(works))
	if m.needle == "" {
		return append(out, works...)
	}
	for i := range works {
		if len(m.fields(&works[i], true)) > 0 {
			out = append(out, works[i])
		}
	}
	return out
}

// Explain returns the same works as Filter, each with every matched field
// kind. An empty query yields matches with no fields.
func Explain(works []domain.Work, query string) []domain.Match {
	m := newMatcher(query)
	out := make([]domain.Match, 0, len(works))
	for i := range works {
		if m.needle == "" {
			out = append(out, domain.Match{Work: works[i], Fields: []domain.MatchField{}})
			continue
		}
		if f := m.fields(&works[i], false); len(f) > 0 {
			out = append(out, domain.Match{Work: works[i], Fields: f})
		}
	}
	return out
}
