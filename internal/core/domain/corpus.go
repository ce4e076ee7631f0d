package domain

import (
	"fmt"
	"slices"
)

// Corpus is the ordered, immutable collection of works.
// Insertion order is the canonical display order.
type Corpus struct {
	works []Work
	byID  map[string]int
}

// AuthorEntry is a deduplicated author with the works attributed to them,
// in corpus order.
type AuthorEntry struct {
	Author  Author   `json:"author"`
	WorkIDs []string `json:"work_ids"`
	Titles  []string `json:"titles"`
}

// CorpusStats summarises the size of a corpus.
type CorpusStats struct {
	Works      int `json:"works"`
	Authors    int `json:"authors"`
	Themes     int `json:"themes"`
	Motifs     int `json:"motifs"`
	Characters int `json:"characters"`
	WithYear   int `json:"with_year"`
}

// NewCorpus validates works and builds a corpus. Every work must carry a
// title, an author name and a unique ID. The input slice is copied.
func NewCorpus(works []Work) (*Corpus, error) {
	c := &Corpus{
		works: slices.Clone(works),
		byID:  make(map[string]int, len(works)),
	}
	if c.works == nil {
		c.works = []Work{}
	}
	for i, w := range c.works {
		if err := w.Validate(i); err != nil {
			return nil, err
		}
		if w.ID == "" {
			return nil, &CorpusError{Index: i, Field: "id", Reason: "is empty"}
		}
		if prev, ok := c.byID[w.ID]; ok {
			return nil, &CorpusError{
				Index:  i,
				Field:  "id",
				Reason: fmt.Sprintf("duplicates work %d", prev),
			}
		}
		c.byID[w.ID] = i
	}
	return c, nil
}

// All returns the works in insertion order. The slice is a copy.
func (c *Corpus) All() []Work {
	return slices.Clone(c.works)
}

// Len returns the number of works.
func (c *Corpus) Len() int {
	return len(c.works)
}

// Get returns the work with the given ID.
func (c *Corpus) Get(id string) (Work, error) {
	i, ok := c.byID[id]
	if !ok {
		return Work{}, fmt.Errorf("work %q: %w", id, ErrNotFound)
	}
	return c.works[i], nil
}

// Authors returns authors deduplicated by name, in order of first appearance.
// The author details are taken from the first work that names them.
func (c *Corpus) Authors() []AuthorEntry {
	index := make(map[string]int)
	var entries []AuthorEntry
	for _, w := range c.works {
		i, ok := index[w.Author.Name]
		if !ok {
			i = len(entries)
			index[w.Author.Name] = i
			entries = append(entries, AuthorEntry{Author: w.Author})
		}
		entries[i].WorkIDs = append(entries[i].WorkIDs, w.ID)
		entries[i].Titles = append(entries[i].Titles, w.Analysis.Name)
	}
	if entries == nil {
		return []AuthorEntry{}
	}
	return entries
}

// Stats returns aggregate counts over the corpus.
func (c *Corpus) Stats() CorpusStats {
	seen := make(map[string]struct{})
	s := CorpusStats{Works: len(c.works)}
	for _, w := range c.works {
		seen[w.Author.Name] = struct{}{}
		s.Themes += len(w.Analysis.Themes)
		s.Motifs += len(w.Analysis.Motifs)
		s.Characters += len(w.Analysis.Characters)
		if w.Analysis.Year.IsPresent() {
			s.WithYear++
		}
	}
	s.Authors = len(seen)
	return s
}
