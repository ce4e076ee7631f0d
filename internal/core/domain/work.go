package domain

// Author is the writer of a Work. Years are free-form and may be
// non-numeric, e.g. "unknown" or "c. 1830".
type Author struct {
	Name        string `json:"name" yaml:"name"`
	YearOfBirth string `json:"year_of_birth" yaml:"year_of_birth"`
	YearOfDeath string `json:"year_of_death" yaml:"year_of_death"`
	Information string `json:"information" yaml:"information"`
}

// Theme is a named theme of a work with explanatory text.
type Theme struct {
	ThemeName string `json:"theme_name" yaml:"theme_name"`
	Info      string `json:"info" yaml:"info"`
}

// Motif is a recurring motif of a work with explanatory text.
type Motif struct {
	MotifName string `json:"motif_name" yaml:"motif_name"`
	Info      string `json:"info" yaml:"info"`
}

// Character is a character of a work with descriptive text.
// Characters are displayed but never searched.
type Character struct {
	Name string `json:"name" yaml:"name"`
	Info string `json:"info" yaml:"info"`
}

// Analysis is the structured literary commentary for a Work.
type Analysis struct {
	// Name is the title of the work.
	Name string `json:"name" yaml:"name"`

	// Year is the publication year, which may be absent.
	Year Year `json:"year,omitzero" yaml:"year,omitempty"`

	Genre      string      `json:"genre" yaml:"genre"`
	Themes     []Theme     `json:"themes" yaml:"themes"`
	Motifs     []Motif     `json:"motifs" yaml:"motifs"`
	Characters []Character `json:"characters" yaml:"characters"`

	// Summary is the free-text analysis summary.
	Summary string `json:"analysis_summary" yaml:"analysis_summary"`
}

// Work pairs one Author with the Analysis of one literary piece.
// The Author is embedded per work; two works by the same writer carry
// structurally equal copies.
type Work struct {
	// ID is a stable identifier derived from author name and title.
	// It is assigned when a corpus is built and is not part of the payload.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	Author   Author   `json:"author" yaml:"author"`
	Analysis Analysis `json:"analysis" yaml:"analysis"`
}

// Title returns the work title.
func (w Work) Title() string {
	return w.Analysis.Name
}

// Validate checks the invariants every loaded work must satisfy.
// index is the work's position in its payload and is reported in errors.
func (w Work) Validate(index int) error {
	if w.Analysis.Name == "" {
		return &CorpusError{Index: index, Field: "analysis.name", Reason: "is empty"}
	}
	if w.Author.Name == "" {
		return &CorpusError{Index: index, Field: "author.name", Reason: "is empty"}
	}
	return nil
}
