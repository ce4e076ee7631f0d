package domain

// MatchField identifies which searchable field of a work matched a query.
type MatchField string

// Searchable field kinds. Characters, year, genre, summary and the
// author's biography are never searched.
const (
	MatchFieldTitle  MatchField = "title"
	MatchFieldAuthor MatchField = "author"
	MatchFieldTheme  MatchField = "theme"
	MatchFieldMotif  MatchField = "motif"
)

// String returns the string representation.
func (f MatchField) String() string {
	return string(f)
}

// Match is a work included by a query together with the field kinds that
// matched. Fields are informational and never affect ordering.
type Match struct {
	Work   Work         `json:"work"`
	Fields []MatchField `json:"fields"`
}

// Has reports whether the given field kind matched.
func (m Match) Has(f MatchField) bool {
	for _, x := range m.Fields {
		if x == f {
			return true
		}
	}
	return false
}
