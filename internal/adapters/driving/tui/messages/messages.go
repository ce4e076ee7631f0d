// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/litarchive/internal/core/domain"
)

// FilterCompleted carries the works matching Query back to the browse view.
// Total is the corpus size at the time of the filter.
type FilterCompleted struct {
	Query string
	Works []domain.Work
	Total int
	Err   error
}

// WorkSelected is sent when a work is chosen for the detail view.
type WorkSelected struct {
	Work domain.Work
}

// AuthorsLoaded carries the deduplicated author list.
type AuthorsLoaded struct {
	Authors []domain.AuthorEntry
	Err     error
}

// CorpusReloaded is sent after the corpus file changed and a new snapshot
// was published. Views holding results refresh them.
type CorpusReloaded struct{}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewBrowse is the live-filtered works list.
	ViewBrowse
	// ViewWork shows one work in full.
	ViewWork
	// ViewAuthors lists authors with their works.
	ViewAuthors
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewBrowse:
		return "browse"
	case ViewWork:
		return "work"
	case ViewAuthors:
		return "authors"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
