// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/litarchive/internal/core/domain"
)

// EmptyMessage is shown when no work matches.
const EmptyMessage = "No works found."

// WorkList displays works in a navigable list, in the order given.
type WorkList struct {
	works    []domain.Work
	total    int
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewWorkList creates a new work list component.
func NewWorkList(s *styles.Styles) *WorkList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &WorkList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the work list.
func (l *WorkList) Init() tea.Cmd {
	return nil
}

// Update handles arrow-key navigation. Letter keys are left to the filter.
func (l *WorkList) Update(msg tea.Msg) (*WorkList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			l.MoveUp()
		case tea.KeyDown:
			l.MoveDown()
		case tea.KeyPgUp:
			l.Move(-l.visibleCount())
		case tea.KeyPgDown:
			l.Move(l.visibleCount())
		}
	}
	return l, nil
}

// View renders the work list.
func (l *WorkList) View() string {
	if len(l.works) == 0 {
		return l.styles.Muted.Render(EmptyMessage)
	}

	lines := make([]string, 0, len(l.works)+2)

	header := fmt.Sprintf("Works (%d)", len(l.works))
	if l.total > 0 && l.total != len(l.works) {
		header = fmt.Sprintf("Works (%d of %d)", len(l.works), l.total)
	}
	lines = append(lines, l.styles.Subtitle.Render(header), "")

	visible := l.visibleCount()
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.works))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderWork(i, &l.works[i]))
	}

	return strings.Join(lines, "\n")
}

// visibleCount is the number of works that fit; each takes two lines.
func (l *WorkList) visibleCount() int {
	return max((l.height-2)/2, 1)
}

// renderWork formats a single work: title on the first line, author and
// year below.
func (l *WorkList) renderWork(index int, w *domain.Work) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	maxTitle := max(l.width-6, 10)
	title := runewidth.Truncate(w.Title(), maxTitle, "...")

	var titleLine string
	if index == l.selected {
		titleLine = l.styles.Selected.Render(indicator + title)
	} else {
		titleLine = l.styles.Normal.Render(indicator + title)
	}

	byline := w.Author.Name
	if year, ok := w.Analysis.Year.Get(); ok {
		byline += " · " + year
	}
	byline = runewidth.Truncate(byline, max(l.width-6, 10), "...")

	return titleLine + "\n" + l.styles.Author.Render("    "+byline)
}

// SetWorks replaces the list contents. The selection is kept on the same
// work when it is still present, otherwise reset to the top.
func (l *WorkList) SetWorks(works []domain.Work) {
	var prevID string
	if w := l.SelectedWork(); w != nil {
		prevID = w.ID
	}

	l.works = works
	l.selected = 0
	if prevID == "" {
		return
	}
	for i := range works {
		if works[i].ID == prevID {
			l.selected = i
			return
		}
	}
}

// SetTotal records the corpus size for the header.
func (l *WorkList) SetTotal(total int) {
	l.total = total
}

// Works returns the listed works.
func (l *WorkList) Works() []domain.Work {
	return l.works
}

// Selected returns the index of the selected work.
func (l *WorkList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *WorkList) SetSelected(index int) {
	if index >= 0 && index < len(l.works) {
		l.selected = index
	}
}

// SelectedWork returns the currently selected work, or nil if none.
func (l *WorkList) SelectedWork() *domain.Work {
	if len(l.works) == 0 || l.selected < 0 || l.selected >= len(l.works) {
		return nil
	}
	return &l.works[l.selected]
}

// MoveUp moves selection up.
func (l *WorkList) MoveUp() {
	l.Move(-1)
}

// MoveDown moves selection down.
func (l *WorkList) MoveDown() {
	l.Move(1)
}

// Move shifts the selection by delta, clamped to the list.
func (l *WorkList) Move(delta int) {
	if len(l.works) == 0 {
		return
	}
	l.selected = min(max(l.selected+delta, 0), len(l.works)-1)
}

// SetDimensions sets the component dimensions.
func (l *WorkList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of listed works.
func (l *WorkList) Count() int {
	return len(l.works)
}

// IsEmpty returns whether the list is empty.
func (l *WorkList) IsEmpty() bool {
	return len(l.works) == 0
}
