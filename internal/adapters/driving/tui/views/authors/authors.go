// Package authors provides the authors view for the TUI: each author once,
// with the works attributed to them. Enter opens the highlighted work.
package authors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/litarchive/internal/core/domain"
	"github.com/custodia-labs/litarchive/internal/core/ports/driving"
)

// ErrNoCorpusService indicates that no corpus service was provided.
var ErrNoCorpusService = errors.New("corpus service is required")

// row is one selectable work under its author.
type row struct {
	author int
	work   int
}

// View is the authors view.
type View struct {
	styles        *styles.Styles
	corpusService driving.CorpusService
	ctx           context.Context

	authors  []domain.AuthorEntry
	rows     []row
	selected int
	offset   int
	width    int
	height   int
	ready    bool
	err      error
	loading  bool
}

// NewView creates a new authors view.
func NewView(s *styles.Styles, corpusService driving.CorpusService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		corpusService: corpusService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the authors.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadAuthors()
}

// loadAuthors returns a command that fetches the deduplicated authors.
func (v *View) loadAuthors() tea.Cmd {
	corpus := v.corpusService
	ctx := v.ctx
	return func() tea.Msg {
		if corpus == nil {
			return messages.AuthorsLoaded{Err: ErrNoCorpusService}
		}
		authors, err := corpus.Authors(ctx)
		return messages.AuthorsLoaded{Authors: authors, Err: err}
	}
}

// Update handles messages for the authors view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AuthorsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.setAuthors(msg.Authors)
		return v, nil

	case messages.CorpusReloaded:
		return v, v.loadAuthors()
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		v.move(-1)
	case "down", "j":
		v.move(1)
	case "pgup":
		v.move(-v.visibleLines())
	case "pgdown":
		v.move(v.visibleLines())
	case "enter":
		return v, v.openSelected()
	case "r":
		v.loading = true
		return v, v.loadAuthors()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

// openSelected returns a command resolving the highlighted work.
func (v *View) openSelected() tea.Cmd {
	id := v.SelectedWorkID()
	if id == "" {
		return nil
	}
	corpus := v.corpusService
	ctx := v.ctx
	return func() tea.Msg {
		if corpus == nil {
			return messages.ErrorOccurred{Err: ErrNoCorpusService}
		}
		work, err := corpus.Get(ctx, id)
		if err != nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("opening work: %w", err)}
		}
		return messages.WorkSelected{Work: work}
	}
}

func (v *View) setAuthors(authors []domain.AuthorEntry) {
	keep := v.SelectedWorkID()

	v.authors = authors
	v.rows = v.rows[:0]
	for a := range authors {
		for w := range authors[a].WorkIDs {
			v.rows = append(v.rows, row{author: a, work: w})
		}
	}

	v.selected = 0
	for i, r := range v.rows {
		if v.authors[r.author].WorkIDs[r.work] == keep {
			v.selected = i
			break
		}
	}
	v.offset = 0
	v.move(0)
}

func (v *View) move(delta int) {
	if len(v.rows) == 0 {
		v.selected = 0
		return
	}
	v.selected = min(max(v.selected+delta, 0), len(v.rows)-1)

	// keep the selection within the rendered window
	line := v.lineOf(v.selected)
	visible := v.visibleLines()
	if line < v.offset {
		v.offset = max(line-1, 0)
	}
	if line >= v.offset+visible {
		v.offset = line - visible + 1
	}
}

// lineOf returns the rendered line index of row i, counting author headers.
func (v *View) lineOf(i int) int {
	r := v.rows[i]
	// each author before r.author adds a header, its works and a blank line
	line := 0
	for a := 0; a < r.author; a++ {
		line += 2 + len(v.authors[a].WorkIDs)
	}
	return line + 1 + r.work
}

// visibleLines returns the number of list lines that fit.
func (v *View) visibleLines() int {
	// title, blank, footer
	return max(v.height-6, 3)
}

// View renders the authors view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Authors (%d)", len(v.authors))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading authors..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.authors) == 0:
		b.WriteString(v.styles.Muted.Render("No authors found."))
	default:
		lines := v.renderLines()
		end := min(v.offset+v.visibleLines(), len(lines))
		b.WriteString(strings.Join(lines[v.offset:end], "\n"))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderLines renders every author header and work row.
func (v *View) renderLines() []string {
	lines := make([]string, 0, len(v.rows)+2*len(v.authors))
	i := 0
	for a := range v.authors {
		entry := &v.authors[a]
		header := v.styles.Author.Bold(true).Render(entry.Author.Name)
		if n := len(entry.WorkIDs); n != 1 {
			header += v.styles.Muted.Render(fmt.Sprintf("  %d works", n))
		}
		lines = append(lines, header)

		for w := range entry.WorkIDs {
			title := entry.Titles[w]
			if i == v.selected {
				lines = append(lines, v.styles.Selected.Render("  > "+title))
			} else {
				lines = append(lines, v.styles.Normal.Render("    "+title))
			}
			i++
		}
		lines = append(lines, "")
	}
	return lines
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] open work  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.move(0)
}

// Authors returns the loaded authors.
func (v *View) Authors() []domain.AuthorEntry {
	return v.authors
}

// SelectedWorkID returns the ID of the highlighted work, or "".
func (v *View) SelectedWorkID() string {
	if v.selected < 0 || v.selected >= len(v.rows) {
		return ""
	}
	r := v.rows[v.selected]
	return v.authors[r.author].WorkIDs[r.work]
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
