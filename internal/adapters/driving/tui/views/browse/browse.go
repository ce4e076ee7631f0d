// Package browse provides the live-filtered works view for the TUI.
// Every edit of the filter input re-runs the search; Enter opens the
// highlighted work.
package browse

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/litarchive/internal/core/domain"
	"github.com/custodia-labs/litarchive/internal/core/ports/driving"
)

// View is the browse view: filter input, works list and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.FilterInput
	list      *list.WorkList
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context

	width  int
	height int
	ready  bool
	err    error

	// shown is the query the listed works belong to.
	shown string
}

// NewView creates a new browse view.
func NewView(s *styles.Styles, km *keymap.KeyMap, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewFilterInput(s),
		list:          list.NewWorkList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
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

// Init starts the cursor blinking and lists the works for the current
// filter, which is the whole corpus when the filter is empty.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.Refresh(), v.input.Init())
}

// Refresh re-runs the current filter, e.g. after a corpus reload.
func (v *View) Refresh() tea.Cmd {
	return v.filter(v.input.Value())
}

// Update handles messages for the browse view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.FilterCompleted:
		v.handleFilterCompleted(msg)
		return v, nil

	case messages.CorpusReloaded:
		v.statusbar.SetMessage("Corpus reloaded")
		return v, v.Refresh()

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Cursor blink and other input internals
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input. Printable keys edit the filter;
// arrows and paging move through the list.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case tea.KeyEnter:
		work := v.list.SelectedWork()
		if work == nil {
			return v, nil
		}
		selected := *work
		return v, func() tea.Msg {
			return messages.WorkSelected{Work: selected}
		}

	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		v.list, _ = v.list.Update(msg)
		return v, nil
	}

	if keymap.Matches(msg.String(), v.keymap.Clear) {
		if v.input.Value() == "" {
			return v, nil
		}
		v.input.SetValue("")
		v.statusbar.SetState(status.StateFiltering)
		return v, v.filter("")
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	after := v.input.Value()
	if after == before {
		return v, cmd
	}

	v.statusbar.SetState(status.StateFiltering)
	v.statusbar.SetMessage("")
	return v, tea.Batch(v.filter(after), cmd)
}

// filter returns a command that runs the search for query.
func (v *View) filter(query string) tea.Cmd {
	search := v.searchService
	ctx := v.ctx
	return func() tea.Msg {
		if search == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}

		works, err := search.Search(ctx, query)
		if err != nil {
			return messages.FilterCompleted{Query: query, Err: err}
		}

		total := len(works)
		if query != "" {
			all, err := search.Search(ctx, "")
			if err != nil {
				return messages.FilterCompleted{Query: query, Err: err}
			}
			total = len(all)
		}
		return messages.FilterCompleted{Query: query, Works: works, Total: total}
	}
}

// handleFilterCompleted applies results unless the filter has changed since
// the search started.
func (v *View) handleFilterCompleted(msg messages.FilterCompleted) {
	if msg.Query != v.input.Value() {
		return
	}

	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.shown = msg.Query
	v.list.SetWorks(msg.Works)
	v.list.SetTotal(msg.Total)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Works))
	v.statusbar.SetTotal(msg.Total)
}

// View renders the browse view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("litarchive · Browse"), "")
	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-9) // header, input, status
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current filter text.
func (v *View) Query() string {
	return v.input.Value()
}

// ShownQuery returns the filter text the listed works belong to.
func (v *View) ShownQuery() string {
	return v.shown
}

// SetQuery replaces the filter text and returns the command that applies it.
func (v *View) SetQuery(query string) tea.Cmd {
	v.input.SetValue(query)
	return v.filter(query)
}

// Works returns the listed works.
func (v *View) Works() []domain.Work {
	return v.list.Works()
}

// SelectedWork returns the highlighted work, or nil.
func (v *View) SelectedWork() *domain.Work {
	return v.list.SelectedWork()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset clears the filter and list.
func (v *View) Reset() {
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetWorks(nil)
	v.shown = ""
	v.err = nil
	v.statusbar.Clear()
}
