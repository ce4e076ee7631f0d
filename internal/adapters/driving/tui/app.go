package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui/views/authors"
	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui/views/browse"
	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui/views/work"
	"github.com/custodia-labs/litarchive/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView    *menu.View
	browseView  *browse.View
	workView    *work.View
	authorsView *authors.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingSearchService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	menuView := menu.NewView(s)
	menuView.SetSource(ports.Corpus.Source())

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menuView,
		browseView:  browse.NewView(s, km, ports.Search),
		workView:    work.NewView(s),
		authorsView: authors.NewView(s, ports.Corpus),
		currentView: messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.browseView.WithContext(ctx)
	a.authorsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("litarchive"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.forwardKey(msg)

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.WorkSelected:
		a.workView.SetWork(msg.Work, a.currentView)
		a.currentView = messages.ViewWork
		return a, nil

	case messages.FilterCompleted:
		a.browseView, cmd = a.browseView.Update(msg)
		a.err = a.browseView.Err()
		return a, cmd

	case messages.AuthorsLoaded:
		a.authorsView, cmd = a.authorsView.Update(msg)
		a.err = a.authorsView.Err()
		return a, cmd

	case messages.CorpusReloaded:
		a.menuView.SetSource(a.ports.Corpus.Source())
		var authorsCmd tea.Cmd
		a.browseView, cmd = a.browseView.Update(msg)
		a.authorsView, authorsCmd = a.authorsView.Update(msg)
		return a, tea.Batch(cmd, authorsCmd)

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewBrowse {
			a.browseView, cmd = a.browseView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink) to the active view
	if a.currentView == messages.ViewBrowse {
		a.browseView, cmd = a.browseView.Update(msg)
	}
	return a, cmd
}

// forwardKey routes a key press to the active view.
func (a *App) forwardKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewBrowse:
		a.browseView, cmd = a.browseView.Update(msg)
	case messages.ViewWork:
		a.workView, cmd = a.workView.Update(msg)
	case messages.ViewAuthors:
		a.authorsView, cmd = a.authorsView.Update(msg)
	case messages.ViewHelp:
		// Esc from help goes to menu
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// switchView activates view. Browse and authors start fresh when entered
// from the menu and keep their state when returning from a work.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	from := a.currentView
	a.currentView = view

	switch view {
	case messages.ViewBrowse:
		if from == messages.ViewMenu {
			a.browseView.Reset()
			return a.browseView.Init()
		}
	case messages.ViewAuthors:
		if from == messages.ViewMenu {
			return a.authorsView.Init()
		}
	case messages.ViewMenu, messages.ViewWork, messages.ViewHelp:
		// Nothing to load
	}
	return nil
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewBrowse:
		return a.browseView.View()
	case messages.ViewWork:
		return a.workView.View()
	case messages.ViewAuthors:
		return a.authorsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  /           Browse works
  q           Quit

Browse:
  (type)      Filter by title, author, theme or motif
  ↑/↓         Move through works
  enter       Open work
  ctrl+l      Clear filter

Work:
  ↑/↓, PgUp/PgDn  Scroll
  g/G             Top/bottom

Authors:
  ↑/↓         Move through works
  enter       Open work
  r           Reload

[esc] back to menu`
}

// Program builds the Bubbletea program for the app. Callers that need to
// push messages from outside (corpus reloads) use Program().Send.
func (a *App) Program() *tea.Program {
	return tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
}

// Run starts the TUI application.
func (a *App) Run() error {
	_, err := a.Program().Run()
	return err
}

// Query returns the current browse filter.
func (a *App) Query() string {
	return a.browseView.Query()
}

// Works returns the works listed in the browse view.
func (a *App) Works() []domain.Work {
	return a.browseView.Works()
}

// SelectedWork returns the work shown in the work view, or nil.
func (a *App) SelectedWork() *domain.Work {
	return a.workView.Work()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.browseView.SetDimensions(width, height)
	a.workView.SetDimensions(width, height)
	a.authorsView.SetDimensions(width, height)
}
