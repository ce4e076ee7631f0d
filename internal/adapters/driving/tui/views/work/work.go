// Package work provides the scrollable work detail view for the TUI.
package work

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/litarchive/internal/core/domain"
)

// View is the work detail view.
type View struct {
	styles *styles.Styles

	work         *domain.Work
	back         messages.ViewType
	lines        []string
	scrollOffset int
	width        int
	height       int
	ready        bool
}

// NewView creates a new work detail view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		back:   messages.ViewBrowse,
		width:  80,
		height: 24,
	}
}

// SetWork shows work. Esc returns to back.
func (v *View) SetWork(work domain.Work, back messages.ViewType) {
	v.work = &work
	v.back = back
	v.scrollOffset = 0
	v.layout()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the work view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset = max(v.scrollOffset-v.visibleLines(), 0)
	case "pgdown", "ctrl+d":
		v.scrollOffset = min(v.scrollOffset+v.visibleLines(), v.maxScrollOffset())
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "esc":
		back := v.back
		return v, func() tea.Msg {
			return messages.ViewChanged{View: back}
		}
	}

	return v, nil
}

// layout renders the work into display lines for the current width.
func (v *View) layout() {
	v.lines = nil
	if v.work == nil {
		return
	}

	width := max(v.width-4, 20)
	w := v.work
	a := w.Analysis

	var lines []string
	add := func(style lipgloss.Style, text string) {
		for _, l := range wrap(text, width) {
			lines = append(lines, style.Render(l))
		}
	}
	blank := func() { lines = append(lines, "") }

	lines = append(lines, strings.Split(v.authorCard(width), "\n")...)
	blank()

	add(v.styles.Title, a.Name)
	if a.Genre != "" {
		add(v.styles.Normal, v.styles.Label.Render("Genre: ")+a.Genre)
	}
	if year, ok := a.Year.Get(); ok {
		add(v.styles.Normal, v.styles.Label.Render("Year: ")+year)
	}

	if len(a.Themes) > 0 {
		blank()
		lines = append(lines, v.styles.Heading.Render("Themes"))
		for _, t := range a.Themes {
			add(v.styles.Normal, "• "+entry(t.ThemeName, t.Info))
		}
	}
	if len(a.Motifs) > 0 {
		blank()
		lines = append(lines, v.styles.Heading.Render("Motifs"))
		for _, m := range a.Motifs {
			add(v.styles.Normal, "• "+entry(m.MotifName, m.Info))
		}
	}
	if len(a.Characters) > 0 {
		blank()
		lines = append(lines, v.styles.Heading.Render("Characters"))
		for _, c := range a.Characters {
			add(v.styles.Normal, "• "+entry(c.Name, c.Info))
		}
	}
	if a.Summary != "" {
		blank()
		lines = append(lines, v.styles.Heading.Render("Analysis"))
		for _, para := range strings.Split(a.Summary, "\n") {
			add(v.styles.Normal, para)
		}
	}

	v.lines = lines
}

// authorCard renders the bordered author block.
func (v *View) authorCard(width int) string {
	author := v.work.Author

	var b strings.Builder
	b.WriteString(v.styles.Author.Bold(true).Render(author.Name))
	if years := lifespan(author); years != "" {
		b.WriteString(v.styles.Muted.Render(" (" + years + ")"))
	}
	if author.Information != "" {
		b.WriteString("\n")
		b.WriteString(strings.Join(wrap(author.Information, width-4), "\n"))
	}

	return v.styles.Card.Render(b.String())
}

func lifespan(a domain.Author) string {
	if a.YearOfBirth == "" && a.YearOfDeath == "" {
		return ""
	}
	birth, death := a.YearOfBirth, a.YearOfDeath
	if birth == "" {
		birth = "?"
	}
	if death == "" {
		death = "?"
	}
	return birth + "–" + death
}

func entry(name, info string) string {
	if info == "" {
		return name
	}
	return name + ": " + info
}

// wrap breaks text at word boundaries to fit width.
func wrap(text string, width int) []string {
	if text == "" {
		return []string{""}
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	out := strings.Split(wrapped, "\n")
	for i := range out {
		out[i] = strings.TrimRight(out[i], " ")
	}
	return out
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// title bar, scroll indicator and help
	return max(v.height-5, 1)
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the work view.
func (v *View) View() string {
	if v.work == nil {
		return v.styles.Muted.Render("No work selected.") + "\n\n" + v.renderHelp()
	}

	var b strings.Builder

	visible := v.visibleLines()
	end := min(v.scrollOffset+visible, len(v.lines))
	for _, line := range v.lines[v.scrollOffset:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(v.lines) > visible {
		b.WriteString("\n")
		percentage := 0
		if v.maxScrollOffset() > 0 {
			percentage = v.scrollOffset * 100 / v.maxScrollOffset()
		}
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
			percentage, v.scrollOffset+1, end, len(v.lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back")
}

// SetDimensions sets the view dimensions and re-wraps the work.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.layout()
}

// Work returns the displayed work, or nil.
func (v *View) Work() *domain.Work {
	return v.work
}

// Back returns the view Esc returns to.
func (v *View) Back() messages.ViewType {
	return v.back
}

// ScrollOffset returns the first visible line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

// LineCount returns the number of laid out lines.
func (v *View) LineCount() int {
	return len(v.lines)
}
