package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/litarchive/internal/core/domain"
)

const (
	defaultWidth = 100
	minWidth     = 60
)

// terminalWidth returns the width of w when it is a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return max(width, minWidth)
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// workTable prints works as aligned columns: short id, title, author, year.
// Column widths shrink to fit the terminal.
func workTable(cmd *cobra.Command, works []domain.Work) {
	out := cmd.OutOrStdout()
	width := terminalWidth(out)

	const idWidth = 8
	const yearWidth = 6
	// two spaces between each of the four columns
	rest := width - idWidth - yearWidth - 6
	titleWidth := rest * 55 / 100
	authorWidth := rest - titleWidth

	fmt.Fprintf(out, "%s  %s  %s  %s\n",
		pad("ID", idWidth), pad("TITLE", titleWidth), pad("AUTHOR", authorWidth), "YEAR")
	for i := range works {
		w := &works[i]
		fmt.Fprintf(out, "%s  %s  %s  %s\n",
			pad(shortID(w.ID), idWidth),
			pad(w.Title(), titleWidth),
			pad(w.Author.Name, authorWidth),
			w.Analysis.Year.String())
	}
}

// pad truncates or pads s to exactly width terminal cells.
func pad(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	return runewidth.FillRight(s, width)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// printWork prints every field of a work.
func printWork(cmd *cobra.Command, w domain.Work) {
	a := w.Analysis
	cmd.Println(a.Name)
	cmd.Println(strings.Repeat("=", min(runewidth.StringWidth(a.Name), terminalWidth(cmd.OutOrStdout()))))
	cmd.Printf("ID:      %s\n", w.ID)
	cmd.Printf("Author:  %s", w.Author.Name)
	if w.Author.YearOfBirth != "" || w.Author.YearOfDeath != "" {
		cmd.Printf(" (%s–%s)", orUnknown(w.Author.YearOfBirth), orUnknown(w.Author.YearOfDeath))
	}
	cmd.Println()
	if year, ok := a.Year.Get(); ok {
		cmd.Printf("Year:    %s\n", year)
	}
	if a.Genre != "" {
		cmd.Printf("Genre:   %s\n", a.Genre)
	}

	if w.Author.Information != "" {
		cmd.Println()
		cmd.Println(w.Author.Information)
	}

	if len(a.Themes) > 0 {
		cmd.Println()
		cmd.Println("Themes:")
		for _, t := range a.Themes {
			cmd.Printf("  - %s\n", named(t.ThemeName, t.Info))
		}
	}
	if len(a.Motifs) > 0 {
		cmd.Println()
		cmd.Println("Motifs:")
		for _, m := range a.Motifs {
			cmd.Printf("  - %s\n", named(m.MotifName, m.Info))
		}
	}
	if len(a.Characters) > 0 {
		cmd.Println()
		cmd.Println("Characters:")
		for _, c := range a.Characters {
			cmd.Printf("  - %s\n", named(c.Name, c.Info))
		}
	}
	if a.Summary != "" {
		cmd.Println()
		cmd.Println("Analysis:")
		cmd.Println(a.Summary)
	}
}

func named(name, info string) string {
	if info == "" {
		return name
	}
	return name + ": " + info
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
