package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui"
	"github.com/custodia-labs/litarchive/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/litarchive/internal/logger"
)

var tuiWatch bool

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for litarchive.

Browse filters the works list on every keystroke. Open a work to read its
author card, themes, motifs, characters and analysis.

With --watch the corpus file is reloaded when it changes and the open
views refresh.

Controls:
  ↑/↓      - Navigate
  Enter    - Select / open work
  Esc      - Back
  ?        - Help
  q        - Quit (from the menu)`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVarP(&tuiWatch, "watch", "w", false, "reload the corpus when the file changes")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	settings, err := loadCorpus(cmd.Context())
	if err != nil {
		return err
	}

	watcher, err := corpusWatcher(settings, tuiWatch)
	if err != nil {
		return err
	}

	app, err := tui.NewApp(tui.NewPorts(searchService, corpusService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	app.WithContext(ctx)
	p := app.Program()

	// The TUI owns the terminal while it runs.
	prev := logger.Writer()
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(prev)

	if watcher != nil {
		go func() {
			_ = watcher.Watch(ctx, reloadCorpus(func() {
				p.Send(messages.CorpusReloaded{})
			}))
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
