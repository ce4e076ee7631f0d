package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/litarchive/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/litarchive/internal/core/ports/driven"
	"github.com/custodia-labs/litarchive/internal/logger"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the corpus over HTTP",
	Long: `Starts an HTTP API over the corpus:

  GET /healthz           liveness and corpus size
  GET /api/works?q=      works matching q (all works without q)
  GET /api/works/:id     one work
  GET /api/authors       authors with their works
  GET /api/stats         corpus counts
  GET /ws/search         websocket: send a query per message, receive matches

Requests are rate limited by server.rate_limit and server.burst.
With --watch the corpus file is reloaded when it changes.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default server.addr)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "reload the corpus when the file changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings, err := loadCorpus(cmd.Context())
	if err != nil {
		return err
	}

	addr := settings.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	server, err := httpapi.NewServer(
		&httpapi.Ports{Search: searchService, Corpus: corpusService},
		httpapi.Options{RateLimit: settings.Server.RateLimit, Burst: settings.Server.Burst},
	)
	if err != nil {
		return err
	}

	watcher, err := corpusWatcher(settings, serveWatch)
	if err != nil {
		return err
	}

	logger.SetTimestamps(true)
	cmd.Printf("Serving %s on http://%s\n", corpusService.Source(), addr)

	return runWithWatcher(cmd.Context(), watcher, func(ctx context.Context) error {
		return server.Run(ctx, addr)
	})
}

// runWithWatcher runs serve alongside the corpus watcher until either fails
// or the process is interrupted.
func runWithWatcher(parent context.Context, watcher driven.CorpusWatcher, serve func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return serve(ctx)
	})
	if watcher != nil {
		g.Go(func() error {
			return watcher.Watch(ctx, reloadCorpus(nil))
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
