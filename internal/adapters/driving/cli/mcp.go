package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/litarchive/internal/adapters/driving/mcp"
)

var mcpWatch bool

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

Tools: search_works, get_work, list_authors.
Resources: litarchive://works and litarchive://works/{id}.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port (or mcp.port) to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default, for Claude Desktop)
  litarchive mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  litarchive mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "litarchive": {
        "command": "/path/to/litarchive",
        "args": ["mcp", "serve", "--corpus", "/path/to/corpus.json"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().BoolVarP(&mcpWatch, "watch", "w", false, "reload the corpus when the file changes")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	settings, err := loadCorpus(cmd.Context())
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("port") {
		port = settings.MCP.Port
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Search: searchService,
		Corpus: corpusService,
	})
	if err != nil {
		return err
	}

	watcher, err := corpusWatcher(settings, mcpWatch)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return runWithWatcher(cmd.Context(), watcher, func(ctx context.Context) error {
			return server.RunHTTP(ctx, addr)
		})
	}

	// stdout carries JSON-RPC; nothing else may be printed to it.
	return runWithWatcher(cmd.Context(), watcher, server.Run)
}
