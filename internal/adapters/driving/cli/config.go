package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change settings stored in config.toml.

Environment variables override the file: every key maps to LITARCHIVE_
followed by the key in upper case with dots replaced by underscores, e.g.
server.rate_limit becomes LITARCHIVE_SERVER_RATE_LIMIT. A .env file in the
working directory is read at startup.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	corpus := settings.Corpus.Path
	if corpus == "" {
		corpus = "(bundled sample)"
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Corpus]")
	cmd.Printf("  Path:  %s\n", corpus)
	cmd.Printf("  Watch: %s\n", yesNo(settings.Corpus.Watch))
	cmd.Println()

	cmd.Println("[Search]")
	if settings.Search.CacheSize > 0 {
		cmd.Printf("  Cache size: %d queries\n", settings.Search.CacheSize)
	} else {
		cmd.Println("  Cache size: disabled")
	}
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address:    %s\n", settings.Server.Addr)
	if settings.Server.RateLimit > 0 {
		cmd.Printf("  Rate limit: %g req/s (burst %d)\n", settings.Server.RateLimit, settings.Server.Burst)
	} else {
		cmd.Println("  Rate limit: disabled")
	}
	cmd.Println()

	cmd.Println("[MCP]")
	if settings.MCP.Port > 0 {
		cmd.Printf("  Port: %d\n", settings.MCP.Port)
	} else {
		cmd.Println("  Port: stdio")
	}
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Verbose: %s\n", yesNo(settings.Log.Verbose))

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	// Stored settings may be invalid; set is how they get fixed.
	if err := openSettings(); err != nil {
		return err
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if err := openSettings(); err != nil {
		return err
	}
	cmd.Println(settingsService.Path())
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
