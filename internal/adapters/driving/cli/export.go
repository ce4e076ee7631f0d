package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Convert the corpus to another payload format",
	Long: `Writes the loaded corpus to --out. The format follows the extension:
.json and .yaml write the processed envelope, .db/.sqlite write a SQLite
database that litarchive can load with --corpus.

The output is locked while it is written, so two exports to the same file
never interleave.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (.json, .yaml, .db)")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if _, err := loadCorpus(cmd.Context()); err != nil {
		return err
	}
	if wiring.Writer == nil {
		return errors.New("export not configured")
	}

	works, err := corpusService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing works: %w", err)
	}

	writer, err := wiring.Writer(exportOut)
	if err != nil {
		return err
	}

	if err := writer.Write(cmd.Context(), works); err != nil {
		_ = writer.Close()
		return fmt.Errorf("export failed: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	cmd.Printf("Exported %d works to %s\n", len(works), exportOut)
	return nil
}
