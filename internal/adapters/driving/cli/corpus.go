package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listJSON    bool
	showJSON    bool
	authorsJSON bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every work in corpus order",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show <id|title>",
	Short: "Show a work in full",
	Long: `Shows every field of one work. The work is found by its ID, a unique
ID prefix of at least eight characters, or its exact title ignoring case.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "List authors with their works",
	Args:  cobra.NoArgs,
	RunE:  runAuthors,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the corpus loads and satisfies the data model",
	Long: `Loads the configured corpus and checks every work has a title and an
author name. Exits with status 2 when the corpus is invalid.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output works as JSON")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output the work as JSON")
	authorsCmd.Flags().BoolVar(&authorsJSON, "json", false, "output authors as JSON")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(authorsCmd)
	rootCmd.AddCommand(validateCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if _, err := loadCorpus(cmd.Context()); err != nil {
		return err
	}

	works, err := corpusService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing works: %w", err)
	}

	if listJSON {
		return writeJSON(cmd, works)
	}
	return outputWorks(cmd, works)
}

func runShow(cmd *cobra.Command, args []string) error {
	if _, err := loadCorpus(cmd.Context()); err != nil {
		return err
	}

	work, err := corpusService.Find(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if showJSON {
		return writeJSON(cmd, work)
	}
	printWork(cmd, work)
	return nil
}

func runAuthors(cmd *cobra.Command, _ []string) error {
	if _, err := loadCorpus(cmd.Context()); err != nil {
		return err
	}

	authors, err := corpusService.Authors(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing authors: %w", err)
	}

	if authorsJSON {
		return writeJSON(cmd, authors)
	}

	if len(authors) == 0 {
		cmd.Println("No authors found.")
		return nil
	}
	for _, a := range authors {
		cmd.Print(a.Author.Name)
		if a.Author.YearOfBirth != "" || a.Author.YearOfDeath != "" {
			cmd.Printf(" (%s–%s)", orUnknown(a.Author.YearOfBirth), orUnknown(a.Author.YearOfDeath))
		}
		cmd.Println()
		for i, title := range a.Titles {
			cmd.Printf("  %s  %s\n", shortID(a.WorkIDs[i]), title)
		}
	}
	return nil
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if _, err := loadCorpus(cmd.Context()); err != nil {
		return err
	}
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	stats, err := corpusService.Stats(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Printf("Corpus OK: %s\n", corpusService.Source())
	cmd.Printf("  Works:      %d\n", stats.Works)
	cmd.Printf("  Authors:    %d\n", stats.Authors)
	cmd.Printf("  With year:  %d\n", stats.WithYear)
	cmd.Printf("  Themes:     %d\n", stats.Themes)
	cmd.Printf("  Motifs:     %d\n", stats.Motifs)
	cmd.Printf("  Characters: %d\n", stats.Characters)
	return nil
}
