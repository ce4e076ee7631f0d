package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/litarchive/internal/core/domain"
)

var (
	searchJSON    bool
	searchExplain bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search works by title, author, theme or motif",
	Long: `Lists the works whose title, author name, or any theme or motif name or
description contains the query, ignoring case. Results keep corpus order.

Without a query every work is listed. The query is matched literally,
including leading and trailing spaces, so quote it when it contains any.
Characters, years, genres and summaries are not searched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchExplain, "explain", false, "show which fields matched")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if _, err := loadCorpus(cmd.Context()); err != nil {
		return err
	}
	if searchService == nil {
		return errors.New("search service not configured")
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	if searchExplain {
		matches, err := searchService.Explain(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if searchJSON {
			return writeJSON(cmd, matches)
		}
		return outputMatches(cmd, matches)
	}

	works, err := searchService.Search(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return writeJSON(cmd, works)
	}
	return outputWorks(cmd, works)
}

func outputWorks(cmd *cobra.Command, works []domain.Work) error {
	if len(works) == 0 {
		cmd.Println("No works found.")
		return nil
	}
	workTable(cmd, works)
	cmd.Println()
	cmd.Printf("%d works\n", len(works))
	return nil
}

func outputMatches(cmd *cobra.Command, matches []domain.Match) error {
	if len(matches) == 0 {
		cmd.Println("No works found.")
		return nil
	}

	for i, m := range matches {
		fields := make([]string, 0, len(m.Fields))
		for _, f := range m.Fields {
			fields = append(fields, f.String())
		}
		cmd.Printf("  [%d] %s by %s\n", i+1, m.Work.Title(), m.Work.Author.Name)
		if len(fields) > 0 {
			cmd.Printf("      matched: %s\n", strings.Join(fields, ", "))
		}
	}
	cmd.Println()
	cmd.Printf("%d works\n", len(matches))
	return nil
}
