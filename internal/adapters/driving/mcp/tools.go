package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/litarchive/internal/core/domain"
)

// SearchInput is the input schema for the search_works tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"case-insensitive text matched against titles, author names, themes and motifs; empty lists every work"`
}

// SearchOutput is the output schema for the search_works tool.
type SearchOutput struct {
	Works []WorkSummary `json:"works"`
	Count int           `json:"count"`
}

// WorkSummary is the short form of a work.
type WorkSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   string `json:"year,omitempty"`
	Genre  string `json:"genre,omitempty"`
}

// GetWorkInput is the input schema for the get_work tool.
type GetWorkInput struct {
	ID string `json:"id" jsonschema:"work ID as returned by search_works"`
}

// WorkOutput is the full form of a work.
type WorkOutput struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Year       string        `json:"year,omitempty"`
	Genre      string        `json:"genre,omitempty"`
	Author     AuthorOutput  `json:"author"`
	Themes     []NamedOutput `json:"themes"`
	Motifs     []NamedOutput `json:"motifs"`
	Characters []NamedOutput `json:"characters"`
	Summary    string        `json:"summary,omitempty"`
}

// AuthorOutput describes an author.
type AuthorOutput struct {
	Name        string `json:"name"`
	YearOfBirth string `json:"year_of_birth,omitempty"`
	YearOfDeath string `json:"year_of_death,omitempty"`
	Information string `json:"information,omitempty"`
}

// NamedOutput is a theme, motif or character.
type NamedOutput struct {
	Name string `json:"name"`
	Info string `json:"info,omitempty"`
}

// ListAuthorsInput is the (empty) input schema for the list_authors tool.
type ListAuthorsInput struct{}

// ListAuthorsOutput is the output schema for the list_authors tool.
type ListAuthorsOutput struct {
	Authors []AuthorWorksOutput `json:"authors"`
	Count   int                 `json:"count"`
}

// AuthorWorksOutput is an author with the works attributed to them.
type AuthorWorksOutput struct {
	AuthorOutput
	Works []WorkRef `json:"works"`
}

// WorkRef identifies a work by ID and title.
type WorkRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_works",
		Description: "Find literary works whose title, author, themes or motifs contain the query",
	}, s.handleSearchWorks)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_work",
		Description: "Get the full analysis of a work: author, themes, motifs, characters and summary",
	}, s.handleGetWork)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_authors",
		Description: "List the authors in the archive with their works",
	}, s.handleListAuthors)
}

// handleSearchWorks handles the search_works tool invocation.
func (s *Server) handleSearchWorks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	works, err := s.ports.Search.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Works: make([]WorkSummary, len(works)),
		Count: len(works),
	}
	for i := range works {
		output.Works[i] = toSummary(&works[i])
	}
	return nil, output, nil
}

// handleGetWork handles the get_work tool invocation.
func (s *Server) handleGetWork(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetWorkInput,
) (*mcp.CallToolResult, WorkOutput, error) {
	if s.ports.Corpus == nil {
		return nil, WorkOutput{}, ErrMissingCorpusService
	}
	if input.ID == "" {
		return nil, WorkOutput{}, fmt.Errorf("id is required: %w", domain.ErrInvalidInput)
	}

	work, err := s.ports.Corpus.Get(ctx, input.ID)
	if err != nil {
		return nil, WorkOutput{}, fmt.Errorf("getting work %s: %w", input.ID, err)
	}
	return nil, toWorkOutput(&work), nil
}

// handleListAuthors handles the list_authors tool invocation.
func (s *Server) handleListAuthors(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListAuthorsInput,
) (*mcp.CallToolResult, ListAuthorsOutput, error) {
	if s.ports.Corpus == nil {
		return nil, ListAuthorsOutput{}, ErrMissingCorpusService
	}

	entries, err := s.ports.Corpus.Authors(ctx)
	if err != nil {
		return nil, ListAuthorsOutput{}, fmt.Errorf("listing authors: %w", err)
	}

	output := ListAuthorsOutput{
		Authors: make([]AuthorWorksOutput, len(entries)),
		Count:   len(entries),
	}
	for i, e := range entries {
		refs := make([]WorkRef, len(e.WorkIDs))
		for j := range e.WorkIDs {
			refs[j] = WorkRef{ID: e.WorkIDs[j], Title: e.Titles[j]}
		}
		output.Authors[i] = AuthorWorksOutput{
			AuthorOutput: toAuthor(e.Author),
			Works:        refs,
		}
	}
	return nil, output, nil
}

func toSummary(w *domain.Work) WorkSummary {
	return WorkSummary{
		ID:     w.ID,
		Title:  w.Title(),
		Author: w.Author.Name,
		Year:   w.Analysis.Year.String(),
		Genre:  w.Analysis.Genre,
	}
}

func toAuthor(a domain.Author) AuthorOutput {
	return AuthorOutput{
		Name:        a.Name,
		YearOfBirth: a.YearOfBirth,
		YearOfDeath: a.YearOfDeath,
		Information: a.Information,
	}
}

func toWorkOutput(w *domain.Work) WorkOutput {
	out := WorkOutput{
		ID:         w.ID,
		Title:      w.Title(),
		Year:       w.Analysis.Year.String(),
		Genre:      w.Analysis.Genre,
		Author:     toAuthor(w.Author),
		Themes:     make([]NamedOutput, len(w.Analysis.Themes)),
		Motifs:     make([]NamedOutput, len(w.Analysis.Motifs)),
		Characters: make([]NamedOutput, len(w.Analysis.Characters)),
		Summary:    w.Analysis.Summary,
	}
	for i, t := range w.Analysis.Themes {
		out.Themes[i] = NamedOutput{Name: t.ThemeName, Info: t.Info}
	}
	for i, m := range w.Analysis.Motifs {
		out.Motifs[i] = NamedOutput{Name: m.MotifName, Info: m.Info}
	}
	for i, c := range w.Analysis.Characters {
		out.Characters[i] = NamedOutput{Name: c.Name, Info: c.Info}
	}
	return out
}
