package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/litarchive/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_Flags(t *testing.T) {
	for _, name := range []string{"json", "explain"} {
		flag := searchCmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "false", flag.DefValue)
	}
}

func TestSearchCmd_AtMostOneArg(t *testing.T) {
	setupTestServices(t)

	_, err := run(t, "search", "a", "b")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 1 arg(s)")
}

func TestSearchCmd_NoQueryListsEverything(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "search")

	require.NoError(t, err)
	assert.Contains(t, out, "Under the Yoke")
	assert.Contains(t, out, "Bay Ganyo")
	assert.Contains(t, out, "Epic of the Forgotten")
	assert.Contains(t, out, "3 works")
}

func TestSearchCmd_MatchesFields(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"title", "yoke", []string{"Under the Yoke"}},
		{"author", "VAZOV", []string{"Under the Yoke", "Epic of the Forgotten"}},
		{"theme info", "ottoman", []string{"Under the Yoke"}},
		{"motif", "journeys", []string{"Bay Ganyo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t)

			out, err := run(t, "search", "--json", tt.query)
			require.NoError(t, err)

			var works []domain.Work
			require.NoError(t, json.Unmarshal([]byte(out), &works))

			titles := make([]string, 0, len(works))
			for _, w := range works {
				titles = append(titles, w.Title())
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestSearchCmd_NoMatches(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "search", "xyz123")

	require.NoError(t, err)
	assert.Contains(t, out, "No works found.")
}

func TestSearchCmd_CharactersNotSearched(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "search", "Balkanski")

	require.NoError(t, err)
	assert.Contains(t, out, "No works found.")
}

func TestSearchCmd_EmptyJSONIsArray(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "search", "--json", "xyz123")

	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestSearchCmd_Explain(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "search", "--explain", "freedom")

	require.NoError(t, err)
	assert.Contains(t, out, "[1] Under the Yoke by Ivan Vazov")
	assert.Contains(t, out, "matched: theme")
	assert.Contains(t, out, "1 works")
}

func TestSearchCmd_ExplainJSON(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "search", "--explain", "--json", "ivan")
	require.NoError(t, err)

	var matches []domain.Match
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.Len(t, matches, 2)
	assert.True(t, matches[0].Has(domain.MatchFieldAuthor))
	assert.False(t, matches[0].Has(domain.MatchFieldTitle))
}

func TestPad(t *testing.T) {
	assert.Equal(t, "abc  ", pad("abc", 5))
	assert.Equal(t, "abcd…", pad("abcdefgh", 5))
	assert.Equal(t, "Под …", pad("Под игото", 5))
}
