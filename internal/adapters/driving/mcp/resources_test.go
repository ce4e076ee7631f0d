package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/litarchive/internal/core/domain"
)

func TestExtractWorkID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid work URI",
			uri:      "litarchive://works/w-yoke",
			expected: "w-yoke",
		},
		{
			name:     "invalid prefix",
			uri:      "file://works/w-yoke",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "litarchive://works/w-yoke/themes",
			expected: "",
		},
		{
			name:     "works list URI",
			uri:      "litarchive://works",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractWorkID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleWorksResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists every work with an empty query", func(t *testing.T) {
		mockSearch := &mockSearchService{works: []domain.Work{yoke()}, lastQuery: "unset"}
		server, err := NewServer(&Ports{Search: mockSearch})
		require.NoError(t, err)

		result, err := server.handleWorksResource(ctx, makeReadResourceRequest("litarchive://works"))

		require.NoError(t, err)
		assert.Equal(t, "", mockSearch.lastQuery)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "Under the Yoke")
		assert.Contains(t, result.Contents[0].Text, `"id": "w-yoke"`)
	})

	t.Run("empty corpus is an empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{works: []domain.Work{}}})
		require.NoError(t, err)

		result, err := server.handleWorksResource(ctx, makeReadResourceRequest("litarchive://works"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{err: errors.New("boom")}})
		require.NoError(t, err)

		_, err = server.handleWorksResource(ctx, makeReadResourceRequest("litarchive://works"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing works")
	})
}

func TestServer_handleWorkResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil corpus service returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		_, err = server.handleWorkResource(ctx, makeReadResourceRequest("litarchive://works/w-yoke"))
		require.Error(t, err)
	})

	t.Run("returns work", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Search: &mockSearchService{},
			Corpus: &mockCorpusService{works: []domain.Work{yoke()}},
		})
		require.NoError(t, err)

		result, err := server.handleWorkResource(ctx, makeReadResourceRequest("litarchive://works/w-yoke"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "Boycho Ognyanov")
		assert.Contains(t, result.Contents[0].Text, `"year": "1894"`)
	})

	t.Run("unknown work returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Search: &mockSearchService{},
			Corpus: &mockCorpusService{},
		})
		require.NoError(t, err)

		_, err = server.handleWorkResource(ctx, makeReadResourceRequest("litarchive://works/missing"))
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "getting work")
	})

	t.Run("corpus failure is wrapped", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Search: &mockSearchService{},
			Corpus: &mockCorpusService{err: domain.ErrCorpusUnavailable},
		})
		require.NoError(t, err)

		_, err = server.handleWorkResource(ctx, makeReadResourceRequest("litarchive://works/w-yoke"))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCorpusUnavailable)
	})
}
