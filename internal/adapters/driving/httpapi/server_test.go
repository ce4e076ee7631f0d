package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/litarchive/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/litarchive/internal/core/domain"
	"github.com/custodia-labs/litarchive/internal/core/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testWorks() []domain.Work {
	return []domain.Work{
		{
			Author: domain.Author{Name: "Ivan Vazov"},
			Analysis: domain.Analysis{
				Name:   "Under the Yoke",
				Year:   domain.YearOf("1894"),
				Themes: []domain.Theme{{ThemeName: "Freedom", Info: "Liberation"}},
			},
		},
		{
			Author: domain.Author{Name: "Aleko Konstantinov"},
			Analysis: domain.Analysis{
				Name:       "Bay Ganyo",
				Motifs:     []domain.Motif{{MotifName: "Travel", Info: "Journeys abroad"}},
				Characters: []domain.Character{{Name: "Ganyo Balkanski"}},
			},
		},
	}
}

func newTestServer(t *testing.T, opts Options) (*Server, *services.CorpusService) {
	t.Helper()
	corpus := services.NewCorpusService(memory.NewCorpusLoader(testWorks()))
	require.NoError(t, corpus.Load(context.Background()))

	s, err := NewServer(&Ports{
		Search: services.NewSearchService(corpus, nil),
		Corpus: corpus,
	}, opts)
	require.NoError(t, err)
	return s, corpus
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestNewServer(t *testing.T) {
	t.Run("nil search service returns error", func(t *testing.T) {
		_, err := NewServer(&Ports{}, Options{})
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("nil corpus service returns error", func(t *testing.T) {
		corpus := services.NewCorpusService(memory.NewCorpusLoader(nil))
		_, err := NewServer(&Ports{Search: services.NewSearchService(corpus, nil)}, Options{})
		assert.ErrorIs(t, err, ErrMissingCorpusService)
	})
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	rec := get(t, s, "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[healthResponse](t, rec)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 2, body.Works)
	assert.Equal(t, ":memory:", body.Source)
}

func TestListWorks(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	tests := []struct {
		name   string
		target string
		titles []string
	}{
		{name: "no query lists all", target: "/api/works", titles: []string{"Under the Yoke", "Bay Ganyo"}},
		{name: "empty query lists all", target: "/api/works?q=", titles: []string{"Under the Yoke", "Bay Ganyo"}},
		{name: "title match", target: "/api/works?q=yoke", titles: []string{"Under the Yoke"}},
		{name: "motif info match", target: "/api/works?q=JOURNEYS", titles: []string{"Bay Ganyo"}},
		{name: "character not searched", target: "/api/works?q=balkanski", titles: []string{}},
		{name: "whitespace is literal", target: "/api/works?q=" + url.QueryEscape(" yoke "), titles: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)

			body := decode[worksResponse](t, rec)
			titles := []string{}
			for _, w := range body.Works {
				titles = append(titles, w.Title())
			}
			assert.Equal(t, tt.titles, titles)
			assert.Equal(t, len(tt.titles), body.Count)
		})
	}
}

func TestListWorks_EmptyResultIsArray(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	rec := get(t, s, "/api/works?q=xyz123")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"works":[]`)
}

func TestGetWork(t *testing.T) {
	s, corpus := newTestServer(t, Options{})
	works, err := corpus.List(context.Background())
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		rec := get(t, s, "/api/works/"+works[0].ID)
		require.Equal(t, http.StatusOK, rec.Code)

		work := decode[domain.Work](t, rec)
		assert.Equal(t, "Under the Yoke", work.Title())
		year, ok := work.Analysis.Year.Get()
		assert.True(t, ok)
		assert.Equal(t, "1894", year)
	})

	t.Run("absent year is omitted", func(t *testing.T) {
		rec := get(t, s, "/api/works/"+works[1].ID)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), `"year"`)
	})

	t.Run("not found", func(t *testing.T) {
		rec := get(t, s, "/api/works/does-not-exist")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", decode[errorResponse](t, rec).Code)
	})
}

func TestAuthorsAndStats(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	rec := get(t, s, "/api/authors")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":2`)
	assert.Contains(t, rec.Body.String(), "Aleko Konstantinov")

	rec = get(t, s, "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[domain.CorpusStats](t, rec)
	assert.Equal(t, 2, stats.Works)
	assert.Equal(t, 1, stats.Characters)
}

func TestCorpusUnavailable(t *testing.T) {
	corpus := services.NewCorpusService(memory.NewCorpusLoader(nil))
	s, err := NewServer(&Ports{Search: services.NewSearchService(corpus, nil), Corpus: corpus}, Options{})
	require.NoError(t, err)

	rec := get(t, s, "/api/works")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRateLimit(t *testing.T) {
	s, _ := newTestServer(t, Options{RateLimit: 0.001, Burst: 2})

	assert.Equal(t, http.StatusOK, get(t, s, "/api/works").Code)
	assert.Equal(t, http.StatusOK, get(t, s, "/api/works").Code)

	rec := get(t, s, "/api/works")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// health checks are not limited
	assert.Equal(t, http.StatusOK, get(t, s, "/healthz").Code)
}

func TestStatusFor(t *testing.T) {
	code, _ := statusFor(domain.ErrInvalidInput)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = statusFor(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, code)
}

func dialSearch(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/search"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestSearchSocket_FiltersEveryFrame(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	conn := dialSearch(t, s)

	// one frame per keystroke
	expected := map[string]int{"": 2, "f": 1, "fr": 1, "fre": 1, "frex": 0}
	for _, q := range []string{"", "f", "fr", "fre", "frex"} {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(q)))
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

		var reply searchReply
		require.NoError(t, conn.ReadJSON(&reply))
		assert.Equal(t, q, reply.Query)
		assert.Equal(t, expected[q], reply.Count, "query %q", q)
		assert.Len(t, reply.Works, expected[q])
		assert.Empty(t, reply.Error)
	}
}

func TestSearchSocket_RateLimited(t *testing.T) {
	s, _ := newTestServer(t, Options{RateLimit: 0.001, Burst: 2})
	// the upgrade request takes one token
	conn := dialSearch(t, s)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("yoke")))
	var first searchReply
	require.NoError(t, conn.ReadJSON(&first))
	assert.Empty(t, first.Error)
	assert.Equal(t, 1, first.Count)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("yoke")))
	var second searchReply
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, "rate limit exceeded", second.Error)
	assert.NotNil(t, second.Works)
}

func TestRun_StopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
