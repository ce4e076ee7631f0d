package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/litarchive/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type worksResponse struct {
	Query string        `json:"query"`
	Count int           `json:"count"`
	Works []domain.Work `json:"works"`
}

type healthResponse struct {
	Status string `json:"status"`
	Source string `json:"source"`
	Works  int    `json:"works"`
}

func (s *Server) handleHealth(c *gin.Context) {
	stats, err := s.ports.Corpus.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, healthResponse{
		Status: "ok",
		Source: s.ports.Corpus.Source(),
		Works:  stats.Works,
	})
}

// handleListWorks filters by the q parameter. The value is used as sent,
// surrounding whitespace included; a missing q lists every work.
func (s *Server) handleListWorks(c *gin.Context) {
	query := c.Query("q")
	works, err := s.ports.Search.Search(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, worksResponse{Query: query, Count: len(works), Works: works})
}

func (s *Server) handleGetWork(c *gin.Context) {
	work, err := s.ports.Corpus.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, work)
}

func (s *Server) handleAuthors(c *gin.Context) {
	authors, err := s.ports.Corpus.Authors(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(authors), "authors": authors})
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.ports.Corpus.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// writeError maps domain errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	status, code := statusFor(err)
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error(), Code: code})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, domain.ErrCorpusUnavailable):
		return http.StatusServiceUnavailable, "CORPUS_UNAVAILABLE"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}
