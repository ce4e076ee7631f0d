package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/litarchive/internal/logger"
)

// Server serves the HTTP API.
type Server struct {
	ports   *Ports
	engine  *gin.Engine
	limiter *rate.Limiter

	// done is closed when Run's context ends so websocket sessions,
	// which outlive http.Server.Shutdown, can close themselves.
	done chan struct{}
}

// NewServer creates the HTTP server and registers its routes.
func NewServer(ports *Ports, opts Options) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:  ports,
		engine: gin.New(),
		done:   make(chan struct{}),
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	s.engine.Use(gin.Recovery(), requestLogger())
	s.routes()

	return s, nil
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api", s.rateLimit())
	{
		api.GET("/works", s.handleListWorks)
		api.GET("/works/:id", s.handleGetWork)
		api.GET("/authors", s.handleAuthors)
		api.GET("/stats", s.handleStats)
	}

	s.engine.GET("/ws/search", s.rateLimit(), s.handleSearchSocket)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		close(s.done)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("HTTP server listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
