package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/custodia-labs/litarchive/internal/logger"
)

const (
	maxQueryBytes = 64 * 1024
	writeTimeout  = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(_ *http.Request) bool {
		// The server binds to loopback by default and serves read-only data.
		return true
	},
}

// searchReply answers one query frame. Query echoes the frame so clients
// typing quickly can drop stale replies.
type searchReply struct {
	Query string        `json:"query"`
	Count int           `json:"count"`
	Works []workSummary `json:"works"`
	Error string        `json:"error,omitempty"`
}

type workSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   string `json:"year,omitempty"`
}

// handleSearchSocket treats every text frame as the full current query and
// replies with the filtered works.
func (s *Server) handleSearchSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxQueryBytes)

	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-s.done:
			conn.Close()
		case <-finished:
		}
	}()

	ctx := c.Request.Context()
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("Websocket closed: %v", err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		query := string(data)
		reply := searchReply{Query: query, Works: []workSummary{}}
		if s.limiter != nil && !s.limiter.Allow() {
			reply.Error = "rate limit exceeded"
		} else if works, err := s.ports.Search.Search(ctx, query); err != nil {
			reply.Error = err.Error()
		} else {
			reply.Count = len(works)
			reply.Works = make([]workSummary, len(works))
			for i := range works {
				reply.Works[i] = workSummary{
					ID:     works[i].ID,
					Title:  works[i].Title(),
					Author: works[i].Author.Name,
					Year:   works[i].Analysis.Year.String(),
				}
			}
		}

		conn.SetWriteDeadline(time.Now().Add(writeTimeout)) //nolint:errcheck
		if err := conn.WriteJSON(reply); err != nil {
			logger.Debug("Websocket write failed: %v", err)
			return
		}
	}
}
