// Package statusserver is an optional, loopback-only HTTP endpoint that
// exposes the step results of the most recently finished run as JSON (`pipeline
// --serve`, spec §5's "CLI layer wraps long-running operations" note).
// It is off by default and never required for correctness - a run that
// never starts the server behaves identically to one that does.
package statusserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rkaplan/x987scout/internal/logging"
	"github.com/rkaplan/x987scout/internal/pipeline"
)

var log = logging.New("statusserver")

// Server serves a snapshot of the current pipeline run's step results.
type Server struct {
	mu      sync.RWMutex
	summary *pipeline.Summary
	start   time.Time

	httpServer *http.Server
}

// New builds a Server bound to addr (e.g. "127.0.0.1:4873"), matching the
// teacher's gin.New() + gin.Logger()/gin.Recovery() setup rather than
// gin.Default() (the teacher disables automatic trailing-slash redirects
// too, which this status-only server has no routes to trigger).
func New(addr string) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	s := &Server{start: time.Now()}

	r.GET("/status", s.handleStatus)
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	s.httpServer = &http.Server{Addr: addr, Handler: r}
	return s
}

// Update replaces the snapshot returned by /status. Safe to call from the
// pipeline runner's goroutine while the server handles requests
// concurrently.
func (s *Server) Update(summary *pipeline.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = summary
}

// Start runs the server in the background; call Shutdown to stop it.
func (s *Server) Start() {
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("status server stopped: %v", err)
		}
	}()
	log.Info("status server listening on %s", s.httpServer.Addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleStatus(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type stepView struct {
		Name       string `json:"name"`
		Status     string `json:"status"`
		DurationMS int64  `json:"durationMs"`
		Error      string `json:"error,omitempty"`
	}

	resp := gin.H{
		"uptimeSeconds": time.Since(s.start).Seconds(),
	}

	if s.summary == nil {
		resp["running"] = false
		c.JSON(http.StatusOK, resp)
		return
	}

	steps := make([]stepView, 0, len(s.summary.Order))
	for _, name := range s.summary.Order {
		r := s.summary.Results[name]
		sv := stepView{Name: name, Status: string(r.Status), DurationMS: r.Duration().Milliseconds()}
		if r.Error != nil {
			sv.Error = r.Error.Error()
		}
		steps = append(steps, sv)
	}

	resp["running"] = true
	resp["completed"] = s.summary.Completed
	resp["failed"] = s.summary.Failed
	resp["skipped"] = s.summary.Skipped
	resp["steps"] = steps

	c.JSON(http.StatusOK, resp)
}
