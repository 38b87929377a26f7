package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nao1215/trendwatch/internal/report"
	"github.com/nao1215/trendwatch/internal/scheduler"
	"github.com/nao1215/trendwatch/internal/trending"
)

// Server wires the core components behind an HTTP listener.
type Server struct {
	guard  *trending.Guard
	client *trending.Client
	store  *report.Store
	sched  *scheduler.Scheduler
	logger *slog.Logger

	httpServer *http.Server
}

// New creates a Server listening on the given port.
func New(port int, guard *trending.Guard, client *trending.Client, store *report.Store, sched *scheduler.Scheduler, logger *slog.Logger) *Server {
	s := &Server{
		guard:  guard,
		client: client,
		store:  store,
		sched:  sched,
		logger: logger,
	}
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler builds the route table. Exposed separately so tests can drive
// the handlers through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/trending", s.handleTrending)
	mux.HandleFunc("GET /api/cache-status", s.handleCacheStatus)
	mux.HandleFunc("GET /api/github-health", s.handleGitHubHealth)
	mux.HandleFunc("GET /api/reports", s.handleReports)
	mux.HandleFunc("GET /api/report/{fileName}", s.handleReport)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/cache/clear", s.handleCacheClear)
	return mux
}

// Start serves HTTP until the context is cancelled, then shuts down
// gracefully with a bounded drain period.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("http server shutting down")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
