package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nao1215/trendwatch/internal/report"
	"github.com/nao1215/trendwatch/internal/scheduler"
)

// handleHealth reports process liveness. Independent of the source
// reachability probe served at /api/github-health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "server is running",
	})
}

// handleTrending serves the current record sequence. The Guard never
// fails outward, so this endpoint always answers 200 with data; the
// state-machine branch that produced it is exposed as a header for
// observability.
func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	result := s.guard.Projects(r.Context())
	w.Header().Set("X-Trending-Origin", result.Origin.String())
	s.writeJSON(w, http.StatusOK, result.Projects)
}

// handleCacheStatus reports the cache slot state without mutating it.
func (s *Server) handleCacheStatus(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.guard.Status())
}

// handleGitHubHealth serves the source reachability probe. The probe
// itself never fails; an unreachable source is a healthy 200 response
// with an unhealthy body.
func (s *Server) handleGitHubHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.client.HealthCheck(r.Context()))
}

// handleReports lists stored report metadata, newest first.
func (s *Server) handleReports(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.List())
}

// handleReport serves one stored document as Markdown text.
// Invalid names map to 400, missing documents to 404.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	content, err := s.store.Read(r.PathValue("fileName"))
	if err != nil {
		switch {
		case errors.Is(err, report.ErrInvalidReportName):
			s.writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, report.ErrReportNotFound):
			s.writeError(w, http.StatusNotFound, err)
		default:
			s.logger.Error("failed to read report", "error", err)
			s.writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	if _, err := w.Write([]byte(content)); err != nil {
		s.logger.Warn("failed to write report response", "error", err)
	}
}

// handleGenerate triggers a generation run through the scheduler's
// single-flight path. A run already in flight maps to 409.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := s.sched.GenerateNow(r.Context()); err != nil {
		if errors.Is(err, scheduler.ErrGenerationInProgress) {
			s.writeError(w, http.StatusConflict, err)
			return
		}
		s.logger.Error("manual report generation failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "generated"})
}

// handleCacheClear resets the cache slot so the next trending call
// fetches fresh data.
func (s *Server) handleCacheClear(w http.ResponseWriter, _ *http.Request) {
	s.guard.ClearCache()
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// writeJSON serializes v with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}

// writeError serializes an error response body.
func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
