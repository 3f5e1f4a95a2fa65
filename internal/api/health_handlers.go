package api

import (
	"net/http"

	"github.com/vytor/eduplay/internal/logger"
)

// handleHealth is the liveness probe. It always answers 200.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady answers 503 until the database responds. A ready answer also
// reports how many deferred rounds are waiting for a worker.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	if s.App.DB != nil {
		if err := s.App.DB.Ping(ctx); err != nil {
			log.Warn("readiness check failed - database: %v", err)
			writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
			return
		}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"status": "ready", "queued": s.App.Pool.QueueSize()})
}
