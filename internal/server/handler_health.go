package server

import (
	"net/http"
	"runtime"
	"time"
)

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
	Strategy  string `json:"strategy"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, healthResponse{
		Status:    "healthy",
		Version:   "0.1.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Strategy:  s.config.Policy.Strategy,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, s.index.Stats())
}

// handleValidate runs the full cross-table consistency check.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	violations := s.index.ValidateSystemState()
	if violations == nil {
		violations = []string{}
	}
	respondOK(w, reqID, map[string]any{
		"consistent": len(violations) == 0,
		"violations": violations,
	})
}
