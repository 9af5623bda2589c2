package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/taskindex/pkg/model"
)

func (s *Server) handleExportState(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, s.index.ExportState())
}

func (s *Server) handleImportState(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var state map[string]any
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	if err := s.index.ImportState(state); err != nil {
		respondError(w, reqID, http.StatusConflict, model.NewConflictError(err.Error()))
		return
	}

	s.logger.Info("state imported", "request_id", reqID)
	respondOK(w, reqID, map[string]any{"imported": true})
}
