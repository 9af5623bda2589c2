package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/me/taskindex/pkg/model"
)

func (s *Server) handleAddResource(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req model.AddResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	res, err := s.index.AddResource(req)
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError(err.Error()))
		return
	}

	s.logger.Info("resource added",
		"resource_id", res.ID, "type", res.Type, "units", res.TotalUnits, "request_id", reqID)
	respondCreated(w, reqID, res)
}

func (s *Server) handleGetResource(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	res := s.index.GetResource(id)
	if res == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("resource", id))
		return
	}
	respondOK(w, reqID, res)
}

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	resources := s.index.ListResources()
	if resources == nil {
		resources = []*model.Resource{}
	}
	respondOK(w, reqID, resources)
}

func (s *Server) handleRemoveResource(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if s.index.GetResource(id) == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("resource", id))
		return
	}
	if err := s.index.RemoveResource(id); err != nil {
		respondError(w, reqID, http.StatusConflict, model.NewConflictError(err.Error()))
		return
	}

	s.logger.Info("resource removed", "resource_id", id, "request_id", reqID)
	respondOK(w, reqID, map[string]any{"resource_id": id, "removed": true})
}
