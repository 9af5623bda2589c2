package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/me/taskindex/pkg/model"
)

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req model.AddNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	node, err := s.index.AddNode(req)
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError(err.Error()))
		return
	}

	s.logger.Info("node added", "node_id", node.ID, "location", node.Location, "request_id", reqID)
	respondCreated(w, reqID, node)
}

func (s *Server) handleGetNode(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	node := s.index.GetNode(id)
	if node == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("node", id))
		return
	}
	respondOK(w, reqID, node)
}

func (s *Server) handleListNodes(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	nodes := s.index.ListNodes()
	if nodes == nil {
		nodes = []*model.Node{}
	}
	respondOK(w, reqID, nodes)
}
