package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/me/taskindex/pkg/model"
)

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req model.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	task, err := s.index.CreateTask(req)
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError(err.Error()))
		return
	}

	s.logger.Info("task created", "task_id", task.ID, "type", task.Type, "request_id", reqID)
	respondCreated(w, reqID, task)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	task := s.index.GetTask(id)
	if task == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("task", id))
		return
	}
	respondOK(w, reqID, task)
}

// handleListTasks lists tasks filtered by the status query parameter.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	status := r.URL.Query().Get("status")
	if status == "" {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("status query parameter is required"))
		return
	}

	tasks := s.index.GetTasksByStatus(model.TaskStatus(status))
	if tasks == nil {
		tasks = []*model.Task{}
	}
	respondOK(w, reqID, tasks)
}

func (s *Server) handleCancelTask(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if s.index.GetTask(id) == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("task", id))
		return
	}
	if !s.index.CancelTask(id) {
		respondError(w, reqID, http.StatusConflict,
			model.NewConflictError("task "+id+" is not cancellable in its current status"))
		return
	}

	s.logger.Info("task cancelled", "task_id", id, "request_id", reqID)
	respondOK(w, reqID, map[string]any{"task_id": id, "cancelled": true})
}

func (s *Server) handleTaskPlacement(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	advice, err := s.index.OptimizePlacement(id)
	if err != nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("task", id))
		return
	}
	respondOK(w, reqID, advice)
}
