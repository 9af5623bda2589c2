package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/me/taskindex/internal/config"
	"github.com/me/taskindex/internal/index"
)

// Server is the task-index REST API server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	index     *index.Index
}

// New creates a Server with all routes registered.
func New(cfg config.ServerConfig, idx *index.Index, logger *slog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		index:     idx,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/stats", s.handleStats)
		r.Get("/validate", s.handleValidate)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.handleListTasks)
			r.Post("/", s.handleCreateTask)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetTask)
				r.Delete("/", s.handleCancelTask)
				r.Get("/placement", s.handleTaskPlacement)
			})
		})

		r.Route("/resources", func(r chi.Router) {
			r.Get("/", s.handleListResources)
			r.Post("/", s.handleAddResource)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetResource)
				r.Delete("/", s.handleRemoveResource)
			})
		})

		r.Route("/nodes", func(r chi.Router) {
			r.Get("/", s.handleListNodes)
			r.Post("/", s.handleAddNode)
			r.Get("/{id}", s.handleGetNode)
		})

		r.Route("/state", func(r chi.Router) {
			r.Get("/export", s.handleExportState)
			r.Post("/import", s.handleImportState)
		})
	})
}
