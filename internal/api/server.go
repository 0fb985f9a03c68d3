// Package api serves the generators over HTTP
package api

import (
	"net/http"
	"time"

	"github.com/QTest-hq/dtsgen/internal/config"
	"github.com/QTest-hq/dtsgen/internal/emitter"
	"github.com/QTest-hq/dtsgen/internal/validator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RunIDHeader carries the id of the generation run on every response of the
// generation endpoints
const RunIDHeader = "X-Run-ID"

// Server represents the API server
type Server struct {
	cfg       *config.Config
	router    *chi.Mux
	generator *emitter.Generator
	validator *validator.Validator
}

// NewServer creates a new API server
func NewServer(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		router:    chi.NewRouter(),
		generator: emitter.NewGenerator(""),
		validator: validator.NewValidator(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// Router returns the HTTP router
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.healthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		r.Use(runID)

		r.Post("/wsdl", s.generateWSDL)
		r.Post("/ui5", s.generateUI5)
	})
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
