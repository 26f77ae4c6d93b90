package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(withRequestID)
	r.Use(s.accessLog)
	r.Use(s.recoverPanics)
	r.Use(s.cors)
	r.Use(middleware.RequestSize(maxBodyBytes))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/components", func(r chi.Router) {
			r.Get("/", s.handleListComponents)
			r.Get("/{id}", s.handleGetComponent)
		})

		r.Route("/scripts", func(r chi.Router) {
			r.Get("/", s.handleListScripts)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetScript)
				r.Post("/run", s.handleRunScript)
				r.Get("/executions", s.handleListScriptExecutions)
			})
		})

		r.Route("/executions", func(r chi.Router) {
			r.Get("/", s.handleListExecutions)
			r.Get("/{id}", s.handleGetExecution)
		})

		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"version":    s.version,
		"components": s.components.Count(),
		"scripts":    s.scripts.Count(),
	})
}
