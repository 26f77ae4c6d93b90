package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bench2012/Esphome-Chatbot/internal/automation"
)

// maxListLimit caps the limit query parameter.
const maxListLimit = 500

// handleListExecutions returns recent runs of every script.
func (s *Server) handleListExecutions(w http.ResponseWriter, r *http.Request) {
	s.listExecutions(w, r, "")
}

// handleListScriptExecutions returns recent runs of one script.
func (s *Server) handleListScriptExecutions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.scripts.Get(id); err != nil {
		s.fail(w, r, err)
		return
	}
	s.listExecutions(w, r, id)
}

func (s *Server) listExecutions(w http.ResponseWriter, r *http.Request, scriptID string) {
	if s.executions == nil {
		s.fail(w, r, errLogDisabled)
		return
	}

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	execs, err := s.executions.ListExecutions(r.Context(), scriptID, limit)
	if err != nil {
		s.fail(w, r, fmt.Errorf("listing executions: %w", err))
		return
	}
	if execs == nil {
		execs = []automation.ScriptExecution{}
	}
	respond(w, http.StatusOK, map[string]any{
		"executions": execs,
		"count":      len(execs),
	})
}

// handleGetExecution returns one execution record.
func (s *Server) handleGetExecution(w http.ResponseWriter, r *http.Request) {
	if s.executions == nil {
		s.fail(w, r, errLogDisabled)
		return
	}

	exec, err := s.executions.GetExecution(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, exec)
}

// parseLimit reads the limit query parameter. Empty means the repository
// default.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxListLimit {
		return 0, errors.New("limit must be an integer between 1 and 500")
	}
	return n, nil
}
