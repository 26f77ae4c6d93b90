package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bench2012/Esphome-Chatbot/internal/automation"
)

type scriptResponse struct {
	ID         string            `json:"id"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Actions    []actionResponse  `json:"actions"`
}

type actionResponse struct {
	Kind      string `json:"kind"`
	Component string `json:"component"`
}

func scriptView(sc *automation.Script) scriptResponse {
	resp := scriptResponse{ID: sc.ID, Actions: make([]actionResponse, 0, len(sc.Actions))}
	if len(sc.Parameters) > 0 {
		resp.Parameters = make(map[string]string, len(sc.Parameters))
		for name, t := range sc.Parameters {
			resp.Parameters[name] = string(t)
		}
	}
	for _, a := range sc.Actions {
		resp.Actions = append(resp.Actions, actionResponse{
			Kind:      string(a.Kind()),
			Component: a.Parent().ID(),
		})
	}
	return resp
}

// handleListScripts returns every compiled script.
func (s *Server) handleListScripts(w http.ResponseWriter, _ *http.Request) {
	scripts := s.scripts.List()
	out := make([]scriptResponse, 0, len(scripts))
	for _, sc := range scripts {
		out = append(out, scriptView(sc))
	}
	respond(w, http.StatusOK, map[string]any{
		"scripts": out,
		"count":   len(out),
	})
}

// handleGetScript returns one script.
func (s *Server) handleGetScript(w http.ResponseWriter, r *http.Request) {
	sc, err := s.scripts.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, scriptView(sc))
}

// handleRunScript plays a script and returns the finished execution. The
// request body is an optional JSON object of arguments.
func (s *Server) handleRunScript(w http.ResponseWriter, r *http.Request) {
	var args map[string]any
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, CodeBadRequest, "request body must be a JSON object of arguments")
		return
	}

	exec, err := s.runner.Run(r.Context(), chi.URLParam(r, "id"), automation.TriggerAPI, r.RemoteAddr, args)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, exec)
}
