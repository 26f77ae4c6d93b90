package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes"
)

// componentResponse describes one display. State is the last state the
// engine reported and is absent until the component has been set up.
type componentResponse struct {
	ID        string         `json:"id"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	FrameRate int            `json:"frame_rate"`
	State     map[string]any `json:"state,omitempty"`
}

func (s *Server) componentView(c *roboeyes.Component) componentResponse {
	g := c.Geometry()
	resp := componentResponse{
		ID:        c.ID(),
		Width:     g.Width,
		Height:    g.Height,
		FrameRate: g.FrameRate,
	}
	if s.hub != nil {
		if st, ok := s.hub.State(c.ID()); ok {
			resp.State = st
		}
	}
	return resp
}

// handleListComponents returns every declared component.
func (s *Server) handleListComponents(w http.ResponseWriter, _ *http.Request) {
	components := s.components.Components()
	out := make([]componentResponse, 0, len(components))
	for _, c := range components {
		out = append(out, s.componentView(c))
	}
	respond(w, http.StatusOK, map[string]any{
		"components": out,
		"count":      len(out),
	})
}

// handleGetComponent returns one component.
func (s *Server) handleGetComponent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := s.components.Get(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, s.componentView(c))
}
