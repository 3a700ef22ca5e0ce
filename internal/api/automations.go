package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/homecore/internal/automation"
)

// automationResponse is an automation with its computed next fire time.
// NextRun is omitted for inactive automations and unparseable schedules.
type automationResponse struct {
	*automation.Automation
	NextRun string `json:"nextRun,omitempty"`
}

func (s *Server) toAutomationResponse(a *automation.Automation) automationResponse {
	resp := automationResponse{Automation: a}
	if next, ok := s.home.NextRun(a); ok {
		resp.NextRun = next.Format(time.RFC3339)
	}
	return resp
}

func (s *Server) handleListAutomations(w http.ResponseWriter, _ *http.Request) {
	list := s.home.ListAutomations()
	out := make([]automationResponse, len(list))
	for i, a := range list {
		out[i] = s.toAutomationResponse(a)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetAutomation(w http.ResponseWriter, r *http.Request) {
	a, ok := s.home.GetAutomation(chi.URLParam(r, "id"))
	if !ok {
		writeNotFound(w, "automation not found")
		return
	}
	writeJSON(w, http.StatusOK, s.toAutomationResponse(a))
}

func (s *Server) handleCreateAutomation(w http.ResponseWriter, r *http.Request) {
	var a automation.Automation
	if err := decodeJSON(r, &a); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s.toAutomationResponse(s.home.CreateAutomation(&a)))
}

func (s *Server) handleUpdateAutomation(w http.ResponseWriter, r *http.Request) {
	var a automation.Automation
	if err := decodeJSON(r, &a); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	a.ID = chi.URLParam(r, "id")

	updated, ok := s.home.UpdateAutomation(&a)
	if !ok {
		writeNotFound(w, "automation not found")
		return
	}
	writeJSON(w, http.StatusOK, s.toAutomationResponse(updated))
}

func (s *Server) handleDeleteAutomation(w http.ResponseWriter, r *http.Request) {
	if !s.home.DeleteAutomation(chi.URLParam(r, "id")) {
		writeNotFound(w, "automation not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
