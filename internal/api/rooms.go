package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/homecore/internal/location"
)

func (s *Server) handleListRooms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.home.ListRooms())
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	room, ok := s.home.GetRoom(chi.URLParam(r, "id"))
	if !ok {
		writeNotFound(w, "room not found")
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// handleCreateRoom creates a room. Listed deviceIds that exist are moved
// into it.
func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var room location.Room
	if err := decodeJSON(r, &room); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s.home.CreateRoom(&room))
}

// handleUpdateRoom changes a room's name and description. Membership in
// the body is ignored; devices move through the assign route.
func (s *Server) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	var room location.Room
	if err := decodeJSON(r, &room); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	room.ID = chi.URLParam(r, "id")

	updated, ok := s.home.UpdateRoom(&room)
	if !ok {
		writeNotFound(w, "room not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteRoom removes a room; its devices stay, unassigned.
func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	if !s.home.DeleteRoom(chi.URLParam(r, "id")) {
		writeNotFound(w, "room not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAssignDevice moves a device into a room, leaving its previous one.
func (s *Server) handleAssignDevice(w http.ResponseWriter, r *http.Request) {
	if !s.home.AssignDeviceToRoom(chi.URLParam(r, "deviceId"), chi.URLParam(r, "roomId")) {
		writeNotFound(w, "room or device not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
