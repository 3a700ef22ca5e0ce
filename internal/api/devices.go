package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/homecore/internal/device"
)

// handleListDevices returns every device ordered by id.
func (s *Server) handleListDevices(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.home.ListDevices())
}

// handleGetDevice returns one device of any kind.
func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	d, ok := s.home.GetDevice(chi.URLParam(r, "id"))
	if !ok {
		writeNotFound(w, "device not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// handleCreateDevice creates a device whose kind comes from the body's
// "type" field.
func (s *Server) handleCreateDevice(w http.ResponseWriter, r *http.Request) {
	var spec device.Spec
	if err := decodeJSON(r, &spec); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	kind, err := spec.Kind()
	if err != nil {
		writeBadRequest(w, "unknown device type: "+spec.Type)
		return
	}
	writeJSON(w, http.StatusCreated, s.home.CreateDevice(spec.Build(kind)))
}

// handleUpdateDevice replaces a device. The body's "type" may be omitted;
// it defaults to the stored kind and may not differ from it.
func (s *Server) handleUpdateDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, ok := s.home.GetDevice(id)
	if !ok {
		writeNotFound(w, "device not found")
		return
	}

	var spec device.Spec
	if err := decodeJSON(r, &spec); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	kind := existing.Kind
	if spec.Type != "" {
		parsed, err := spec.Kind()
		if err != nil {
			writeBadRequest(w, "unknown device type: "+spec.Type)
			return
		}
		if parsed != existing.Kind {
			writeBadRequest(w, "device type cannot change")
			return
		}
	}

	s.replaceDevice(w, id, spec, kind)
}

// handleDeleteDevice removes a device with its room and scene references.
func (s *Server) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	if !s.home.DeleteDevice(chi.URLParam(r, "id")) {
		writeNotFound(w, "device not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// kindRoutes registers list, get, create, update and delete for one device
// kind. Devices of other kinds are invisible on these routes.
func (s *Server) kindRoutes(r chi.Router, kind device.Kind) {
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, s.home.ListDevicesByKind(kind))
	})

	r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
		d, ok := s.home.GetDeviceOfKind(chi.URLParam(r, "id"), kind)
		if !ok {
			writeNotFound(w, string(kind)+" not found")
			return
		}
		writeJSON(w, http.StatusOK, d)
	})

	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var spec device.Spec
		if err := decodeJSON(r, &spec); err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, s.home.CreateDevice(spec.Build(kind)))
	})

	r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := s.home.GetDeviceOfKind(id, kind); !ok {
			writeNotFound(w, string(kind)+" not found")
			return
		}
		var spec device.Spec
		if err := decodeJSON(r, &spec); err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		s.replaceDevice(w, id, spec, kind)
	})

	r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := s.home.GetDeviceOfKind(id, kind); !ok {
			writeNotFound(w, string(kind)+" not found")
			return
		}
		if !s.home.DeleteDevice(id) {
			writeNotFound(w, string(kind)+" not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// replaceDevice builds the device from spec under the path id and stores it.
func (s *Server) replaceDevice(w http.ResponseWriter, id string, spec device.Spec, kind device.Kind) {
	spec.ID = id
	updated, ok := s.home.UpdateDevice(spec.Build(kind))
	if !ok {
		writeNotFound(w, "device not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// deviceAction adapts a coordinator action on one device id into a handler.
// The action reports false for an unknown id or a device of the wrong kind.
func (s *Server) deviceAction(action func(id string) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !action(chi.URLParam(r, "id")) {
			writeNotFound(w, "device not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// heatAmount is the optional body of the increase and decrease actions.
type heatAmount struct {
	Amount *float64 `json:"amount"`
}

// targetHeat is the body of the set-target-heat action.
type targetHeat struct {
	TargetTemperature *float64 `json:"targetTemperature"`
}

func (s *Server) handleIncreaseTargetHeat(w http.ResponseWriter, r *http.Request) {
	s.adjustTargetHeat(w, r, s.home.IncreaseTargetHeat)
}

func (s *Server) handleDecreaseTargetHeat(w http.ResponseWriter, r *http.Request) {
	s.adjustTargetHeat(w, r, s.home.DecreaseTargetHeat)
}

func (s *Server) adjustTargetHeat(w http.ResponseWriter, r *http.Request, adjust func(string, *float64) bool) {
	var body heatAmount
	if err := decodeOptionalJSON(r, &body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	s.deviceAction(func(id string) bool { return adjust(id, body.Amount) })(w, r)
}

// handleSetTargetHeat sets a thermostat's target. The value is clamped by
// the coordinator, so only a missing value is rejected.
func (s *Server) handleSetTargetHeat(w http.ResponseWriter, r *http.Request) {
	var body targetHeat
	if err := decodeOptionalJSON(r, &body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if body.TargetTemperature == nil {
		writeBadRequest(w, "targetTemperature is required")
		return
	}
	value := *body.TargetTemperature
	s.deviceAction(func(id string) bool { return s.home.SetTargetHeat(id, value) })(w, r)
}
