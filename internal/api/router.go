package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/homecore/internal/device"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)
	r.Use(s.metricsMiddleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeNotFound(w, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllow, "method not allowed")
	})

	r.Route("/api", func(r chi.Router) {
		// Health check (no auth required)
		r.Get("/health", s.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
			r.Get("/system/status", s.handleSystemStatus)

			r.Route("/devices", func(r chi.Router) {
				r.Get("/", s.handleListDevices)
				r.Post("/", s.handleCreateDevice)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetDevice)
					r.Put("/", s.handleUpdateDevice)
					r.Delete("/", s.handleDeleteDevice)
					r.Post("/toggle", s.deviceAction(s.home.ToggleDevice))
				})
			})

			r.Route("/lights", func(r chi.Router) {
				s.kindRoutes(r, device.KindLight)
				r.Post("/{id}/turn-on", s.deviceAction(s.home.TurnOnLight))
				r.Post("/{id}/turn-off", s.deviceAction(s.home.TurnOffLight))
			})

			r.Route("/thermostats", func(r chi.Router) {
				s.kindRoutes(r, device.KindThermostat)
				r.Post("/{id}/increase-target-heat", s.handleIncreaseTargetHeat)
				r.Post("/{id}/decrease-target-heat", s.handleDecreaseTargetHeat)
				r.Post("/{id}/set-target-heat", s.handleSetTargetHeat)
			})

			r.Route("/locks", func(r chi.Router) {
				s.kindRoutes(r, device.KindLock)
				r.Post("/{id}/lock", s.deviceAction(s.home.Lock))
				r.Post("/{id}/unlock", s.deviceAction(s.home.Unlock))
			})

			r.Route("/cameras", func(r chi.Router) {
				s.kindRoutes(r, device.KindCamera)
				r.Post("/{id}/start-recording", s.deviceAction(s.home.StartRecording))
				r.Post("/{id}/stop-recording", s.deviceAction(s.home.StopRecording))
			})

			r.Route("/rooms", func(r chi.Router) {
				r.Get("/", s.handleListRooms)
				r.Post("/", s.handleCreateRoom)
				r.Get("/{id}", s.handleGetRoom)
				r.Put("/{id}", s.handleUpdateRoom)
				r.Delete("/{id}", s.handleDeleteRoom)
				r.Post("/{roomId}/devices/{deviceId}", s.handleAssignDevice)
			})

			r.Route("/scenes", func(r chi.Router) {
				r.Get("/", s.handleListScenes)
				r.Post("/", s.handleCreateScene)
				r.Get("/{id}", s.handleGetScene)
				r.Put("/{id}", s.handleUpdateScene)
				r.Delete("/{id}", s.handleDeleteScene)
				r.Post("/{id}/activate", s.handleActivateScene)
			})

			r.Route("/automations", func(r chi.Router) {
				r.Get("/", s.handleListAutomations)
				r.Post("/", s.handleCreateAutomation)
				r.Get("/{id}", s.handleGetAutomation)
				r.Put("/{id}", s.handleUpdateAutomation)
				r.Delete("/{id}", s.handleDeleteAutomation)
			})

			r.Route("/security", func(r chi.Router) {
				r.Get("/status", s.handleSecurityStatus)
				r.Post("/arm", s.handleArm)
				r.Post("/disarm", s.handleDisarm)
			})

			r.Get("/activities", s.handleListActivities)
		})

		// WebSocket authenticates in the handler so the token can come from
		// the query string.
		r.Get(s.wsPath(), s.handleWebSocket)
	})

	return r
}

// wsPath returns the configured WebSocket path below /api.
func (s *Server) wsPath() string {
	if s.wsCfg.Path == "" {
		return "/ws"
	}
	return s.wsCfg.Path
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}

// errEmptyBody is returned by decodeJSON when the request has no body.
var errEmptyBody = errors.New("request body is empty")

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// decodeOptionalJSON is decodeJSON for bodies that may be absent.
func decodeOptionalJSON(r *http.Request, v any) error {
	if err := decodeJSON(r, v); err != nil && !errors.Is(err, errEmptyBody) {
		return err
	}
	return nil
}
