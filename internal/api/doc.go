// Package api implements the HTTP REST API and WebSocket server for homecore.
//
// This package provides:
//   - REST endpoints for devices, rooms, scenes, automations, security and
//     the activity log, all translated onto the home.Coordinator
//   - Per-kind device endpoints (/lights, /thermostats, /locks, /cameras)
//     whose actions are no-ops for devices of another kind
//   - A WebSocket hub that relays coordinator events to subscribed clients
//   - Optional JWT bearer authentication
//   - Middleware stack (request ID, logging, recovery, CORS, metrics)
//
// # Status Codes
//
// Reads return 200, creates 201 with the stored entity, updates 200 with
// the stored entity, deletes and actions 204. An unknown id, or an id of
// another kind on a per-kind route, is 404. Malformed JSON and unknown
// device types are 400.
//
// # Security
//
// When security.jwt.secret is configured every route except /api/health
// requires an HS256 bearer token with a subject. WebSocket clients may
// pass the token as the token query parameter. Without a secret the API is
// open, which is meant for development only.
package api
