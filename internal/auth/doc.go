// Package auth issues and validates the HS256 bearer tokens that guard the
// HTTP API when a JWT secret is configured.
package auth
