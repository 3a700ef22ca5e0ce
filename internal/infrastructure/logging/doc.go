// Package logging provides structured logging for homecore.
//
// It wraps log/slog with JSON or text output, level filtering
// (debug, info, warn, error) and default fields (service, version)
// on every entry.
//
// Logging is configured via the logging section of config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// Usage:
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("starting service", "port", 8080)
//
// Never log secrets, tokens or passwords.
package logging
