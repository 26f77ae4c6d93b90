// Package logging provides structured logging for the RoboEyes host.
//
// It wraps log/slog so every entry carries the service name and version,
// in JSON for deployments or text for a terminal.
//
// # Configuration
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr, discard
//
// # Usage
//
//	logger := logging.New(cfg.Logging, version)
//	logger.Info("engine started", "components", 2)
//	logger.Warn("action field evaluation failed", "field", "amplitude", "error", err)
//
// Never log broker passwords or InfluxDB tokens.
package logging
