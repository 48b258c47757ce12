// Package logger provides structured logging based on Zap.
//
// New builds a logger from the application configuration: debug level
// yields a development config, the console format a colored console
// encoder for CLI commands, and the default a JSON production config.
//
// WithRayID attaches the per-request ray_id from a Fiber context so
// all logs for one request can be correlated.
package logger
