// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this
// package only defines the configuration structure embedded by
// core/config (listen port and the API key guarding the API).
package server
