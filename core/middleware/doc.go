// Package middleware groups the HTTP middlewares shared by all
// features: ray-id request correlation and API-key authentication.
package middleware
