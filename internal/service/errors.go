package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps them to HTTP status codes.
var (
	// ErrClientNotFound indicates a service record references a client that does not exist.
	// API layer should map this to HTTP 400 Bad Request.
	ErrClientNotFound = errors.New("client not found")
)
