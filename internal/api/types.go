// Package api defines response types shared across HTTP handlers.
package api

// ErrorResponse is the common error payload returned by all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a simple acknowledgement payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries a JWT access token after successful login.
type TokenResponse struct {
	Token string `json:"token"`
}
