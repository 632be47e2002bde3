// Package handlers implements HTTP handlers for the rocketgrowth-margin API.
package handlers

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("github.com/donaldgifford/rocketgrowth-margin/internal/api/handlers")

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
	// Reason explains a not-ready status.
	Reason string `json:"reason,omitempty"`
}
