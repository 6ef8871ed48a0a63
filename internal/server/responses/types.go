// Package responses defines API response types used by previewbuilder HTTP handlers.
package responses

import "time"

// BuildResponse is returned after a successful build and publish. Field
// names follow the public API contract consumed by the front end.
type BuildResponse struct {
	RenderURL   string `json:"renderUrl"`
	OriginalURL string `json:"originalUrl"`
}

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
}

// ErrorResponse represents an error API response.
type ErrorResponse struct {
	Status    string    `json:"status"`
	Error     string    `json:"error"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
