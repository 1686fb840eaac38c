// internal/portal/submit/models.go
package submit

import (
	"time"

	"scholarship-portal/internal/intake"
)

// SuccessResponse is the body returned when an application is persisted.
type SuccessResponse struct {
	Success       bool      `json:"success"`
	Message       string    `json:"message"`
	ApplicationID string    `json:"applicationId"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

// ValidationResponse is the body returned when the form fails intake.
// Errors is keyed by dotted field path so the client can attach each
// problem to its input.
type ValidationResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Errors  intake.FieldErrors `json:"errors"`
}
