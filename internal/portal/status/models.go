// internal/portal/status/models.go
package status

import "scholarship-portal/internal/models"

// Request is the status-query payload. Both fields are required; the
// contact number must be one of the three registered during submission.
type Request struct {
	ApplicationID string `json:"applicationId" form:"applicationId"`
	ContactNumber string `json:"contactNumber" form:"contactNumber"`
}

// Response carries the safe projection on a successful lookup.
type Response struct {
	Success bool                 `json:"success"`
	Data    *models.StatusRecord `json:"data"`
}
