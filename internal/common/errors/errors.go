// internal/common/errors/errors.go
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeDuplicateApplicationID   ErrorCode = "DUPLICATE_APPLICATION_ID"
	ErrCodeDocumentValidationFailed ErrorCode = "DOCUMENT_VALIDATION_FAILED"
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeDatabaseTimeout          ErrorCode = "DATABASE_TIMEOUT"
	ErrCodeDatabaseAuthFailed       ErrorCode = "DATABASE_AUTH_FAILED"
	ErrCodeDatabaseError            ErrorCode = "DATABASE_ERROR"

	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrCodeRateLimited       ErrorCode = "RATE_LIMITED"
	ErrCodeSubmissionTooSoon ErrorCode = "SUBMISSION_TOO_SOON"
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
)

// Stable user-facing messages. Nothing below the trust boundary ever
// reaches the caller verbatim; these strings are the whole vocabulary.
const (
	MsgDuplicateRecord    = "A record with this information already exists."
	MsgDocumentValidation = "The data provided does not meet the requirements."
	MsgConnectionFailed   = "Unable to connect to the database. Please try again later."
	MsgTimeout            = "The database request timed out. Please try again later."
	MsgAuthFailed         = "Database authentication failed. Please contact support."
	MsgGenericDatabase    = "A database error occurred. Please try again later."

	MsgTooManyRequests = "Too many requests. Please wait a moment and try again."
	MsgTooSoon         = "An application was already submitted recently. Please wait before submitting again."
	MsgNotFound        = "No application found for the provided details."
)

// StandardError represents a structured application error. Message is safe
// to show to the caller; Details never crosses the trust boundary.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewDuplicateApplicationIDError creates a non-retryable uniqueness error.
// The caller must regenerate the identifier rather than retry the same insert.
func NewDuplicateApplicationIDError(applicationID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateApplicationID,
		Message:   MsgDuplicateRecord,
		Details:   fmt.Sprintf("applicationId: %s, error: %v", applicationID, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocumentValidationFailedError creates a non-retryable schema error.
func NewDocumentValidationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentValidationFailed,
		Message:   MsgDocumentValidation,
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   MsgConnectionFailed,
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseTimeoutError creates a retryable timeout error.
func NewDatabaseTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseTimeout,
		Message:   MsgTimeout,
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseAuthFailedError creates a non-retryable, operator-actionable error.
func NewDatabaseAuthFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseAuthFailed,
		Message:   MsgAuthFailed,
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseError creates the conservative non-retryable fallback.
func NewDatabaseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseError,
		Message:   MsgGenericDatabase,
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitedError creates the rejection used by both throttling controls.
// No threshold detail is disclosed.
func NewRateLimitedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimited,
		Message:   MsgTooManyRequests,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionTooSoonError creates the frequency-gate rejection.
func NewSubmissionTooSoonError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionTooSoon,
		Message:   MsgTooSoon,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError creates the negative status-query result. Deliberately
// silent on whether the id or the contact number was wrong.
func NewNotFoundError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   MsgNotFound,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Storage Error Translation
// ==========================

// mongo server error code for failed document validation
const codeDocumentValidationFailure = 121

// mongo server error code for authentication failure
const codeAuthenticationFailed = 18

// TranslateStorageError maps an opaque driver failure onto the stable
// taxonomy. Callers log the original error at full fidelity before handing
// the translated result to the trust boundary.
func TranslateStorageError(applicationID string, err error) *StandardError {
	if err == nil {
		return nil
	}

	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}

	switch {
	case mongo.IsDuplicateKeyError(err):
		return NewDuplicateApplicationIDError(applicationID, err)

	case mongo.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return NewDatabaseTimeoutError(err)

	case mongo.IsNetworkError(err):
		return NewDatabaseConnectionFailedError(err)

	case isAuthError(err):
		return NewDatabaseAuthFailedError(err)

	case isDocumentValidationError(err):
		return NewDocumentValidationFailedError(err)

	default:
		return NewDatabaseError(err)
	}
}

func isAuthError(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == codeAuthenticationFailed {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "authentication failed") || strings.Contains(msg, "auth error")
}

func isDocumentValidationError(err error) bool {
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) && writeErr.HasErrorCode(codeDocumentValidationFailure) {
		return true
	}
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == codeDocumentValidationFailure
}

// IsRetryable reports whether the underlying condition is worth retrying.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return false
}

// GetErrorCategory returns the coarse category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "DUPLICATE"):
		return "STORAGE"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "RATE") || strings.Contains(codeStr, "SUBMISSION"):
		return "THROTTLING"
	case strings.Contains(codeStr, "NOT_FOUND"):
		return "LOOKUP"
	default:
		return "OTHER"
	}
}
