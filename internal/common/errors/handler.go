// internal/common/errors/handler.go
package errors

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler turns internal failures into user-safe HTTP responses.
// Every error is logged with full detail before the sanitized message
// leaves the process.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Respond logs the original error server-side and writes only the stable
// taxonomy message to the client. No stack traces or raw driver errors
// ever cross the trust boundary.
func (h *ErrorHandler) Respond(c *fiber.Ctx, traceID string, err error) error {
	stdErr := h.normalizeError(err)

	h.logger.Error("request failed", map[string]interface{}{
		"traceId":   traceID,
		"errorCode": string(stdErr.Code),
		"category":  GetErrorCategory(stdErr.Code),
		"message":   stdErr.Message,
		"details":   stdErr.Details,
		"retryable": stdErr.Retryable,
	})

	return c.Status(h.httpStatus(stdErr)).JSON(fiber.Map{
		"success": false,
		"message": stdErr.Message,
	})
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeDatabaseError,
		Message:   MsgGenericDatabase,
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func (h *ErrorHandler) httpStatus(stdErr *StandardError) int {
	switch stdErr.Code {
	case ErrCodeValidationFailed:
		return fiber.StatusBadRequest
	case ErrCodeRateLimited, ErrCodeSubmissionTooSoon:
		return fiber.StatusTooManyRequests
	case ErrCodeNotFound:
		return fiber.StatusNotFound
	default:
		if stdErr.Retryable {
			return fiber.StatusServiceUnavailable
		}
		return fiber.StatusInternalServerError
	}
}
