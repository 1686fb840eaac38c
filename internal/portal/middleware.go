// internal/portal/middleware.go
package portal

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"scholarship-portal/internal/common/logger"
)

// TraceIDKey is the locals key carrying the per-request trace id.
const TraceIDKey = "traceId"

// TraceID tags every request with a trace id, honoring one supplied by
// an upstream proxy, and echoes it back in the response headers.
func TraceID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := c.Get("X-Trace-Id")
		if traceID == "" {
			traceID = uuid.New().String()
		}
		c.Locals(TraceIDKey, traceID)
		c.Set("X-Trace-Id", traceID)
		return c.Next()
	}
}

// RequestTraceID reads the trace id the middleware stored on the request.
func RequestTraceID(c *fiber.Ctx) string {
	if v, ok := c.Locals(TraceIDKey).(string); ok {
		return v
	}
	return ""
}

// RequestLogger emits one structured line per completed request.
func RequestLogger(log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		log.Info("request handled", map[string]interface{}{
			"traceId":    RequestTraceID(c),
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"durationMs": time.Since(start).Milliseconds(),
			"ip":         c.IP(),
		})
		return err
	}
}
