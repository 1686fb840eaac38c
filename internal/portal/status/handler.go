// internal/portal/status/handler.go
package status

import (
	"context"
	"regexp"
	"time"

	"github.com/gofiber/fiber/v2"

	"scholarship-portal/internal/common/errors"
	"scholarship-portal/internal/common/logger"
	"scholarship-portal/internal/common/metrics"
	"scholarship-portal/internal/models"
	"scholarship-portal/internal/portal"
	"scholarship-portal/internal/ratelimit"
	"scholarship-portal/internal/repository"
)

// StatusFinder looks up the safe status projection for an id/contact pair.
type StatusFinder interface {
	FindStatus(ctx context.Context, applicationID, contact string) (*models.StatusRecord, error)
}

var contactShapeRegex = regexp.MustCompile(`^[+]?[0-9\s\-()]{10,}$`)

// Handler serves the status-query endpoint.
type Handler struct {
	repo       StatusFinder
	window     *ratelimit.FixedWindow
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(repo StatusFinder, window *ratelimit.FixedWindow, log logger.Logger) *Handler {
	return &Handler{
		repo:       repo,
		window:     window,
		errHandler: errors.NewErrorHandler(log),
		logger:     log,
	}
}

// Handle processes POST /api/applications/status. A malformed identifier
// and a record that does not exist produce the same response on the
// wire; only the metrics tell them apart. The lookup never reveals which
// half of the pair was wrong.
func (h *Handler) Handle(c *fiber.Ctx) error {
	start := time.Now()
	defer func() {
		metrics.RequestDuration.WithLabelValues("status").Observe(time.Since(start).Seconds())
	}()

	traceID := portal.RequestTraceID(c)

	allowed, err := h.window.Allow(c.Context(), c.IP())
	if err != nil {
		h.logger.Error("rate limit store unavailable, denying", map[string]interface{}{
			"traceId": traceID,
			"error":   err.Error(),
		})
	}
	if !allowed {
		metrics.RateLimitRejections.WithLabelValues("fixed_window").Inc()
		metrics.StatusQueries.WithLabelValues(metrics.OutcomeRateLimited).Inc()
		return h.errHandler.Respond(c, traceID, errors.NewRateLimitedError("status window exhausted"))
	}

	var req Request
	if err := c.BodyParser(&req); err != nil {
		metrics.StatusQueries.WithLabelValues(metrics.OutcomeInvalidFormat).Inc()
		return h.errHandler.Respond(c, traceID, errors.NewNotFoundError("unreadable request body"))
	}

	if !repository.ValidApplicationID(req.ApplicationID) || !contactShapeRegex.MatchString(req.ContactNumber) {
		metrics.StatusQueries.WithLabelValues(metrics.OutcomeInvalidFormat).Inc()
		return h.errHandler.Respond(c, traceID, errors.NewNotFoundError("id or contact failed shape check"))
	}

	record, err := h.repo.FindStatus(c.Context(), req.ApplicationID, req.ContactNumber)
	if err != nil {
		var stdErr *errors.StandardError
		if e, ok := err.(*errors.StandardError); ok {
			stdErr = e
		}
		if stdErr != nil && stdErr.Code == errors.ErrCodeNotFound {
			metrics.StatusQueries.WithLabelValues(metrics.OutcomeNotFound).Inc()
		} else {
			metrics.StatusQueries.WithLabelValues(metrics.OutcomeError).Inc()
		}
		return h.errHandler.Respond(c, traceID, err)
	}

	metrics.StatusQueries.WithLabelValues(metrics.OutcomeFound).Inc()
	return c.JSON(Response{Success: true, Data: record})
}
