// internal/portal/submit/handler.go
package submit

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"scholarship-portal/internal/common/errors"
	"scholarship-portal/internal/common/logger"
	"scholarship-portal/internal/common/metrics"
	"scholarship-portal/internal/frequency"
	"scholarship-portal/internal/intake"
	"scholarship-portal/internal/models"
	"scholarship-portal/internal/portal"
	"scholarship-portal/internal/ratelimit"
)

// ApplicationCreator persists a validated application.
type ApplicationCreator interface {
	Create(ctx context.Context, app *models.Application, audit models.AuditMeta) (*models.Application, error)
}

// ConfirmationSender dispatches the post-submission confirmation.
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, app *models.Application)
}

// Handler serves the application submission endpoint. Controls run in a
// fixed order: cheap throttles first, then the frequency gate, then the
// full intake pass, and the store only after everything passed.
type Handler struct {
	validator  *intake.Validator
	gate       *frequency.Gate
	window     *ratelimit.FixedWindow
	bucket     *ratelimit.TokenBucket
	repo       ApplicationCreator
	notifier   ConfirmationSender
	errHandler *errors.ErrorHandler
	logger     logger.Logger
	production bool
}

func NewHandler(
	validator *intake.Validator,
	gate *frequency.Gate,
	window *ratelimit.FixedWindow,
	bucket *ratelimit.TokenBucket,
	repo ApplicationCreator,
	notifier ConfirmationSender,
	log logger.Logger,
	production bool,
) *Handler {
	return &Handler{
		validator:  validator,
		gate:       gate,
		window:     window,
		bucket:     bucket,
		repo:       repo,
		notifier:   notifier,
		errHandler: errors.NewErrorHandler(log),
		logger:     log,
		production: production,
	}
}

// Handle processes POST /api/applications.
func (h *Handler) Handle(c *fiber.Ctx) error {
	start := time.Now()
	defer func() {
		metrics.RequestDuration.WithLabelValues("submit").Observe(time.Since(start).Seconds())
	}()

	traceID := portal.RequestTraceID(c)
	clientKey := c.IP()

	if !h.bucket.Allow(clientKey) {
		metrics.RateLimitRejections.WithLabelValues("token_bucket").Inc()
		metrics.SubmissionsRejected.WithLabelValues(metrics.ReasonRateLimited).Inc()
		return h.errHandler.Respond(c, traceID, errors.NewRateLimitedError("submission token bucket empty"))
	}

	allowed, err := h.window.Allow(c.Context(), clientKey)
	if err != nil {
		h.logger.Error("rate limit store unavailable, denying", map[string]interface{}{
			"traceId": traceID,
			"error":   err.Error(),
		})
	}
	if !allowed {
		metrics.RateLimitRejections.WithLabelValues("fixed_window").Inc()
		metrics.SubmissionsRejected.WithLabelValues(metrics.ReasonRateLimited).Inc()
		return h.errHandler.Respond(c, traceID, errors.NewRateLimitedError("submission window exhausted"))
	}

	if ok, wait := h.gate.Allow(c.Cookies(frequency.LastSubmissionCookie)); !ok {
		metrics.SubmissionsRejected.WithLabelValues(metrics.ReasonTooSoon).Inc()
		return h.errHandler.Respond(c, traceID, errors.NewSubmissionTooSoonError(wait.String()))
	}

	bag, err := formBag(c)
	if err != nil {
		metrics.SubmissionsRejected.WithLabelValues(metrics.ReasonValidation).Inc()
		return c.Status(fiber.StatusBadRequest).JSON(ValidationResponse{
			Success: false,
			Message: "The submission could not be read.",
			Errors:  intake.FieldErrors{"form": {"Malformed form data"}},
		})
	}

	app, fieldErrs := h.validator.Validate(bag)
	if len(fieldErrs) > 0 {
		metrics.SubmissionsRejected.WithLabelValues(rejectionReason(fieldErrs)).Inc()
		h.logger.Warn("submission failed validation", map[string]interface{}{
			"traceId":    traceID,
			"fieldCount": len(fieldErrs),
		})
		return c.Status(fiber.StatusBadRequest).JSON(ValidationResponse{
			Success: false,
			Message: "Please correct the highlighted fields and resubmit.",
			Errors:  fieldErrs,
		})
	}

	created, err := h.repo.Create(c.Context(), app, models.AuditMeta{
		SubmittedIP: clientKey,
		UserAgent:   c.Get("User-Agent"),
		TraceID:     traceID,
	})
	if err != nil {
		metrics.SubmissionsRejected.WithLabelValues(metrics.ReasonStorage).Inc()
		return h.errHandler.Respond(c, traceID, err)
	}

	h.setSubmissionCookies(c, created.ApplicationID)
	metrics.SubmissionsAccepted.Inc()
	h.logger.Info("application submitted", map[string]interface{}{
		"traceId":       traceID,
		"applicationId": created.ApplicationID,
	})

	if h.notifier != nil {
		go func(app models.Application) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			h.notifier.SendConfirmation(ctx, &app)
		}(*created)
	}

	return c.Status(fiber.StatusCreated).JSON(SuccessResponse{
		Success:       true,
		Message:       "Your application has been submitted successfully.",
		ApplicationID: created.ApplicationID,
		SubmittedAt:   created.SubmittedAt,
	})
}

// setSubmissionCookies stamps the frequency marker and the convenience
// application-id cookie. Both are HTTP-only and strict same-site; the
// secure flag follows the deployment environment.
func (h *Handler) setSubmissionCookies(c *fiber.Ctx, applicationID string) {
	c.Cookie(&fiber.Cookie{
		Name:     frequency.LastSubmissionCookie,
		Value:    h.gate.Marker(),
		MaxAge:   int(frequency.LastSubmissionTTL.Seconds()),
		HTTPOnly: true,
		Secure:   h.production,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     frequency.ApplicationIDCookie,
		Value:    applicationID,
		MaxAge:   int(frequency.ApplicationIDTTL.Seconds()),
		HTTPOnly: true,
		Secure:   h.production,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// formBag flattens the incoming request into the intake shape. Multipart
// submissions carry attachments; urlencoded ones only values.
func formBag(c *fiber.Ctx) (intake.FormBag, error) {
	bag := intake.FormBag{
		Values: make(map[string]string),
		Files:  make(map[string]intake.FileInput),
	}

	if form, err := c.MultipartForm(); err == nil {
		for key, values := range form.Value {
			if len(values) > 0 {
				bag.Values[key] = values[0]
			}
		}
		for key, headers := range form.File {
			if len(headers) == 0 {
				continue
			}
			header := headers[0]
			bag.Files[key] = intake.FileInput{
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
			}
		}
		return bag, nil
	}

	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		bag.Values[string(key)] = string(value)
	})
	return bag, nil
}

// rejectionReason separates attachment problems from field problems in
// the metrics, matching how operators triage them.
func rejectionReason(fieldErrs intake.FieldErrors) string {
	for key := range fieldErrs {
		if !strings.HasPrefix(key, "documents.") {
			return metrics.ReasonValidation
		}
	}
	return metrics.ReasonFileValidation
}
