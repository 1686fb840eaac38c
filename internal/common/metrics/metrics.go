// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_submissions_accepted_total",
			Help: "Total number of application submissions persisted",
		},
	)

	SubmissionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_submissions_rejected_total",
			Help: "Total number of application submissions rejected, by reason",
		},
		[]string{"reason"},
	)

	// StatusQueries keeps invalid-format and not-found outcomes apart even
	// though the external response is identical for both.
	StatusQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_status_queries_total",
			Help: "Total number of status queries, by outcome",
		},
		[]string{"outcome"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "portal_request_duration_seconds",
			Help: "Duration of request processing in seconds",
		},
		[]string{"endpoint"},
	)

	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_rate_limit_rejections_total",
			Help: "Total number of requests denied by throttling controls",
		},
		[]string{"limiter"},
	)

	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_notification_failures_total",
			Help: "Total number of failed confirmation notifications, by channel",
		},
		[]string{"channel"},
	)
)

// Submission rejection reasons.
const (
	ReasonRateLimited    = "rate_limited"
	ReasonTooSoon        = "too_soon"
	ReasonValidation     = "validation"
	ReasonFileValidation = "file_validation"
	ReasonStorage        = "storage"
)

// Status query outcomes.
const (
	OutcomeFound         = "found"
	OutcomeNotFound      = "not_found"
	OutcomeInvalidFormat = "invalid_format"
	OutcomeRateLimited   = "rate_limited"
	OutcomeError         = "error"
)
