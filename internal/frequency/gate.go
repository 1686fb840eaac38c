// internal/frequency/gate.go
package frequency

import (
	"strconv"
	"time"

	"scholarship-portal/internal/common/logger"
)

// Cookie names set on a successful submission.
const (
	LastSubmissionCookie = "iaf_last_submission"
	ApplicationIDCookie  = "iaf_application_id"

	LastSubmissionTTL = 24 * time.Hour
	ApplicationIDTTL  = 7 * 24 * time.Hour
)

// Gate enforces a minimum interval between submissions from the same
// browser, keyed off a timestamp cookie. It is a courtesy brake against
// accidental double submits, not a security control; clearing cookies
// defeats it and the rate limiters still stand behind it.
type Gate struct {
	minInterval time.Duration
	logger      logger.Logger
	now         func() time.Time
}

func NewGate(minInterval time.Duration, log logger.Logger) *Gate {
	return &Gate{
		minInterval: minInterval,
		logger:      log,
		now:         time.Now,
	}
}

// Allow decides whether a submission may proceed given the browser's
// last-submission marker. An absent marker always passes. A marker that
// does not parse as epoch milliseconds passes too, with a warning, so a
// corrupted cookie can never lock a legitimate applicant out.
func (g *Gate) Allow(marker string) (bool, time.Duration) {
	if marker == "" {
		return true, 0
	}

	lastMillis, err := strconv.ParseInt(marker, 10, 64)
	if err != nil {
		g.logger.Warn("unparseable last-submission marker, admitting", map[string]interface{}{
			"marker": marker,
		})
		return true, 0
	}

	elapsed := g.now().Sub(time.UnixMilli(lastMillis))
	if elapsed >= g.minInterval {
		return true, 0
	}
	return false, g.minInterval - elapsed
}

// Marker renders the value to store after a successful submission.
func (g *Gate) Marker() string {
	return strconv.FormatInt(g.now().UnixMilli(), 10)
}
