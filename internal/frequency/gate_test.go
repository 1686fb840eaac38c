// internal/frequency/gate_test.go
package frequency

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"scholarship-portal/internal/common/logger"
)

func newTestGate(interval time.Duration, now time.Time) *Gate {
	g := NewGate(interval, logger.NewNoOpLogger())
	g.now = func() time.Time { return now }
	return g
}

func TestGateAllowsFirstSubmission(t *testing.T) {
	g := newTestGate(time.Hour, time.Now())

	allowed, wait := g.Allow("")

	assert.True(t, allowed)
	assert.Zero(t, wait)
}

func TestGateBoundaryIsInclusive(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	g := newTestGate(time.Hour, now)

	tests := []struct {
		name    string
		elapsed time.Duration
		allowed bool
	}{
		{name: "one millisecond short", elapsed: time.Hour - time.Millisecond, allowed: false},
		{name: "exactly the interval", elapsed: time.Hour, allowed: true},
		{name: "past the interval", elapsed: time.Hour + time.Minute, allowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marker := strconv.FormatInt(now.Add(-tt.elapsed).UnixMilli(), 10)
			allowed, wait := g.Allow(marker)
			assert.Equal(t, tt.allowed, allowed)
			if !tt.allowed {
				assert.Greater(t, wait, time.Duration(0))
			}
		})
	}
}

func TestGateAdmitsMalformedMarker(t *testing.T) {
	g := newTestGate(time.Hour, time.Now())

	for _, marker := range []string{"not-a-number", "12.5", "2026-01-15T12:00:00Z"} {
		allowed, wait := g.Allow(marker)
		assert.True(t, allowed, "marker %q must not lock the applicant out", marker)
		assert.Zero(t, wait)
	}
}

func TestGateMarkerRoundTrips(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	g := newTestGate(time.Hour, now)

	marker := g.Marker()

	// A fresh marker blocks an immediate resubmission for the full interval.
	allowed, wait := g.Allow(marker)
	assert.False(t, allowed)
	assert.Equal(t, time.Hour, wait)
}
