// internal/repository/id.go
package repository

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

// applicationIDRegex matches the public identifier format handed to
// applicants: IAF-<four digit year>-<five digit number>.
var applicationIDRegex = regexp.MustCompile(`^IAF-\d{4}-\d{5}$`)

// ValidApplicationID reports whether s has the public identifier shape.
func ValidApplicationID(s string) bool {
	return applicationIDRegex.MatchString(s)
}

// newApplicationID draws a fresh candidate identifier. Uniqueness is
// enforced by the store's unique index, not here; collisions surface as
// duplicate-key failures and the caller redraws.
func newApplicationID(now time.Time, randInt func(n int) int) string {
	// 10000..99999 keeps the numeric part at exactly five digits.
	serial := 10000 + randInt(90000)
	return fmt.Sprintf("IAF-%d-%05d", now.Year(), serial)
}

var defaultRandInt = rand.Intn
