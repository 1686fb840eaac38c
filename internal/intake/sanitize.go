// internal/intake/sanitize.go
package intake

import "strings"

// sanitizeReplacer rewrites the characters that could carry markup or
// escape sequences into their entity equivalents. Applied to every freeform
// string before validation or logging. Ampersands are left alone, so the
// produced entities survive a second pass unchanged.
var sanitizeReplacer = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
	"`", "&#x60;",
	`\`, "&#x5C;",
)

// Clean applies the escaping transform to a single value.
func Clean(s string) string {
	return sanitizeReplacer.Replace(s)
}

// CleanAll applies the escaping transform to every value of a form bag.
func CleanAll(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = Clean(strings.TrimSpace(v))
	}
	return out
}
