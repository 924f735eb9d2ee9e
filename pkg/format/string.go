package format

import (
	"strings"
)

// TruncateString cuts s down to at most max bytes.
func TruncateString(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}

// ContainsI reports whether a contains b, case-insensitively.
func ContainsI(a string, b string) bool {
	return strings.Contains(
		strings.ToLower(a),
		strings.ToLower(b),
	)
}
