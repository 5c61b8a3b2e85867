package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxNodeIDLength bounds node ids accepted from snapshot files and requests.
const maxNodeIDLength = 512

// ValidateNodeID validates a node id read from untrusted input.
//
// The rules are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - Maximum length of 512 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}

	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidNodeID, "node id too long (max %d characters)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNodeID, "node id contains invalid control characters")
		}
	}

	return nil
}

// ValidateCoordinate validates that every value is a finite number.
// name identifies the value in the error message (e.g., "x", "bounds.width").
func ValidateCoordinate(name string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidCoordinate, "%s must be a finite number", name)
		}
	}
	return nil
}

// ValidateFormat validates an output format against the supported set.
func ValidateFormat(format string, supported ...string) error {
	for _, s := range supported {
		if strings.EqualFold(format, s) {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(supported, ", "))
}
