package utils

import (
	"strings"
)

// phonePattern is the display mask applied while a phone number is typed.
// Digits fill the '9' slots in order; literals are emitted between them and
// never after the last digit.
const phonePattern = "(99) 99999-9999"

// MaskPhone formats a phone number for display. The input may be raw digits
// or an already masked value; anything that is not a digit is stripped first.
func MaskPhone(value string) string {
	digits := UnmaskPhone(value)

	var b strings.Builder
	i := 0
	for _, r := range phonePattern {
		if i >= len(digits) {
			break
		}
		if r == '9' {
			b.WriteByte(digits[i])
			i++
		} else {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// UnmaskPhone strips everything but digits, producing the canonical form
// sent to the backend.
func UnmaskPhone(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Truncate shortens a string for column display, appending "..." when it
// does not fit.
func Truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		if len(s) <= max {
			return s
		}
		return s[:max]
	}
	return s[:max-3] + "..."
}
