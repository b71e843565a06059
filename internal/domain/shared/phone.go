package shared

import "strings"

// NormalizePhone reduces an Indian mobile number to its 10 significant digits.
// Spaces, dashes, and a +91/91/0 prefix are removed. The second return value
// reports whether the result is a valid mobile number.
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '+':
		default:
			return "", false
		}
	}
	digits := b.String()
	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		digits = digits[2:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		digits = digits[1:]
	}
	if len(digits) != 10 || digits[0] < '6' {
		return "", false
	}
	return digits, true
}
