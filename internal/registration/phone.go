package registration

import (
	"errors"
	"strings"
)

// ErrInvalidPhone is returned for input that cannot be normalized into a
// canonical phone number.
var ErrInvalidPhone = errors.New("invalid phone number")

// NormalizePhone validates a raw phone number and returns it in canonical
// +<country><number> form.
//
// Formatting characters (whitespace, parentheses, hyphens) and a leading
// plus are stripped first; any other non-digit rejects the input. The
// digit count must be within [10, 15]. Numbers starting with 7 or 8 must
// have exactly 11 digits and are normalized to +7; a 10-digit number
// starting with 9 is treated as a national mobile number missing the
// country code. Everything else passes through as +<digits>.
func NormalizePhone(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "+")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '(' || r == ')' || r == '-':
			// formatting noise
		default:
			return "", ErrInvalidPhone
		}
	}

	digits := b.String()
	if len(digits) < 10 || len(digits) > 15 {
		return "", ErrInvalidPhone
	}

	switch {
	case digits[0] == '7' || digits[0] == '8':
		// Russian numbers are accepted at exactly 11 digits; an
		// 8-prefix is rewritten to the country code.
		if len(digits) != 11 {
			return "", ErrInvalidPhone
		}
		return "+7" + digits[1:], nil
	case digits[0] == '9' && len(digits) == 10:
		return "+7" + digits, nil
	}

	return "+" + digits, nil
}
