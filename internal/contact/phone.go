package contact

import "strings"

// FormatPhone normalizes a free-form phone number to an E.164-like string.
// Rules: keep digits only; a leading "+" survives with its digits; a bare
// 10-digit number is assumed US and prefixed with +1; an 11-digit number
// starting with 1 gets a "+". Anything else is unparseable and the field is
// omitted (ok=false).
func FormatPhone(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	var digits strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if d == "" {
		return "", false
	}

	if strings.HasPrefix(trimmed, "+") {
		return "+" + d, true
	}
	switch {
	case len(d) == 10:
		return "+1" + d, true
	case len(d) == 11 && d[0] == '1':
		return "+" + d, true
	}
	return "", false
}
