// Package phone provides phone number normalization utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// defaultRegion is the calling region assumed for bare national numbers.
const defaultRegion = "US"

// defaultCountryCode is the dialing prefix for the default region.
const defaultCountryCode = "+1"

// Normalize maps visitor-typed phone text to a stable dialable form.
//
// A bare 10-digit number is assumed to belong to the default North American
// region unless intlHint is set, in which case the input is returned unchanged
// so the caller can ask for a country code instead of guessing one. Inputs
// that already carry a country code are kept fully qualified. Malformed but
// non-empty input is returned trimmed rather than dropped.
func Normalize(raw string, intlHint bool) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	digits := digitsOf(trimmed)
	if digits == "" {
		return ""
	}
	hasPlus := strings.HasPrefix(trimmed, "+")

	switch {
	case len(digits) == 10:
		if intlHint && !hasPlus {
			// Ambiguous: resolving the region is the dialogue's job.
			return trimmed
		}
		return refine(defaultCountryCode + digits)
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return refine(defaultCountryCode + digits[1:])
	case hasPlus && len(digits) >= 11 && len(digits) <= 15:
		return refine("+" + digits)
	case !hasPlus && len(digits) >= 12 && len(digits) <= 15:
		return refine("+" + digits)
	default:
		return trimmed
	}
}

// NeedsCountryCode reports whether the number is a bare 10-digit national
// number that cannot be safely assumed to be North American.
func NeedsCountryCode(raw string, intlHint bool) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "+") {
		return false
	}
	return intlHint && len(digitsOf(trimmed)) == 10
}

// FormatDisplay groups a normalized default-region number as
// +1-area-exchange-line. Any other value is echoed unchanged.
func FormatDisplay(normalized string) string {
	if !strings.HasPrefix(normalized, defaultCountryCode) {
		return normalized
	}
	national := normalized[len(defaultCountryCode):]
	if len(national) != 10 || digitsOf(national) != national {
		return normalized
	}
	return defaultCountryCode + "-" + national[:3] + "-" + national[3:6] + "-" + national[6:]
}

// refine runs a fully qualified candidate through libphonenumber and returns
// the canonical E.164 form when it parses as a valid number. The candidate is
// kept as-is otherwise; a malformed-but-present number is more useful than none.
func refine(candidate string) string {
	number, err := phonenumbers.Parse(candidate, defaultRegion)
	if err != nil {
		return candidate
	}
	if !phonenumbers.IsValidNumber(number) {
		return candidate
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
