// Package plate normalizes vehicle registration plates to the canonical
// 1234abAB form: four digits, two lower-case series letters and an
// upper-case two-letter region code.
package plate

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// ErrInvalidPlateFormat is returned when a plate cannot be normalized.
var ErrInvalidPlateFormat = errors.New("license plate must match 1234abAB: 4 digits, 2 lower-case latin letters, 2 upper-case latin region letters")

const canonicalLength = 8

var canonicalPattern = regexp.MustCompile(`^\d{4}[a-z]{2}[A-Z]{2}$`)

// Normalize strips whitespace and hyphens from raw and returns the
// canonical plate. Strings that are not 8 characters long after stripping
// are lower-cased and still rejected.
func Normalize(raw string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, raw)

	normalized := canonicalize(cleaned)
	if !canonicalPattern.MatchString(normalized) {
		return "", ErrInvalidPlateFormat
	}
	return normalized, nil
}

// FormatForDisplay splits a plate into "1234 ab AB" groups. Anything that
// does not reduce to the canonical pattern is returned unchanged.
func FormatForDisplay(plate string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return -1
	}, plate)
	if len(cleaned) != canonicalLength {
		return plate
	}

	normalized := canonicalize(cleaned)
	if !canonicalPattern.MatchString(normalized) {
		return plate
	}
	return normalized[:4] + " " + normalized[4:6] + " " + normalized[6:]
}

// IsCanonical reports whether plate is already in canonical form.
func IsCanonical(plate string) bool {
	return canonicalPattern.MatchString(plate)
}

func canonicalize(s string) string {
	if len(s) == canonicalLength {
		return strings.ToLower(s[:6]) + strings.ToUpper(s[6:])
	}
	return strings.ToLower(s)
}
