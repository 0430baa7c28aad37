package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseDecimal attempts a lenient numeric coercion of a form field.
// Clinical forms are filled in pt-BR locale, so a decimal comma is
// accepted alongside a decimal point. Returns false when the string
// is empty or cannot be coerced.
func ParseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IsBlank reports whether a form field is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// FormatScore renders a numeric value without locale drift: plain
// ASCII digits, '.' decimal separator, no trailing zeros.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Round2 rounds to two decimal places, the precision used for Z-scores.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
