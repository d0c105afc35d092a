package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// FormatDecimal renders f with at least one fractional digit: 3 -> "3.0", 85.5 -> "85.5".
func FormatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") { // NaN & Inf are left as is
		s += ".0"
	}
	return s
}

// ParseDecimal is the inverse of FormatDecimal. Only finite numbers are accepted.
func ParseDecimal(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Errorf("%q is not a finite number", s)
	}
	return f, nil
}
