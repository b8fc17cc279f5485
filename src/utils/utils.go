package utils

import (
	"math"
	"strconv"
	"time"
)

// -----------------------------------------------------------------------------

// ParseFloat converts a FIX decimal string into a float64, returning 0 for an
// empty string. The ok result is false when the field was present but not a
// valid number.
func ParseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// -----------------------------------------------------------------------------

// ParseInt converts a FIX integer string into an int, returning 0 for an
// empty string.
func ParseInt(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// -----------------------------------------------------------------------------

// IsFinite reports whether v is a usable quantity or price (not NaN/Inf).
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// -----------------------------------------------------------------------------

// FormatQty renders a quantity without a spurious trailing ".000000".
func FormatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// -----------------------------------------------------------------------------

// UTCTimestamp renders t in the FIX UTCTimestamp layout.
func UTCTimestamp(t time.Time) string {
	return t.UTC().Format("20060102-15:04:05.000")
}
