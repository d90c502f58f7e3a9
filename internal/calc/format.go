package calc

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// Magnitudes outside [plainMin, plainMax) switch to exponent notation.
const (
	plainMin = 1e-4
	plainMax = 1e16
)

// FormatNumber renders v the way results and the last answer are shown: the
// shortest decimal that round-trips, integral values without a decimal point,
// very large or small magnitudes in exponent form. The output always lexes
// back to v.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == 0:
		return "0"
	}
	if abs := math.Abs(v); abs >= plainMin && abs < plainMax {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatGrouped renders v with thousands separators for display.
func FormatGrouped(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= plainMax {
		return FormatNumber(v)
	}
	if v == 0 {
		return "0"
	}
	return humanize.Commaf(v)
}
