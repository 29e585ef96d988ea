package versioning

import (
	"fmt"
	"math"
)

// FormatDelta renders a numeric delta for display. Zero is always the literal
// "0". Non-zero values carry an explicit sign, two decimals for currency-like
// deltas and one decimal plus a trailing "%" for percentages.
func FormatDelta(delta float64, percent bool) string {
	if delta == 0 {
		return "0"
	}

	sign := "+"
	if delta < 0 {
		sign = "-"
	}

	if percent {
		return fmt.Sprintf("%s%.1f%%", sign, math.Abs(delta))
	}
	return fmt.Sprintf("%s%.2f", sign, math.Abs(delta))
}
