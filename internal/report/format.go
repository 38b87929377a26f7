package report

import (
	"fmt"
	"math"
	"strconv"
)

// FormatCount renders a count the way the trending page abbreviates them:
// millions as "1.5M", thousands as "2.5K", everything below as the plain
// integer. One decimal place, rounded half-up.
func FormatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return formatScaled(float64(n)/1_000_000) + "M"
	case n >= 1_000:
		return formatScaled(float64(n)/1_000) + "K"
	default:
		return strconv.Itoa(n)
	}
}

// formatScaled renders x with exactly one decimal place using half-up
// rounding. fmt's %.1f rounds half-to-even, which would turn 1.25 into
// "1.2"; rounding explicitly first keeps half-up semantics.
func formatScaled(x float64) string {
	return fmt.Sprintf("%.1f", math.Floor(x*10+0.5)/10)
}
