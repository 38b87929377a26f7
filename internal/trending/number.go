package trending

import (
	"strconv"
	"strings"
)

// ParseCount converts display text such as "1.2k" or "1,234" into a
// non-negative integer. GitHub abbreviates counts above one thousand with
// a "k" suffix; everything else is rendered with thousands separators.
//
// The rules mirror the trending page's display format:
//   - every rune except digits, '.', and 'k'/'K' is stripped
//   - a "k" marker means float-parse the remainder and multiply by 1000,
//     truncating to an integer
//   - otherwise the remainder is parsed as an integer, with a
//     float-truncate fallback for text like "1.5"
//
// ParseCount never fails: empty input, missing digits, or unparsable text
// all yield 0.
func ParseCount(text string) int {
	var b strings.Builder
	hasThousands := false
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == 'k' || r == 'K':
			hasThousands = true
		}
	}

	num := b.String()
	if num == "" {
		return 0
	}

	if hasThousands {
		f, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0
		}
		return clampNonNegative(int(f * 1000))
	}

	if n, err := strconv.Atoi(num); err == nil {
		return clampNonNegative(n)
	}

	// Text like "1.5" without a thousands marker: truncate the float part.
	if f, err := strconv.ParseFloat(num, 64); err == nil {
		return clampNonNegative(int(f))
	}
	return 0
}

// clampNonNegative guards the never-negative invariant on counts.
func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
