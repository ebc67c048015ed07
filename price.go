package pricecheck

import (
	"strconv"
	"strings"
)

// ParsePrice extracts a non-negative integer price from a raw price string
// by keeping only its ASCII digits. Currency symbols, grouping separators and
// decimal separators are all discarded, so "₹27,990" yields 27990 and
// "1,299.00" yields 129900. It reports false when raw has no digits or the
// digits do not fit in an int.
func ParsePrice(raw string) (int, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

// PriceOf returns a pointer to n, for building listings with a known price.
func PriceOf(n int) *int {
	return &n
}
