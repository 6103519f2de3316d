package utils

import (
	"math"
	"regexp"
	"strconv"
)

var priceRe = regexp.MustCompile(`\d+\.?\d*`)

// ExtractPrice returns the first number in a free-form price string, so
// "$25 - $30" is 25. Text without digits is +Inf and sorts last ascending.
func ExtractPrice(text string) float64 {
	m := priceRe.FindString(text)
	if m == "" {
		return math.Inf(1)
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.Inf(1)
	}
	return v
}

// ComparePrices orders two price strings numerically.
func ComparePrices(a, b string) int {
	pa, pb := ExtractPrice(a), ExtractPrice(b)
	switch {
	case pa < pb:
		return -1
	case pa > pb:
		return 1
	}
	return 0
}
