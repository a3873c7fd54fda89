// Package format renders prices, volumes and changes as display strings.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Fixed renders x with exactly places decimals, rounding half away from zero.
func Fixed(x float64, places int) string {
	if math.IsNaN(x) {
		return "NaN"
	}
	if math.IsInf(x, 1) {
		return "Infinity"
	}
	if math.IsInf(x, -1) {
		return "-Infinity"
	}
	return decimal.NewFromFloat(x).StringFixed(int32(places))
}

// Exponential renders x in scientific notation with places mantissa decimals
// and an unpadded exponent, e.g. 1.23e-6.
func Exponential(x float64, places int) string {
	s := strconv.FormatFloat(x, 'e', places, 64)
	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

// Number scales large magnitudes with K/M/B suffixes.
func Number(n float64) string {
	switch {
	case n >= 1_000_000_000:
		return Fixed(n/1_000_000_000, 2) + "B"
	case n >= 1_000_000:
		return Fixed(n/1_000_000, 2) + "M"
	case n >= 1_000:
		return Fixed(n/1_000, 2) + "K"
	default:
		return Fixed(n, 2)
	}
}

// Price picks a precision suited to the magnitude of price.
func Price(price float64) string {
	switch {
	case price < 0.00001:
		return Exponential(price, 2)
	case price < 0.001:
		return Fixed(price, 6)
	case price < 1:
		return Fixed(price, 4)
	default:
		return Fixed(price, 2)
	}
}

// PercentageChange renders the change from oldValue to newValue with an
// explicit sign for non-negative results. A zero old value renders as 0.00%.
func PercentageChange(oldValue, newValue float64) string {
	if oldValue == 0 {
		return "0.00%"
	}
	change := (newValue - oldValue) / oldValue * 100
	if math.IsNaN(change) || math.IsInf(change, 0) {
		return "0.00%"
	}
	sign := ""
	if change >= 0 {
		sign = "+"
	}
	return sign + Fixed(change, 2) + "%"
}
