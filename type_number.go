package costsheet

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumber parses text typed in a cell as a number. Thousands separators
// and blanks are ignored, so "1,234.50" is 1234.5. Text that does not denote a
// finite number is rejected.
func ParseNumber(s string) (float64, bool) {
	d, ok := parseDecimal(s)
	if !ok {
		return 0, false
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', '\t', ' ', ' ':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func isNumeric(s string) bool {
	_, ok := ParseNumber(s)
	return ok
}

// round2 rounds a result to two decimal places, halves away from zero.
// Working in decimal keeps 1.005 rounding to 1.01.
func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
