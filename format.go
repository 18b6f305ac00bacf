package costsheet

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NumberFormat formats numbers for display with the grouping and decimal
// separators of a locale.
type NumberFormat struct {
	Locale   language.Tag
	Decimals int
}

// DefaultNumberFormat is English with two decimals.
var DefaultNumberFormat = NumberFormat{Locale: language.English, Decimals: 2}

// FormatNumber formats v with the default locale and the given decimals.
func FormatNumber(v any, decimals int) string {
	return NumberFormat{Locale: DefaultNumberFormat.Locale, Decimals: decimals}.Format(v)
}

// Format returns v with grouping and exactly f.Decimals fraction digits when v
// is a number. Anything else, strings included, is returned in its string form.
func (f NumberFormat) Format(v any) string {
	var x any
	switch n := v.(type) {
	case nil:
		return ""
	case float64:
		x = n
	case float32:
		x = float64(n)
	case int:
		x = n
	case int64:
		x = n
	case decimal.Decimal:
		x = n.InexactFloat64()
	default:
		return fmt.Sprint(v)
	}
	d := max(f.Decimals, 0)
	p := message.NewPrinter(f.Locale)
	return p.Sprint(number.Decimal(x, number.MinFractionDigits(d), number.MaxFractionDigits(d)))
}

// FormatMoney formats an amount in the given ISO currency, e.g. "$1,234.50".
// The amount is rounded to the currency's minor unit.
func FormatMoney(v float64, currency string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	// money.New falls back to a bare currency for unknown codes.
	cur := money.New(0, currency).Currency()
	minor := decimal.NewFromFloat(v).Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
