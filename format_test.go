package costsheet

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v        any
		decimals int
		want     string
	}{
		{1234.5, 2, "1,234.50"},
		{0.0, 2, "0.00"},
		{0, 2, "0.00"},
		{1234567.891, 2, "1,234,567.89"},
		{-42.0, 2, "-42.00"},
		{12, 1, "12.0"},
		{decimal.RequireFromString("99.999"), 2, "100.00"},
		{"abc", 2, "abc"},
		{"1234", 2, "1234"},
		{ErrorSentinel, 2, ErrorSentinel},
		{nil, 2, ""},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.v, tt.decimals); got != tt.want {
			t.Errorf("FormatNumber(%#v, %d) = %q, want %q", tt.v, tt.decimals, got, tt.want)
		}
	}
}

func TestNumberFormatLocale(t *testing.T) {
	f := NumberFormat{Locale: language.French, Decimals: 2}
	got := f.Format(1234.5)
	if !strings.HasSuffix(got, ",50") || !strings.HasPrefix(got, "1") {
		t.Errorf("French Format(1234.5) = %q, want a decimal comma", got)
	}
	if got := (NumberFormat{Locale: language.German, Decimals: 2}).Format(1234567.5); got != "1.234.567,50" {
		t.Errorf("German Format(1234567.5) = %q", got)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		v        float64
		currency string
		want     string
	}{
		{1234.5, "USD", "$1,234.50"},
		{0, "USD", "$0.00"},
		{-12.345, "USD", "-$12.35"},
		{1500, "JPY", "¥1,500"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.v, tt.currency); got != tt.want {
			t.Errorf("FormatMoney(%v, %s) = %q, want %q", tt.v, tt.currency, got, tt.want)
		}
	}
}
