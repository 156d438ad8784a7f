// Package money centralizes decimal arithmetic and Indonesian currency
// formatting. Every monetary field in SAKU is a decimal.Decimal — binary
// floats are never used for amounts, per the platform's accounting
// invariant.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Round rounds amount to 2 decimal places using banker-free half-up
// rounding, the convention gorm persists numeric(18,2) columns with.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// FormatIDR renders amount as Indonesian currency: "Rp 1.234.567,89".
func FormatIDR(amount decimal.Decimal) string {
	return "Rp " + FormatIndonesianNumber(amount)
}

// FormatIndonesianNumber renders amount with '.' thousands separators and
// ',' as the decimal separator, e.g. 1234567.89 -> "1.234.567,89".
func FormatIndonesianNumber(amount decimal.Decimal) string {
	s := Round(amount).StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart := addThousandSeparators(parts[0], ".")
	decPart := "00"
	if len(parts) > 1 {
		decPart = parts[1]
	}

	out := intPart
	if decPart != "00" && decPart != "" {
		out = intPart + "," + decPart
	}
	if neg {
		out = "-" + out
	}
	return out
}

func addThousandSeparators(digits, sep string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	for i, ch := range digits {
		b.WriteRune(ch)
		remaining := n - i - 1
		if remaining > 0 && remaining%3 == 0 {
			b.WriteString(sep)
		}
	}
	return b.String()
}
