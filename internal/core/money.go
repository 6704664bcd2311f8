// Package core provides money formatting helpers.
//
// Balances are plain float64 values; formatting goes through decimal so the
// two-digit rendering is rounded half away from zero rather than by the
// binary representation.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders a value with exactly two decimals, e.g. 12.5 -> "12.50".
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatMoney renders a value as dollars, e.g. -3 -> "-$3.00".
func FormatMoney(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// RenderOutcome substitutes the amount placeholder in an outcome template.
func RenderOutcome(template string, amount float64) string {
	return strings.ReplaceAll(template, AmountPlaceholder, "$"+FormatAmount(amount))
}

// RoundCents rounds to the nearest cent.
func RoundCents(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
