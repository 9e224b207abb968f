// Package money holds the display formatting contracts shared by the domain
// entities: locale-grouped currency strings with exactly two fraction digits,
// percentages with one fraction digit, and signed return strings that carry
// an explicit plus for gains.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Symbols for the currencies the simulated backends deal in.
var currencySymbols = map[string]string{
	"BRL": "R$",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "$",
	"AUD": "$",
}

// Symbol returns the display symbol for an ISO 4217 code, falling back to the
// code itself for currencies without a configured symbol.
func Symbol(currency string) string {
	if s, ok := currencySymbols[currency]; ok {
		return s
	}
	return currency
}

// FormatAmount renders an amount with locale grouping and exactly two
// fraction digits, prefixed by the currency symbol: 1234.5 USD → "$1,234.50".
// Negative amounts carry the formatter's native minus sign.
func FormatAmount(amount float64, currency string) string {
	return printer.Sprintf("%s%.2f", Symbol(currency), amount)
}

// FormatSignedAmount is FormatAmount with an explicit "+" prefix for strictly
// positive amounts, used for investment returns.
func FormatSignedAmount(amount float64, currency string) string {
	if amount > 0 {
		return "+" + FormatAmount(amount, currency)
	}
	return FormatAmount(amount, currency)
}

// FormatPercent renders a ratio in [0,1] as a percentage with one fraction
// digit and a "%" suffix: 0.1667 → "16.7%".
func FormatPercent(ratio float64) string {
	return printer.Sprintf("%.1f%%", ratio*100)
}

// FormatSignedPercent is FormatPercent with an explicit "+" prefix for
// strictly positive ratios.
func FormatSignedPercent(ratio float64) string {
	if ratio > 0 {
		return "+" + FormatPercent(ratio)
	}
	return FormatPercent(ratio)
}

// Mul multiplies two amounts through decimal arithmetic so derived values
// (quantity × price) carry no binary float artifacts.
func Mul(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)).Float64()
	return f
}

// Sub subtracts b from a through decimal arithmetic.
func Sub(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Float64()
	return f
}

// Ratio divides num by den through decimal arithmetic, returning 0 when den
// is 0. Division is carried out at decimal.DivisionPrecision digits.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	f, _ := decimal.NewFromFloat(num).Div(decimal.NewFromFloat(den)).Float64()
	return f
}

// ClampRatio clamps a raw ratio to [0,1] for display. Completion and
// over-limit checks must use the raw ratio, never the clamped one.
func ClampRatio(ratio float64) float64 {
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}
