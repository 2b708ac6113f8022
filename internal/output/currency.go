package output

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency is configured
const DefaultCurrency = "USD"

var hundred = decimal.NewFromInt(100)

// FormatCurrency renders an amount in the given currency's local notation,
// e.g. $1,234.56 or 1.234,56 €. Unknown codes fall back to "1234.56 XYZ".
func FormatCurrency(amount decimal.Decimal, code string) string {
	if code == "" {
		code = DefaultCurrency
	}
	cur := money.GetCurrency(strings.ToUpper(code))
	if cur == nil {
		return amount.StringFixed(2) + " " + strings.ToUpper(code)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}

// FormatPercentage renders a fractional rate as a percentage: 0.07 -> 7.00%
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(2) + "%"
}

// FormatPercentagePtr renders nil as "n/a"
func FormatPercentagePtr(rate *decimal.Decimal) string {
	if rate == nil {
		return "n/a"
	}
	return FormatPercentage(*rate)
}
