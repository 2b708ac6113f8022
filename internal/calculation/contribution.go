package calculation

import (
	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// AnnualizeContribution converts a periodic contribution into a yearly figure.
// Anything that is not monthly is taken as already annual.
func AnnualizeContribution(amount decimal.Decimal, freq domain.Frequency) decimal.Decimal {
	if amount.IsZero() {
		return decimal.Zero
	}
	if freq == domain.FrequencyMonthly {
		return amount.Mul(monthsPerYear)
	}
	return amount
}
