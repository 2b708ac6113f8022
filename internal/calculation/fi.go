package calculation

import (
	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultWithdrawalRate is the 4% rule
var DefaultWithdrawalRate = decimal.NewFromFloat(0.04)

// DefaultFIRates returns the withdrawal rates charted by default
func DefaultFIRates() []decimal.Decimal {
	return []decimal.Decimal{
		decimal.NewFromFloat(0.035),
		decimal.NewFromFloat(0.04),
		decimal.NewFromFloat(0.045),
	}
}

// FIIncome is the yearly income a balance sustains at a withdrawal rate.
// A zero rate selects DefaultWithdrawalRate.
func FIIncome(netWorth, withdrawalRate decimal.Decimal) decimal.Decimal {
	if withdrawalRate.IsZero() {
		withdrawalRate = DefaultWithdrawalRate
	}
	return netWorth.Mul(withdrawalRate)
}

// BuildFIIncomeSeries derives, for every point of a projection, the income
// sustained at each withdrawal rate alongside the constant annual expenses.
// An empty rate list selects DefaultFIRates and a repeated rate is charted
// once. Inputs are never modified.
func BuildFIIncomeSeries(series domain.Series, rates []decimal.Decimal, annualExpenses decimal.Decimal) []domain.FIIncomePoint {
	if len(rates) == 0 {
		rates = DefaultFIRates()
	}
	var (
		unique []decimal.Decimal
		keys   []string
		seen   = make(map[string]bool, len(rates))
	)
	for _, r := range rates {
		key := domain.IncomeKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, r)
		keys = append(keys, key)
	}
	rates = unique

	out := make([]domain.FIIncomePoint, 0, len(series))
	for _, p := range series {
		incomes := make([]domain.RateIncome, len(rates))
		for i, r := range rates {
			incomes[i] = domain.RateIncome{Rate: r, Key: keys[i], Income: p.Value.Mul(r)}
		}
		out = append(out, domain.FIIncomePoint{Year: p.Year, Incomes: incomes, Expenses: annualExpenses})
	}
	return out
}

// YearsToFI returns the first year whose sustainable income covers
// annualExpenses. The series must be ascending by year. ok is false when the
// horizon never gets there, and also when annualExpenses is not positive since
// there is nothing to cover. A zero rate selects DefaultWithdrawalRate.
func YearsToFI(series domain.Series, annualExpenses, withdrawalRate decimal.Decimal) (year int, ok bool) {
	if !annualExpenses.IsPositive() {
		return 0, false
	}
	if withdrawalRate.IsZero() {
		withdrawalRate = DefaultWithdrawalRate
	}
	for _, p := range series {
		if p.Value.Mul(withdrawalRate).GreaterThanOrEqual(annualExpenses) {
			return p.Year, true
		}
	}
	return 0, false
}
