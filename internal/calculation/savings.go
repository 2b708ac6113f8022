package calculation

import (
	"github.com/rgehrsitz/fidash/internal/domain"
)

// CalculateSavings turns the income and expense ledgers into monthly savings.
// SavingsRate stays nil when there is no positive income to divide by.
func CalculateSavings(incomes, expenses domain.Ledger) domain.Savings {
	income := incomes.MonthlyTotal()
	spend := expenses.MonthlyTotal()
	s := domain.Savings{
		MonthlyIncome:   income,
		MonthlyExpenses: spend,
		MonthlySavings:  income.Sub(spend),
	}
	if income.IsPositive() {
		rate := s.MonthlySavings.Div(income)
		s.SavingsRate = &rate
	}
	return s
}
