package domain

import (
	"github.com/shopspring/decimal"
)

// Savings summarizes monthly cash flow
type Savings struct {
	MonthlyIncome   decimal.Decimal  `json:"monthly_income"`
	MonthlyExpenses decimal.Decimal  `json:"monthly_expenses"`
	MonthlySavings  decimal.Decimal  `json:"monthly_savings"`
	SavingsRate     *decimal.Decimal `json:"savings_rate"` // nil when there is no income to divide by
}

// Dashboard is every derived figure the presentation layer renders
type Dashboard struct {
	NetWorth           decimal.Decimal `json:"net_worth"`
	Allocation         Allocation      `json:"allocation"`
	Assumptions        Assumptions     `json:"assumptions"`
	AnnualContribution decimal.Decimal `json:"annual_contribution"`
	Scenarios          ScenarioSet     `json:"scenarios"`
	AnnualExpenses     decimal.Decimal `json:"annual_expenses"`
	CurrentFIIncome    decimal.Decimal `json:"current_fi_income"` // net worth at the default withdrawal rate
	FIIncome           []FIIncomePoint `json:"fi_income"`
	FIHorizon          FIHorizon       `json:"fi_horizon"`
	Savings            Savings         `json:"savings"`
	History            []HistoryPoint  `json:"history"`
	HistoryChange      *HistoryChange  `json:"history_change,omitempty"`
}
