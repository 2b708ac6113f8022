package calculation

import (
	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine composes the pure calculators into the full dashboard
// view of a portfolio. It holds configuration only, never portfolio state,
// so one engine may serve concurrent callers.
type CalculationEngine struct {
	Logger Logger
	// FIRates are the withdrawal rates charted in the FI income series
	FIRates []decimal.Decimal
	// WithdrawalRate decides the FI horizon and current FI income
	WithdrawalRate decimal.Decimal
	Debug          bool
}

// NewCalculationEngine creates an engine with the default rates
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger:         NopLogger{},
		FIRates:        DefaultFIRates(),
		WithdrawalRate: DefaultWithdrawalRate,
	}
}

// SetLogger sets the logger for the engine. Nil installs a no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// AnnualExpenses scales the monthly expense ledger to a year
func AnnualExpenses(expenses domain.Ledger) decimal.Decimal {
	return expenses.MonthlyTotal().Mul(monthsPerYear)
}

// BuildDashboard computes every derived figure for a portfolio. The
// portfolio is read only.
func (ce *CalculationEngine) BuildDashboard(p domain.Portfolio) *domain.Dashboard {
	log := ce.logger()

	allocation := CalculateAllocation(p.Assets)
	netWorth := allocation.Total
	if ce.Debug {
		log.Debugf("allocation: %d assets, total %s", len(allocation.Items), netWorth.StringFixed(2))
	}

	scenarios := ProjectScenarios(domain.NewScenarioInput(netWorth, p.Assumptions))
	annualExpenses := AnnualExpenses(p.Expenses)

	d := &domain.Dashboard{
		NetWorth:           netWorth,
		Allocation:         allocation,
		Assumptions:        p.Assumptions,
		AnnualContribution: AnnualizeContribution(p.Assumptions.ContributionAmount, p.Assumptions.ContributionFrequency),
		Scenarios:          scenarios,
		AnnualExpenses:     annualExpenses,
		CurrentFIIncome:    FIIncome(netWorth, ce.WithdrawalRate),
		FIIncome:           BuildFIIncomeSeries(scenarios.Realistic, ce.FIRates, annualExpenses),
		Savings:            CalculateSavings(p.Incomes, p.Expenses),
		History:            append([]domain.HistoryPoint(nil), p.History...),
	}

	rate := ce.WithdrawalRate
	if rate.IsZero() {
		rate = DefaultWithdrawalRate
	}
	year, ok := YearsToFI(scenarios.Realistic, annualExpenses, rate)
	d.FIHorizon = domain.FIHorizon{Rate: rate, Year: year, Reached: ok}
	if ok {
		log.Debugf("FI reached in year %d at %s%% withdrawal", year, rate.Mul(hundred).String())
	} else {
		log.Debugf("FI not reached within %d years", p.Assumptions.Years)
	}

	if change, ok := domain.SummarizeHistory(p.History); ok {
		d.HistoryChange = &change
	}

	if d.Savings.SavingsRate == nil {
		log.Debugf("no positive monthly income recorded; savings rate undefined")
	}
	return d
}
