package calculation

import (
	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectWealth simulates compound growth year by year. Each year the
// contribution is added first and the growth rate is applied to the sum:
//
//	value[y] = (value[y-1] + annualContribution) * (1 + rate)
//
// The series always starts with {0, current} and has years+1 entries.
// A negative horizon is treated as zero.
func ProjectWealth(current, annualContribution decimal.Decimal, years int, rate decimal.Decimal) domain.Series {
	if years < 0 {
		years = 0
	}
	series := make(domain.Series, 0, years+1)
	series = append(series, domain.ProjectionPoint{Year: 0, Value: current})

	growth := decimal.NewFromInt(1).Add(rate)
	value := current
	for y := 1; y <= years; y++ {
		value = value.Add(annualContribution).Mul(growth)
		series = append(series, domain.ProjectionPoint{Year: y, Value: value})
	}
	return series
}

// ProjectScenarios runs ProjectWealth once per named rate, sharing the same
// starting value, horizon and annualized contribution.
func ProjectScenarios(in domain.ScenarioInput) domain.ScenarioSet {
	annual := AnnualizeContribution(in.ContributionAmount, in.ContributionFrequency)
	return domain.ScenarioSet{
		Pessimistic: ProjectWealth(in.CurrentValue, annual, in.Years, in.Pessimistic),
		Realistic:   ProjectWealth(in.CurrentValue, annual, in.Years, in.Realistic),
		Optimistic:  ProjectWealth(in.CurrentValue, annual, in.Years, in.Optimistic),
	}
}
