package compare

import (
	"fmt"

	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single what-if scenario with calculated metrics
type ComparisonResult struct {
	ScenarioName string             `json:"scenarioName"`
	Description  string             `json:"description"`
	Assumptions  domain.Assumptions `json:"assumptions"`
	Dashboard    *domain.Dashboard  `json:"-"`

	// Key Metrics
	StartValue         decimal.Decimal `json:"startValue"`
	FinalValue         decimal.Decimal `json:"finalValue"` // realistic scenario, last year
	FinalPessimistic   decimal.Decimal `json:"finalPessimistic"`
	FinalOptimistic    decimal.Decimal `json:"finalOptimistic"`
	TotalContributions decimal.Decimal `json:"totalContributions"`
	Growth             decimal.Decimal `json:"growth"` // final minus start minus contributions
	FIYear             int             `json:"fiYear"`
	FIReached          bool            `json:"fiReached"`

	// Comparison to Base
	FinalDiffFromBase        decimal.Decimal `json:"finalDiffFromBase"`
	FinalPctFromBase         decimal.Decimal `json:"finalPctFromBase"`
	ContributionDiffFromBase decimal.Decimal `json:"contributionDiffFromBase"`
	GrowthDiffFromBase       decimal.Decimal `json:"growthDiffFromBase"`
	// FIYearDiff is nil unless both this scenario and the base reach FI
	FIYearDiff *int `json:"fiYearDiff,omitempty"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts key metrics from computed dashboards
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one dashboard
func (mc *MetricsCalculator) CalculateMetrics(name string, d *domain.Dashboard) ComparisonResult {
	result := ComparisonResult{
		ScenarioName: name,
		Assumptions:  d.Assumptions,
		Dashboard:    d,
		StartValue:   d.NetWorth,
		FIYear:       d.FIHorizon.Year,
		FIReached:    d.FIHorizon.Reached,
	}

	result.FinalValue = finalValue(d.Scenarios.Realistic, d.NetWorth)
	result.FinalPessimistic = finalValue(d.Scenarios.Pessimistic, d.NetWorth)
	result.FinalOptimistic = finalValue(d.Scenarios.Optimistic, d.NetWorth)

	years := d.Assumptions.Years
	if years < 0 {
		years = 0
	}
	result.TotalContributions = d.AnnualContribution.Mul(decimal.NewFromInt(int64(years)))
	result.Growth = result.FinalValue.Sub(result.StartValue).Sub(result.TotalContributions)

	return result
}

func finalValue(s domain.Series, fallback decimal.Decimal) decimal.Decimal {
	if last, ok := s.Final(); ok {
		return last.Value
	}
	return fallback
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.FinalDiffFromBase = scenario.FinalValue.Sub(base.FinalValue)

	if !base.FinalValue.IsZero() {
		scenario.FinalPctFromBase = scenario.FinalDiffFromBase.
			Div(base.FinalValue.Abs()).
			Mul(decimal.NewFromInt(100))
	}

	scenario.ContributionDiffFromBase = scenario.TotalContributions.Sub(base.TotalContributions)
	scenario.GrowthDiffFromBase = scenario.Growth.Sub(base.Growth)

	scenario.FIYearDiff = nil
	if scenario.FIReached && base.FIReached {
		diff := scenario.FIYear - base.FIYear
		scenario.FIYearDiff = &diff
	}

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Largest final balance
	best := -1
	for i, alt := range compSet.AlternativeResults {
		if alt.FinalValue.GreaterThan(base.FinalValue) &&
			(best < 0 || alt.FinalValue.GreaterThan(compSet.AlternativeResults[best].FinalValue)) {
			best = i
		}
	}
	if best >= 0 {
		alt := compSet.AlternativeResults[best]
		recommendations = append(recommendations,
			"Largest Balance: "+alt.ScenarioName+" ends with $"+alt.FinalValue.Sub(base.FinalValue).StringFixed(0)+
				" more than the base plan")
	}

	// Earliest financial independence
	fastest := -1
	for i, alt := range compSet.AlternativeResults {
		if !alt.FIReached {
			continue
		}
		if base.FIReached && alt.FIYear >= base.FIYear {
			continue
		}
		if fastest < 0 || alt.FIYear < compSet.AlternativeResults[fastest].FIYear {
			fastest = i
		}
	}
	if fastest >= 0 {
		alt := compSet.AlternativeResults[fastest]
		if base.FIReached {
			recommendations = append(recommendations,
				"Fastest FI: "+alt.ScenarioName+" reaches financial independence "+
					fmt.Sprintf("%d years sooner (year %d)", base.FIYear-alt.FIYear, alt.FIYear))
		} else {
			recommendations = append(recommendations,
				"Fastest FI: "+alt.ScenarioName+" reaches financial independence in "+
					fmt.Sprintf("year %d; the base plan never does", alt.FIYear))
		}
	}

	// Most investment growth
	mostGrowth := -1
	for i, alt := range compSet.AlternativeResults {
		if alt.GrowthDiffFromBase.IsPositive() &&
			(mostGrowth < 0 || alt.GrowthDiffFromBase.GreaterThan(compSet.AlternativeResults[mostGrowth].GrowthDiffFromBase)) {
			mostGrowth = i
		}
	}
	if mostGrowth >= 0 {
		alt := compSet.AlternativeResults[mostGrowth]
		recommendations = append(recommendations,
			"Most Growth: "+alt.ScenarioName+" earns $"+alt.GrowthDiffFromBase.StringFixed(0)+
				" more investment growth than the base plan")
	}

	return recommendations
}
