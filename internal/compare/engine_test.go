package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/fidash/internal/calculation"
	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatPortfolio has zero growth so every balance is start + contributions.
func flatPortfolio() domain.Portfolio {
	p := domain.NewPortfolio()
	p.Assets = []domain.Asset{
		{ID: "1", Name: "Cash", Value: decimal.NewFromInt(100000), TargetPercent: decimal.NewFromInt(100)},
	}
	p.Assumptions = domain.Assumptions{
		Pessimistic:           decimal.Zero,
		Realistic:             decimal.Zero,
		Optimistic:            decimal.Zero,
		ContributionAmount:    decimal.NewFromInt(1000),
		ContributionFrequency: domain.FrequencyMonthly,
		Years:                 10,
	}
	p.Expenses = domain.NewCategoryLedger(domain.Category{ID: "rent", Name: "Rent", Amount: decimal.NewFromInt(1000)})
	return p
}

func TestCompareEngine_Compare(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	p := flatPortfolio()

	compSet, err := engine.Compare(context.Background(), p, CompareOptions{
		Templates:  []string{"save_more_10pct", "work_10yr_longer"},
		ConfigPath: "fidash.yaml",
	})
	require.NoError(t, err)

	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, DefaultBaseName, compSet.BaseScenarioName)
	assert.Equal(t, "fidash.yaml", compSet.ConfigPath)

	base := compSet.BaseResult
	assert.True(t, base.FinalValue.Equal(decimal.NewFromInt(220000)), "Should be start plus ten years of 12000, got %s", base.FinalValue)
	assert.True(t, base.TotalContributions.Equal(decimal.NewFromInt(120000)))
	assert.True(t, base.Growth.IsZero(), "Should have no growth at zero rates")
	assert.False(t, base.FIReached, "Should not reach 300000 within ten years")

	require.Len(t, compSet.AlternativeResults, 2)

	saveMore := compSet.AlternativeResults[0]
	assert.Equal(t, "save_more_10pct", saveMore.ScenarioName)
	assert.True(t, saveMore.FinalValue.Equal(decimal.NewFromInt(232000)))
	assert.True(t, saveMore.FinalDiffFromBase.Equal(decimal.NewFromInt(12000)))
	assert.Equal(t, "5.45", saveMore.FinalPctFromBase.StringFixed(2))
	assert.True(t, saveMore.ContributionDiffFromBase.Equal(decimal.NewFromInt(12000)))
	assert.Nil(t, saveMore.FIYearDiff)

	longer := compSet.AlternativeResults[1]
	assert.Equal(t, 20, longer.Assumptions.Years)
	assert.True(t, longer.FIReached)
	assert.Equal(t, 17, longer.FIYear, "Should first cover 12000 at 4% in year 17")

	assert.Contains(t, compSet.Recommendations,
		"Largest Balance: work_10yr_longer ends with $120000 more than the base plan")
	assert.Contains(t, compSet.Recommendations,
		"Fastest FI: work_10yr_longer reaches financial independence in year 17; the base plan never does")

	// the caller's portfolio is untouched
	assert.Equal(t, 10, p.Assumptions.Years)
	assert.True(t, p.Assumptions.ContributionAmount.Equal(decimal.NewFromInt(1000)))
}

func TestCompareEngine_CompareTransformSpecs(t *testing.T) {
	engine := NewCompareEngine(nil)
	p := flatPortfolio()

	compSet, err := engine.Compare(context.Background(), p, CompareOptions{
		BaseScenarioName: "today",
		Transforms:       []string{"set_contribution:amount=0"},
	})
	require.NoError(t, err)

	assert.Equal(t, "today", compSet.BaseResult.ScenarioName)
	require.Len(t, compSet.AlternativeResults, 1)
	alt := compSet.AlternativeResults[0]
	assert.Equal(t, "set_contribution:amount=0", alt.ScenarioName)
	assert.Equal(t, "Contribute 0.00 per period", alt.Description)
	assert.True(t, alt.FinalValue.Equal(decimal.NewFromInt(100000)))
	assert.True(t, alt.FinalDiffFromBase.Equal(decimal.NewFromInt(-120000)))
	assert.Empty(t, compSet.Recommendations, "Should recommend nothing worse than base")
}

func TestCompareEngine_Errors(t *testing.T) {
	engine := NewCompareEngine(nil)
	p := flatPortfolio()

	_, err := engine.Compare(context.Background(), p, CompareOptions{Templates: []string{"nope"}})
	assert.ErrorContains(t, err, "template nope not found")

	_, err = engine.Compare(context.Background(), p, CompareOptions{Transforms: []string{"extend_horizon:years=x"}})
	assert.ErrorContains(t, err, "failed to parse transform")

	_, err = engine.Compare(context.Background(), p, CompareOptions{Transforms: []string{"extend_horizon:years=-20"}})
	assert.ErrorContains(t, err, "failed to apply extend_horizon:years=-20")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Compare(ctx, p, CompareOptions{Templates: []string{"save_more_10pct"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{
		FinalValue:         decimal.NewFromInt(1000000),
		TotalContributions: decimal.NewFromInt(200000),
		Growth:             decimal.NewFromInt(300000),
		FIYear:             20,
		FIReached:          true,
	}
	scenario := ComparisonResult{
		ScenarioName:       "alt",
		FinalValue:         decimal.NewFromInt(1100000),
		TotalContributions: decimal.NewFromInt(220000),
		Growth:             decimal.NewFromInt(380000),
		FIYear:             18,
		FIReached:          true,
	}

	result := calc.CalculateComparison(scenario, base)

	assert.True(t, result.FinalDiffFromBase.Equal(decimal.NewFromInt(100000)))
	assert.True(t, result.FinalPctFromBase.Equal(decimal.NewFromInt(10)))
	assert.True(t, result.ContributionDiffFromBase.Equal(decimal.NewFromInt(20000)))
	assert.True(t, result.GrowthDiffFromBase.Equal(decimal.NewFromInt(80000)))
	require.NotNil(t, result.FIYearDiff)
	assert.Equal(t, -2, *result.FIYearDiff)

	base.FinalValue = decimal.Zero
	base.FIReached = false
	result = calc.CalculateComparison(scenario, base)
	assert.True(t, result.FinalPctFromBase.IsZero(), "Should not divide by a zero base")
	assert.Nil(t, result.FIYearDiff)
}

func TestGenerateRecommendations(t *testing.T) {
	diff := -3
	compSet := &ComparisonSet{
		BaseResult: &ComparisonResult{
			ScenarioName: "base",
			FinalValue:   decimal.NewFromInt(500000),
			FIYear:       20,
			FIReached:    true,
		},
		AlternativeResults: []ComparisonResult{
			{ScenarioName: "a", FinalValue: decimal.NewFromInt(600000), GrowthDiffFromBase: decimal.NewFromInt(40000), FIYear: 19, FIReached: true},
			{ScenarioName: "b", FinalValue: decimal.NewFromInt(550000), GrowthDiffFromBase: decimal.NewFromInt(60000), FIYear: 17, FIReached: true, FIYearDiff: &diff},
			{ScenarioName: "c", FinalValue: decimal.NewFromInt(400000), FIReached: false},
		},
	}

	recs := GenerateRecommendations(compSet)

	assert.Equal(t, []string{
		"Largest Balance: a ends with $100000 more than the base plan",
		"Fastest FI: b reaches financial independence 3 years sooner (year 17)",
		"Most Growth: b earns $60000 more investment growth than the base plan",
	}, recs)
}

func TestGenerateRecommendations_EmptyAlternatives(t *testing.T) {
	compSet := &ComparisonSet{BaseResult: &ComparisonResult{ScenarioName: "base"}}
	assert.Empty(t, GenerateRecommendations(compSet))
	assert.Empty(t, GenerateRecommendations(&ComparisonSet{}))
}
