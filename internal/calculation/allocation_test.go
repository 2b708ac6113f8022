package calculation

import (
	"testing"

	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asset(id string, value, target int64) domain.Asset {
	return domain.Asset{ID: id, Name: id, Value: decimal.NewFromInt(value), TargetPercent: decimal.NewFromInt(target)}
}

func TestCalculateAllocation_Basic(t *testing.T) {
	assets := []domain.Asset{
		asset("stocks", 60000, 70),
		asset("bonds", 30000, 20),
		asset("cash", 10000, 10),
	}

	result := CalculateAllocation(assets)

	assert.True(t, result.Total.Equal(decimal.NewFromInt(100000)), "total should be sum of values")
	require.Len(t, result.Items, 3)
	assert.Equal(t, "stocks", result.Items[0].ID, "items keep input order")
	assert.True(t, result.Items[0].CurrentPercent.Equal(decimal.NewFromFloat(0.6)))
	assert.True(t, result.Items[0].Gap.Equal(decimal.NewFromFloat(0.1)))
	assert.True(t, result.Items[1].Gap.Equal(decimal.NewFromFloat(-0.1)))
	assert.True(t, result.Items[2].Gap.IsZero())

	require.NotNil(t, result.ToBuy)
	assert.Equal(t, "stocks", result.ToBuy.ID)
}

func TestCalculateAllocation_Empty(t *testing.T) {
	result := CalculateAllocation(nil)

	assert.True(t, result.Total.IsZero())
	assert.Empty(t, result.Items)
	assert.Nil(t, result.ToBuy)
	assert.True(t, result.OnTarget())
}

func TestCalculateAllocation_AllZeroValues(t *testing.T) {
	result := CalculateAllocation([]domain.Asset{asset("a", 0, 40), asset("b", 0, 60)})

	for _, item := range result.Items {
		assert.True(t, item.CurrentPercent.IsZero(), "no division when total is zero")
	}
	assert.True(t, result.Items[0].Gap.Equal(decimal.NewFromFloat(0.4)))
	require.NotNil(t, result.ToBuy)
	assert.Equal(t, "b", result.ToBuy.ID, "largest gap comes from target alone")
}

func TestCalculateAllocation_TieBreak(t *testing.T) {
	// both sit 25 points under target
	assets := []domain.Asset{
		asset("over", 100, 0),
		asset("first", 0, 25),
		asset("second", 0, 25),
	}

	result := CalculateAllocation(assets)

	require.NotNil(t, result.ToBuy)
	assert.Equal(t, "first", result.ToBuy.ID, "earliest asset wins equal gaps")

	reversed := []domain.Asset{assets[0], assets[2], assets[1]}
	result = CalculateAllocation(reversed)
	require.NotNil(t, result.ToBuy)
	assert.Equal(t, "second", result.ToBuy.ID, "winner follows input order")
}

func TestCalculateAllocation_NoPositiveGap(t *testing.T) {
	result := CalculateAllocation([]domain.Asset{asset("a", 50, 50), asset("b", 50, 40)})
	assert.Nil(t, result.ToBuy, "over-allocated everywhere means nothing to buy")
}

func TestCalculateAllocation_Properties(t *testing.T) {
	cases := [][]domain.Asset{
		{asset("a", 1, 10), asset("b", 1, 10), asset("c", 1, 80)},
		{asset("a", 12345, 33), asset("b", 678, 33), asset("c", 9, 34), asset("d", 1000000, 0)},
		{asset("solo", 7, 100)},
		{asset("a", 0, 0), asset("b", 0, 0)},
	}
	tolerance := decimal.New(1, -12)

	for _, assets := range cases {
		result := CalculateAllocation(assets)

		sumValues := decimal.Zero
		sumPercent := decimal.Zero
		for _, item := range result.Items {
			sumValues = sumValues.Add(item.Value)
			sumPercent = sumPercent.Add(item.CurrentPercent)
		}
		assert.True(t, sumValues.Equal(result.Total), "sum of item values equals total")
		if result.Total.IsPositive() {
			assert.True(t, sumPercent.Sub(decimal.NewFromInt(1)).Abs().LessThan(tolerance), "percents sum to 1, got %s", sumPercent)
		} else {
			assert.True(t, sumPercent.IsZero())
		}

		maxGap := decimal.Zero
		anyPositive := false
		for _, item := range result.Items {
			if item.Gap.IsPositive() {
				anyPositive = true
				if item.Gap.GreaterThan(maxGap) {
					maxGap = item.Gap
				}
			}
		}
		if anyPositive {
			require.NotNil(t, result.ToBuy)
			assert.True(t, result.ToBuy.Gap.Equal(maxGap), "ToBuy carries the largest gap")
		} else {
			assert.Nil(t, result.ToBuy)
		}
	}
}

func TestCalculateAllocation_Repeatable(t *testing.T) {
	assets := []domain.Asset{asset("a", 300, 50), asset("b", 700, 50)}
	before := append([]domain.Asset(nil), assets...)

	first := CalculateAllocation(assets)
	second := CalculateAllocation(assets)

	assert.Equal(t, first, second, "no state accumulates between calls")
	assert.Equal(t, before, assets, "input is not modified")
}

func TestNetWorth(t *testing.T) {
	assert.True(t, NetWorth(nil).IsZero())
	assert.True(t, NetWorth([]domain.Asset{asset("a", 10, 0), asset("b", 15, 0)}).Equal(decimal.NewFromInt(25)))
}
