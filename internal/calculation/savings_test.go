package calculation

import (
	"testing"

	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categories(amounts ...int64) domain.Ledger {
	cats := make([]domain.Category, len(amounts))
	for i, a := range amounts {
		cats[i] = domain.Category{Amount: decimal.NewFromInt(a)}
	}
	return domain.NewCategoryLedger(cats...)
}

func TestCalculateSavings(t *testing.T) {
	s := CalculateSavings(categories(5200, 400), categories(1500, 600, 300, 200, 250))

	assert.True(t, s.MonthlyIncome.Equal(decimal.NewFromInt(5600)))
	assert.True(t, s.MonthlyExpenses.Equal(decimal.NewFromInt(2850)))
	assert.True(t, s.MonthlySavings.Equal(decimal.NewFromInt(2750)))
	require.NotNil(t, s.SavingsRate)
	assert.InDelta(t, 0.4911, s.SavingsRate.InexactFloat64(), 0.0001)
}

func TestCalculateSavings_ZeroIncome(t *testing.T) {
	s := CalculateSavings(categories(), categories(1000))

	assert.True(t, s.MonthlyIncome.IsZero())
	assert.True(t, s.MonthlySavings.Equal(decimal.NewFromInt(-1000)))
	assert.Nil(t, s.SavingsRate, "rate is undefined, not zero")
}

func TestCalculateSavings_LegacyShapes(t *testing.T) {
	s := CalculateSavings(domain.NewLegacyLedger(decimal.NewFromInt(4000)), domain.NewLegacyLedger(decimal.NewFromInt(3000)))

	assert.True(t, s.MonthlySavings.Equal(decimal.NewFromInt(1000)))
	require.NotNil(t, s.SavingsRate)
	assert.True(t, s.SavingsRate.Equal(decimal.NewFromFloat(0.25)))

	mixed := CalculateSavings(categories(2000), domain.NewLegacyLedger(decimal.NewFromInt(500)))
	assert.True(t, mixed.MonthlySavings.Equal(decimal.NewFromInt(1500)))
}
