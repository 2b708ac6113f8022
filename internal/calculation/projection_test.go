package calculation

import (
	"encoding/json"
	"testing"

	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnualizeContribution(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		freq     domain.Frequency
		expected decimal.Decimal
	}{
		{"monthly", decimal.NewFromInt(500), domain.FrequencyMonthly, decimal.NewFromInt(6000)},
		{"annual", decimal.NewFromInt(500), domain.FrequencyAnnual, decimal.NewFromInt(500)},
		{"zero monthly", decimal.Zero, domain.FrequencyMonthly, decimal.Zero},
		{"unknown frequency is annual", decimal.NewFromInt(250), domain.Frequency("weekly"), decimal.NewFromInt(250)},
		{"empty frequency is annual", decimal.NewFromInt(250), "", decimal.NewFromInt(250)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnnualizeContribution(tt.amount, tt.freq)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestProjectWealth_ZeroYears(t *testing.T) {
	v := decimal.NewFromInt(12345)
	for _, rate := range []float64{0, 0.07, -0.5} {
		series := ProjectWealth(v, decimal.NewFromInt(999), 0, decimal.NewFromFloat(rate))
		require.Len(t, series, 1)
		assert.Equal(t, 0, series[0].Year)
		assert.True(t, series[0].Value.Equal(v), "year 0 is the current value unmodified")
	}

	series := ProjectWealth(v, decimal.Zero, -3, decimal.Zero)
	assert.Len(t, series, 1, "negative horizon behaves like zero")
}

func TestProjectWealth_FlatAtZeroRate(t *testing.T) {
	series := ProjectWealth(decimal.NewFromInt(1000), decimal.Zero, 10, decimal.Zero)

	require.Len(t, series, 11)
	for i, p := range series {
		assert.Equal(t, i, p.Year)
		assert.True(t, p.Value.Equal(decimal.NewFromInt(1000)), "year %d", i)
	}
}

func TestProjectWealth_AddThenGrow(t *testing.T) {
	series := ProjectWealth(decimal.NewFromInt(1000), decimal.NewFromInt(100), 2, decimal.NewFromFloat(0.1))

	require.Len(t, series, 3)
	assert.True(t, series[1].Value.Equal(decimal.NewFromInt(1210)), "(1000+100)*1.1, got %s", series[1].Value)
	assert.True(t, series[2].Value.Equal(decimal.NewFromInt(1441)), "(1210+100)*1.1, got %s", series[2].Value)
}

func TestProjectWealth_NegativeRate(t *testing.T) {
	series := ProjectWealth(decimal.NewFromInt(1000), decimal.Zero, 2, decimal.NewFromFloat(-0.5))

	assert.True(t, series[1].Value.Equal(decimal.NewFromInt(500)))
	assert.True(t, series[2].Value.Equal(decimal.NewFromInt(250)))
}

func TestProjectWealth_Deterministic(t *testing.T) {
	run := func() []byte {
		data, err := json.Marshal(ProjectWealth(decimal.NewFromInt(50000), decimal.NewFromInt(6000), 30, decimal.NewFromFloat(0.07)))
		require.NoError(t, err)
		return data
	}
	assert.Equal(t, run(), run(), "same inputs produce identical output")
}

func TestProjectScenarios(t *testing.T) {
	in := domain.ScenarioInput{
		CurrentValue:          decimal.NewFromInt(10000),
		ContributionAmount:    decimal.NewFromInt(500),
		ContributionFrequency: domain.FrequencyMonthly,
		Years:                 5,
		Pessimistic:           decimal.NewFromFloat(0.03),
		Realistic:             decimal.NewFromFloat(0.07),
		Optimistic:            decimal.NewFromFloat(0.10),
	}

	set := ProjectScenarios(in)

	for _, name := range domain.AllScenarios() {
		s := set.Get(name)
		require.Len(t, s, 6, string(name))
		assert.True(t, s[0].Value.Equal(in.CurrentValue), "%s starts at the current value", name)
	}

	// every scenario shares the same 6000/yr contribution
	expected := ProjectWealth(in.CurrentValue, decimal.NewFromInt(6000), 5, in.Realistic)
	assert.Equal(t, expected, set.Realistic)

	pFinal, _ := set.Pessimistic.Final()
	rFinal, _ := set.Realistic.Final()
	oFinal, _ := set.Optimistic.Final()
	assert.True(t, pFinal.Value.LessThan(rFinal.Value))
	assert.True(t, rFinal.Value.LessThan(oFinal.Value))
}
