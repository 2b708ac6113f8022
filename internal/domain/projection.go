package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ProjectionPoint is the projected portfolio value at the end of a year
type ProjectionPoint struct {
	Year  int             `json:"year"`
	Value decimal.Decimal `json:"value"`
}

// Series is a year-by-year projection, ascending by year starting at year 0
type Series []ProjectionPoint

// Final returns the last point of the series; ok is false for an empty series
func (s Series) Final() (ProjectionPoint, bool) {
	if len(s) == 0 {
		return ProjectionPoint{}, false
	}
	return s[len(s)-1], true
}

// ValueAt returns the projected value for the given year
func (s Series) ValueAt(year int) (decimal.Decimal, bool) {
	for _, p := range s {
		if p.Year == year {
			return p.Value, true
		}
	}
	return decimal.Zero, false
}

// Values returns the projected values as float64s for charting
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value.InexactFloat64()
	}
	return out
}

// Scenario names one of the three growth assumptions
type Scenario string

const (
	ScenarioPessimistic Scenario = "pessimistic"
	ScenarioRealistic   Scenario = "realistic"
	ScenarioOptimistic  Scenario = "optimistic"
)

// AllScenarios lists the scenarios in display order
func AllScenarios() []Scenario {
	return []Scenario{ScenarioPessimistic, ScenarioRealistic, ScenarioOptimistic}
}

// ScenarioInput is everything the scenario aggregator needs
type ScenarioInput struct {
	CurrentValue          decimal.Decimal
	ContributionAmount    decimal.Decimal
	ContributionFrequency Frequency
	Years                 int
	Pessimistic           decimal.Decimal
	Realistic             decimal.Decimal
	Optimistic            decimal.Decimal
}

// NewScenarioInput combines a current value with the user's assumptions
func NewScenarioInput(currentValue decimal.Decimal, a Assumptions) ScenarioInput {
	return ScenarioInput{
		CurrentValue:          currentValue,
		ContributionAmount:    a.ContributionAmount,
		ContributionFrequency: a.ContributionFrequency,
		Years:                 a.Years,
		Pessimistic:           a.Pessimistic,
		Realistic:             a.Realistic,
		Optimistic:            a.Optimistic,
	}
}

// ScenarioSet holds one projection per named scenario
type ScenarioSet struct {
	Pessimistic Series `json:"pessimistic"`
	Realistic   Series `json:"realistic"`
	Optimistic  Series `json:"optimistic"`
}

// Get returns the series for a scenario name
func (s ScenarioSet) Get(name Scenario) Series {
	switch name {
	case ScenarioPessimistic:
		return s.Pessimistic
	case ScenarioOptimistic:
		return s.Optimistic
	default:
		return s.Realistic
	}
}

// RateIncome is the sustainable income at one withdrawal rate
type RateIncome struct {
	Rate   decimal.Decimal
	Key    string // e.g. "income35" for 3.5%
	Income decimal.Decimal
}

// FIIncomePoint is one year of the FI income chart
type FIIncomePoint struct {
	Year     int
	Incomes  []RateIncome // same order as the requested rates
	Expenses decimal.Decimal
}

// IncomeKey names a withdrawal rate as "income" followed by the rate in
// tenths of a percent: 0.035 -> income35, 0.04 -> income40. Finer rates keep
// their remaining digits after an underscore (0.0375 -> income37_5), so
// distinct rates never share a key.
func IncomeKey(rate decimal.Decimal) string {
	return "income" + strings.Replace(rate.Mul(decimal.NewFromInt(1000)).String(), ".", "_", 1)
}

// Income looks up the income for a key produced by IncomeKey
func (p FIIncomePoint) Income(key string) (decimal.Decimal, bool) {
	for _, ri := range p.Incomes {
		if ri.Key == key {
			return ri.Income, true
		}
	}
	return decimal.Zero, false
}

// MarshalJSON flattens the per-rate incomes into top-level fields so a chart
// can address them directly: {"year":1,"income35":...,"income40":...,"expenses":...}
func (p FIIncomePoint) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"year":`)
	buf.WriteString(strconv.Itoa(p.Year))
	for _, ri := range p.Incomes {
		v, err := json.Marshal(ri.Income)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"` + ri.Key + `":`)
		buf.Write(v)
	}
	v, err := json.Marshal(p.Expenses)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`,"expenses":`)
	buf.Write(v)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FIHorizon reports when sustainable income first covers expenses
type FIHorizon struct {
	Rate    decimal.Decimal `json:"rate"`
	Year    int             `json:"year"`
	Reached bool            `json:"reached"`
}
