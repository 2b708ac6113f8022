package domain

import (
	"github.com/shopspring/decimal"
)

// Frequency is how often a contribution is made
type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyAnnual  Frequency = "annual"
)

// IsKnown reports whether the frequency is one of the supported values
func (f Frequency) IsKnown() bool {
	return f == FrequencyMonthly || f == FrequencyAnnual
}

// Assumptions holds the projection inputs: three annual growth rates
// (fractional, 0.07 = 7%), the periodic contribution and the horizon.
type Assumptions struct {
	Pessimistic           decimal.Decimal `yaml:"pessimistic" json:"pessimistic"`
	Realistic             decimal.Decimal `yaml:"realistic" json:"realistic"`
	Optimistic            decimal.Decimal `yaml:"optimistic" json:"optimistic"`
	ContributionAmount    decimal.Decimal `yaml:"contribution_amount" json:"contribution_amount"`
	ContributionFrequency Frequency       `yaml:"contribution_frequency" json:"contribution_frequency"`
	Years                 int             `yaml:"years" json:"years"`
}

// DefaultAssumptions returns the assumptions a new user starts with
func DefaultAssumptions() Assumptions {
	return Assumptions{
		Pessimistic:           decimal.NewFromFloat(0.03),
		Realistic:             decimal.NewFromFloat(0.07),
		Optimistic:            decimal.NewFromFloat(0.10),
		ContributionAmount:    decimal.NewFromInt(500),
		ContributionFrequency: FrequencyMonthly,
		Years:                 30,
	}
}

// AssumptionsPatch carries optional field updates. Nil fields are left untouched.
type AssumptionsPatch struct {
	Pessimistic           *decimal.Decimal
	Realistic             *decimal.Decimal
	Optimistic            *decimal.Decimal
	ContributionAmount    *decimal.Decimal
	ContributionFrequency *Frequency
	Years                 *int
}

// Apply returns a copy of the assumptions with the patch applied
func (p AssumptionsPatch) Apply(a Assumptions) Assumptions {
	if p.Pessimistic != nil {
		a.Pessimistic = *p.Pessimistic
	}
	if p.Realistic != nil {
		a.Realistic = *p.Realistic
	}
	if p.Optimistic != nil {
		a.Optimistic = *p.Optimistic
	}
	if p.ContributionAmount != nil {
		a.ContributionAmount = *p.ContributionAmount
	}
	if p.ContributionFrequency != nil {
		a.ContributionFrequency = *p.ContributionFrequency
	}
	if p.Years != nil {
		a.Years = *p.Years
	}
	return a
}
