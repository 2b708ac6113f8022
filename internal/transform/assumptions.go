package transform

import (
	"fmt"

	"github.com/rgehrsitz/fidash/internal/calculation"
	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred        = decimal.NewFromInt(100)
	maxScaleFactor = decimal.NewFromInt(10)
	minusOne       = decimal.NewFromInt(-1)
)

// ScaleContribution multiplies the periodic contribution by Factor.
type ScaleContribution struct {
	Factor decimal.Decimal // 1.10 saves 10% more
}

func (sc *ScaleContribution) Name() string {
	return "scale_contribution"
}

func (sc *ScaleContribution) Description() string {
	change := sc.Factor.Sub(decimal.NewFromInt(1)).Mul(hundred)
	if change.IsNegative() {
		return fmt.Sprintf("Save %s%% less each period", change.Neg().StringFixed(0))
	}
	return fmt.Sprintf("Save %s%% more each period", change.StringFixed(0))
}

func (sc *ScaleContribution) Validate(base domain.Assumptions) error {
	if !sc.Factor.IsPositive() || sc.Factor.GreaterThan(maxScaleFactor) {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("factor must be in (0, 10], got %s", sc.Factor.String()), nil)
	}
	return nil
}

func (sc *ScaleContribution) Apply(base domain.Assumptions) (domain.Assumptions, error) {
	base.ContributionAmount = base.ContributionAmount.Mul(sc.Factor).Round(2)
	return base, nil
}

// SetContribution replaces the contribution amount and, when Frequency is
// set, its frequency.
type SetContribution struct {
	Amount    decimal.Decimal
	Frequency domain.Frequency
}

func (s *SetContribution) Name() string {
	return "set_contribution"
}

func (s *SetContribution) Description() string {
	if s.Frequency == "" {
		return fmt.Sprintf("Contribute %s per period", s.Amount.StringFixed(2))
	}
	return fmt.Sprintf("Contribute %s %s", s.Amount.StringFixed(2), s.Frequency)
}

func (s *SetContribution) Validate(base domain.Assumptions) error {
	if s.Amount.IsNegative() {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("amount cannot be negative, got %s", s.Amount.String()), nil)
	}
	if s.Frequency != "" && !s.Frequency.IsKnown() {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("unknown frequency %q", s.Frequency), nil)
	}
	return nil
}

func (s *SetContribution) Apply(base domain.Assumptions) (domain.Assumptions, error) {
	base.ContributionAmount = s.Amount
	if s.Frequency != "" {
		base.ContributionFrequency = s.Frequency
	}
	return base, nil
}

// AnnualizeContribution switches a monthly plan to one yearly deposit of the
// same annual total. Annual plans are left as they are.
type AnnualizeContribution struct{}

func (ac *AnnualizeContribution) Name() string {
	return "annualize_contribution"
}

func (ac *AnnualizeContribution) Description() string {
	return "Deposit the yearly total once a year instead of monthly"
}

func (ac *AnnualizeContribution) Validate(base domain.Assumptions) error {
	return nil
}

func (ac *AnnualizeContribution) Apply(base domain.Assumptions) (domain.Assumptions, error) {
	base.ContributionAmount = calculation.AnnualizeContribution(base.ContributionAmount, base.ContributionFrequency)
	base.ContributionFrequency = domain.FrequencyAnnual
	return base, nil
}

// ExtendHorizon adds Years to the projection horizon. Negative values shorten it.
type ExtendHorizon struct {
	Years int
}

func (eh *ExtendHorizon) Name() string {
	return "extend_horizon"
}

func (eh *ExtendHorizon) Description() string {
	if eh.Years < 0 {
		return fmt.Sprintf("Stop contributing %d years earlier", -eh.Years)
	}
	return fmt.Sprintf("Keep working and contributing %d more years", eh.Years)
}

func (eh *ExtendHorizon) Validate(base domain.Assumptions) error {
	if base.Years+eh.Years < 0 {
		return NewTransformError(eh.Name(), "validate", fmt.Sprintf("horizon of %d years cannot be shortened by %d", base.Years, -eh.Years), nil)
	}
	return nil
}

func (eh *ExtendHorizon) Apply(base domain.Assumptions) (domain.Assumptions, error) {
	base.Years += eh.Years
	return base, nil
}

// AdjustRates shifts all three growth rates by Delta (0.01 = one point).
type AdjustRates struct {
	Delta decimal.Decimal
}

func (ar *AdjustRates) Name() string {
	return "adjust_rates"
}

func (ar *AdjustRates) Description() string {
	points := ar.Delta.Mul(hundred)
	if points.IsNegative() {
		return fmt.Sprintf("Lower every growth rate by %s points", points.Neg().StringFixed(1))
	}
	return fmt.Sprintf("Raise every growth rate by %s points", points.StringFixed(1))
}

func (ar *AdjustRates) Validate(base domain.Assumptions) error {
	for _, rate := range []decimal.Decimal{base.Pessimistic, base.Realistic, base.Optimistic} {
		if rate.Add(ar.Delta).LessThanOrEqual(minusOne) {
			return NewTransformError(ar.Name(), "validate", fmt.Sprintf("rate %s shifted by %s would be -100%% or lower", rate.String(), ar.Delta.String()), nil)
		}
	}
	return nil
}

func (ar *AdjustRates) Apply(base domain.Assumptions) (domain.Assumptions, error) {
	base.Pessimistic = base.Pessimistic.Add(ar.Delta)
	base.Realistic = base.Realistic.Add(ar.Delta)
	base.Optimistic = base.Optimistic.Add(ar.Delta)
	return base, nil
}

// SetRates replaces the three growth rates.
type SetRates struct {
	Pessimistic decimal.Decimal
	Realistic   decimal.Decimal
	Optimistic  decimal.Decimal
}

func (sr *SetRates) Name() string {
	return "set_rates"
}

func (sr *SetRates) Description() string {
	return fmt.Sprintf("Use growth rates %s%% / %s%% / %s%%",
		sr.Pessimistic.Mul(hundred).StringFixed(1),
		sr.Realistic.Mul(hundred).StringFixed(1),
		sr.Optimistic.Mul(hundred).StringFixed(1))
}

func (sr *SetRates) Validate(base domain.Assumptions) error {
	for _, rate := range []decimal.Decimal{sr.Pessimistic, sr.Realistic, sr.Optimistic} {
		if rate.LessThanOrEqual(minusOne) {
			return NewTransformError(sr.Name(), "validate", fmt.Sprintf("rate must be greater than -1, got %s", rate.String()), nil)
		}
	}
	return nil
}

func (sr *SetRates) Apply(base domain.Assumptions) (domain.Assumptions, error) {
	base.Pessimistic = sr.Pessimistic
	base.Realistic = sr.Realistic
	base.Optimistic = sr.Optimistic
	return base, nil
}
