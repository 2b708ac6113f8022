package domain

import (
	"github.com/shopspring/decimal"
)

// Asset is a single holding tracked by the dashboard.
// Value is the current market value, TargetPercent the desired share of the
// portfolio expressed in percent (0-100).
type Asset struct {
	ID            string          `yaml:"id" json:"id"`
	Name          string          `yaml:"name" json:"name"`
	Value         decimal.Decimal `yaml:"value" json:"value"`
	TargetPercent decimal.Decimal `yaml:"target_percent" json:"target_percent"`
}

// AssetPatch carries optional field updates for an asset. Nil fields are left untouched.
type AssetPatch struct {
	Name          *string
	Value         *decimal.Decimal
	TargetPercent *decimal.Decimal
}

// Apply returns a copy of the asset with the patch applied
func (p AssetPatch) Apply(a Asset) Asset {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Value != nil {
		a.Value = *p.Value
	}
	if p.TargetPercent != nil {
		a.TargetPercent = *p.TargetPercent
	}
	return a
}

// AssetMetrics is an asset annotated with its allocation metrics.
type AssetMetrics struct {
	Asset
	CurrentPercent decimal.Decimal `json:"current_percent"` // fraction of total, 0..1
	Gap            decimal.Decimal `json:"gap"`             // target fraction minus current fraction
}

// IsUnderAllocated reports whether the asset sits below its target share
func (m AssetMetrics) IsUnderAllocated() bool {
	return m.Gap.IsPositive()
}

// Allocation is the result of comparing current holdings against their targets.
type Allocation struct {
	Total decimal.Decimal `json:"total"`
	Items []AssetMetrics  `json:"items"`
	ToBuy *AssetMetrics   `json:"to_buy"` // nil when every asset is on or above target
}

// OnTarget reports whether no asset needs buying
func (a Allocation) OnTarget() bool {
	return a.ToBuy == nil
}

// TargetPercentTotal sums the configured target percentages
func TargetPercentTotal(assets []Asset) decimal.Decimal {
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(a.TargetPercent)
	}
	return total
}
