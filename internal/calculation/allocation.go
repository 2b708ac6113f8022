package calculation

import (
	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// NetWorth is the sum of all asset values
func NetWorth(assets []domain.Asset) decimal.Decimal {
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(a.Value)
	}
	return total
}

// CalculateAllocation compares each asset's share of the portfolio against its
// target. Items keep input order. ToBuy is the asset with the largest positive
// gap; on equal gaps the earliest asset wins.
func CalculateAllocation(assets []domain.Asset) domain.Allocation {
	total := NetWorth(assets)
	result := domain.Allocation{
		Total: total,
		Items: make([]domain.AssetMetrics, 0, len(assets)),
	}

	best := -1
	for _, a := range assets {
		current := decimal.Zero
		if total.IsPositive() {
			current = a.Value.Div(total)
		}
		m := domain.AssetMetrics{
			Asset:          a,
			CurrentPercent: current,
			Gap:            a.TargetPercent.Div(hundred).Sub(current),
		}
		result.Items = append(result.Items, m)

		if !m.Gap.IsPositive() {
			continue
		}
		if best < 0 || m.Gap.GreaterThan(result.Items[best].Gap) {
			best = len(result.Items) - 1
		}
	}

	if best >= 0 {
		toBuy := result.Items[best]
		result.ToBuy = &toBuy
	}
	return result
}
