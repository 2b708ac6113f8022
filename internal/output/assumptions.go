package output

import (
	"fmt"

	"github.com/rgehrsitz/fidash/internal/domain"
)

// ModelNotes are the fixed modeling rules printed with detailed reports
var ModelNotes = []string{
	"Contributions are added at the start of each year, then growth is applied",
	"Withdrawal income is the projected value times the withdrawal rate",
	"No taxes, fees or inflation are modeled",
	"Currency is for display only; no conversion is performed",
}

// AssumptionLines describes the user's projection inputs
func AssumptionLines(a domain.Assumptions, currency string) []string {
	freq := string(a.ContributionFrequency)
	if !a.ContributionFrequency.IsKnown() {
		freq = fmt.Sprintf("%s (treated as annual)", a.ContributionFrequency)
	}
	return []string{
		fmt.Sprintf("Growth rates: pessimistic %s, realistic %s, optimistic %s",
			FormatPercentage(a.Pessimistic), FormatPercentage(a.Realistic), FormatPercentage(a.Optimistic)),
		fmt.Sprintf("Contribution: %s %s", FormatCurrency(a.ContributionAmount, currency), freq),
		fmt.Sprintf("Horizon: %d years", a.Years),
	}
}

// milestoneYears picks the rows shown in summary tables: every five years
// plus the final year.
func milestoneYears(years int) []int {
	if years < 0 {
		years = 0
	}
	var out []int
	for y := 0; y <= years; y += 5 {
		out = append(out, y)
	}
	if out[len(out)-1] != years {
		out = append(out, years)
	}
	return out
}
