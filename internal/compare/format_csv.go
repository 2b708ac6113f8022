package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Final Value",
		"Final Pessimistic",
		"Final Optimistic",
		"Total Contributions",
		"Growth",
		"FI Year",
		"Final Diff from Base",
		"Final % Change",
		"Contribution Diff from Base",
		"FI Year Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row. Unreached FI years are left blank.
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	fiYear := ""
	if result.FIReached {
		fiYear = strconv.Itoa(result.FIYear)
	}
	fiDiff := ""
	if result.FIYearDiff != nil {
		fiDiff = strconv.Itoa(*result.FIYearDiff)
	}

	return []string{
		result.ScenarioName,
		scenarioType,
		result.FinalValue.StringFixed(2),
		result.FinalPessimistic.StringFixed(2),
		result.FinalOptimistic.StringFixed(2),
		result.TotalContributions.StringFixed(2),
		result.Growth.StringFixed(2),
		fiYear,
		result.FinalDiffFromBase.StringFixed(2),
		result.FinalPctFromBase.StringFixed(2),
		result.ContributionDiffFromBase.StringFixed(2),
		fiDiff,
	}
}
