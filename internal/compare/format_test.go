package compare

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func sampleComparisonSet() *ComparisonSet {
	sooner := -2
	return &ComparisonSet{
		BaseScenarioName: "base",
		ConfigPath:       "/path/to/fidash.yaml",
		BaseResult: &ComparisonResult{
			ScenarioName:       "base",
			FinalValue:         decimal.NewFromInt(1500000),
			TotalContributions: decimal.NewFromInt(180000),
			Growth:             decimal.NewFromInt(1120000),
			FIYear:             22,
			FIReached:          true,
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:             "save_more_25pct",
				Description:              "Increase the periodic contribution by 25%",
				FinalValue:               decimal.NewFromInt(1650000),
				TotalContributions:       decimal.NewFromInt(225000),
				Growth:                   decimal.NewFromInt(1225000),
				FIYear:                   20,
				FIReached:                true,
				FinalDiffFromBase:        decimal.NewFromInt(150000),
				FinalPctFromBase:         decimal.NewFromInt(10),
				ContributionDiffFromBase: decimal.NewFromInt(45000),
				FIYearDiff:               &sooner,
			},
			{
				ScenarioName:      "conservative_rates",
				FinalValue:        decimal.NewFromInt(1200000),
				FinalDiffFromBase: decimal.NewFromInt(-300000),
				FinalPctFromBase:  decimal.NewFromInt(-20),
			},
		},
		Recommendations: []string{
			"Largest Balance: save_more_25pct ends with $150000 more than the base plan",
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.Format(sampleComparisonSet())

	for _, want := range []string{
		"WHAT-IF SCENARIO COMPARISON",
		"Base Scenario: base",
		"Data File: /path/to/fidash.yaml",
		"base (base)",
		"$1.50M",
		"year 22",
		"not reached",
		"Final Value:      +$150.0K (10.0%)",
		"Final Value:      -$300.0K (-20.0%)",
		"Contributions:    +$45.0K",
		"FI Horizon:       2 years sooner",
		"RECOMMENDATIONS",
		"- Largest Balance: save_more_25pct",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected output to contain %q\n%s", want, result)
		}
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	formatter := &TableFormatter{}
	compSet := sampleComparisonSet()
	compSet.AlternativeResults = nil
	compSet.Recommendations = nil
	compSet.ConfigPath = ""

	result := formatter.Format(compSet)

	if strings.Contains(result, "COMPARISON TO BASE") {
		t.Error("Did not expect a comparison section without alternatives")
	}
	if strings.Contains(result, "Data File:") {
		t.Error("Did not expect a data file line without a path")
	}
}

func TestTableFormatter_Helpers(t *testing.T) {
	tf := &TableFormatter{}

	if got := tf.formatDecimal(decimal.NewFromInt(999)); got != "999" {
		t.Errorf("formatDecimal(999) = %s", got)
	}
	if got := tf.formatDecimal(decimal.NewFromInt(12345)); got != "12.3K" {
		t.Errorf("formatDecimal(12345) = %s", got)
	}
	if got := tf.money(decimal.NewFromInt(-2500000)); got != "-$2.50M" {
		t.Errorf("money(-2500000) = %s", got)
	}
	if got := tf.truncate("a_really_long_scenario_name_here", 10); got != "a_reall..." {
		t.Errorf("truncate = %s", got)
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	tf := &TableFormatter{}
	got := tf.FormatCompact(sampleComparisonSet())

	want := "Base: base | save_more_25pct: +$150.0K | conservative_rates: -$300.0K"
	if got != want {
		t.Errorf("FormatCompact = %q, want %q", got, want)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}

	result, err := formatter.Format(sampleComparisonSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected header plus 3 rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Scenario,Type,Final Value") {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if lines[1] != "base,base,1500000.00,0.00,0.00,180000.00,1120000.00,22,0.00,0.00,0.00," {
		t.Errorf("Unexpected base row: %s", lines[1])
	}
	if !strings.HasSuffix(lines[2], ",20,150000.00,10.00,45000.00,-2") {
		t.Errorf("Unexpected alternative row: %s", lines[2])
	}
	if !strings.Contains(lines[3], "conservative_rates,alternative") {
		t.Errorf("Unexpected alternative row: %s", lines[3])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	formatter := &JSONFormatter{Pretty: true}

	result, err := formatter.Format(sampleComparisonSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, want := range []string{"\"baseScenarioName\": \"base\"", "\"alternativeResults\"", "\"recommendations\"", "\"fiYearDiff\": -2"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected JSON to contain %s", want)
		}
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(result), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	compact, err := (&JSONFormatter{}).Format(sampleComparisonSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.Count(strings.TrimSpace(compact), "\n") != 0 {
		t.Error("Expected compact JSON on one line")
	}
}
