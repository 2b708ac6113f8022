package transform

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/shopspring/decimal"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()

	template := Template{
		Name:        "test_template",
		Description: "A test template",
		Transforms:  []ScenarioTransform{},
	}

	registry.Register(template)

	retrieved, ok := registry.Get("test_template")
	if !ok {
		t.Fatal("Expected to find template")
	}
	if retrieved.Name != template.Name {
		t.Errorf("Expected name %s, got %s", template.Name, retrieved.Name)
	}

	// Test case-insensitive
	if _, ok = registry.Get(" TEST_TEMPLATE "); !ok {
		t.Fatal("Expected case-insensitive lookup to work")
	}

	if _, ok = registry.Get("nonexistent"); ok {
		t.Error("Expected not to find nonexistent template")
	}
}

func TestTemplateRegistry_List(t *testing.T) {
	registry := NewTemplateRegistry()

	registry.Register(Template{Name: "template2", Description: "Second"})
	registry.Register(Template{Name: "template1", Description: "First"})

	names := registry.List()
	if len(names) != 2 || names[0] != "template1" {
		t.Errorf("Expected sorted [template1 template2], got %v", names)
	}
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	for _, name := range []string{"save_more_10pct", "save_more_25pct", "work_5yr_longer", "conservative_rates", "annual_contribution"} {
		template, ok := registry.Get(name)
		if !ok {
			t.Errorf("Expected built-in template %s", name)
			continue
		}
		if len(template.Transforms) == 0 {
			t.Errorf("Template %s has no transforms", name)
		}
	}
}

func TestApplyTemplate_BuiltIns(t *testing.T) {
	registry := CreateBuiltInTemplates()
	base := domain.DefaultAssumptions()

	tests := []struct {
		name  string
		check func(t *testing.T, a domain.Assumptions)
	}{
		{"save_more_10pct", func(t *testing.T, a domain.Assumptions) {
			if !a.ContributionAmount.Equal(decimal.NewFromInt(550)) {
				t.Errorf("Expected 550, got %s", a.ContributionAmount)
			}
		}},
		{"save_more_25pct", func(t *testing.T, a domain.Assumptions) {
			if !a.ContributionAmount.Equal(decimal.NewFromInt(625)) {
				t.Errorf("Expected 625, got %s", a.ContributionAmount)
			}
		}},
		{"work_5yr_longer", func(t *testing.T, a domain.Assumptions) {
			if a.Years != 35 {
				t.Errorf("Expected 35 years, got %d", a.Years)
			}
		}},
		{"conservative_rates", func(t *testing.T, a domain.Assumptions) {
			if !a.Realistic.Equal(decimal.NewFromFloat(0.06)) {
				t.Errorf("Expected realistic 0.06, got %s", a.Realistic)
			}
		}},
		{"annual_contribution", func(t *testing.T, a domain.Assumptions) {
			if !a.ContributionAmount.Equal(decimal.NewFromInt(6000)) || a.ContributionFrequency != domain.FrequencyAnnual {
				t.Errorf("Expected 6000 annual, got %s %s", a.ContributionAmount, a.ContributionFrequency)
			}
		}},
		{"save_more_work_longer", func(t *testing.T, a domain.Assumptions) {
			if a.Years != 35 || !a.ContributionAmount.Equal(decimal.NewFromInt(550)) {
				t.Errorf("Expected 550 over 35 years, got %s over %d", a.ContributionAmount, a.Years)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			template, ok := registry.Get(tt.name)
			if !ok {
				t.Fatalf("Template %s not found", tt.name)
			}
			result, err := ApplyTemplate(base, template)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			tt.check(t, result)
		})
	}
}

func TestParseTemplateList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"save_more_10pct", []string{"save_more_10pct"}},
		{" save_more_10pct , work_5yr_longer ,, ", []string{"save_more_10pct", "work_5yr_longer"}},
	}

	for _, tt := range tests {
		got := ParseTemplateList(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("ParseTemplateList(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseTemplateList(%q)[%d] = %s, want %s", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestGetTemplateHelp(t *testing.T) {
	if help := GetTemplateHelp(NewTemplateRegistry()); help != "No templates registered" {
		t.Errorf("Unexpected help for empty registry: %s", help)
	}

	help := GetTemplateHelp(CreateBuiltInTemplates())
	for _, want := range []string{"Saving:", "Horizon:", "Market Rates:", "Combination Strategies:", "save_more_10pct", "fidash compare"} {
		if !strings.Contains(help, want) {
			t.Errorf("Expected help to contain %q", want)
		}
	}

	// Combination template must not be listed under Saving
	saving := help[strings.Index(help, "Saving:"):strings.Index(help, "Horizon:")]
	if strings.Contains(saving, "save_more_work_longer") {
		t.Error("save_more_work_longer listed under Saving")
	}
}
