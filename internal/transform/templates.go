package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with the common what-if plans
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Saving more
	registry.Register(Template{
		Name:        "save_more_10pct",
		Description: "Increase the periodic contribution by 10%",
		Transforms: []ScenarioTransform{
			&ScaleContribution{Factor: decimal.NewFromFloat(1.10)},
		},
	})

	registry.Register(Template{
		Name:        "save_more_25pct",
		Description: "Increase the periodic contribution by 25%",
		Transforms: []ScenarioTransform{
			&ScaleContribution{Factor: decimal.NewFromFloat(1.25)},
		},
	})

	registry.Register(Template{
		Name:        "annual_contribution",
		Description: "Deposit the same yearly total once a year instead of monthly",
		Transforms: []ScenarioTransform{
			&AnnualizeContribution{},
		},
	})

	// Horizon
	registry.Register(Template{
		Name:        "work_5yr_longer",
		Description: "Keep working and contributing for 5 more years",
		Transforms: []ScenarioTransform{
			&ExtendHorizon{Years: 5},
		},
	})

	registry.Register(Template{
		Name:        "work_10yr_longer",
		Description: "Keep working and contributing for 10 more years",
		Transforms: []ScenarioTransform{
			&ExtendHorizon{Years: 10},
		},
	})

	// Market rates
	registry.Register(Template{
		Name:        "conservative_rates",
		Description: "Lower every growth rate by one percentage point",
		Transforms: []ScenarioTransform{
			&AdjustRates{Delta: decimal.NewFromFloat(-0.01)},
		},
	})

	registry.Register(Template{
		Name:        "optimistic_rates",
		Description: "Raise every growth rate by one percentage point",
		Transforms: []ScenarioTransform{
			&AdjustRates{Delta: decimal.NewFromFloat(0.01)},
		},
	})

	// Combination
	registry.Register(Template{
		Name:        "save_more_work_longer",
		Description: "Save 10% more and keep contributing 5 more years",
		Transforms: []ScenarioTransform{
			&ScaleContribution{Factor: decimal.NewFromFloat(1.10)},
			&ExtendHorizon{Years: 5},
		},
	})

	return registry
}

// ApplyTemplate applies a template to base assumptions
func ApplyTemplate(base domain.Assumptions, template Template) (domain.Assumptions, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	order := []string{"Saving", "Horizon", "Market Rates", "Combination Strategies"}

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "save_more_work"):
			categories["Combination Strategies"] = append(categories["Combination Strategies"], template)
		case strings.HasPrefix(name, "save_") || strings.HasSuffix(name, "_contribution"):
			categories["Saving"] = append(categories["Saving"], template)
		case strings.HasPrefix(name, "work_"):
			categories["Horizon"] = append(categories["Horizon"], template)
		case strings.HasSuffix(name, "_rates"):
			categories["Market Rates"] = append(categories["Market Rates"], template)
		default:
			categories["Combination Strategies"] = append(categories["Combination Strategies"], template)
		}
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-24s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  fidash compare --with save_more_10pct,work_5yr_longer\n")
	sb.WriteString("  fidash compare --with conservative_rates --transform adjust_rates:delta=-0.02\n")

	return sb.String()
}
