package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fidash/internal/calculation"
	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/rgehrsitz/fidash/internal/transform"
)

// DefaultBaseName labels the unmodified assumptions
const DefaultBaseName = "base"

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine with the built-in templates
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Label for the unmodified plan
	Templates        []string // Template names, one alternative each
	Transforms       []string // Transform specs ("name:k=v"), one alternative each
	ConfigPath       string
}

// Alternative is a named set of transforms to compare against the base plan
type Alternative struct {
	Name        string
	Description string
	Transforms  []transform.ScenarioTransform
}

// Compare resolves templates and transform specs into alternatives and runs them
func (ce *CompareEngine) Compare(
	ctx context.Context,
	portfolio domain.Portfolio,
	options CompareOptions,
) (*ComparisonSet, error) {
	alternatives := make([]Alternative, 0, len(options.Templates)+len(options.Transforms))

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}
		alternatives = append(alternatives, Alternative{
			Name:        template.Name,
			Description: template.Description,
			Transforms:  template.Transforms,
		})
	}

	for _, spec := range options.Transforms {
		tr, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transform %q: %w", spec, err)
		}
		alternatives = append(alternatives, Alternative{
			Name:        spec,
			Description: tr.Description(),
			Transforms:  []transform.ScenarioTransform{tr},
		})
	}

	compSet, err := ce.CompareAlternatives(ctx, portfolio, options.BaseScenarioName, alternatives)
	if err != nil {
		return nil, err
	}
	compSet.ConfigPath = options.ConfigPath
	return compSet, nil
}

// CompareAlternatives runs the base plan and each alternative through the
// calculation engine. The portfolio is never modified.
func (ce *CompareEngine) CompareAlternatives(
	ctx context.Context,
	portfolio domain.Portfolio,
	baseName string,
	alternatives []Alternative,
) (*ComparisonSet, error) {
	if baseName == "" {
		baseName = DefaultBaseName
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	baseDashboard := ce.CalcEngine.BuildDashboard(portfolio)
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, baseDashboard)
	baseResult.Description = "Current assumptions"

	results := make([]ComparisonResult, 0, len(alternatives))

	for _, alt := range alternatives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(portfolio.Assumptions, alt.Transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", alt.Name, err)
		}

		variant := portfolio
		variant.Assumptions = modified
		dashboard := ce.CalcEngine.BuildDashboard(variant)

		altResult := ce.MetricsCalculator.CalculateMetrics(alt.Name, dashboard)
		altResult.Description = alt.Description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		results = append(results, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
