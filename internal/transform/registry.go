package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("scale_contribution", createScaleContribution)
	registry.Register("set_contribution", createSetContribution)
	registry.Register("annualize_contribution", createAnnualizeContribution)
	registry.Register("extend_horizon", createExtendHorizon)
	registry.Register("adjust_rates", createAdjustRates)
	registry.Register("set_rates", createSetRates)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "adjust_rates:delta=-0.01"
// A bare name with no colon creates a transform without parameters.
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if len(parts) == 2 {
		paramsStr := strings.TrimSpace(parts[1])
		if paramsStr != "" {
			for _, paramPair := range strings.Split(paramsStr, ",") {
				kv := strings.SplitN(paramPair, "=", 2)
				if len(kv) != 2 {
					return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
				}
				params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
			}
		}
	}

	return r.Create(name, params)
}

func requireDecimal(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func createScaleContribution(params map[string]string) (ScenarioTransform, error) {
	factor, err := requireDecimal("scale_contribution", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleContribution{Factor: factor}, nil
}

func createSetContribution(params map[string]string) (ScenarioTransform, error) {
	amount, err := requireDecimal("set_contribution", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetContribution{
		Amount:    amount,
		Frequency: domain.Frequency(strings.ToLower(params["frequency"])),
	}, nil
}

func createAnnualizeContribution(params map[string]string) (ScenarioTransform, error) {
	return &AnnualizeContribution{}, nil
}

func createExtendHorizon(params map[string]string) (ScenarioTransform, error) {
	yearsStr, ok := params["years"]
	if !ok {
		return nil, fmt.Errorf("extend_horizon requires 'years' parameter")
	}

	years, err := strconv.Atoi(yearsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid years value: %w", err)
	}

	return &ExtendHorizon{Years: years}, nil
}

func createAdjustRates(params map[string]string) (ScenarioTransform, error) {
	delta, err := requireDecimal("adjust_rates", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustRates{Delta: delta}, nil
}

func createSetRates(params map[string]string) (ScenarioTransform, error) {
	pessimistic, err := requireDecimal("set_rates", params, "pessimistic")
	if err != nil {
		return nil, err
	}
	realistic, err := requireDecimal("set_rates", params, "realistic")
	if err != nil {
		return nil, err
	}
	optimistic, err := requireDecimal("set_rates", params, "optimistic")
	if err != nil {
		return nil, err
	}
	return &SetRates{Pessimistic: pessimistic, Realistic: realistic, Optimistic: optimistic}, nil
}
