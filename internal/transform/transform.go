package transform

import (
	"fmt"

	"github.com/rgehrsitz/fidash/internal/domain"
)

// ScenarioTransform defines the interface for all what-if transformations.
// Transforms are composable operations that modify projection assumptions in
// predictable ways, enabling scenario comparison and interactive tweaking.
type ScenarioTransform interface {
	// Apply transforms the base assumptions and returns a modified copy.
	Apply(base domain.Assumptions) (domain.Assumptions, error)

	// Name returns a short identifier for this transform (e.g., "extend_horizon").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid against base without applying it.
	Validate(base domain.Assumptions) error
}

// ApplyTransforms applies a sequence of transforms to base assumptions.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base domain.Assumptions, transforms []ScenarioTransform) (domain.Assumptions, error) {
	current := base

	for i, transform := range transforms {
		if transform == nil {
			return base, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return base, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return base, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
