package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrRunNotFound      = fmt.Errorf("%w: run", ErrNotFound)
	ErrVariableNotFound = fmt.Errorf("%w: variable", ErrNotFound)

	// Scenario configuration errors
	ErrInvalidScenario    = errors.New("invalid scenario")
	ErrUndeclaredVariable = errors.New("term references undeclared predictor")
	ErrCoefficientShape   = errors.New("coefficient shape mismatch")
	ErrInsufficientData   = errors.New("insufficient data for analysis")

	// Determinism errors
	ErrNonDeterministic = errors.New("non-deterministic result")
	ErrSeedMismatch     = errors.New("seed mismatch")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: validation failed for %s: %s", ErrInvalidScenario, field, reason)
}

func NewCoefficientShapeError(term string, want, got int) error {
	return fmt.Errorf("%w: term %s expects %d entries, got %d", ErrCoefficientShape, term, want, got)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidScenario) ||
		errors.Is(err, ErrUndeclaredVariable) ||
		errors.Is(err, ErrCoefficientShape)
}
