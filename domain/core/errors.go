package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound             = errors.New("resource not found")
	ErrDistributionNotFound = fmt.Errorf("%w: distribution", ErrNotFound)

	// Validation errors
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrMissingParameter   = fmt.Errorf("%w: missing", ErrInvalidParameter)
	ErrInvalidSampleSize  = errors.New("invalid sample size")
	ErrInvalidProbability = errors.New("probability must lie in (0, 1)")

	// Capability errors
	ErrUnsupported = errors.New("operation not supported")

	// Sampling errors
	ErrDegenerateSample = errors.New("degenerate sample")
)

// Error constructors with context
func NewParameterError(name string, reason string) error {
	return fmt.Errorf("%w %s: %s", ErrInvalidParameter, name, reason)
}

func NewMissingParameterError(name string) error {
	return fmt.Errorf("%w parameter %q", ErrMissingParameter, name)
}

func NewDistributionNotFoundError(name string) error {
	return fmt.Errorf("%w: %q", ErrDistributionNotFound, name)
}

func NewUnsupportedError(distribution, operation string) error {
	return fmt.Errorf("%w: %s has no %s", ErrUnsupported, distribution, operation)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidParameter) ||
		errors.Is(err, ErrInvalidSampleSize) ||
		errors.Is(err, ErrInvalidProbability)
}

func IsUnsupportedError(err error) bool {
	return errors.Is(err, ErrUnsupported)
}
