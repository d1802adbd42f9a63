package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Signal validation errors
	ErrInsufficientSamples    = errors.New("insufficient samples for phase extraction")
	ErrNonMonotonicTimestamps = errors.New("timestamps not strictly increasing")

	// Estimator errors
	ErrInsufficientLayers = errors.New("fewer than two layers with valid phase data")
	ErrEmptyWindow        = errors.New("alignment window contains no shared instants")
	ErrDimensionMismatch  = errors.New("paired vectors have incompatible dimensions")
	ErrZeroVariance       = errors.New("zero variance under pearson metric")

	// Configuration errors
	ErrConfigInvalid = errors.New("invalid configuration")
)

// Error constructors with context
func NewInsufficientSamplesError(layer string, got, min int) error {
	return fmt.Errorf("%w: layer %s has %d samples, need at least %d",
		ErrInsufficientSamples, layer, got, min)
}

func NewNonMonotonicError(layer string, index int) error {
	return fmt.Errorf("%w: layer %s at sample %d", ErrNonMonotonicTimestamps, layer, index)
}

func NewInsufficientLayersError(got int) error {
	return fmt.Errorf("%w: got %d", ErrInsufficientLayers, got)
}

func NewDimensionMismatchError(layerA, layerB string, lenA, lenB int) error {
	return fmt.Errorf("%w: %s has %d elements, %s has %d",
		ErrDimensionMismatch, layerA, lenA, layerB, lenB)
}

func NewZeroVarianceError(layer string) error {
	return fmt.Errorf("%w: layer %s", ErrZeroVariance, layer)
}

func NewConfigError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrConfigInvalid, field, reason)
}

// Error checking helpers
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInsufficientSamples) ||
		errors.Is(err, ErrNonMonotonicTimestamps) ||
		errors.Is(err, ErrDimensionMismatch) ||
		errors.Is(err, ErrZeroVariance) ||
		errors.Is(err, ErrConfigInvalid)
}

func IsEstimatorError(err error) bool {
	return errors.Is(err, ErrInsufficientLayers) ||
		errors.Is(err, ErrEmptyWindow)
}
