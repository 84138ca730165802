package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Data availability errors
	ErrDataUnavailable = errors.New("required data unavailable")
	ErrEnvNotFound     = fmt.Errorf("%w: environment series", ErrDataUnavailable)
	ErrModelNotFound   = fmt.Errorf("%w: model artifact", ErrDataUnavailable)
	ErrRulesNotFound   = fmt.Errorf("%w: rule library", ErrDataUnavailable)

	// Schema errors
	ErrMissingColumn = errors.New("expected column missing")
	ErrEmptySeries   = errors.New("series is empty")

	// Profile/config errors
	ErrInvalidProfile   = errors.New("invalid profile configuration")
	ErrMissingDirection = fmt.Errorf("%w: directions are required", ErrInvalidProfile)

	// Inference errors
	ErrMalformedInput   = errors.New("malformed input row")
	ErrProbaShape       = errors.New("unexpected probability shape")
	ErrInsufficientData = errors.New("insufficient data for analysis")
)

// NewValidationError reports a failed validation with context
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// NewMissingColumnError identifies the absent column and its source table
func NewMissingColumnError(table, column string) error {
	return fmt.Errorf("%w: %s in %s", ErrMissingColumn, column, table)
}
