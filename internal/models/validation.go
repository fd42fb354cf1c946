package models

import (
	"errors"
	"fmt"
	"math"
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func requirePositive(field string, v float64) error {
	if !finite(v) {
		return invalid(field, "must be a valid number")
	}
	if v <= 0 {
		return invalid(field, "must be greater than zero")
	}
	return nil
}

func requireNonNegative(field string, v float64) error {
	if !finite(v) {
		return invalid(field, "must be a valid number")
	}
	if v < 0 {
		return invalid(field, "must not be negative")
	}
	return nil
}

// requireFraction accepts decimal fractions in (0, 1].
func requireFraction(field string, v float64) error {
	if !finite(v) {
		return invalid(field, "must be a valid number")
	}
	if v <= 0 || v > 1 {
		return invalid(field, "must be a decimal fraction between 0 and 1 (e.g. 0.7)")
	}
	return nil
}

func requireCount(field string, v int) error {
	if v < 1 {
		return invalid(field, "must be at least 1")
	}
	return nil
}
