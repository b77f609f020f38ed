// Package domain defines domain-specific errors.
// These errors represent visualization failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that sources, renderers and services can return.
var (
	// ErrUnsupported is returned when the host has no real-time audio analysis.
	ErrUnsupported = errors.New("real-time audio analysis not supported")

	// ErrAlreadyBound is returned when a second analysis tap is requested for an element.
	ErrAlreadyBound = errors.New("audio element already bound to an analyzer")

	// ErrSurfaceUnavailable is returned when a render target has been unmounted.
	ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

	// ErrInvalidWindowSize is returned when the analysis window is not a power of two in range.
	ErrInvalidWindowSize = errors.New("invalid window size: must be a power of two between 32 and 32768")

	// ErrInvalidSmoothing is returned when the smoothing factor is outside [0, 1).
	ErrInvalidSmoothing = errors.New("invalid smoothing: must be in [0, 1)")

	// ErrInvalidBarCount is returned when the bar count is not positive.
	ErrInvalidBarCount = errors.New("invalid bar count: must be positive")

	// ErrTapClosed is returned when reading from a tap whose pipeline has gone away.
	ErrTapClosed = errors.New("analysis tap closed")

	// ErrNotInitialized is returned when an operation is attempted on an uninitialized component.
	ErrNotInitialized = errors.New("component not initialized")

	// ErrNoElement is returned when live analysis is requested without an audio element.
	ErrNoElement = errors.New("no audio element")
)

// AnalysisError represents a failure to set up or read live analysis.
// This wraps host-level errors with the element they concern.
type AnalysisError struct {
	Op      string // Operation that failed (e.g., "connect", "read")
	Element string // Audio element identifier (if applicable)
	Message string // Error message
	Err     error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("analysis %s failed for '%s': %s", e.Op, e.Element, e.Message)
	}
	return fmt.Sprintf("analysis %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError creates a new AnalysisError.
func NewAnalysisError(op, element, message string, err error) *AnalysisError {
	return &AnalysisError{
		Op:      op,
		Element: element,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string      // Field that failed validation
	Value   interface{} // Value that failed validation
	Message string      // Error message
	Err     error       // Sentinel the failure corresponds to (if any)
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// Unwrap returns the sentinel error, if any.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewFieldError creates a ValidationError that wraps a sentinel error.
func NewFieldError(field string, value interface{}, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: err.Error(),
		Err:     err,
	}
}
