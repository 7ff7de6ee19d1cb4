package autodiff

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidExponent  = errors.New("exponent must be a constant, not a Value")
	ErrGradientMismatch = errors.New("analytic gradient does not match numerical gradient")
	ErrInvalidStep      = errors.New("finite-difference step must be positive")
	ErrNilTerminal      = errors.New("expression builder returned nil")
)

// GradientMismatchError reports the first input whose backpropagated gradient
// disagrees with its finite-difference estimate.
type GradientMismatchError struct {
	Index     int     // Position of the input in the evaluation point
	Analytic  float64 // Gradient from Backward
	Numerical float64 // Central-difference estimate
	Tolerance float64
}

// Error implements the error interface.
func (e *GradientMismatchError) Error() string {
	return fmt.Sprintf("input %d: analytic %g, numerical %g (|diff| %g > %g)",
		e.Index, e.Analytic, e.Numerical, abs(e.Analytic-e.Numerical), e.Tolerance)
}

// Unwrap allows errors.Is(err, ErrGradientMismatch).
func (e *GradientMismatchError) Unwrap() error {
	return ErrGradientMismatch
}
