package autodiff

import (
	"fmt"
	"math"
)

// Default finite-difference settings.
const (
	DefaultStep      = 1e-6
	DefaultTolerance = 1e-4
)

// GradCheckOptions configures CheckGradients. Zero fields take defaults.
type GradCheckOptions struct {
	Step      float64 // Central-difference step
	Tolerance float64 // Allowed |analytic - numerical|, scaled by max(1, |numerical|)
}

func (o GradCheckOptions) withDefaults() GradCheckOptions {
	if o.Step == 0 {
		o.Step = DefaultStep
	}
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	return o
}

// NumericalGradient estimates ∇f at point using central differences:
//
//	∂f/∂x_i ≈ (f(x + h·e_i) - f(x - h·e_i)) / 2h
//
// point is not modified.
func NumericalGradient(f func(xs []float64) float64, point []float64, step float64) []float64 {
	grad := make([]float64, len(point))
	xs := make([]float64, len(point))
	for i := range point {
		copy(xs, point)
		xs[i] = point[i] + step
		plus := f(xs)
		xs[i] = point[i] - step
		minus := f(xs)
		grad[i] = (plus - minus) / (2 * step)
	}
	return grad
}

// CheckGradients builds the expression at point, backpropagates from its
// result and compares each leaf gradient with a finite-difference estimate.
//
// build receives one fresh leaf per element of point and must return the
// terminal Value. It is called once for the analytic pass and twice per
// input for the numerical estimate, so it must be deterministic.
//
// Returns a *GradientMismatchError for the first disagreeing input.
func CheckGradients(build func(leaves []*Value) *Value, point []float64, opts GradCheckOptions) error {
	opts = opts.withDefaults()
	if opts.Step < 0 || math.IsNaN(opts.Step) {
		return fmt.Errorf("gradcheck: %w (got %g)", ErrInvalidStep, opts.Step)
	}

	leaves := leavesAt(point)
	out := build(leaves)
	if out == nil {
		return fmt.Errorf("gradcheck: %w", ErrNilTerminal)
	}
	out.Backward()

	eval := func(xs []float64) float64 {
		return build(leavesAt(xs)).Data()
	}
	numerical := NumericalGradient(eval, point, opts.Step)

	for i, leaf := range leaves {
		analytic := leaf.Grad()
		bound := opts.Tolerance * math.Max(1, abs(numerical[i]))
		if !(abs(analytic-numerical[i]) <= bound) {
			return &GradientMismatchError{
				Index:     i,
				Analytic:  analytic,
				Numerical: numerical[i],
				Tolerance: bound,
			}
		}
	}
	return nil
}

func leavesAt(point []float64) []*Value {
	leaves := make([]*Value, len(point))
	for i, x := range point {
		leaves[i] = New(x)
	}
	return leaves
}

func abs(x float64) float64 {
	return math.Abs(x)
}
