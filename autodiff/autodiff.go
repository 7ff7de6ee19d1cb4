// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over scalars.
//
// Arithmetic on a Value builds a computation graph as a side effect.
// Backward on the final Value fills in the gradient of every Value it
// depends on.
//
// Example:
//
//	import "github.com/born-ml/minigrad/autodiff"
//
//	func main() {
//	    x := autodiff.New(3)
//	    y := autodiff.New(4)
//	    z := autodiff.Add(x.Mul(y), x.Pow(2)) // 21
//
//	    z.Backward()
//	    fmt.Println(x.Grad(), y.Grad()) // 10 3
//	}
//
// Gradients accumulate across Backward calls; reset with ZeroGrad.
package autodiff

import "github.com/born-ml/minigrad/internal/autodiff"

// Value is a scalar node in the computation graph.
type Value = autodiff.Value

// Op identifies the operation that produced a Value.
type Op = autodiff.Op

// OpKind enumerates operation kinds.
type OpKind = autodiff.OpKind

// Operation kinds.
const (
	OpLeaf = autodiff.OpLeaf
	OpAdd  = autodiff.OpAdd
	OpSub  = autodiff.OpSub
	OpMul  = autodiff.OpMul
	OpDiv  = autodiff.OpDiv
	OpPow  = autodiff.OpPow
	OpReLU = autodiff.OpReLU
)

// Operand is a *Value or a number.
type Operand = autodiff.Operand

// Edge is a directed operand edge of the graph.
type Edge = autodiff.Edge

// GradCheckOptions configures CheckGradients.
type GradCheckOptions = autodiff.GradCheckOptions

// GradientMismatchError is returned by CheckGradients.
type GradientMismatchError = autodiff.GradientMismatchError

// Errors.
var (
	ErrInvalidExponent  = autodiff.ErrInvalidExponent
	ErrGradientMismatch = autodiff.ErrGradientMismatch
	ErrInvalidStep      = autodiff.ErrInvalidStep
	ErrNilTerminal      = autodiff.ErrNilTerminal
)

// New creates a leaf Value.
func New(data float64) *Value {
	return autodiff.New(data)
}

// Add returns l + r. Numbers are promoted to leaves.
func Add[L, R Operand](l L, r R) *Value {
	return autodiff.Add(l, r)
}

// Sub returns l - r. Numbers are promoted to leaves.
func Sub[L, R Operand](l L, r R) *Value {
	return autodiff.Sub(l, r)
}

// Mul returns l * r. Numbers are promoted to leaves.
func Mul[L, R Operand](l L, r R) *Value {
	return autodiff.Mul(l, r)
}

// Div returns l / r. Numbers are promoted to leaves.
func Div[L, R Operand](l L, r R) *Value {
	return autodiff.Div(l, r)
}

// Pow returns base^exponent. A *Value exponent fails with ErrInvalidExponent.
func Pow[E Operand](base *Value, exponent E) (*Value, error) {
	return autodiff.Pow(base, exponent)
}

// Neg returns -x.
func Neg[T Operand](x T) *Value {
	return autodiff.Neg(x)
}

// ReLU returns max(x, 0).
func ReLU[T Operand](x T) *Value {
	return autodiff.ReLU(x)
}

// TopologicalOrder returns terminal's ancestry with operands first.
func TopologicalOrder(terminal *Value) []*Value {
	return autodiff.TopologicalOrder(terminal)
}

// Walk visits each Value reachable from terminal once, terminal first.
func Walk(terminal *Value, visit func(node *Value) bool) {
	autodiff.Walk(terminal, visit)
}

// Edges returns the distinct operand edges reachable from terminal.
func Edges(terminal *Value) []Edge {
	return autodiff.Edges(terminal)
}

// NumericalGradient estimates ∇f at point with central differences.
func NumericalGradient(f func(xs []float64) float64, point []float64, step float64) []float64 {
	return autodiff.NumericalGradient(f, point, step)
}

// CheckGradients compares backpropagated gradients with finite differences.
func CheckGradients(build func(leaves []*Value) *Value, point []float64, opts GradCheckOptions) error {
	return autodiff.CheckGradients(build, point, opts)
}
