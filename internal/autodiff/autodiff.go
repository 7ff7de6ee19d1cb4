// Package autodiff implements reverse-mode automatic differentiation over scalars.
//
// Every arithmetic operation on a Value constructs a new Value that records
// its operands and the local partial derivative with respect to each one.
// The resulting computation graph is a DAG: one Value may feed many others.
//
// Architecture:
//   - Value: forward result, accumulated gradient, operand edges
//   - Op: closed set of operation kinds (with the exponent as Pow payload)
//   - TopologicalOrder: operands-first ordering of a terminal's ancestry
//   - Backward: walks that ordering terminal-first applying the chain rule
//
// Usage:
//
//	x := autodiff.New(3)
//	y := autodiff.New(4)
//	z := x.Mul(y).Add(x.Pow(2)) // z = x*y + x²
//	z.Backward()
//	fmt.Println(x.Grad()) // dz/dx = y + 2x = 10
//
// Gradients accumulate across Backward calls. Call ZeroGrad on the terminal
// before reusing a graph if a fresh pass is wanted.
//
// Values are not safe for concurrent use.
package autodiff

import "fmt"

// Value is a node in the computation graph.
//
// data is fixed at construction. grad is only ever added to, by Backward.
// operands and localGrads are parallel: localGrads[i] = ∂data/∂operands[i].data.
type Value struct {
	data       float64
	grad       float64
	operands   []*Value
	localGrads []float64
	op         Op
}

// New creates a leaf Value with no operands.
func New(data float64) *Value {
	return &Value{data: data}
}

// newResult creates the output of an operation. The operand and local
// gradient slices are always freshly allocated by the caller.
func newResult(data float64, op Op, operands []*Value, localGrads []float64) *Value {
	if len(operands) != len(localGrads) {
		panic(fmt.Sprintf("%s: %d operands but %d local gradients", op.Kind, len(operands), len(localGrads)))
	}
	return &Value{
		data:       data,
		operands:   operands,
		localGrads: localGrads,
		op:         op,
	}
}

// Data returns the forward value.
func (v *Value) Data() float64 {
	return v.data
}

// Grad returns the accumulated gradient ∂terminal/∂v.
// It is only meaningful after Backward has run on a terminal that depends on v.
func (v *Value) Grad() float64 {
	return v.grad
}

// Operands returns the values v was computed from, in argument order.
// The returned slice is a copy.
func (v *Value) Operands() []*Value {
	out := make([]*Value, len(v.operands))
	copy(out, v.operands)
	return out
}

// Op returns the operation that produced v. Leaves report OpLeaf.
func (v *Value) Op() Op {
	return v.op
}

// OpLabel returns the diagnostic label of the producing operation.
// The boolean is false for leaves.
func (v *Value) OpLabel() (string, bool) {
	if v.op.Kind == OpLeaf {
		return "", false
	}
	return v.op.String(), true
}

// IsLeaf reports whether v was constructed directly rather than by an operation.
func (v *Value) IsLeaf() bool {
	return len(v.operands) == 0
}

// LocalGrad returns ∂v/∂operand computed at construction time.
//
// When the same Value appears as more than one operand (x*x, x-x) the
// per-edge partials are summed, giving the total derivative with respect
// to that identity. Returns 0 if operand is not an operand of v.
func (v *Value) LocalGrad(operand *Value) float64 {
	var sum float64
	for i, o := range v.operands {
		if o == operand {
			sum += v.localGrads[i]
		}
	}
	return sum
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	return fmt.Sprintf("Value(data=%.4f, grad=%.4f)", v.data, v.grad)
}
