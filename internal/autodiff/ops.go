package autodiff

import (
	"fmt"
	"math"
)

// Operand is either a Value or a plain number. Numbers are promoted to
// fresh leaves when they take part in an operation.
type Operand interface {
	int | float64 | *Value
}

// Lift returns x as a Value. A *Value is returned unchanged; a number
// becomes a new leaf.
func Lift[T Operand](x T) *Value {
	switch v := any(x).(type) {
	case *Value:
		return v
	case int:
		return New(float64(v))
	case float64:
		return New(v)
	default:
		panic(fmt.Sprintf("lift: unsupported operand type %T", x))
	}
}

// Add returns l + r.
//
// Backward pass:
//   - d(l+r)/dl = 1
//   - d(l+r)/dr = 1
func (v *Value) Add(other *Value) *Value {
	return newResult(v.data+other.data, Op{Kind: OpAdd},
		[]*Value{v, other}, []float64{1, 1})
}

// Sub returns l - r.
//
// Backward pass:
//   - d(l-r)/dl = 1
//   - d(l-r)/dr = -1
func (v *Value) Sub(other *Value) *Value {
	return newResult(v.data-other.data, Op{Kind: OpSub},
		[]*Value{v, other}, []float64{1, -1})
}

// Mul returns l * r.
//
// Backward pass:
//   - d(l*r)/dl = r
//   - d(l*r)/dr = l
func (v *Value) Mul(other *Value) *Value {
	return newResult(v.data*other.data, Op{Kind: OpMul},
		[]*Value{v, other}, []float64{other.data, v.data})
}

// Div returns l / r. A zero divisor yields ±Inf or NaN, never an error.
//
// Backward pass:
//   - d(l/r)/dl = 1/r
//   - d(l/r)/dr = -l/r²
func (v *Value) Div(other *Value) *Value {
	l, r := v.data, other.data
	return newResult(l/r, Op{Kind: OpDiv},
		[]*Value{v, other}, []float64{1 / r, -l / (r * r)})
}

// Pow returns v^k for a constant exponent k.
//
// Backward pass:
//   - d(v^k)/dv = k * v^(k-1)
func (v *Value) Pow(k float64) *Value {
	return newResult(math.Pow(v.data, k), Op{Kind: OpPow, Exponent: k},
		[]*Value{v}, []float64{k * math.Pow(v.data, k-1)})
}

// Neg returns -v, recorded as a multiplication by a -1 leaf.
func (v *Value) Neg() *Value {
	return v.Mul(New(-1))
}

// ReLU returns max(v, 0).
//
// Backward pass:
//   - d(ReLU(v))/dv = 1 if v > 0, else 0 (including at exactly 0)
func (v *Value) ReLU() *Value {
	local := 0.0
	if v.data > 0 {
		local = 1
	}
	return newResult(math.Max(v.data, 0), Op{Kind: OpReLU},
		[]*Value{v}, []float64{local})
}

// Add returns l + r, promoting numeric operands. Add(2, x) equals Add(x, 2).
func Add[L, R Operand](l L, r R) *Value {
	return Lift(l).Add(Lift(r))
}

// Sub returns l - r, promoting numeric operands.
func Sub[L, R Operand](l L, r R) *Value {
	return Lift(l).Sub(Lift(r))
}

// Mul returns l * r, promoting numeric operands. Mul(2, x) equals Mul(x, 2).
func Mul[L, R Operand](l L, r R) *Value {
	return Lift(l).Mul(Lift(r))
}

// Div returns l / r, promoting numeric operands.
func Div[L, R Operand](l L, r R) *Value {
	return Lift(l).Div(Lift(r))
}

// Pow returns base^exponent. The exponent must be a number: a *Value
// exponent fails with ErrInvalidExponent and constructs nothing.
func Pow[E Operand](base *Value, exponent E) (*Value, error) {
	switch k := any(exponent).(type) {
	case *Value:
		return nil, fmt.Errorf("pow: %w", ErrInvalidExponent)
	case int:
		return base.Pow(float64(k)), nil
	case float64:
		return base.Pow(k), nil
	default:
		return nil, fmt.Errorf("pow: %w: %T", ErrInvalidExponent, exponent)
	}
}

// Neg returns -x.
func Neg[T Operand](x T) *Value {
	return Lift(x).Neg()
}

// ReLU returns max(x, 0).
func ReLU[T Operand](x T) *Value {
	return Lift(x).ReLU()
}
