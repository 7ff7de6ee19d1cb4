package autodiff_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minigrad/internal/autodiff"
)

// TestEndToEnd tests z = x*y + x² at x=3, y=4.
func TestEndToEnd(t *testing.T) {
	x := autodiff.New(3)
	y := autodiff.New(4)
	z := x.Mul(y).Add(x.Pow(2))

	assert.Equal(t, 21.0, z.Data())

	z.Backward()

	assert.Equal(t, 1.0, z.Grad())
	assert.InDelta(t, 10.0, x.Grad(), 1e-12, "dz/dx = y + 2x")
	assert.InDelta(t, 3.0, y.Grad(), 1e-12, "dz/dy = x")
}

// TestLeaf tests leaf construction.
func TestLeaf(t *testing.T) {
	v := autodiff.New(2.5)

	assert.Equal(t, 2.5, v.Data())
	assert.Equal(t, 0.0, v.Grad())
	assert.True(t, v.IsLeaf())
	assert.Empty(t, v.Operands())
	assert.Equal(t, autodiff.OpLeaf, v.Op().Kind)

	label, ok := v.OpLabel()
	assert.False(t, ok)
	assert.Empty(t, label)
}

// TestLeaf_FreshOperands tests that leaves never share operand storage.
func TestLeaf_FreshOperands(t *testing.T) {
	a := autodiff.New(1)
	b := autodiff.New(2)
	c := a.Add(b)

	assert.Empty(t, a.Operands())
	assert.Empty(t, b.Operands())
	assert.Len(t, c.Operands(), 2)
}

// TestOperators tests forward values, labels and local derivatives.
func TestOperators(t *testing.T) {
	tests := []struct {
		name      string
		build     func(l, r *autodiff.Value) *autodiff.Value
		l, r      float64
		wantData  float64
		wantLabel string
		wantDL    float64
		wantDR    float64
	}{
		{"add", (*autodiff.Value).Add, 3, 4, 7, "+", 1, 1},
		{"sub", (*autodiff.Value).Sub, 3, 4, -1, "-", 1, -1},
		{"mul", (*autodiff.Value).Mul, 3, 4, 12, "*", 4, 3},
		{"div", (*autodiff.Value).Div, 3, 4, 0.75, "/", 0.25, -3.0 / 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := autodiff.New(tt.l)
			r := autodiff.New(tt.r)
			out := tt.build(l, r)

			assert.InDelta(t, tt.wantData, out.Data(), 1e-12)
			label, ok := out.OpLabel()
			require.True(t, ok)
			assert.Equal(t, tt.wantLabel, label)
			assert.InDelta(t, tt.wantDL, out.LocalGrad(l), 1e-12)
			assert.InDelta(t, tt.wantDR, out.LocalGrad(r), 1e-12)

			ops := out.Operands()
			require.Len(t, ops, 2)
			assert.Same(t, l, ops[0])
			assert.Same(t, r, ops[1])
		})
	}
}

// TestOperators_DoNotMutateOperands tests that construction only reads operands.
func TestOperators_DoNotMutateOperands(t *testing.T) {
	l := autodiff.New(5)
	r := autodiff.New(2)

	_ = l.Add(r).Sub(r).Mul(l).Div(r).Pow(3).ReLU().Neg()

	assert.Equal(t, 5.0, l.Data())
	assert.Equal(t, 2.0, r.Data())
	assert.Equal(t, 0.0, l.Grad())
	assert.Equal(t, 0.0, r.Grad())
	assert.True(t, l.IsLeaf())
	assert.True(t, r.IsLeaf())
}

// TestPow tests power with constant exponents.
func TestPow(t *testing.T) {
	x := autodiff.New(3)

	sq := x.Pow(2)
	assert.Equal(t, 9.0, sq.Data())
	assert.Equal(t, 6.0, sq.LocalGrad(x))
	label, _ := sq.OpLabel()
	assert.Equal(t, "^2", label)
	assert.Equal(t, autodiff.Op{Kind: autodiff.OpPow, Exponent: 2}, sq.Op())

	inv := x.Pow(-1)
	assert.InDelta(t, 1.0/3, inv.Data(), 1e-12)
	assert.InDelta(t, -1.0/9, inv.LocalGrad(x), 1e-12)

	root := x.Pow(0.5)
	label, _ = root.OpLabel()
	assert.Equal(t, "^0.5", label)
	assert.InDelta(t, math.Sqrt(3), root.Data(), 1e-12)
}

// TestPow_InvalidExponent tests that a Value exponent is rejected.
func TestPow_InvalidExponent(t *testing.T) {
	x := autodiff.New(2)
	k := autodiff.New(3)

	out, err := autodiff.Pow(x, k)
	require.ErrorIs(t, err, autodiff.ErrInvalidExponent)
	assert.Nil(t, out)

	// Neither operand gained a consumer or a gradient.
	assert.True(t, x.IsLeaf())
	assert.True(t, k.IsLeaf())
	assert.Equal(t, 0.0, x.Grad())
}

// TestPow_NumericExponent tests the generic Pow with int and float exponents.
func TestPow_NumericExponent(t *testing.T) {
	x := autodiff.New(2)

	cube, err := autodiff.Pow(x, 3)
	require.NoError(t, err)
	assert.Equal(t, 8.0, cube.Data())
	assert.Equal(t, 12.0, cube.LocalGrad(x))

	half, err := autodiff.Pow(x, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, half.Data(), 1e-12)
}

// TestNeg tests negation recorded as multiplication by -1.
func TestNeg(t *testing.T) {
	x := autodiff.New(4)
	n := x.Neg()

	assert.Equal(t, -4.0, n.Data())
	assert.Equal(t, autodiff.OpMul, n.Op().Kind)
	assert.Equal(t, -1.0, n.LocalGrad(x))

	n.Backward()
	assert.Equal(t, -1.0, x.Grad())
}

// TestReLU tests forward value and derivative on both sides of zero.
func TestReLU(t *testing.T) {
	tests := []struct {
		name      string
		x         float64
		wantData  float64
		wantLocal float64
	}{
		{"positive", 2.5, 2.5, 1},
		{"zero", 0, 0, 0},
		{"negative", -1.5, 0, 0},
		{"tiny positive", 1e-12, 1e-12, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := autodiff.New(tt.x)
			r := x.ReLU()

			assert.Equal(t, tt.wantData, r.Data())
			assert.Equal(t, tt.wantLocal, r.LocalGrad(x))
			label, _ := r.OpLabel()
			assert.Equal(t, "relu", label)

			r.Backward()
			assert.Equal(t, tt.wantLocal, x.Grad())
		})
	}
}

// TestDivByZero tests that division by zero follows IEEE-754 and never panics.
func TestDivByZero(t *testing.T) {
	x := autodiff.New(1)
	zero := autodiff.New(0)
	q := x.Div(zero)

	assert.True(t, math.IsInf(q.Data(), 1))
	assert.True(t, math.IsInf(q.LocalGrad(x), 1))
	assert.True(t, math.IsInf(q.LocalGrad(zero), -1))

	nan := zero.Div(autodiff.New(0))
	assert.True(t, math.IsNaN(nan.Data()))

	assert.NotPanics(t, func() { q.Backward() })
	assert.True(t, math.IsInf(x.Grad(), 1))
}

// TestReflected tests that literal-first and literal-second forms agree.
func TestReflected(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		x := autodiff.New(5)
		left := autodiff.Add(2, x)
		right := autodiff.Add(x, 2)
		assert.Equal(t, left.Data(), right.Data())
		assert.Equal(t, left.LocalGrad(x), right.LocalGrad(x))

		left.Backward()
		fromLeft := x.Grad()
		x.ZeroGrad()
		right.Backward()
		assert.Equal(t, fromLeft, x.Grad())
	})

	t.Run("mul", func(t *testing.T) {
		x := autodiff.New(5)
		left := autodiff.Mul(2.0, x)
		right := autodiff.Mul(x, 2.0)
		assert.Equal(t, 10.0, left.Data())
		assert.Equal(t, left.Data(), right.Data())
		assert.Equal(t, 2.0, left.LocalGrad(x))
		assert.Equal(t, 2.0, right.LocalGrad(x))
	})

	t.Run("sub", func(t *testing.T) {
		x := autodiff.New(5)
		out := autodiff.Sub(2, x) // 2 - x
		assert.Equal(t, -3.0, out.Data())
		assert.Equal(t, -1.0, out.LocalGrad(x))
	})

	t.Run("div", func(t *testing.T) {
		x := autodiff.New(4)
		out := autodiff.Div(2, x) // 2 / x
		assert.Equal(t, 0.5, out.Data())
		assert.InDelta(t, -2.0/16, out.LocalGrad(x), 1e-12)
	})
}

// TestLift tests operand promotion.
func TestLift(t *testing.T) {
	x := autodiff.New(1)
	assert.Same(t, x, autodiff.Lift(x))

	a := autodiff.Lift(3)
	b := autodiff.Lift(3)
	assert.Equal(t, 3.0, a.Data())
	assert.True(t, a.IsLeaf())
	assert.NotSame(t, a, b, "each literal becomes its own leaf")
}

// TestOperands_Copy tests that callers cannot rewrite the edge set.
func TestOperands_Copy(t *testing.T) {
	a := autodiff.New(1)
	b := autodiff.New(2)
	c := a.Add(b)

	ops := c.Operands()
	ops[0] = autodiff.New(100)

	assert.Same(t, a, c.Operands()[0])
}

// TestString tests the diagnostic representation.
func TestString(t *testing.T) {
	v := autodiff.New(1.5)
	assert.Equal(t, "Value(data=1.5000, grad=0.0000)", v.String())
}

// TestOpKind_String tests kind names.
func TestOpKind_String(t *testing.T) {
	assert.Equal(t, "leaf", autodiff.OpLeaf.String())
	assert.Equal(t, "pow", autodiff.OpPow.String())
	assert.Equal(t, "relu", autodiff.OpReLU.String())
	assert.Equal(t, "unknown", autodiff.OpKind(200).String())
}
