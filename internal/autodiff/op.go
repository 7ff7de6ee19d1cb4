package autodiff

import "strconv"

// OpKind enumerates the operations that can produce a Value.
type OpKind uint8

// Operation kinds.
const (
	OpLeaf OpKind = iota // constructed directly, no operands
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
	OpReLU
)

// String returns the kind name.
func (k OpKind) String() string {
	switch k {
	case OpLeaf:
		return "leaf"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpPow:
		return "pow"
	case OpReLU:
		return "relu"
	default:
		return "unknown"
	}
}

// Op identifies the operation that produced a Value.
// Exponent is only set for OpPow.
type Op struct {
	Kind     OpKind
	Exponent float64
}

// String returns the short diagnostic label: "+", "-", "*", "/", "^k" or "relu".
// Leaves have an empty label.
func (o Op) String() string {
	switch o.Kind {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^" + strconv.FormatFloat(o.Exponent, 'g', -1, 64)
	case OpReLU:
		return "relu"
	default:
		return ""
	}
}
