package dual

import "fmt"

// Number is a dual number: a primal value and its derivative with respect to
// the input it was seeded against. The zero Number has empty value and
// derivative; use a constructor.
type Number struct {
	val Array
	der Array
}

// Operand is the right-hand side of a binary operator: a Number, a raw
// Scalar, or a raw Array. Raw operands are constants and contribute no
// derivative of their own.
type Operand interface {
	operand()
}

// Scalar is a raw numeric constant operand.
type Scalar float64

func (Number) operand() {}
func (Scalar) operand() {}
func (Array) operand()  {}

// raw returns the value of a raw operand.
func raw(o Operand) Array {
	switch v := o.(type) {
	case Scalar:
		return Array{float64(v)}
	case Array:
		return v
	}
	panic(fmt.Sprintf("dual: unsupported operand %T", o))
}

// New returns a Number seeded as the differentiation variable: derivative 1.
func New(value float64) Number {
	return Number{val: Array{value}, der: Array{1}}
}

func NewWithDerivative(value, derivative float64) Number {
	return Number{val: Array{value}, der: Array{derivative}}
}

// Const returns a Number with derivative 0.
func Const(value float64) Number {
	return Number{val: Array{value}, der: Array{0}}
}

// FromArrays returns a Number with the given value and derivative, which
// must be broadcast-compatible. Both arrays are copied.
func FromArrays(value, derivative Array) Number {
	if _, ok := broadcastLen(value, derivative); !ok {
		panic(&OpError{Op: "new", Value: value.Clone(), Err: ErrShapeMismatch})
	}
	return Number{val: value.Clone(), der: derivative.Clone()}
}

// Pack stacks the values and derivatives of nums into one vector-valued
// Number. It is how the outputs of a vector function, each a Number, are
// re-assembled into a single result. Each input is broadcast to its own
// length before stacking so value and derivative stay aligned.
func Pack(nums ...Number) (Number, error) {
	if len(nums) == 0 {
		return Number{}, ErrEmptyPack
	}
	var val, der Array
	for _, n := range nums {
		size := n.Len()
		val = append(val, n.val.broadcastTo(size)...)
		der = append(der, n.der.broadcastTo(size)...)
	}
	return Number{val: val, der: der}, nil
}

// Value returns a copy of the primal value.
func (n Number) Value() Array { return n.val.Clone() }

// Derivative returns a copy of the derivative.
func (n Number) Derivative() Array { return n.der.Clone() }

// Len returns the broadcast length of value and derivative.
func (n Number) Len() int {
	size, _ := broadcastLen(n.val, n.der)
	return size
}

// Equal compares value and derivative exactly when other is a Number. For a
// raw operand only the value is compared. The zero Number equals only another
// zero Number.
func (n Number) Equal(other Operand) bool {
	switch o := other.(type) {
	case Number:
		return n.val.Equal(o.val) && n.der.Equal(o.der)
	default:
		return n.compare(raw(o), func(x, y float64) bool { return x == y })
	}
}

func (n Number) NotEqual(other Operand) bool {
	return !n.Equal(other)
}

// Less compares values only; derivatives never take part in ordering.
func (n Number) Less(other Operand) bool {
	return n.compare(valueOf(other), func(x, y float64) bool { return x < y })
}

func (n Number) Greater(other Operand) bool {
	return n.compare(valueOf(other), func(x, y float64) bool { return x > y })
}

// compare applies rel elementwise. An empty side has nothing to compare and
// is never related to anything.
func (n Number) compare(other Array, rel func(x, y float64) bool) bool {
	if len(n.val) == 0 || len(other) == 0 {
		return false
	}
	return n.val.All(other, rel)
}

// LessEqual is Less or Equal. Two Numbers with equal values but different
// derivatives are therefore neither LessEqual nor GreaterEqual.
func (n Number) LessEqual(other Operand) bool {
	return n.Less(other) || n.Equal(other)
}

func (n Number) GreaterEqual(other Operand) bool {
	return n.Greater(other) || n.Equal(other)
}

func (n Number) String() string {
	return fmt.Sprintf("====== Function Value(s) ======\n%s\n===== Derivative Value(s) =====\n%s\n", n.val, n.der)
}

func valueOf(o Operand) Array {
	if n, ok := o.(Number); ok {
		return n.val
	}
	return raw(o)
}
