package dual

import "math"

func isZero(v float64) bool { return v == 0 }

// Add returns n + other.
func (n Number) Add(other Operand) Number {
	switch o := other.(type) {
	case Number:
		return Number{val: n.val.Add(o.val), der: n.der.Add(o.der)}
	default:
		return Number{val: n.val.Add(raw(o)), der: n.der.Clone()}
	}
}

// RAdd returns other + n.
func (n Number) RAdd(other Operand) Number {
	return n.Add(other)
}

// Sub returns n - other.
func (n Number) Sub(other Operand) Number {
	switch o := other.(type) {
	case Number:
		return Number{val: n.val.Sub(o.val), der: n.der.Sub(o.der)}
	default:
		return Number{val: n.val.Sub(raw(o)), der: n.der.Clone()}
	}
}

// RSub returns other - n, computed as -n + other.
func (n Number) RSub(other Operand) Number {
	return n.Neg().Add(other)
}

// Mul returns n * other using the product rule.
func (n Number) Mul(other Operand) Number {
	switch o := other.(type) {
	case Number:
		return Number{
			val: n.val.Mul(o.val),
			der: n.der.Mul(o.val).Add(n.val.Mul(o.der)),
		}
	default:
		c := raw(o)
		return Number{val: n.val.Mul(c), der: n.der.Mul(c)}
	}
}

// RMul returns other * n.
func (n Number) RMul(other Operand) Number {
	return n.Mul(other)
}

// Div returns n / other using the quotient rule. The divisor is checked for
// exact zeros before anything is computed.
func (n Number) Div(other Operand) (Number, error) {
	switch o := other.(type) {
	case Number:
		if o.val.Any(isZero) {
			return Number{}, opError("div", o.val, ErrDivisionByZero)
		}
		der := n.der.Mul(o.val).Sub(o.der.Mul(n.val)).Div(o.val.Pow(2))
		return Number{val: n.val.Div(o.val), der: der}, nil
	default:
		c := raw(o)
		if c.Any(isZero) {
			return Number{}, opError("div", c, ErrDivisionByZero)
		}
		return Number{val: n.val.Div(c), der: n.der.Div(c)}, nil
	}
}

// RDiv returns other / n. A Number numerator is handled by its own Div.
func (n Number) RDiv(other Operand) (Number, error) {
	if o, ok := other.(Number); ok {
		return o.Div(n)
	}
	if n.val.Any(isZero) {
		return Number{}, opError("rdiv", n.val, ErrDivisionByZero)
	}
	c := raw(other)
	return Number{
		val: c.Div(n.val),
		der: c.Mul(n.der).Neg().Div(n.val.Pow(2)),
	}, nil
}

// Pow returns n ** exp for a constant exponent.
func (n Number) Pow(exp float64) Number {
	return Number{
		val: n.val.Pow(exp),
		der: n.val.Pow(exp - 1).Scale(exp).Mul(n.der),
	}
}

// RPow returns base ** n, where n is the exponent.
//
// A negative base has no real logarithm and fails with ErrDomain. A zero base
// yields 0 with derivative 0 for positive exponents, 1 with derivative 0 for a
// zero exponent, and fails with ErrDivisionByZero for negative exponents.
func (n Number) RPow(base float64) (Number, error) {
	switch {
	case base > 0:
		val := n.val.Map(func(v float64) float64 { return math.Pow(base, v) })
		return Number{val: val, der: val.Mul(n.der).Scale(math.Log(base))}, nil
	case base < 0 || math.IsNaN(base):
		return Number{}, opError("rpow", Array{base}, ErrDomain)
	}

	if n.val.Any(func(v float64) bool { return v < 0 }) {
		return Number{}, opError("rpow", n.val, ErrDivisionByZero)
	}
	val := n.val.Map(func(v float64) float64 {
		if v > 0 {
			return 0
		}
		return 1
	})
	return Number{val: val, der: zeros(len(val))}, nil
}

// Neg returns -n.
func (n Number) Neg() Number {
	return Number{val: n.val.Neg(), der: n.der.Neg()}
}
