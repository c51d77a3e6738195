package dual

import "math"

// Sqrt returns n ** 0.5.
func (n Number) Sqrt() Number {
	return n.Pow(0.5)
}

func (n Number) Sin() Number {
	return Number{val: n.val.Map(math.Sin), der: n.val.Map(math.Cos).Mul(n.der)}
}

func (n Number) Cos() Number {
	return Number{val: n.val.Map(math.Cos), der: n.val.Map(math.Sin).Neg().Mul(n.der)}
}

// Tan fails with ErrDomain at the poles (k + 1/2)π.
func (n Number) Tan() (Number, error) {
	if n.val.Any(onTanPole) {
		return Number{}, opError("tan", n.val, ErrDomain)
	}
	sec2 := n.val.Map(func(v float64) float64 {
		s := 1 / math.Cos(v)
		return s * s
	})
	return Number{val: n.val.Map(math.Tan), der: sec2.Mul(n.der)}, nil
}

func onTanPole(v float64) bool {
	return math.Mod(v/math.Pi-0.5, 1) == 0
}

// Arcsin is defined on [-1, 1]; the derivative is singular at ±1.
func (n Number) Arcsin() (Number, error) {
	if err := checkUnitInterval("arcsin", n.val); err != nil {
		return Number{}, err
	}
	return Number{val: n.val.Map(math.Asin), der: n.val.Map(invSqrt1m2).Mul(n.der)}, nil
}

// Arccos is defined on [-1, 1]; the derivative is singular at ±1.
func (n Number) Arccos() (Number, error) {
	if err := checkUnitInterval("arccos", n.val); err != nil {
		return Number{}, err
	}
	return Number{val: n.val.Map(math.Acos), der: n.val.Map(invSqrt1m2).Neg().Mul(n.der)}, nil
}

func checkUnitInterval(op string, val Array) error {
	// NaN is rejected as out of domain.
	if val.Any(func(v float64) bool { return !(v >= -1 && v <= 1) }) {
		return opError(op, val, ErrDomain)
	}
	if val.Any(func(v float64) bool { return math.Abs(v) == 1 }) {
		return opError(op, val, ErrDivisionByZero)
	}
	return nil
}

// invSqrt1m2 returns 1/sqrt(1-v²).
func invSqrt1m2(v float64) float64 {
	return 1 / math.Sqrt(1-v*v)
}

func (n Number) Arctan() Number {
	der := n.val.Map(func(v float64) float64 { return 1 / (1 + v*v) })
	return Number{val: n.val.Map(math.Atan), der: der.Mul(n.der)}
}

func (n Number) Sinh() Number {
	return Number{val: n.val.Map(math.Sinh), der: n.val.Map(math.Cosh).Mul(n.der)}
}

func (n Number) Cosh() Number {
	return Number{val: n.val.Map(math.Cosh), der: n.val.Map(math.Sinh).Mul(n.der)}
}

// Tanh fails with ErrDivisionByZero if cosh(value) is zero, which cannot
// happen for real input.
func (n Number) Tanh() (Number, error) {
	cosh := n.val.Map(math.Cosh)
	if cosh.Any(isZero) {
		return Number{}, opError("tanh", n.val, ErrDivisionByZero)
	}
	sech2 := cosh.Map(func(c float64) float64 { return 1 / (c * c) })
	return Number{val: n.val.Map(math.Tanh), der: sech2.Mul(n.der)}, nil
}

// Log returns the natural logarithm. Non-positive values fail with ErrDomain.
func (n Number) Log() (Number, error) {
	if n.val.Any(nonPositive) {
		return Number{}, opError("log", n.val, ErrDomain)
	}
	return Number{val: n.val.Map(math.Log), der: n.der.Div(n.val)}, nil
}

// LogBase returns the logarithm in the given base. The base must be positive
// and not 1.
func (n Number) LogBase(base float64) (Number, error) {
	if n.val.Any(nonPositive) {
		return Number{}, opError("log", n.val, ErrDomain)
	}
	if !(base > 0) {
		return Number{}, opError("log", Array{base}, ErrDomain)
	}
	lnBase := math.Log(base)
	if lnBase == 0 {
		return Number{}, opError("log", Array{base}, ErrDivisionByZero)
	}
	val := n.val.Map(func(v float64) float64 { return math.Log(v) / lnBase })
	return Number{val: val, der: n.der.Div(n.val.Scale(lnBase))}, nil
}

func nonPositive(v float64) bool { return v <= 0 }

// Exp returns e ** n.
func (n Number) Exp() Number {
	// RPow cannot fail for a positive base.
	result, _ := n.RPow(math.E)
	return result
}

// ExpBase returns base ** n with the domain rules of RPow.
func (n Number) ExpBase(base float64) (Number, error) {
	return n.RPow(base)
}

// Logistic returns 1/(1+e^-v). The derivative uses e^v/(1+e^v)², which
// overflows to NaN for large v.
func (n Number) Logistic() Number {
	val := n.val.Map(func(v float64) float64 { return 1 / (1 + math.Exp(-v)) })
	der := n.val.Map(func(v float64) float64 {
		ev := math.Exp(v)
		return ev / ((1 + ev) * (1 + ev))
	})
	return Number{val: val, der: der.Mul(n.der)}
}
