package optim_test

import "github.com/san-kum/dualdiff/internal/dual"

const root = 0.4383784163099828

// expQuad is f(x,y) = e^(x+1) + e^(-y+1) + (x-y)^2, minimized at (-root, root).
func expQuad(x []dual.Number) (dual.Number, error) {
	d := x[0].Sub(x[1])
	return x[0].Add(dual.Scalar(1)).Exp().
		Add(x[1].Neg().Add(dual.Scalar(1)).Exp()).
		Add(d.Mul(d)), nil
}

func rosenbrock(x []dual.Number) (dual.Number, error) {
	a := dual.Const(1).Sub(x[0])
	b := x[1].Sub(x[0].Mul(x[0]))
	return a.Mul(a).Add(b.Mul(b).Mul(dual.Scalar(100))), nil
}

// logQuad is ln(x) + (x-2)^2, minimized at 1 + 1/sqrt(2); undefined for x <= 0.
func logQuad(x []dual.Number) (dual.Number, error) {
	l, err := x[0].Log()
	if err != nil {
		return dual.Number{}, err
	}
	d := x[0].Sub(dual.Scalar(2))
	return l.Add(d.Mul(d)), nil
}

// blowUp is e^(x^2), which overflows to +Inf for |x| beyond about 26.6.
func blowUp(x []dual.Number) (dual.Number, error) {
	return x[0].Mul(x[0]).Exp(), nil
}
