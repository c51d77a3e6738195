package problems

import (
	"math"

	"github.com/san-kum/dualdiff/internal/dual"
)

var one = dual.Scalar(1)

// expQuadRoot solves e^(1-r) = 4r, the stationary point of ExpQuad is (-r, r).
const expQuadRoot = 0.4383784163099828

func NewExpQuad() *Objective {
	return &Objective{
		Name:        "expquad",
		Description: "e^(x+1) + e^(-y+1) + (x-y)^2",
		Dim:         2,
		Func:        expQuad,
		Start:       []float64{0, 0},
		Minimum:     []float64{-expQuadRoot, expQuadRoot},
	}
}

func expQuad(x []dual.Number) (dual.Number, error) {
	d := x[0].Sub(x[1])
	return x[0].Add(one).Exp().
		Add(x[1].Neg().Add(one).Exp()).
		Add(d.Mul(d)), nil
}

func NewRosenbrock() *Objective {
	return &Objective{
		Name:        "rosenbrock",
		Description: "(1-x)^2 + 100(y-x^2)^2",
		Dim:         2,
		Func:        rosenbrock,
		Start:       []float64{-1.2, 1},
		Minimum:     []float64{1, 1},
	}
}

func rosenbrock(x []dual.Number) (dual.Number, error) {
	a := x[0].RSub(one)
	b := x[1].Sub(x[0].Pow(2))
	return a.Pow(2).Add(b.Pow(2).Mul(dual.Scalar(100))), nil
}

func NewHimmelblau() *Objective {
	return &Objective{
		Name:        "himmelblau",
		Description: "(x^2+y-11)^2 + (x+y^2-7)^2, four minima",
		Dim:         2,
		Func:        himmelblau,
		Start:       []float64{0, 0},
	}
}

func himmelblau(x []dual.Number) (dual.Number, error) {
	a := x[0].Pow(2).Add(x[1]).Sub(dual.Scalar(11))
	b := x[0].Add(x[1].Pow(2)).Sub(dual.Scalar(7))
	return a.Pow(2).Add(b.Pow(2)), nil
}

func NewBooth() *Objective {
	return &Objective{
		Name:        "booth",
		Description: "(x+2y-7)^2 + (2x+y-5)^2",
		Dim:         2,
		Func:        booth,
		Start:       []float64{0, 0},
		Minimum:     []float64{1, 3},
	}
}

func booth(x []dual.Number) (dual.Number, error) {
	a := x[0].Add(x[1].Mul(dual.Scalar(2))).Sub(dual.Scalar(7))
	b := x[0].Mul(dual.Scalar(2)).Add(x[1]).Sub(dual.Scalar(5))
	return a.Pow(2).Add(b.Pow(2)), nil
}

func NewSphere(dim int) *Objective {
	return &Objective{
		Name:        "sphere",
		Description: "sum of squares",
		Dim:         dim,
		Func:        sphere,
		Start:       ones(dim),
		Minimum:     make([]float64, dim),
	}
}

func sphere(x []dual.Number) (dual.Number, error) {
	sum := dual.Const(0)
	for _, xi := range x {
		sum = sum.Add(xi.Mul(xi))
	}
	return sum, nil
}

// Logistic regression on a small overlapping dataset, with an L2 penalty so
// the minimizer is finite.
var (
	logisticXs = []float64{-2, -1, -0.5, 0, 0.5, 1, 1.5, 2}
	logisticYs = []float64{0, 0, 1, 0, 1, 0, 1, 1}
)

const logisticPenalty = 0.01

func NewLogisticLoss() *Objective {
	return &Objective{
		Name:        "logistic-loss",
		Description: "regularized cross-entropy of a 1-d logistic model (w, b)",
		Dim:         2,
		Func:        logisticLoss,
		Start:       []float64{0, 0},
	}
}

func logisticLoss(x []dual.Number) (dual.Number, error) {
	w, b := x[0], x[1]
	loss := w.Pow(2).Add(b.Pow(2)).Mul(dual.Scalar(logisticPenalty))
	for i, xi := range logisticXs {
		p := w.Mul(dual.Scalar(xi)).Add(b).Logistic()
		var (
			l   dual.Number
			err error
		)
		if logisticYs[i] == 1 {
			l, err = p.Log()
		} else {
			l, err = p.RSub(one).Log()
		}
		if err != nil {
			return dual.Number{}, err
		}
		loss = loss.Sub(l)
	}
	return loss, nil
}

func ones(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = 1
	}
	return x
}

// Distance returns the Euclidean distance from x to the known minimum, or
// NaN when there is none.
func (o *Objective) Distance(x []float64) float64 {
	if o.Minimum == nil || len(x) != len(o.Minimum) {
		return math.NaN()
	}
	sum := 0.0
	for i := range x {
		d := x[i] - o.Minimum[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
