package problems

import (
	"github.com/san-kum/dualdiff/internal/dual"
)

func NewPolar() *System {
	return &System{
		Name:        "polar",
		Description: "(r, θ) -> (r cos θ, r sin θ)",
		In:          2,
		Out:         2,
		Func:        polar,
		Start:       []float64{1, 0.5},
	}
}

func polar(x []dual.Number) ([]dual.Number, error) {
	r, theta := x[0], x[1]
	return []dual.Number{r.Mul(theta.Cos()), r.Mul(theta.Sin())}, nil
}

func NewSpherical() *System {
	return &System{
		Name:        "spherical",
		Description: "(r, θ, φ) -> (r sin θ cos φ, r sin θ sin φ, r cos θ)",
		In:          3,
		Out:         3,
		Func:        spherical,
		Start:       []float64{1, 0.5, 0.25},
	}
}

func spherical(x []dual.Number) ([]dual.Number, error) {
	r, theta, phi := x[0], x[1], x[2]
	rs := r.Mul(theta.Sin())
	return []dual.Number{
		rs.Mul(phi.Cos()),
		rs.Mul(phi.Sin()),
		r.Mul(theta.Cos()),
	}, nil
}

// Fixed weights of a dense 2 -> 3 layer with logistic activation.
var (
	layerWeights = [3][2]float64{{1, -1}, {0.5, 2}, {-1.5, 0.25}}
	layerBias    = [3]float64{0, -0.5, 1}
)

func NewLogisticLayer() *System {
	return &System{
		Name:        "logistic-layer",
		Description: "σ(Wx + b) for a fixed 3x2 weight matrix",
		In:          2,
		Out:         3,
		Func:        logisticLayer,
		Start:       []float64{0.5, -0.5},
	}
}

func logisticLayer(x []dual.Number) ([]dual.Number, error) {
	out := make([]dual.Number, len(layerWeights))
	for i, w := range layerWeights {
		z := x[0].Mul(dual.Scalar(w[0])).
			Add(x[1].Mul(dual.Scalar(w[1]))).
			Add(dual.Scalar(layerBias[i]))
		out[i] = z.Logistic()
	}
	return out, nil
}

func NewHyperbolic() *System {
	return &System{
		Name:        "hyperbolic",
		Description: "(x, y) -> (sinh x cosh y, tanh(xy), arctan(y/x))",
		In:          2,
		Out:         3,
		Func:        hyperbolic,
		Start:       []float64{1, 0.5},
	}
}

// hyperbolic fails on x = 0 through the division.
func hyperbolic(x []dual.Number) ([]dual.Number, error) {
	a := x[0].Sinh().Mul(x[1].Cosh())
	b, err := x[0].Mul(x[1]).Tanh()
	if err != nil {
		return nil, err
	}
	ratio, err := x[1].Div(x[0])
	if err != nil {
		return nil, err
	}
	return []dual.Number{a, b, ratio.Arctan()}, nil
}
