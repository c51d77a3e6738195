package optim

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/dualdiff/internal/dual"
	"github.com/san-kum/dualdiff/internal/integrators"
	"github.com/san-kum/dualdiff/internal/jacobian"
)

const (
	DefaultTolerance     = 1e-8
	DefaultMaxIter       = 1000
	DefaultShrink        = 0.5
	DefaultArmijo        = 1e-4
	DefaultCurvature     = 0.9
	DefaultMaxBacktracks = 60
	DefaultDt            = 0.05
)

type Solver interface {
	Name() string
	Minimize(ctx context.Context, f jacobian.ScalarFunc, x0 []float64) (*Result, error)
}

type Options struct {
	// Tolerance on the gradient norm.
	Tolerance float64
	MaxIter   int

	// Line search (DFP).
	Shrink        float64
	Armijo        float64
	Curvature     float64
	MaxBacktracks int

	// Gradient flow.
	Dt      float64
	Stepper integrators.Stepper

	Logger logrus.FieldLogger
}

func DefaultOptions() Options {
	return Options{
		Tolerance:     DefaultTolerance,
		MaxIter:       DefaultMaxIter,
		Shrink:        DefaultShrink,
		Armijo:        DefaultArmijo,
		Curvature:     DefaultCurvature,
		MaxBacktracks: DefaultMaxBacktracks,
		Dt:            DefaultDt,
	}
}

func (o Options) validate() error {
	switch {
	case !(o.Tolerance > 0):
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidOptions, o.Tolerance)
	case o.MaxIter <= 0:
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidOptions, o.MaxIter)
	case !(o.Shrink > 0 && o.Shrink < 1):
		return fmt.Errorf("%w: shrink must be in (0, 1), got %g", ErrInvalidOptions, o.Shrink)
	case !(o.Armijo > 0 && o.Armijo < 1):
		return fmt.Errorf("%w: armijo constant must be in (0, 1), got %g", ErrInvalidOptions, o.Armijo)
	case !(o.Curvature > 0 && o.Curvature < 1):
		return fmt.Errorf("%w: curvature constant must be in (0, 1), got %g", ErrInvalidOptions, o.Curvature)
	case o.MaxBacktracks <= 0:
		return fmt.Errorf("%w: max backtracks must be positive, got %d", ErrInvalidOptions, o.MaxBacktracks)
	case !(o.Dt > 0):
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidOptions, o.Dt)
	}
	return nil
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Iterate is one accepted step of a run.
type Iterate struct {
	Iter     int       `json:"iter"`
	X        []float64 `json:"x"`
	Value    float64   `json:"value"`
	GradNorm float64   `json:"grad_norm"`
	Step     float64   `json:"step"`
}

type Result struct {
	X          []float64
	Value      float64
	Gradient   []float64
	Iterations int
	Converged  bool
	Trace      []Iterate
}

func (r *Result) record(iter int, x dual.Array, value float64, grad dual.Array, step float64) {
	r.X = x.Clone()
	r.Value = value
	r.Gradient = grad.Clone()
	r.Iterations = iter
	r.Trace = append(r.Trace, Iterate{
		Iter:     iter,
		X:        x.Clone(),
		Value:    value,
		GradNorm: grad.Norm(),
		Step:     step,
	})
}

// evaluate returns f(x) and its gradient, wrapping failures with the
// iteration context.
func evaluate(f jacobian.ScalarFunc, x dual.Array, iter int) (float64, dual.Array, error) {
	value, grad, err := jacobian.Gradient(f, x)
	if err != nil {
		return 0, nil, &IterationError{Iter: iter, X: x.Clone(), Wrapped: err}
	}
	return value, dual.Array(grad), nil
}

func checkStart(x0 []float64) (dual.Array, error) {
	x := dual.Array(x0)
	if len(x) == 0 || !x.IsValid() {
		return nil, ErrInvalidStart
	}
	return x.Clone(), nil
}

func dot(a, b dual.Array) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
