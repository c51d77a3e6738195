package optim

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/dualdiff/internal/dual"
	"github.com/san-kum/dualdiff/internal/integrators"
	"github.com/san-kum/dualdiff/internal/jacobian"
)

// GradientFlow follows the steepest-descent ODE dx/dt = -grad f(x) with a
// fixed step Dt. It is robust but slow; with a fixed-step integrator Dt must
// be small relative to the curvature of f or the integration becomes
// unstable, which is reported as ErrNonFinite. The adaptive rk45 stepper
// splits a large Dt into stable substeps instead.
type GradientFlow struct {
	opts Options
}

func NewGradientFlow(opts Options) *GradientFlow {
	return &GradientFlow{opts: opts}
}

func (gf *GradientFlow) Name() string { return "flow" }

func (gf *GradientFlow) Minimize(ctx context.Context, f jacobian.ScalarFunc, x0 []float64) (*Result, error) {
	if err := gf.opts.validate(); err != nil {
		return nil, err
	}
	x, err := checkStart(x0)
	if err != nil {
		return nil, err
	}
	stepper := gf.opts.Stepper
	if stepper == nil {
		stepper = integrators.NewRK4()
	}
	log := gf.opts.logger().WithField("method", gf.Name())

	fx, g, err := evaluate(f, x, 0)
	if err != nil {
		return nil, err
	}
	if !finite(fx) || !g.IsValid() {
		return nil, &IterationError{Iter: 0, X: x.Clone(), Wrapped: ErrNonFinite}
	}

	result := &Result{}
	result.record(0, x, fx, g, 0)

	for iter := 1; ; iter++ {
		if g.Norm() <= gf.opts.Tolerance {
			result.Converged = true
			break
		}
		if iter > gf.opts.MaxIter {
			break
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		field := func(at []float64) ([]float64, error) {
			_, grad, err := evaluate(f, at, iter)
			if err != nil {
				return nil, err
			}
			return grad.Neg(), nil
		}

		next, err := stepper.Step(field, x, gf.opts.Dt)
		if err != nil {
			return result, err
		}

		xNew := dual.Array(next)
		fx, g, err = evaluate(f, xNew, iter)
		if err != nil {
			return result, err
		}
		if !finite(fx) || !g.IsValid() || !xNew.IsValid() {
			return result, &IterationError{Iter: iter, X: xNew, Wrapped: ErrNonFinite}
		}
		x = xNew
		result.record(iter, x, fx, g, gf.opts.Dt)

		log.WithFields(logrus.Fields{
			"iter":      iter,
			"f":         fx,
			"grad_norm": g.Norm(),
		}).Debug("flow step")
	}

	log.WithFields(logrus.Fields{
		"iterations": result.Iterations,
		"converged":  result.Converged,
		"f":          result.Value,
	}).Info("flow finished")

	return result, nil
}
