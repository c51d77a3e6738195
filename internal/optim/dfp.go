package optim

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/dualdiff/internal/dual"
	"github.com/san-kum/dualdiff/internal/jacobian"
)

// DFP is the Davidon-Fletcher-Powell quasi-Newton method. It keeps an
// approximation H of the inverse Hessian, starting from the identity, and
// updates it after every accepted step s with gradient change y:
//
//	H += s sᵀ / (sᵀy) - (Hy)(Hy)ᵀ / (yᵀHy)
//
// H is reset to the identity whenever either denominator is not positive or
// H stops producing a descent direction.
type DFP struct {
	opts Options
}

func NewDFP(opts Options) *DFP {
	return &DFP{opts: opts}
}

func (d *DFP) Name() string { return "dfp" }

func (d *DFP) Minimize(ctx context.Context, f jacobian.ScalarFunc, x0 []float64) (*Result, error) {
	if err := d.opts.validate(); err != nil {
		return nil, err
	}
	x, err := checkStart(x0)
	if err != nil {
		return nil, err
	}
	log := d.opts.logger().WithField("method", d.Name())

	fx, g, err := evaluate(f, x, 0)
	if err != nil {
		return nil, err
	}
	if !finite(fx) || !g.IsValid() {
		return nil, &IterationError{Iter: 0, X: x.Clone(), Wrapped: ErrNonFinite}
	}

	n := len(x)
	h := identity(n)
	result := &Result{}
	result.record(0, x, fx, g, 0)

	for iter := 1; ; iter++ {
		if g.Norm() <= d.opts.Tolerance {
			result.Converged = true
			break
		}
		if iter > d.opts.MaxIter {
			break
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		p := h.mulVec(g).Neg()
		slope := dot(g, p)
		if !(slope < 0) {
			h = identity(n)
			p = g.Neg()
			slope = dot(g, p)
		}

		step, err := d.lineSearch(f, x, fx, p, slope, iter)
		if err != nil {
			return result, err
		}

		s := step.x.Sub(x)
		y := step.grad.Sub(g)
		hy := h.mulVec(y)
		sy, yhy := dot(s, y), dot(y, hy)
		if sy > 0 && yhy > 0 {
			h.update(s, s, 1/sy)
			h.update(hy, hy, -1/yhy)
		} else {
			h = identity(n)
		}

		x, fx, g = step.x, step.value, step.grad
		result.record(iter, x, fx, g, step.alpha)

		log.WithFields(logrus.Fields{
			"iter":      iter,
			"f":         fx,
			"grad_norm": g.Norm(),
			"step":      step.alpha,
		}).Debug("dfp step")
	}

	log.WithFields(logrus.Fields{
		"iterations": result.Iterations,
		"converged":  result.Converged,
		"f":          result.Value,
	}).Info("dfp finished")

	return result, nil
}

type trial struct {
	alpha float64
	x     dual.Array
	value float64
	grad  dual.Array
}

// lineSearch backtracks from a unit step until the Armijo condition holds.
// A step that does not increase f and flattens the directional derivative is
// also accepted; near the minimum the Armijo decrease is below rounding.
func (d *DFP) lineSearch(f jacobian.ScalarFunc, x dual.Array, fx float64, p dual.Array, slope float64, iter int) (*trial, error) {
	alpha := 1.0
	for i := 0; i < d.opts.MaxBacktracks; i++ {
		xNew := x.Add(p.Scale(alpha))
		value, grad, err := evaluate(f, xNew, iter)
		if err != nil {
			return nil, err
		}

		if finite(value) && grad.IsValid() {
			armijo := value <= fx+d.opts.Armijo*alpha*slope
			flat := value <= fx && abs(dot(grad, p)) <= d.opts.Curvature*abs(slope)
			if armijo || flat {
				return &trial{alpha: alpha, x: xNew, value: value, grad: grad}, nil
			}
		}
		alpha *= d.opts.Shrink
	}
	return nil, &IterationError{Iter: iter, X: x.Clone(), Wrapped: ErrLineSearch}
}

// matrix is a dense square matrix stored by rows.
type matrix []dual.Array

func identity(n int) matrix {
	m := make(matrix, n)
	for i := range m {
		m[i] = make(dual.Array, n)
		m[i][i] = 1
	}
	return m
}

func (m matrix) mulVec(v dual.Array) dual.Array {
	result := make(dual.Array, len(m))
	for i, row := range m {
		result[i] = dot(row, v)
	}
	return result
}

// update adds scale * a bᵀ to m.
func (m matrix) update(a, b dual.Array, scale float64) {
	for i := range m {
		for j := range m[i] {
			m[i][j] += scale * a[i] * b[j]
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
