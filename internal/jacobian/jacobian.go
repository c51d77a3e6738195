// Package jacobian assembles gradients and Jacobians from dual numbers.
//
// Each evaluation pass seeds exactly one input with derivative 1 and every
// other input with derivative 0, so a function of n inputs is evaluated n
// times and pass j yields the partial derivatives with respect to x[j].
package jacobian

import (
	"errors"
	"fmt"

	"github.com/san-kum/dualdiff/internal/dual"
)

var (
	ErrNoInputs            = errors.New("jacobian: function has no inputs")
	ErrNotScalar           = errors.New("jacobian: scalar function returned a vector value")
	ErrInconsistentOutputs = errors.New("jacobian: output count changed between passes")
)

// ScalarFunc is a function of n inputs returning one Number.
type ScalarFunc func(x []dual.Number) (dual.Number, error)

// VectorFunc is a function of n inputs returning m Numbers.
type VectorFunc func(x []dual.Number) ([]dual.Number, error)

// Seed returns x as Numbers with the derivative of x[axis] set to 1 and
// every other derivative set to 0.
func Seed(x []float64, axis int) []dual.Number {
	seeded := make([]dual.Number, len(x))
	for i, v := range x {
		if i == axis {
			seeded[i] = dual.New(v)
		} else {
			seeded[i] = dual.Const(v)
		}
	}
	return seeded
}

// Gradient evaluates f at x once per input and returns the value and the
// gradient.
func Gradient(f ScalarFunc, x []float64) (float64, []float64, error) {
	if len(x) == 0 {
		return 0, nil, ErrNoInputs
	}

	var value float64
	grad := make([]float64, len(x))
	for j := range x {
		out, err := f(Seed(x, j))
		if err != nil {
			return 0, nil, fmt.Errorf("gradient pass %d: %w", j, err)
		}
		if out.Len() != 1 {
			return 0, nil, ErrNotScalar
		}
		value = out.Value().Item()
		grad[j] = out.Derivative().Item()
	}
	return value, grad, nil
}

// Result holds the function values and the Jacobian in row-major order:
// Data[i*Cols+j] is the derivative of output i with respect to input j, or of
// output j with respect to input i when built with Transposed.
type Result struct {
	Values []float64
	Rows   int
	Cols   int
	Data   []float64
}

func (r *Result) At(i, j int) float64 {
	return r.Data[i*r.Cols+j]
}

// Row returns a copy of row i.
func (r *Result) Row(i int) []float64 {
	row := make([]float64, r.Cols)
	copy(row, r.Data[i*r.Cols:(i+1)*r.Cols])
	return row
}

type options struct {
	transposed bool
}

type Option func(*options)

// Transposed stores the n×m transpose, one row per input.
func Transposed() Option {
	return func(o *options) { o.transposed = true }
}

// Jacobian evaluates f at x once per input. The outputs of each pass are
// packed into one vector-valued Number whose derivative is one column of the
// Jacobian.
func Jacobian(f VectorFunc, x []float64, opts ...Option) (*Result, error) {
	if len(x) == 0 {
		return nil, ErrNoInputs
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	n := len(x)
	var (
		values  []float64
		columns [][]float64
	)
	for j := 0; j < n; j++ {
		outs, err := f(Seed(x, j))
		if err != nil {
			return nil, fmt.Errorf("jacobian pass %d: %w", j, err)
		}
		packed, err := dual.Pack(outs...)
		if err != nil {
			return nil, fmt.Errorf("jacobian pass %d: %w", j, err)
		}
		if j == 0 {
			values = packed.Value()
		} else if packed.Len() != len(values) {
			return nil, ErrInconsistentOutputs
		}
		columns = append(columns, packed.Derivative())
	}

	m := len(values)
	res := &Result{Values: values, Rows: m, Cols: n, Data: make([]float64, m*n)}
	if o.transposed {
		res.Rows, res.Cols = n, m
	}
	for j, col := range columns {
		for i, d := range col {
			if o.transposed {
				res.Data[j*m+i] = d
			} else {
				res.Data[i*n+j] = d
			}
		}
	}
	return res, nil
}
