// Package problems provides named test functions built on dual numbers:
// scalar objectives for the optimizers and vector-valued systems for
// Jacobian evaluation.
package problems

import (
	"errors"
	"fmt"

	"github.com/san-kum/dualdiff/internal/jacobian"
)

var ErrDimensionMismatch = errors.New("problems: dimension mismatch")

type Objective struct {
	Name        string
	Description string
	Dim         int
	Func        jacobian.ScalarFunc
	Start       []float64
	// Minimum is nil when the objective has no single known minimizer.
	Minimum []float64
}

// Check reports whether x has the dimension the objective expects.
func (o *Objective) Check(x []float64) error {
	if len(x) != o.Dim {
		return fmt.Errorf("%w: %s takes %d inputs, got %d", ErrDimensionMismatch, o.Name, o.Dim, len(x))
	}
	return nil
}

type System struct {
	Name        string
	Description string
	In          int
	Out         int
	Func        jacobian.VectorFunc
	Start       []float64
}

func (s *System) Check(x []float64) error {
	if len(x) != s.In {
		return fmt.Errorf("%w: %s takes %d inputs, got %d", ErrDimensionMismatch, s.Name, s.In, len(x))
	}
	return nil
}
