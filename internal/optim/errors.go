package optim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStart indicates an empty starting point or one with NaN/Inf.
	ErrInvalidStart = errors.New("optim: invalid starting point")

	// ErrInvalidOptions indicates an out-of-range tolerance, line search constant, step or budget.
	ErrInvalidOptions = errors.New("optim: invalid options")

	// ErrLineSearch indicates no acceptable step was found along the search direction.
	ErrLineSearch = errors.New("optim: line search failed to find a descent step")

	// ErrNonFinite indicates the objective or its gradient became NaN or Inf.
	ErrNonFinite = errors.New("optim: objective or gradient is not finite")
)

// IterationError wraps an error with the iteration and point where it occurred.
type IterationError struct {
	Iter    int
	X       []float64
	Wrapped error
}

func (e *IterationError) Error() string {
	return fmt.Sprintf("iteration %d at %v: %v", e.Iter, e.X, e.Wrapped)
}

func (e *IterationError) Unwrap() error {
	return e.Wrapped
}
