package dual

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped) by dual number operations.
var (
	// ErrDomain indicates a value outside the mathematical domain of a function.
	ErrDomain = errors.New("dual: value outside function domain")

	// ErrDivisionByZero indicates a denominator that is exactly zero, including
	// derivative singularities such as arcsin at ±1.
	ErrDivisionByZero = errors.New("dual: division by zero")

	// ErrShapeMismatch indicates operands that cannot be broadcast together.
	ErrShapeMismatch = errors.New("dual: operand shapes are not broadcast-compatible")

	// ErrEmptyPack indicates Pack was called without any numbers.
	ErrEmptyPack = errors.New("dual: cannot pack an empty sequence")
)

// OpError wraps a sentinel error with the operation and the offending value.
type OpError struct {
	Op    string
	Value Array
	Err   error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s (op=%s, value=%s)", e.Err, e.Op, e.Value)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opError(op string, value Array, err error) error {
	return &OpError{Op: op, Value: value.Clone(), Err: err}
}
