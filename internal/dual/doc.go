// Package dual implements forward-mode automatic differentiation with dual
// numbers.
//
// A [Number] carries a primal value and its derivative with respect to one
// seeded input variable. Every operator propagates both at once using the sum,
// product, quotient, power and chain rules, so the derivative of an expression
// built from Numbers is exact to floating-point precision.
//
//   - [Array]: fixed-shape numeric container (a length-1 Array is a scalar)
//   - [Number]: the (value, derivative) pair
//   - [Operand]: a Number or a raw [Scalar] / [Array] on the right of an operator
//
// # Example
//
//	x := dual.New(2)              // x = 2, dx/dx = 1
//	y := x.Mul(x).Add(dual.Scalar(1))
//	fmt.Println(y.Value().Item()) // 5
//	fmt.Println(y.Derivative())   // 4
//
// # Seeding
//
// The engine does not record which variable a derivative is taken with
// respect to. For a function of several inputs, evaluate once per input and
// seed that input's derivative with 1 and every other input with 0. Package
// jacobian implements that convention.
//
// # Errors
//
// Operations with a restricted domain (division, log, inverse trig, tan,
// reflected power) return an error wrapping [ErrDomain] or
// [ErrDivisionByZero] and the zero Number. Operands with incompatible shapes
// are a programming error and panic with an [OpError] wrapping
// [ErrShapeMismatch].
//
// # Thread Safety
//
// Numbers are immutable values: operators never modify their receiver or
// arguments, and accessors return copies. Concurrent read-only use is safe.
package dual
