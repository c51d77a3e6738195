// Package optim minimizes scalar functions whose gradients are computed by
// forward-mode automatic differentiation.
//
//   - [DFP]: Davidon-Fletcher-Powell quasi-Newton with a backtracking line search
//   - [GradientFlow]: integrates dx/dt = -grad f(x) with an integrators.Stepper
//   - [GridSearch]: runs a [Solver] from every point of a grid of starts
//
// Every solver evaluates the objective through jacobian.Gradient, one pass per
// input dimension. Objective failures such as dual.ErrDomain are never
// swallowed: they end the run and are returned wrapped in an [IterationError].
//
// # Example
//
//	solver := optim.NewDFP(optim.DefaultOptions())
//	res, err := solver.Minimize(ctx, f, []float64{0, 0})
package optim
