// Package integrators steps a point along a vector field.
package integrators

import "fmt"

// Field is a vector field dx/dt = f(x). It may fail, for example when the
// field is a gradient evaluated outside its domain.
type Field func(x []float64) ([]float64, error)

type Stepper interface {
	Step(f Field, x []float64, dt float64) ([]float64, error)
}

// New returns the stepper registered under name.
func New(name string) (Stepper, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4", "":
		return NewRK4(), nil
	case "rk45":
		return NewRK45(), nil
	}
	return nil, fmt.Errorf("unknown integrator: %s", name)
}

func List() []string {
	return []string{"euler", "rk4", "rk45"}
}
