package integrators

import (
	"errors"
	"math"
	"testing"
)

// oscillator is x'' = -x written as a first-order system.
func oscillator(x []float64) ([]float64, error) {
	return []float64{x[1], -x[0]}, nil
}

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4()

	x := []float64{1.0, 0.0}
	dt := 0.01
	steps := 100

	var err error
	for i := 0; i < steps; i++ {
		x, err = integ.Step(oscillator, x, dt)
		if err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-8 {
		t.Errorf("position error too large: got %.10f, expected %.10f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-8 {
		t.Errorf("velocity error too large: got %.10f, expected %.10f", x[1], expectedV)
	}
}

func TestEulerDecay(t *testing.T) {
	integ := NewEuler()
	decay := func(x []float64) ([]float64, error) { return []float64{-x[0]}, nil }

	x := []float64{1.0}
	dt := 0.001
	var err error
	for i := 0; i < 1000; i++ {
		x, err = integ.Step(decay, x, dt)
		if err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}

	expected := math.Exp(-1.0)
	if math.Abs(x[0]-expected) > 1e-3 {
		t.Errorf("expected ~%.4f, got %.4f", expected, x[0])
	}
}

func TestStepPropagatesFieldError(t *testing.T) {
	boom := errors.New("boom")
	failing := func(x []float64) ([]float64, error) { return nil, boom }

	for _, name := range List() {
		integ, err := New(name)
		if err != nil {
			t.Fatalf("new %s: %v", name, err)
		}
		if _, err := integ.Step(failing, []float64{1}, 0.1); !errors.Is(err, boom) {
			t.Errorf("%s: expected field error, got %v", name, err)
		}
	}
}

func TestNewUnknown(t *testing.T) {
	if _, err := New("verlet"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}
