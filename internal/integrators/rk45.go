package integrators

import (
	"errors"
	"math"
)

// ErrStepSize is returned when RK45 cannot cover a step within its substep
// budget.
var ErrStepSize = errors.New("integrators: adaptive step size underflow")

// Dormand-Prince coefficients (RK45)
var (
	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

const (
	DefaultRK45Tolerance = 1e-6
	DefaultMaxSubsteps   = 10000
)

// RK45 is the adaptive Dormand-Prince method. Step covers the whole interval
// dt with as many accepted substeps as the error control needs, so a dt that
// would make a fixed-step method unstable is split up instead.
//
// The error of each substep is measured relative to its increment |h*k1|.
type RK45 struct {
	safety      float64
	minScale    float64
	maxScale    float64
	tol         float64
	maxSubsteps int
}

func NewRK45() *RK45 {
	return &RK45{
		safety:      0.9,
		minScale:    0.2,
		maxScale:    10.0,
		tol:         DefaultRK45Tolerance,
		maxSubsteps: DefaultMaxSubsteps,
	}
}

func (r *RK45) Step(f Field, x []float64, dt float64) ([]float64, error) {
	cur := x
	remaining := dt
	h := dt
	for i := 0; i < r.maxSubsteps; i++ {
		if remaining <= 0 {
			return cur, nil
		}
		h = math.Min(h, remaining)

		next, hNew, accepted, err := r.attempt(f, cur, h, r.tol)
		if err != nil {
			return nil, err
		}
		if accepted {
			cur = next
			remaining -= h
		}
		h = hNew
	}
	if remaining <= 0 {
		return cur, nil
	}
	return nil, ErrStepSize
}

// StepAdaptive takes a single Dormand-Prince step of size dt and returns the
// result with the step size suggested for the next attempt. The result
// should be discarded when the suggested size is smaller than dt.
func (r *RK45) StepAdaptive(f Field, x []float64, dt, tol float64) ([]float64, float64, error) {
	next, dtNew, _, err := r.attempt(f, x, dt, tol)
	return next, dtNew, err
}

func (r *RK45) attempt(f Field, x []float64, dt, tol float64) ([]float64, float64, bool, error) {
	n := len(x)
	at := make([]float64, n)

	k1, err := f(x)
	if err != nil {
		return nil, 0, false, err
	}

	for i := 0; i < n; i++ {
		at[i] = x[i] + dt*b21*k1[i]
	}
	k2, err := f(at)
	if err != nil {
		return nil, 0, false, err
	}

	for i := 0; i < n; i++ {
		at[i] = x[i] + dt*(b31*k1[i]+b32*k2[i])
	}
	k3, err := f(at)
	if err != nil {
		return nil, 0, false, err
	}

	for i := 0; i < n; i++ {
		at[i] = x[i] + dt*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4, err := f(at)
	if err != nil {
		return nil, 0, false, err
	}

	for i := 0; i < n; i++ {
		at[i] = x[i] + dt*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5, err := f(at)
	if err != nil {
		return nil, 0, false, err
	}

	for i := 0; i < n; i++ {
		at[i] = x[i] + dt*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6, err := f(at)
	if err != nil {
		return nil, 0, false, err
	}

	xNew := make([]float64, n)
	for i := 0; i < n; i++ {
		xNew[i] = x[i] + dt*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}

	k7, err := f(xNew)
	if err != nil {
		return nil, 0, false, err
	}

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := dt * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		scale := math.Abs(dt*k1[i]) + 1e-10
		errMax = math.Max(errMax, math.Abs(errEst)/scale)
	}

	// An overflowing trial step is rejected and retried smaller.
	if !finite(errMax) || !valid(xNew) {
		return xNew, dt * r.minScale, false, nil
	}

	errRatio := errMax / tol

	var dtNew float64
	if errRatio > 1 {
		scale := math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25))
		dtNew = dt * scale
	} else {
		if errRatio > 0 {
			scale := math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
			dtNew = dt * scale
		} else {
			dtNew = dt * r.maxScale
		}
	}

	return xNew, dtNew, errRatio <= 1, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func valid(x []float64) bool {
	for _, v := range x {
		if !finite(v) {
			return false
		}
	}
	return true
}
