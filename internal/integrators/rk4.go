package integrators

// RK4 is the classical fourth-order Runge-Kutta method. It keeps scratch
// buffers between steps and must not be shared across goroutines.
type RK4 struct {
	k1, k2, k3, k4 []float64
	scratch        []float64
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make([]float64, n)
		r.k2 = make([]float64, n)
		r.k3 = make([]float64, n)
		r.k4 = make([]float64, n)
		r.scratch = make([]float64, n)
	}
}

func (r *RK4) Step(f Field, x []float64, dt float64) ([]float64, error) {
	n := len(x)
	r.ensureScratch(n)

	if err := r.stage(f, x, nil, 0, r.k1); err != nil {
		return nil, err
	}
	if err := r.stage(f, x, r.k1, dt*0.5, r.k2); err != nil {
		return nil, err
	}
	if err := r.stage(f, x, r.k2, dt*0.5, r.k3); err != nil {
		return nil, err
	}
	if err := r.stage(f, x, r.k3, dt, r.k4); err != nil {
		return nil, err
	}

	result := make([]float64, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return result, nil
}

// stage evaluates f at x + h*k into out. A nil k evaluates f at x.
func (r *RK4) stage(f Field, x, k []float64, h float64, out []float64) error {
	at := x
	if k != nil {
		for i := range x {
			r.scratch[i] = x[i] + h*k[i]
		}
		at = r.scratch
	}
	dx, err := f(at)
	if err != nil {
		return err
	}
	copy(out, dx)
	return nil
}
