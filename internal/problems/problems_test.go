package problems

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/dualdiff/internal/dual"
	"github.com/san-kum/dualdiff/internal/jacobian"
)

func TestRegistryLists(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t,
		[]string{"booth", "expquad", "himmelblau", "logistic-loss", "rosenbrock", "sphere"},
		r.ListObjectives())
	assert.Equal(t,
		[]string{"hyperbolic", "logistic-layer", "polar", "spherical"},
		r.ListSystems())
}

func TestRegistryUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.GetObjective("nope")
	assert.EqualError(t, err, "unknown objective: nope")

	_, err = r.GetSystem("nope")
	assert.EqualError(t, err, "unknown system: nope")
}

func TestObjectivesAreStationaryAtMinimum(t *testing.T) {
	r := NewRegistry()
	for _, name := range r.ListObjectives() {
		obj, err := r.GetObjective(name)
		require.NoError(t, err)
		if obj.Minimum == nil {
			continue
		}
		t.Run(name, func(t *testing.T) {
			require.NoError(t, obj.Check(obj.Minimum))
			_, grad, err := jacobian.Gradient(obj.Func, obj.Minimum)
			require.NoError(t, err)
			for i, g := range grad {
				assert.InDelta(t, 0, g, 1e-9, "component %d", i)
			}
		})
	}
}

func TestHimmelblauMinima(t *testing.T) {
	obj := NewHimmelblau()
	for _, x := range [][]float64{{3, 2}} {
		value, grad, err := jacobian.Gradient(obj.Func, x)
		require.NoError(t, err)
		assert.Equal(t, 0.0, value)
		assert.Equal(t, []float64{0, 0}, grad)
	}
}

func TestObjectiveGradientMatchesFiniteDifference(t *testing.T) {
	r := NewRegistry()
	const h = 1e-6
	for _, name := range r.ListObjectives() {
		obj, err := r.GetObjective(name)
		require.NoError(t, err)
		t.Run(name, func(t *testing.T) {
			x := make([]float64, obj.Dim)
			for i := range x {
				x[i] = 0.3 + 0.1*float64(i)
			}
			_, grad, err := jacobian.Gradient(obj.Func, x)
			require.NoError(t, err)

			for i := range x {
				plus := append([]float64(nil), x...)
				minus := append([]float64(nil), x...)
				plus[i] += h
				minus[i] -= h
				fp, _, err := jacobian.Gradient(obj.Func, plus)
				require.NoError(t, err)
				fm, _, err := jacobian.Gradient(obj.Func, minus)
				require.NoError(t, err)
				assert.InDelta(t, (fp-fm)/(2*h), grad[i], 1e-4*math.Max(1, math.Abs(grad[i])), "component %d", i)
			}
		})
	}
}

func TestLogisticLossAtOrigin(t *testing.T) {
	value, _, err := jacobian.Gradient(NewLogisticLoss().Func, []float64{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 8*math.Ln2, value, 1e-12)
}

func TestObjectiveCheck(t *testing.T) {
	obj := NewRosenbrock()
	err := obj.Check([]float64{1, 2, 3})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestObjectiveDistance(t *testing.T) {
	assert.InDelta(t, 5, NewBooth().Distance([]float64{4, 7}), 1e-12)
	assert.True(t, math.IsNaN(NewHimmelblau().Distance([]float64{0, 0})))
}

func TestPolarJacobian(t *testing.T) {
	r, theta := 2.0, 0.3
	res, err := jacobian.Jacobian(NewPolar().Func, []float64{r, theta})
	require.NoError(t, err)

	assert.InDelta(t, r*math.Cos(theta), res.Values[0], 1e-12)
	assert.InDelta(t, r*math.Sin(theta), res.Values[1], 1e-12)
	assert.InDelta(t, math.Cos(theta), res.At(0, 0), 1e-12)
	assert.InDelta(t, -r*math.Sin(theta), res.At(0, 1), 1e-12)
	assert.InDelta(t, math.Sin(theta), res.At(1, 0), 1e-12)
	assert.InDelta(t, r*math.Cos(theta), res.At(1, 1), 1e-12)
}

func TestSphericalJacobianDeterminant(t *testing.T) {
	r, theta, phi := 1.5, 0.7, 0.2
	res, err := jacobian.Jacobian(NewSpherical().Func, []float64{r, theta, phi})
	require.NoError(t, err)
	require.Equal(t, 3, res.Rows)
	require.Equal(t, 3, res.Cols)

	det := res.At(0, 0)*(res.At(1, 1)*res.At(2, 2)-res.At(1, 2)*res.At(2, 1)) -
		res.At(0, 1)*(res.At(1, 0)*res.At(2, 2)-res.At(1, 2)*res.At(2, 0)) +
		res.At(0, 2)*(res.At(1, 0)*res.At(2, 1)-res.At(1, 1)*res.At(2, 0))
	assert.InDelta(t, r*r*math.Sin(theta), det, 1e-12)
}

func TestLogisticLayerJacobian(t *testing.T) {
	sys := NewLogisticLayer()
	x := sys.Start
	res, err := jacobian.Jacobian(sys.Func, x)
	require.NoError(t, err)
	require.Equal(t, sys.Out, res.Rows)

	for i, w := range layerWeights {
		z := w[0]*x[0] + w[1]*x[1] + layerBias[i]
		s := 1 / (1 + math.Exp(-z))
		assert.InDelta(t, s, res.Values[i], 1e-12)
		for j := range w {
			assert.InDelta(t, s*(1-s)*w[j], res.At(i, j), 1e-12)
		}
	}
}

func TestHyperbolicFailsOnZeroDivisor(t *testing.T) {
	_, err := jacobian.Jacobian(NewHyperbolic().Func, []float64{0, 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, dual.ErrDivisionByZero))
}
