package optim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/san-kum/dualdiff/internal/dual"
	"github.com/san-kum/dualdiff/internal/integrators"
	"github.com/san-kum/dualdiff/internal/optim"
)

var _ = Describe("DFP", func() {
	var solver *optim.DFP

	BeforeEach(func() {
		solver = optim.NewDFP(optim.DefaultOptions())
	})

	DescribeTable("finds the stationary point of e^(x+1) + e^(-y+1) + (x-y)^2",
		func(x0, y0 float64) {
			res, err := solver.Minimize(context.Background(), expQuad, []float64{x0, y0})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Converged).To(BeTrue())
			Expect(res.X[0]).To(BeNumerically("~", -0.438378, 1e-6))
			Expect(res.X[1]).To(BeNumerically("~", 0.438378, 1e-6))
			Expect(res.Gradient[0]).To(BeNumerically("~", 0, 1e-7))
			Expect(res.Gradient[1]).To(BeNumerically("~", 0, 1e-7))
		},
		Entry("from the origin", 0.0, 0.0),
		Entry("from (1, 1)", 1.0, 1.0),
		Entry("from (10, -10)", 10.0, -10.0),
	)

	It("minimizes the Rosenbrock function", func() {
		res, err := solver.Minimize(context.Background(), rosenbrock, []float64{-1.2, 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Converged).To(BeTrue())
		Expect(res.X[0]).To(BeNumerically("~", 1, 1e-6))
		Expect(res.X[1]).To(BeNumerically("~", 1, 1e-6))
	})

	It("never increases the objective along the trace", func() {
		res, err := solver.Minimize(context.Background(), expQuad, []float64{10, -10})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Trace[0].Iter).To(Equal(0))
		for i := 1; i < len(res.Trace); i++ {
			Expect(res.Trace[i].Value).To(BeNumerically("<=", res.Trace[i-1].Value))
		}
		Expect(res.Trace).To(HaveLen(res.Iterations + 1))
	})

	It("stops at the iteration budget without converging", func() {
		opts := optim.DefaultOptions()
		opts.MaxIter = 1
		res, err := optim.NewDFP(opts).Minimize(context.Background(), rosenbrock, []float64{-1.2, 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Converged).To(BeFalse())
		Expect(res.Iterations).To(Equal(1))
	})

	It("propagates objective domain errors with the iteration context", func() {
		_, err := solver.Minimize(context.Background(), logQuad, []float64{-1})
		Expect(errors.Is(err, dual.ErrDomain)).To(BeTrue())

		var iterErr *optim.IterationError
		Expect(errors.As(err, &iterErr)).To(BeTrue())
		Expect(iterErr.Iter).To(Equal(0))
		Expect(iterErr.X).To(Equal([]float64{-1}))
	})

	It("rejects invalid starting points", func() {
		_, err := solver.Minimize(context.Background(), expQuad, nil)
		Expect(err).To(MatchError(optim.ErrInvalidStart))

		_, err = solver.Minimize(context.Background(), expQuad, []float64{math.NaN(), 0})
		Expect(err).To(MatchError(optim.ErrInvalidStart))
	})

	DescribeTable("rejects invalid options",
		func(mutate func(*optim.Options)) {
			opts := optim.DefaultOptions()
			mutate(&opts)
			_, err := optim.NewDFP(opts).Minimize(context.Background(), expQuad, []float64{0, 0})
			Expect(err).To(MatchError(optim.ErrInvalidOptions))
		},
		Entry("zero tolerance", func(o *optim.Options) { o.Tolerance = 0 }),
		Entry("shrink of 1", func(o *optim.Options) { o.Shrink = 1 }),
		Entry("zero curvature constant", func(o *optim.Options) { o.Curvature = 0 }),
		Entry("curvature constant of 1", func(o *optim.Options) { o.Curvature = 1 }),
		Entry("NaN curvature constant", func(o *optim.Options) { o.Curvature = math.NaN() }),
		Entry("no backtracks", func(o *optim.Options) { o.MaxBacktracks = 0 }),
		Entry("negative backtracks", func(o *optim.Options) { o.MaxBacktracks = -1 }),
	)

	It("returns the partial result when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, err := solver.Minimize(ctx, expQuad, []float64{10, -10})
		Expect(err).To(MatchError(context.Canceled))
		Expect(res).NotTo(BeNil())
		Expect(res.Iterations).To(Equal(0))
	})

	It("logs every step at debug level", func() {
		logger, hook := test.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)

		opts := optim.DefaultOptions()
		opts.Logger = logger
		res, err := optim.NewDFP(opts).Minimize(context.Background(), expQuad, []float64{0, 0})
		Expect(err).NotTo(HaveOccurred())

		debug := 0
		for _, entry := range hook.AllEntries() {
			if entry.Level == logrus.DebugLevel {
				debug++
				Expect(entry.Data).To(HaveKey("grad_norm"))
			}
		}
		Expect(debug).To(Equal(res.Iterations))
		Expect(hook.LastEntry().Message).To(Equal("dfp finished"))
	})
})

var _ = Describe("GradientFlow", func() {
	DescribeTable("follows the gradient to the stationary point",
		func(stepper integrators.Stepper, x0, y0 float64) {
			opts := optim.DefaultOptions()
			opts.MaxIter = 5000
			opts.Stepper = stepper
			res, err := optim.NewGradientFlow(opts).Minimize(context.Background(), expQuad, []float64{x0, y0})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Converged).To(BeTrue())
			Expect(res.X[0]).To(BeNumerically("~", -root, 1e-6))
			Expect(res.X[1]).To(BeNumerically("~", root, 1e-6))
		},
		Entry("rk4 from the origin", integrators.NewRK4(), 0.0, 0.0),
		Entry("rk4 from (1, 1)", integrators.NewRK4(), 1.0, 1.0),
		Entry("euler from the origin", integrators.NewEuler(), 0.0, 0.0),
		Entry("rk45 from (1, 1)", integrators.NewRK45(), 1.0, 1.0),
	)

	It("takes large steps with the adaptive integrator", func() {
		opts := optim.DefaultOptions()
		opts.Dt = 1
		opts.Stepper = integrators.NewRK45()
		res, err := optim.NewGradientFlow(opts).Minimize(context.Background(), expQuad, []float64{1, 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Converged).To(BeTrue())
		Expect(res.Iterations).To(BeNumerically("<", 50))
		Expect(res.X[0]).To(BeNumerically("~", -root, 1e-6))

		opts.Stepper = integrators.NewRK4()
		_, err = optim.NewGradientFlow(opts).Minimize(context.Background(), expQuad, []float64{1, 1})
		Expect(err).To(MatchError(optim.ErrNonFinite))
	})

	It("rejects a start where the objective is not finite", func() {
		res, err := optim.NewGradientFlow(optim.DefaultOptions()).Minimize(context.Background(), blowUp, []float64{30})
		Expect(res).To(BeNil())
		Expect(err).To(MatchError(optim.ErrNonFinite))

		var iterErr *optim.IterationError
		Expect(errors.As(err, &iterErr)).To(BeTrue())
		Expect(iterErr.Iter).To(Equal(0))
		Expect(iterErr.X).To(Equal([]float64{30}))
	})

	It("reports an unstable step size", func() {
		opts := optim.DefaultOptions()
		opts.Dt = 10
		_, err := optim.NewGradientFlow(opts).Minimize(context.Background(), expQuad, []float64{1, 1})
		Expect(err).To(HaveOccurred())
	})
})
