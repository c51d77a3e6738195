package dual_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dualdiff/internal/dual"
)

var _ = Describe("Number", func() {
	samples := []dual.Number{
		dual.New(2),
		dual.NewWithDerivative(-3.5, 0.25),
		dual.NewWithDerivative(0.1, -2),
		dual.Const(7),
	}

	Describe("algebraic properties", func() {
		It("adds commutatively in value and derivative", func() {
			for _, a := range samples {
				for _, b := range samples {
					Expect(a.Add(b).Equal(b.Add(a))).To(BeTrue(), "a=%v b=%v", a, b)
				}
			}
		})

		It("multiplies commutatively by a raw scalar", func() {
			for _, a := range samples {
				Expect(a.Mul(dual.Scalar(3)).Equal(a.RMul(dual.Scalar(3)))).To(BeTrue())
			}
		})

		It("cancels itself under subtraction", func() {
			for _, a := range samples {
				Expect(a.Sub(a).Equal(dual.NewWithDerivative(0, 0))).To(BeTrue())
			}
		})

		It("recovers the numerator value from (a/b)*b", func() {
			for _, a := range samples {
				for _, b := range samples {
					q, err := a.Div(b)
					Expect(err).NotTo(HaveOccurred())
					Expect(q.Mul(b).Value().Item()).To(BeNumerically("~", a.Value().Item(), 1e-12))
				}
			}
		})

		It("matches sqrt with pow(0.5) for positive values", func() {
			for _, v := range []float64{0.01, 0.5, 3, 1e4} {
				n := dual.NewWithDerivative(v, 2)
				Expect(n.Sqrt().Equal(n.Pow(0.5))).To(BeTrue())
			}
		})
	})

	DescribeTable("division by zero",
		func(divisor dual.Operand) {
			_, err := dual.New(3).Div(divisor)
			Expect(err).To(MatchError(dual.ErrDivisionByZero))
		},
		Entry("raw zero", dual.Scalar(0)),
		Entry("zero-valued number", dual.NewWithDerivative(0, 1)),
		Entry("zero-valued constant", dual.Const(0)),
	)

	DescribeTable("reflected power",
		func(base float64, exponent dual.Number, expected error) {
			_, err := exponent.RPow(base)
			Expect(err).To(MatchError(expected))
		},
		Entry("0 ** -1", 0.0, dual.NewWithDerivative(-1, 1), dual.ErrDivisionByZero),
		Entry("(-2) ** 0.5", -2.0, dual.New(0.5), dual.ErrDomain),
		Entry("(-2) ** 3", -2.0, dual.New(3), dual.ErrDomain),
	)

	DescribeTable("logarithm domain",
		func(fn func() (dual.Number, error)) {
			_, err := fn()
			Expect(err).To(MatchError(dual.ErrDomain))
		},
		Entry("negative base", func() (dual.Number, error) { return dual.New(2).LogBase(-1) }),
		Entry("negative value", func() (dual.Number, error) { return dual.New(-1).Log() }),
		Entry("zero value", func() (dual.Number, error) { return dual.New(0).Log() }),
	)

	Describe("tan", func() {
		It("fails at pi/2", func() {
			_, err := dual.New(math.Pi / 2).Tan()
			Expect(err).To(MatchError(dual.ErrDomain))
		})

		It("has value 1 and derivative 2 at pi/4", func() {
			got, err := dual.New(math.Pi / 4).Tan()
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Value().Item()).To(BeNumerically("~", 1, 1e-12))
			Expect(got.Derivative().Item()).To(BeNumerically("~", 2, 1e-12))
		})
	})

	Describe("vector packing", func() {
		It("stacks values and derivatives", func() {
			packed, err := dual.Pack(dual.NewWithDerivative(1, 1), dual.NewWithDerivative(2, 0))
			Expect(err).NotTo(HaveOccurred())
			Expect(packed.Value()).To(Equal(dual.Array{1, 2}))
			Expect(packed.Derivative()).To(Equal(dual.Array{1, 0}))
		})
	})

	Describe("seeded partial derivatives", func() {
		// f(x,y) = e^(x+1) + e^(-y+1) + (x-y)^2
		f := func(x, y dual.Number) dual.Number {
			d := x.Sub(y)
			return x.Add(dual.Scalar(1)).Exp().
				Add(y.Neg().Add(dual.Scalar(1)).Exp()).
				Add(d.Mul(d))
		}
		const root = 0.4383784163099828

		It("vanishes at the stationary point", func() {
			dx := f(dual.New(-root), dual.Const(root)).Derivative().Item()
			dy := f(dual.Const(-root), dual.New(root)).Derivative().Item()
			Expect(dx).To(BeNumerically("~", 0, 1e-9))
			Expect(dy).To(BeNumerically("~", 0, 1e-9))
		})

		It("matches the analytic gradient elsewhere", func() {
			x, y := 0.7, -0.2
			dx := f(dual.New(x), dual.Const(y)).Derivative().Item()
			dy := f(dual.Const(x), dual.New(y)).Derivative().Item()
			Expect(dx).To(BeNumerically("~", math.Exp(x+1)+2*(x-y), 1e-12))
			Expect(dy).To(BeNumerically("~", -math.Exp(1-y)-2*(x-y), 1e-12))
		})
	})
})
