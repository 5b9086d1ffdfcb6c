package stability_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bode/internal/poly"
	"github.com/san-kum/bode/internal/roots"
	"github.com/san-kum/bode/internal/stability"
)

// fromRoots expands prod (s - r) for real roots and conjugate pairs given as
// complex numbers with positive imaginary part.
func fromRoots(reals []float64, pairs []complex128) poly.Polynomial {
	c := []float64{1}
	mul := func(f []float64) {
		out := make([]float64, len(c)+len(f)-1)
		for i, a := range c {
			for j, b := range f {
				out[i+j] += a * b
			}
		}
		c = out
	}
	for _, r := range reals {
		mul([]float64{1, -r})
	}
	for _, p := range pairs {
		re, im := real(p), imag(p)
		mul([]float64{1, -2 * re, re*re + im*im})
	}
	return poly.MustNew(c...)
}

var _ = Describe("Analyze", func() {
	DescribeTable("left half plane denominators are stable",
		func(den poly.Polynomial) {
			ok, err := stability.IsStable(den)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		},
		Entry("s+1", poly.MustNew(1, 1)),
		Entry("(s+1)(s+3)", poly.MustNew(1, 4, 3)),
		Entry("underdamped pair", poly.MustNew(1, 0.2, 1)),
		Entry("third order", fromRoots([]float64{-0.5}, []complex128{-0.1 + 10i})),
		Entry("close to the axis", fromRoots([]float64{-1e-3, -2}, nil)),
		Entry("negative leading coefficient", poly.MustNew(-1, -2, -1)),
	)

	DescribeTable("denominators with a root at or right of the axis are unstable",
		func(den poly.Polynomial) {
			ok, err := stability.IsStable(den)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		},
		Entry("pole at origin", poly.MustNew(1, 0)),
		Entry("pure oscillator", poly.MustNew(1, 0, 1)),
		Entry("s-1", poly.MustNew(1, -1)),
		Entry("one bad pole among good ones", fromRoots([]float64{-1, -2, 0.5}, nil)),
		Entry("right half plane pair", fromRoots(nil, []complex128{0.3 + 2i})),
		Entry("(s+10)(s^2+100)", poly.MustNew(1, 10, 100, 1000)),
		Entry("(s+1)^2(s^2+4)", poly.MustNew(1, 2, 5, 8, 4)),
		Entry("repeated axis pair (s^2+1)^2", poly.MustNew(1, 0, 2, 0, 1)),
		Entry("axis pair with a stable pole, negative lead", poly.MustNew(-1, -10, -100, -1000)),
	)

	It("lists a marginal pole as unstable", func() {
		v, err := stability.Analyze(poly.MustNew(1, 10, 100, 1000))
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Stable).To(BeFalse())
		Expect(v.Roots).To(HaveLen(3))
		Expect(v.Unstable).NotTo(BeEmpty())
		for _, r := range v.Unstable {
			Expect(real(r)).To(BeNumerically("~", 0, 1e-6))
		}
	})

	It("surfaces root finding failures", func() {
		_, err := stability.Analyze(poly.MustNew(1e-300, 1e300))
		Expect(err).To(MatchError(roots.ErrNumericalFailure))
	})

	It("treats a constant denominator as vacuously stable", func() {
		v, err := stability.Analyze(poly.MustNew(1))
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Stable).To(BeTrue())
		Expect(v.Roots).To(BeEmpty())
		Expect(v.Message()).To(Equal("The transfer function is stable."))
	})

	It("reports the offending roots", func() {
		v, err := stability.Analyze(fromRoots([]float64{-2, 3}, nil))
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Stable).To(BeFalse())
		Expect(v.Roots).To(HaveLen(2))
		Expect(v.Unstable).To(HaveLen(1))
		Expect(real(v.Unstable[0])).To(BeNumerically("~", 3, 1e-9))
		Expect(v.Message()).To(Equal("The transfer function is unstable."))
	})

	It("ignores leading zero coefficients", func() {
		ok, err := stability.IsStable(poly.MustNew(0, 1, 2))
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
	})

	It("rejects the zero polynomial", func() {
		_, err := stability.Analyze(poly.MustNew(0, 0, 0))
		Expect(err).To(MatchError(poly.ErrInvalidInput))
	})

	DescribeTable("Hurwitz",
		func(den poly.Polynomial, want bool) {
			Expect(stability.Hurwitz(den)).To(Equal(want))
		},
		Entry("constant", poly.MustNew(5), true),
		Entry("s+1", poly.MustNew(1, 1), true),
		Entry("cubic with left roots", poly.MustNew(1, 6, 11, 6), true),
		Entry("leading zeros", poly.MustNew(0, 1, 4, 3), true),
		Entry("missing term", poly.MustNew(1, 0, 3), false),
		Entry("sign change", poly.MustNew(1, 1, -2), false),
		Entry("all positive but unstable", poly.MustNew(1, 1, 4, 30), false),
		Entry("zero polynomial", poly.MustNew(0, 0), false),
	)

	It("flags roots near the axis relative to their size", func() {
		Expect(stability.OnOrRightOfAxis(complex(-1e-12, 10))).To(BeTrue())
		Expect(stability.OnOrRightOfAxis(complex(0, 0))).To(BeTrue())
		Expect(stability.OnOrRightOfAxis(complex(-1e-3, 0))).To(BeFalse())
		Expect(stability.OnOrRightOfAxis(complex(-1e-6, 1e6))).To(BeTrue())
	})
})
