// Package stability decides BIBO stability of a transfer function from the
// roots of its denominator.
//
// A system is stable only when every pole lies strictly in the left half
// plane. Poles on the imaginary axis (marginal stability) count as unstable.
// A constant denominator has no poles and is stable.
//
//	v, err := stability.Analyze(poly.MustNew(1, 3, 2))
//	if err == nil && v.Stable {
//	    // all poles have negative real part
//	}
package stability

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/bode/internal/poly"
	"github.com/san-kum/bode/internal/roots"
)

const (
	// AxisTolerance is the relative distance from the imaginary axis under
	// which a computed root counts as lying on it.
	AxisTolerance = 1e-9

	// cancelTolerance marks a Routh entry as zero when its two products
	// cancel to within this relative amount.
	cancelTolerance = 1e-12
)

// Verdict is the outcome of a stability check.
type Verdict struct {
	Stable   bool
	Roots    []complex128
	Unstable []complex128 // roots on or right of the imaginary axis
}

func (v Verdict) Message() string {
	if v.Stable {
		return "The transfer function is stable."
	}
	return "The transfer function is unstable."
}

// Analyze decides stability with the Routh-Hurwitz test on the exact
// coefficients and reports the eigenvalue roots. Roots within AxisTolerance
// of the imaginary axis count as unstable, since the solver can place an
// axis pole a rounding error to its left.
func Analyze(den poly.Polynomial) (Verdict, error) {
	rs, err := roots.Find(den)
	if err != nil {
		return Verdict{}, err
	}

	v := Verdict{Stable: true, Roots: rs}
	for _, r := range rs {
		if OnOrRightOfAxis(r) {
			v.Stable = false
			v.Unstable = append(v.Unstable, r)
		}
	}

	if !Hurwitz(den) {
		v.Stable = false
		if len(v.Unstable) == 0 && len(rs) > 0 {
			// roots are sorted by real part; the last one is closest to the axis
			v.Unstable = append(v.Unstable, rs[len(rs)-1])
		}
	}
	return v, nil
}

// OnOrRightOfAxis reports whether r has real part >= 0, treating real parts
// within AxisTolerance*max(1, |r|) of zero as on the axis.
func OnOrRightOfAxis(r complex128) bool {
	return real(r) >= -AxisTolerance*math.Max(1, cmplx.Abs(r))
}

// Hurwitz reports whether every root of p lies strictly in the left half
// plane, using the first column of the Routh array. A zero anywhere in that
// column means a root on or right of the axis. Leading zeros are ignored
// and a constant polynomial passes.
func Hurwitz(p poly.Polynomial) bool {
	p = p.Trim()
	if p.IsZero() {
		return false
	}
	c := p.Coeffs()
	if c[0] < 0 {
		for i := range c {
			c[i] = -c[i]
		}
	}
	n := len(c) - 1
	if n == 0 {
		return true
	}

	width := n/2 + 1
	prev := make([]float64, width)
	cur := make([]float64, width)
	for i, v := range c {
		if i%2 == 0 {
			prev[i/2] = v
		} else {
			cur[i/2] = v
		}
	}

	for k := 1; k <= n; k++ {
		if cur[0] <= 0 {
			return false
		}
		next := make([]float64, width)
		for j := 0; j+1 < width; j++ {
			a := cur[0] * prev[j+1]
			b := prev[0] * cur[j+1]
			d := a - b
			if math.Abs(d) <= cancelTolerance*(math.Abs(a)+math.Abs(b)) {
				d = 0
			}
			next[j] = d / cur[0]
		}
		prev, cur = cur, next
	}
	return true
}

func IsStable(den poly.Polynomial) (bool, error) {
	v, err := Analyze(den)
	if err != nil {
		return false, err
	}
	return v.Stable, nil
}
