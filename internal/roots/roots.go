// Package roots finds the complex roots of real polynomials as the
// eigenvalues of their companion matrix.
package roots

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"slices"

	"github.com/san-kum/bode/internal/poly"
	"gonum.org/v1/gonum/mat"
)

// ErrNumericalFailure is returned when the eigenvalue computation does not
// converge or yields non-finite values.
var ErrNumericalFailure = errors.New("roots: eigenvalue computation failed")

// Companion returns the companion matrix of p after leading zeros are
// removed. Its first row holds -c[1..n]/c[0] and the sub-diagonal is ones,
// so its characteristic polynomial is p/c[0].
func Companion(p poly.Polynomial) (*mat.Dense, error) {
	p = p.Trim()
	if p.IsZero() {
		return nil, fmt.Errorf("%w: zero polynomial has no defined roots", poly.ErrInvalidInput)
	}
	n := p.Degree()
	if n < 1 {
		return nil, fmt.Errorf("%w: constant polynomial has no companion matrix", poly.ErrInvalidInput)
	}

	c := p.Coeffs()
	m := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		v := -c[j+1] / c[0]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: companion entry %d overflows", ErrNumericalFailure, j)
		}
		m.Set(0, j, v)
	}
	for i := 1; i < n; i++ {
		m.Set(i, i-1, 1)
	}
	return m, nil
}

// Find returns all roots of p counted with multiplicity, sorted by real then
// imaginary part. Leading zero coefficients are dropped first; a constant
// polynomial has no roots.
func Find(p poly.Polynomial) ([]complex128, error) {
	p = p.Trim()
	if p.IsZero() {
		return nil, fmt.Errorf("%w: zero polynomial has no defined roots", poly.ErrInvalidInput)
	}

	var rs []complex128
	switch p.Degree() {
	case 0:
		return nil, nil
	case 1:
		c := p.Coeffs()
		rs = []complex128{complex(-c[1]/c[0], 0)}
	default:
		m, err := Companion(p)
		if err != nil {
			return nil, err
		}
		var eig mat.Eigen
		if ok := eig.Factorize(m, mat.EigenNone); !ok {
			return nil, fmt.Errorf("%w: degree %d", ErrNumericalFailure, p.Degree())
		}
		rs = eig.Values(nil)
	}

	for _, r := range rs {
		if cmplx.IsNaN(r) || cmplx.IsInf(r) {
			return nil, fmt.Errorf("%w: non-finite root %v", ErrNumericalFailure, r)
		}
	}

	Sort(rs)
	return rs, nil
}

// Sort orders roots by real part, then imaginary part.
func Sort(rs []complex128) {
	slices.SortFunc(rs, func(a, b complex128) int {
		if c := cmp.Compare(real(a), real(b)); c != 0 {
			return c
		}
		return cmp.Compare(imag(a), imag(b))
	})
}

// Residual returns max |p(r)| over rs, scaled by the largest coefficient
// magnitude. Useful to check a root set against its polynomial.
func Residual(p poly.Polynomial, rs []complex128) float64 {
	scale := 0.0
	for _, c := range p.Coeffs() {
		scale = math.Max(scale, math.Abs(c))
	}
	if scale == 0 {
		scale = 1
	}
	worst := 0.0
	for _, r := range rs {
		worst = math.Max(worst, cmplx.Abs(p.Eval(r))/scale)
	}
	return worst
}
