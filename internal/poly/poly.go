package poly

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxCoefficients bounds the length of a coefficient sequence. Root finding
// builds a dense square matrix of the degree.
const MaxCoefficients = 101

// Polynomial is a real-coefficient polynomial in s, highest power first.
// The zero value is not usable; construct with New.
type Polynomial struct {
	c []float64
}

func New(coeffs []float64) (Polynomial, error) {
	if len(coeffs) == 0 {
		return Polynomial{}, fmt.Errorf("%w: empty coefficient sequence", ErrInvalidInput)
	}
	if len(coeffs) > MaxCoefficients {
		return Polynomial{}, fmt.Errorf("%w: %d coefficients exceeds limit of %d", ErrInvalidInput, len(coeffs), MaxCoefficients)
	}
	for i, v := range coeffs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Polynomial{}, fmt.Errorf("%w: coefficient %d is %v", ErrInvalidInput, i, v)
		}
	}
	c := make([]float64, len(coeffs))
	copy(c, coeffs)
	return Polynomial{c: c}, nil
}

// MustNew is New for literals known to be valid.
func MustNew(coeffs ...float64) Polynomial {
	p, err := New(coeffs)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Polynomial) Degree() int {
	return len(p.c) - 1
}

func (p Polynomial) Coeffs() []float64 {
	c := make([]float64, len(p.c))
	copy(c, p.c)
	return c
}

// Lead returns the coefficient of the highest power.
func (p Polynomial) Lead() float64 {
	if len(p.c) == 0 {
		return 0
	}
	return p.c[0]
}

// Eval returns p(z) using Horner's rule.
func (p Polynomial) Eval(z complex128) complex128 {
	var acc complex128
	for _, c := range p.c {
		acc = acc*z + complex(c, 0)
	}
	return acc
}

func (p Polynomial) IsZero() bool {
	for _, c := range p.c {
		if c != 0 {
			return false
		}
	}
	return true
}

// Trim drops leading zero coefficients. At least one coefficient is kept,
// so an all-zero polynomial trims to the constant 0.
func (p Polynomial) Trim() Polynomial {
	i := 0
	for i < len(p.c)-1 && p.c[i] == 0 {
		i++
	}
	if i == 0 {
		return p
	}
	c := make([]float64, len(p.c)-i)
	copy(c, p.c[i:])
	return Polynomial{c: c}
}

func (p Polynomial) String() string {
	if len(p.c) == 0 {
		return "0"
	}

	var b strings.Builder
	deg := p.Degree()
	for i, c := range p.c {
		if c == 0 {
			continue
		}
		pow := deg - i

		if b.Len() > 0 {
			if c < 0 {
				b.WriteString(" - ")
			} else {
				b.WriteString(" + ")
			}
			c = math.Abs(c)
		} else if c < 0 {
			b.WriteString("-")
			c = -c
		}

		if c != 1 || pow == 0 {
			b.WriteString(strconv.FormatFloat(c, 'g', -1, 64))
		}
		switch {
		case pow == 1:
			b.WriteString("s")
		case pow > 1:
			fmt.Fprintf(&b, "s^%d", pow)
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}
