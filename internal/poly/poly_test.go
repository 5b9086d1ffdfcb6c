package poly

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		coeffs []float64
	}{
		{"nil", nil},
		{"empty", []float64{}},
		{"NaN", []float64{1, math.NaN()}},
		{"+Inf", []float64{math.Inf(1), 1}},
		{"too long", make([]float64, MaxCoefficients+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.coeffs)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("New(%v) error = %v, want ErrInvalidInput", tt.coeffs, err)
			}
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	in := []float64{1, 2, 3}
	p, err := New(in)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	in[0] = 99
	if p.Coeffs()[0] != 1 {
		t.Error("polynomial aliases caller slice")
	}

	out := p.Coeffs()
	out[1] = 99
	if p.Coeffs()[1] != 2 {
		t.Error("Coeffs returned internal slice")
	}
}

func TestDegree(t *testing.T) {
	tests := []struct {
		p        Polynomial
		expected int
	}{
		{MustNew(5), 0},
		{MustNew(1, 1), 1},
		{MustNew(1, 0, 0, 0), 3},
	}

	for _, tt := range tests {
		if got := tt.p.Degree(); got != tt.expected {
			t.Errorf("Degree(%v) = %d, want %d", tt.p, got, tt.expected)
		}
	}
}

func TestEval_ConstantTermAtZero(t *testing.T) {
	polys := []Polynomial{
		MustNew(7),
		MustNew(1, -3),
		MustNew(2, 0.5, -1.25),
		MustNew(1, 4, 6, 4, 1),
	}

	for _, p := range polys {
		c := p.Coeffs()
		want := complex(c[len(c)-1], 0)
		if got := p.Eval(0); got != want {
			t.Errorf("%v at 0 = %v, want %v", p, got, want)
		}
	}
}

func TestEval_MatchesPowerForm(t *testing.T) {
	p := MustNew(3, -2, 0.5, 4, -1)
	points := []complex128{1i, 2 + 3i, -0.5 + 0.1i, 10i, complex(0, 1e3)}

	for _, z := range points {
		var want complex128
		deg := p.Degree()
		for j, c := range p.Coeffs() {
			want += complex(c, 0) * cmplx.Pow(z, complex(float64(deg-j), 0))
		}
		got := p.Eval(z)
		if cmplx.Abs(got-want) > 1e-9*math.Max(1, cmplx.Abs(want)) {
			t.Errorf("Eval(%v) = %v, want %v", z, got, want)
		}
	}
}

func TestEval_ImaginaryAxis(t *testing.T) {
	// s^2 + 1 vanishes at s = j
	p := MustNew(1, 0, 1)
	if got := p.Eval(1i); got != 0 {
		t.Errorf("expected exact zero at j, got %v", got)
	}
}

func TestTrim(t *testing.T) {
	tests := []struct {
		name     string
		in       Polynomial
		expected []float64
	}{
		{"no leading zeros", MustNew(1, 2), []float64{1, 2}},
		{"one leading zero", MustNew(0, 1, 2), []float64{1, 2}},
		{"several", MustNew(0, 0, 0, 3), []float64{3}},
		{"all zero", MustNew(0, 0, 0), []float64{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Trim().Coeffs()
			if len(got) != len(tt.expected) {
				t.Fatalf("Trim() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Trim() = %v, want %v", got, tt.expected)
				}
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	if !MustNew(0, 0).IsZero() {
		t.Error("expected zero polynomial")
	}
	if MustNew(0, 1e-300).IsZero() {
		t.Error("tiny coefficient is not zero")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		p        Polynomial
		expected string
	}{
		{MustNew(1, 2, 1), "s^2 + 2s + 1"},
		{MustNew(1, 0, -4), "s^2 - 4"},
		{MustNew(-1, 1), "-s + 1"},
		{MustNew(2.5), "2.5"},
		{MustNew(0, 0), "0"},
		{MustNew(1, 0), "s"},
	}

	for _, tt := range tests {
		if got := tt.p.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}
