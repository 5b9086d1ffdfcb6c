// Package response evaluates the frequency response H(jω) = N(jω)/D(jω) of a
// rational transfer function over a logarithmic sweep.
//
// Magnitudes are in dB (20·log10|H|) and phases in degrees, principal value
// in (-180, 180]. A denominator that vanishes at a sampled frequency yields
// IEEE-754 infinities or NaNs in the output rather than an error; callers
// that plot the result must tolerate non-finite samples.
package response

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/bode/internal/poly"
)

// Point is one sample of a response.
type Point struct {
	Omega     float64 `json:"omega" doc:"Angular frequency in rad/s"`
	Magnitude float64 `json:"magnitude" doc:"Magnitude in dB"`
	Phase     float64 `json:"phase" doc:"Phase in degrees"`
}

// Response holds three parallel sequences of equal length.
type Response struct {
	Omega       []float64
	MagnitudeDB []float64
	PhaseDeg    []float64
}

func (r *Response) Len() int {
	return len(r.Omega)
}

func (r *Response) At(i int) Point {
	return Point{Omega: r.Omega[i], Magnitude: r.MagnitudeDB[i], Phase: r.PhaseDeg[i]}
}

func (r *Response) Points() []Point {
	pts := make([]Point, r.Len())
	for i := range pts {
		pts[i] = r.At(i)
	}
	return pts
}

// Finite reports whether every magnitude and phase sample is finite.
func (r *Response) Finite() bool {
	for i := range r.Omega {
		if !isFinite(r.MagnitudeDB[i]) || !isFinite(r.PhaseDeg[i]) {
			return false
		}
	}
	return true
}

// Sample returns H(jω).
func Sample(num, den poly.Polynomial, omega float64) complex128 {
	jw := complex(0, omega)
	return num.Eval(jw) / den.Eval(jw)
}

func MagnitudeDB(h complex128) float64 {
	return 20 * math.Log10(cmplx.Abs(h))
}

// PhaseDeg returns arg(h) in degrees, mapping -180 to 180.
func PhaseDeg(h complex128) float64 {
	deg := math.Atan2(imag(h), real(h)) * 180 / math.Pi
	if deg == -180 {
		deg = 180
	}
	return deg
}

// Engine computes responses over a fixed sweep.
type Engine struct {
	Sweep  Sweep
	Unwrap bool // unwrap phase across samples instead of the principal value
}

func NewEngine(sw Sweep) *Engine {
	return &Engine{Sweep: sw}
}

func (e *Engine) Compute(num, den poly.Polynomial) (*Response, error) {
	if err := e.Sweep.Validate(); err != nil {
		return nil, err
	}

	omega := e.Sweep.Frequencies()
	r := &Response{
		Omega:       omega,
		MagnitudeDB: make([]float64, len(omega)),
		PhaseDeg:    make([]float64, len(omega)),
	}
	for i, w := range omega {
		h := Sample(num, den, w)
		r.MagnitudeDB[i] = MagnitudeDB(h)
		r.PhaseDeg[i] = PhaseDeg(h)
	}

	if e.Unwrap {
		r.PhaseDeg = UnwrapPhase(r.PhaseDeg)
	}
	return r, nil
}

// Compute evaluates num/den over the default sweep.
func Compute(num, den poly.Polynomial) (*Response, error) {
	return NewEngine(DefaultSweep()).Compute(num, den)
}

// UnwrapPhase removes ±360° jumps between consecutive finite samples.
// Non-finite samples are copied through and leave the offset untouched.
func UnwrapPhase(deg []float64) []float64 {
	out := make([]float64, len(deg))
	offset := 0.0
	prev := 0.0
	havePrev := false

	for i, p := range deg {
		if !isFinite(p) {
			out[i] = p
			continue
		}
		v := p + offset
		if havePrev {
			for v-prev > 180 {
				offset -= 360
				v -= 360
			}
			for v-prev < -180 {
				offset += 360
				v += 360
			}
		}
		out[i] = v
		prev = v
		havePrev = true
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
