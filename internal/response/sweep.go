package response

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidSweep = errors.New("response: invalid frequency sweep")

const (
	DefaultMin  = 1.0
	DefaultMax  = 1e5
	DefaultStep = 1.2

	// MaxSamples bounds the number of frequencies a sweep may produce.
	MaxSamples = 100000
)

// Sweep is a geometric frequency grid: Min, Min*Step, Min*Step^2, ... up to
// and including Max. Frequencies are angular (rad/s).
type Sweep struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Step float64 `json:"step" yaml:"step"`
}

func DefaultSweep() Sweep {
	return Sweep{Min: DefaultMin, Max: DefaultMax, Step: DefaultStep}
}

func (s Sweep) Validate() error {
	for _, v := range []float64{s.Min, s.Max, s.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite bound %v", ErrInvalidSweep, v)
		}
	}
	if s.Min <= 0 {
		return fmt.Errorf("%w: min %v must be positive", ErrInvalidSweep, s.Min)
	}
	if s.Max < s.Min {
		return fmt.Errorf("%w: max %v below min %v", ErrInvalidSweep, s.Max, s.Min)
	}
	if s.Step <= 1 {
		return fmt.Errorf("%w: step %v must be greater than 1", ErrInvalidSweep, s.Step)
	}
	if ratio := s.Max / s.Min; math.IsInf(ratio, 0) {
		return fmt.Errorf("%w: range %v..%v overflows", ErrInvalidSweep, s.Min, s.Max)
	}
	if n := s.count(); n > MaxSamples {
		return fmt.Errorf("%w: %.0f samples exceeds limit of %d", ErrInvalidSweep, n, MaxSamples)
	}
	return nil
}

// count is floor(log(Max/Min)/log(Step)) + 1 as a float, so oversized
// sweeps can be rejected before conversion. The small slack absorbs
// rounding when Max/Min is an exact power of Step.
func (s Sweep) count() float64 {
	return math.Floor(math.Log(s.Max/s.Min)/math.Log(s.Step)+1e-9) + 1
}

// Len is the number of samples, or 0 for an invalid sweep.
func (s Sweep) Len() int {
	if s.Validate() != nil {
		return 0
	}
	return int(s.count())
}

// Frequencies returns the sweep samples, strictly increasing, the first
// equal to Min and the last not above Max.
func (s Sweep) Frequencies() []float64 {
	n := s.Len()
	if n == 0 {
		return nil
	}
	w := make([]float64, n)
	for i := range w {
		w[i] = s.Min * math.Pow(s.Step, float64(i))
	}
	if w[n-1] > s.Max {
		w[n-1] = s.Max
	}
	return w
}
