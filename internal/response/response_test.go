package response

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/bode/internal/poly"
)

func TestDefaultSweep(t *testing.T) {
	sw := DefaultSweep()
	w := sw.Frequencies()

	expected := int(math.Floor(math.Log10(1e5)/math.Log10(1.2))) + 1
	if len(w) != expected {
		t.Fatalf("expected %d samples, got %d", expected, len(w))
	}
	if sw.Len() != len(w) {
		t.Errorf("Len() = %d, Frequencies() has %d", sw.Len(), len(w))
	}
	if w[0] != 1 {
		t.Errorf("first sample = %v, want 1", w[0])
	}
	if w[len(w)-1] > 1e5 {
		t.Errorf("last sample %v exceeds max", w[len(w)-1])
	}
	for i := 1; i < len(w); i++ {
		if w[i] <= w[i-1] {
			t.Fatalf("samples not strictly increasing at %d: %v <= %v", i, w[i], w[i-1])
		}
		if ratio := w[i] / w[i-1]; math.Abs(ratio-1.2) > 1e-9 {
			t.Fatalf("ratio at %d = %v, want 1.2", i, ratio)
		}
	}
}

func TestSweep_ExactPower(t *testing.T) {
	w := Sweep{Min: 1, Max: 8, Step: 2}.Frequencies()
	want := []float64{1, 2, 4, 8}
	if len(w) != len(want) {
		t.Fatalf("got %v, want %v", w, want)
	}
	for i := range want {
		if math.Abs(w[i]-want[i]) > 1e-12 {
			t.Errorf("w[%d] = %v, want %v", i, w[i], want[i])
		}
	}
}

func TestSweep_SinglePoint(t *testing.T) {
	w := Sweep{Min: 5, Max: 5, Step: 1.5}.Frequencies()
	if len(w) != 1 || w[0] != 5 {
		t.Errorf("expected [5], got %v", w)
	}
}

func TestSweep_SampleLimit(t *testing.T) {
	atLimit := Sweep{Min: 1, Max: 1e3, Step: math.Pow(1e3, 1.0/(MaxSamples-1))}
	if err := atLimit.Validate(); err != nil {
		t.Fatalf("sweep at the limit rejected: %v", err)
	}
	if n := atLimit.Len(); n < MaxSamples-1 || n > MaxSamples {
		t.Errorf("Len() = %d, want about %d", n, MaxSamples)
	}

	wide := Sweep{Min: 1e-300, Max: 1e300, Step: 2}
	if w := wide.Frequencies(); w != nil {
		t.Errorf("overflowing sweep produced %d samples", len(w))
	}
}

func TestSweep_Validate(t *testing.T) {
	tests := []struct {
		name string
		sw   Sweep
	}{
		{"zero min", Sweep{Min: 0, Max: 10, Step: 2}},
		{"negative min", Sweep{Min: -1, Max: 10, Step: 2}},
		{"max below min", Sweep{Min: 10, Max: 1, Step: 2}},
		{"step one", Sweep{Min: 1, Max: 10, Step: 1}},
		{"NaN", Sweep{Min: 1, Max: math.NaN(), Step: 2}},
		{"Inf", Sweep{Min: 1, Max: math.Inf(1), Step: 2}},
		{"range overflows", Sweep{Min: 1e-300, Max: 1e300, Step: 2}},
		{"too many samples", Sweep{Min: 1, Max: 10, Step: 1 + 1e-12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.sw.Validate(); !errors.Is(err, ErrInvalidSweep) {
				t.Errorf("expected ErrInvalidSweep, got %v", err)
			}
			if tt.sw.Len() != 0 {
				t.Errorf("invalid sweep should have no samples")
			}
			if _, err := NewEngine(tt.sw).Compute(poly.MustNew(1), poly.MustNew(1, 1)); !errors.Is(err, ErrInvalidSweep) {
				t.Errorf("Compute should reject sweep, got %v", err)
			}
		})
	}
}

func TestCompute_FirstOrderCorner(t *testing.T) {
	r, err := Compute(poly.MustNew(1), poly.MustNew(1, 1))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if r.Omega[0] != 1 {
		t.Fatalf("first frequency = %v", r.Omega[0])
	}

	wantMag := 20 * math.Log10(1/math.Sqrt2)
	if math.Abs(r.MagnitudeDB[0]-wantMag) > 1e-9 {
		t.Errorf("magnitude at 1 rad/s = %v, want %v", r.MagnitudeDB[0], wantMag)
	}
	if math.Abs(r.MagnitudeDB[0]+3.0103) > 1e-3 {
		t.Errorf("magnitude at corner should be about -3.01 dB, got %v", r.MagnitudeDB[0])
	}
	if math.Abs(r.PhaseDeg[0]+45) > 1e-9 {
		t.Errorf("phase at 1 rad/s = %v, want -45", r.PhaseDeg[0])
	}
}

func TestCompute_DCGain(t *testing.T) {
	// (s+2)/((s+1)(s+3))
	num := poly.MustNew(1, 2)
	den := poly.MustNew(1, 4, 3)

	r, err := NewEngine(Sweep{Min: 1e-5, Max: 1e-3, Step: 10}).Compute(num, den)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	want := 20 * math.Log10(2.0/3.0)
	if math.Abs(r.MagnitudeDB[0]-want) > 1e-6 {
		t.Errorf("low frequency magnitude = %v, want %v", r.MagnitudeDB[0], want)
	}
	if math.Abs(r.PhaseDeg[0]) > 1e-3 {
		t.Errorf("low frequency phase = %v, want ~0", r.PhaseDeg[0])
	}
}

func TestCompute_HighFrequencyRolloff(t *testing.T) {
	// second order low pass falls 40 dB per decade
	r, err := NewEngine(Sweep{Min: 1e3, Max: 1e4, Step: 10}).Compute(poly.MustNew(1), poly.MustNew(1, 1.4, 1))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if slope := r.MagnitudeDB[1] - r.MagnitudeDB[0]; math.Abs(slope+40) > 0.01 {
		t.Errorf("slope = %v dB/decade, want -40", slope)
	}
}

func TestCompute_ZeroDenominatorPropagates(t *testing.T) {
	// s^2 + 1 vanishes at the first sample
	r, err := NewEngine(Sweep{Min: 1, Max: 10, Step: 10}).Compute(poly.MustNew(1), poly.MustNew(1, 0, 1))
	if err != nil {
		t.Fatalf("Compute should not fail on a zero denominator: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 samples, got %d", r.Len())
	}
	if isFinite(r.MagnitudeDB[0]) {
		t.Errorf("expected non-finite magnitude, got %v", r.MagnitudeDB[0])
	}
	if !isFinite(r.MagnitudeDB[1]) {
		t.Errorf("second sample should be finite, got %v", r.MagnitudeDB[1])
	}
	if r.Finite() {
		t.Error("Finite() should report the bad sample")
	}
}

func TestCompute_PrincipalPhase(t *testing.T) {
	// (s+1)^3 rotates to -270 degrees
	r, err := Compute(poly.MustNew(1), poly.MustNew(1, 3, 3, 1))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	wrapped := false
	for i, p := range r.PhaseDeg {
		if p <= -180 || p > 180 {
			t.Errorf("phase[%d] = %v outside (-180, 180]", i, p)
		}
		if i > 0 && p-r.PhaseDeg[i-1] > 180 {
			wrapped = true
		}
	}
	if !wrapped {
		t.Error("expected a wrap discontinuity without unwrapping")
	}
}

func TestCompute_Unwrapped(t *testing.T) {
	e := NewEngine(DefaultSweep())
	e.Unwrap = true
	r, err := e.Compute(poly.MustNew(1), poly.MustNew(1, 3, 3, 1))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	for i := 1; i < r.Len(); i++ {
		if r.PhaseDeg[i] > r.PhaseDeg[i-1] {
			t.Fatalf("unwrapped phase should decrease, %v -> %v at %d", r.PhaseDeg[i-1], r.PhaseDeg[i], i)
		}
	}
	last := r.PhaseDeg[r.Len()-1]
	want := -3 * math.Atan(r.Omega[r.Len()-1]) * 180 / math.Pi
	if math.Abs(last-want) > 1e-6 {
		t.Errorf("final phase = %v, want %v", last, want)
	}
}

func TestUnwrapPhase(t *testing.T) {
	nan := math.NaN()
	got := UnwrapPhase([]float64{170, -170, nan, -150, 170})
	want := []float64{170, 190, nan, 210, 170}
	for i := range want {
		if math.IsNaN(want[i]) {
			if !math.IsNaN(got[i]) {
				t.Errorf("got[%d] = %v, want NaN", i, got[i])
			}
			continue
		}
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPhaseDeg_NegativeRealAxis(t *testing.T) {
	if got := PhaseDeg(complex(-1, math.Copysign(0, -1))); got != 180 {
		t.Errorf("PhaseDeg(-1-0i) = %v, want 180", got)
	}
	if got := PhaseDeg(complex(0, -1)); math.Abs(got+90) > 1e-12 {
		t.Errorf("PhaseDeg(-j) = %v, want -90", got)
	}
}

func TestPoints(t *testing.T) {
	r, err := Compute(poly.MustNew(1), poly.MustNew(1, 1))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	pts := r.Points()
	if len(pts) != r.Len() {
		t.Fatalf("expected %d points, got %d", r.Len(), len(pts))
	}
	if pts[3].Omega != r.Omega[3] || pts[3].Magnitude != r.MagnitudeDB[3] || pts[3].Phase != r.PhaseDeg[3] {
		t.Errorf("point 3 mismatch: %+v", pts[3])
	}
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		in       string
		expected Quantity
	}{
		{"mag", Magnitude},
		{"Magnitude", Magnitude},
		{" phase ", Phase},
		{"deg", Phase},
	}
	for _, tt := range tests {
		q, err := ParseQuantity(tt.in)
		if err != nil || q != tt.expected {
			t.Errorf("ParseQuantity(%q) = %v, %v", tt.in, q, err)
		}
	}
	if _, err := ParseQuantity("nyquist"); err == nil {
		t.Error("expected error for unknown quantity")
	}

	r := &Response{Omega: []float64{1}, MagnitudeDB: []float64{-3}, PhaseDeg: []float64{-45}}
	if r.Values(Magnitude)[0] != -3 || r.Values(Phase)[0] != -45 {
		t.Error("Values returned the wrong series")
	}
	if Phase.Label() != "Phase (deg)" || Magnitude.Label() != "Magnitude (dB)" {
		t.Error("unexpected labels")
	}
}
