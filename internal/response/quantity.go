package response

import (
	"fmt"
	"strings"
)

// Quantity selects one of the two curves of a Bode plot.
type Quantity int

const (
	Magnitude Quantity = iota
	Phase
)

func ParseQuantity(s string) (Quantity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mag", "magnitude", "amplitude", "db":
		return Magnitude, nil
	case "phase", "deg":
		return Phase, nil
	}
	return 0, fmt.Errorf("unknown quantity %q (want magnitude or phase)", s)
}

func (q Quantity) String() string {
	if q == Phase {
		return "phase"
	}
	return "magnitude"
}

// Label is the axis label used when plotting q.
func (q Quantity) Label() string {
	if q == Phase {
		return "Phase (deg)"
	}
	return "Magnitude (dB)"
}

// Values returns the slice holding q. The slice is shared with r.
func (r *Response) Values(q Quantity) []float64 {
	if q == Phase {
		return r.PhaseDeg
	}
	return r.MagnitudeDB
}
