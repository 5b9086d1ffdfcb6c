package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bode/internal/response"
)

const (
	minWidth  = 10
	minHeight = 3
)

// finiteSeries drops NaN and Inf samples and reports how many were removed.
func finiteSeries(vals []float64) ([]float64, int) {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out, len(vals) - len(out)
}

func Caption(resp *response.Response, q response.Quantity) string {
	if resp.Len() == 0 {
		return q.Label()
	}
	return fmt.Sprintf("%s vs frequency, %g to %g rad/s (log spaced)",
		q.Label(), resp.Omega[0], resp.Omega[resp.Len()-1])
}

// ASCII draws one curve of resp. The x axis is the sample index, which is
// logarithmic in frequency because sweeps are geometric.
func ASCII(resp *response.Response, q response.Quantity, width, height int) string {
	data, dropped := finiteSeries(resp.Values(q))
	if len(data) == 0 {
		return Subtle().Render("no finite samples to plot")
	}

	width = max(width, minWidth)
	height = max(height, minHeight)

	caption := Caption(resp, q)
	if dropped > 0 {
		caption += fmt.Sprintf(", %d non-finite skipped", dropped)
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	)
}

// Sparkline compresses vals to width cells. Non-finite samples render as
// blanks.
func Sparkline(vals []float64, width int) string {
	if len(vals) == 0 || width <= 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	finite, _ := finiteSeries(vals)
	if len(finite) == 0 {
		return ""
	}
	lo, hi := finite[0], finite[0]
	for _, v := range finite {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := max(len(vals)/width, 1)

	out := make([]rune, 0, width)
	for i := 0; i < width && i*step < len(vals); i++ {
		v := vals[i*step]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out = append(out, ' ')
			continue
		}
		idx := int((v - lo) / rng * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		out = append(out, chars[idx])
	}
	return string(out)
}
