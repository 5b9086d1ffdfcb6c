package export

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/san-kum/bode/internal/analysis"
	"github.com/san-kum/bode/internal/response"
)

type Root struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

func Roots(rs []complex128) []Root {
	out := make([]Root, len(rs))
	for i, r := range rs {
		out[i] = Root{Re: real(r), Im: imag(r)}
	}
	return out
}

func (r Root) Complex() complex128 {
	return complex(r.Re, r.Im)
}

// Point is a response sample safe for JSON: non-finite values become null.
type Point struct {
	Omega     float64  `json:"omega"`
	Magnitude *float64 `json:"magnitude"`
	Phase     *float64 `json:"phase"`
}

func Points(resp *response.Response) []Point {
	pts := make([]Point, resp.Len())
	for i := range pts {
		pts[i] = Point{
			Omega:     resp.Omega[i],
			Magnitude: finite(resp.MagnitudeDB[i]),
			Phase:     finite(resp.PhaseDeg[i]),
		}
	}
	return pts
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

type Document struct {
	Name        string         `json:"name,omitempty"`
	Numerator   []float64      `json:"numerator"`
	Denominator []float64      `json:"denominator"`
	Transfer    string         `json:"transfer"`
	Sweep       response.Sweep `json:"sweep"`
	Unwrap      bool           `json:"unwrap"`
	Stable      bool           `json:"stable"`
	Status      string         `json:"status"`
	Roots       []Root         `json:"roots"`
	Samples     int            `json:"samples"`
	Points      []Point        `json:"points"`
}

func NewDocument(res *analysis.Result) Document {
	return Document{
		Name:        res.Name,
		Numerator:   res.Numerator.Coeffs(),
		Denominator: res.Denominator.Coeffs(),
		Transfer:    "(" + res.Numerator.String() + ") / (" + res.Denominator.String() + ")",
		Sweep:       res.Sweep,
		Unwrap:      res.Unwrap,
		Stable:      res.Verdict.Stable,
		Status:      res.Verdict.Message(),
		Roots:       Roots(res.Verdict.Roots),
		Samples:     res.Response.Len(),
		Points:      Points(res.Response),
	}
}

func JSON(w io.Writer, res *analysis.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(res))
}

func JSONFile(path string, res *analysis.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return JSON(file, res)
}
