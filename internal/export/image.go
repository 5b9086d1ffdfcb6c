package export

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/bode/internal/response"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	ErrUnsupportedFormat = errors.New("export: unsupported file format")
	ErrNoData            = errors.New("export: no finite samples to plot")
)

var curveColor = map[response.Quantity]color.Color{
	response.Magnitude: color.RGBA{R: 0x1f, G: 0x4e, B: 0xd8, A: 0xff},
	response.Phase:     color.RGBA{R: 0xd8, G: 0x3a, B: 0x1f, A: 0xff},
}

// Segments splits a curve at non-finite samples so each piece can be drawn
// as one polyline.
func Segments(omega, vals []float64) []plotter.XYs {
	var segs []plotter.XYs
	var cur plotter.XYs
	for i := range omega {
		v := vals[i]
		if math.IsNaN(v) || math.IsInf(v, 0) || omega[i] <= 0 {
			if len(cur) > 0 {
				segs = append(segs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: omega[i], Y: v})
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	return segs
}

// NewPlot draws one Bode curve against a logarithmic frequency axis.
func NewPlot(resp *response.Response, q response.Quantity, title string) (*plot.Plot, error) {
	segs := Segments(resp.Omega, resp.Values(q))
	if len(segs) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Frequency (rad/s)"
	p.Y.Label.Text = q.Label()
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{Y: 200}
	grid.Horizontal.Color = color.Gray{Y: 200}
	p.Add(grid)

	for _, seg := range segs {
		line, err := plotter.NewLine(seg)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = curveColor[q]
		p.Add(line)
	}

	if q == response.Phase {
		p.Y.Min = math.Min(p.Y.Min, -180)
		p.Y.Max = math.Max(p.Y.Max, 180)
	}
	return p, nil
}

func format(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".svg":
		return ext[1:], true
	}
	return "", false
}

// SaveImage renders one curve to path. The extension picks the format:
// .jpg, .jpeg, .png or .svg. Width and height are in inches.
func SaveImage(resp *response.Response, q response.Quantity, path string, width, height float64) error {
	ext, ok := format(path)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	p, err := NewPlot(resp, q, "Bode Plot")
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, ext)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
