package analysis

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/san-kum/bode/internal/poly"
	"github.com/san-kum/bode/internal/response"
	"github.com/san-kum/bode/internal/stability"
)

type Request struct {
	Name        string
	Numerator   []float64
	Denominator []float64
	Sweep       response.Sweep // zero value means response.DefaultSweep
	Unwrap      bool
}

type Result struct {
	Name        string
	Numerator   poly.Polynomial
	Denominator poly.Polynomial
	Sweep       response.Sweep
	Unwrap      bool
	Response    *response.Response
	Verdict     stability.Verdict
	Elapsed     time.Duration
}

// Error wraps a failure with the request and the stage that produced it.
type Error struct {
	Name    string
	Stage   string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s: %v", e.Name, e.Stage, e.Wrapped)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

func Run(req Request) (*Result, error) {
	start := time.Now()

	num, err := poly.New(req.Numerator)
	if err != nil {
		return nil, &Error{Name: req.Name, Stage: "numerator", Wrapped: err}
	}
	den, err := poly.New(req.Denominator)
	if err != nil {
		return nil, &Error{Name: req.Name, Stage: "denominator", Wrapped: err}
	}

	sw := req.Sweep
	if sw == (response.Sweep{}) {
		sw = response.DefaultSweep()
	}

	engine := response.NewEngine(sw)
	engine.Unwrap = req.Unwrap
	resp, err := engine.Compute(num, den)
	if err != nil {
		return nil, &Error{Name: req.Name, Stage: "response", Wrapped: err}
	}

	verdict, err := stability.Analyze(den)
	if err != nil {
		return nil, &Error{Name: req.Name, Stage: "stability", Wrapped: err}
	}

	res := &Result{
		Name:        req.Name,
		Numerator:   num,
		Denominator: den,
		Sweep:       sw,
		Unwrap:      req.Unwrap,
		Response:    resp,
		Verdict:     verdict,
		Elapsed:     time.Since(start),
	}

	ev := log.Debug().
		Str("name", req.Name).
		Str("numerator", num.String()).
		Str("denominator", den.String()).
		Int("samples", resp.Len()).
		Bool("stable", verdict.Stable).
		Dur("elapsed", res.Elapsed)
	if !resp.Finite() {
		ev = ev.Bool("non_finite", true)
	}
	ev.Msg("analysis complete")

	return res, nil
}
