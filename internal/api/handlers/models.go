package handlers

import (
	"time"

	"github.com/san-kum/bode/internal/export"
	"github.com/san-kum/bode/internal/response"
	"github.com/san-kum/bode/internal/storage"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

type PresetInfo struct {
	Name                 string    `json:"name" doc:"Preset name"`
	Numerator            []float64 `json:"numerator" doc:"Numerator coefficients, highest power first"`
	Denominator          []float64 `json:"denominator" doc:"Denominator coefficients, highest power first"`
	Transfer             string    `json:"transfer" doc:"Transfer function in s"`
	UnwrapPhase          bool      `json:"unwrap_phase" doc:"Whether the preset unwraps phase"`
	AllowZeroDenominator bool      `json:"allow_zero_denominator" doc:"Whether zero denominator coefficients are accepted"`
}

type ListPresetsResponse struct {
	Body struct {
		Presets []PresetInfo `json:"presets" doc:"Available presets sorted by name"`
	}
}

// BodeRequest carries a transfer function to analyse. Coefficient lists are
// validated by the handler so malformed input maps to 400.
type BodeRequest struct {
	Body struct {
		Name        string          `json:"name,omitempty" maxLength:"64" doc:"Optional label for the system"`
		Numerator   []float64       `json:"numerator,omitempty" doc:"Numerator coefficients, highest power first, at most 101"`
		Denominator []float64       `json:"denominator,omitempty" doc:"Denominator coefficients, highest power first, at most 101"`
		Sweep       *response.Sweep `json:"sweep,omitempty" doc:"Frequency sweep, defaults to 1..1e5 rad/s with ratio 1.2"`
		Unwrap      bool            `json:"unwrap,omitempty" doc:"Unwrap phase across samples"`
		Save        bool            `json:"save,omitempty" doc:"Persist the result when the server has a data directory"`
	}
}

type BodeResponse struct {
	Body struct {
		ID string `json:"id,omitempty" doc:"Run identifier when saved"`
		export.Document
	}
}

type ListRunsResponse struct {
	Body struct {
		Runs []storage.RunMetadata `json:"runs" doc:"Saved runs, oldest first"`
	}
}

type GetRunRequest struct {
	ID string `path:"id" pattern:"^tf_[0-9a-f]{8}$" doc:"Run identifier"`
}

type GetRunResponse struct {
	Body struct {
		Run    storage.RunMetadata `json:"run" doc:"Run metadata"`
		Points []export.Point      `json:"points" doc:"Frequency response samples, non-finite values as null"`
	}
}
