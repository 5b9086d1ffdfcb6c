package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"
	"github.com/san-kum/bode/internal/analysis"
	"github.com/san-kum/bode/internal/config"
	"github.com/san-kum/bode/internal/export"
	"github.com/san-kum/bode/internal/poly"
	"github.com/san-kum/bode/internal/response"
	"github.com/san-kum/bode/internal/roots"
	"github.com/san-kum/bode/internal/storage"
)

const Version = "1.0.0"

// BodeHandler serves frequency response requests. store may be nil, in
// which case nothing is persisted and the run endpoints report 404.
type BodeHandler struct {
	store *storage.Store
}

func NewBodeHandler(store *storage.Store) *BodeHandler {
	return &BodeHandler{store: store}
}

func (h *BodeHandler) Health(ctx context.Context, input *struct{}) (*HealthResponse, error) {
	resp := &HealthResponse{}
	resp.Body.Status = "healthy"
	resp.Body.Version = Version
	resp.Body.Time = time.Now()
	return resp, nil
}

func (h *BodeHandler) ListPresets(ctx context.Context, input *struct{}) (*ListPresetsResponse, error) {
	resp := &ListPresetsResponse{}
	resp.Body.Presets = make([]PresetInfo, 0, len(config.Presets))
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		num, _ := poly.New(p.Numerator)
		den, _ := poly.New(p.Denominator)
		resp.Body.Presets = append(resp.Body.Presets, PresetInfo{
			Name:                 name,
			Numerator:            p.Numerator,
			Denominator:          p.Denominator,
			Transfer:             "(" + num.String() + ") / (" + den.String() + ")",
			UnwrapPhase:          p.UnwrapPhase,
			AllowZeroDenominator: p.AllowZeroDenominator,
		})
	}
	return resp, nil
}

// Bode runs one analysis. Bad coefficients or sweeps are 400, a root finder
// failure is 422.
func (h *BodeHandler) Bode(ctx context.Context, req *BodeRequest) (*BodeResponse, error) {
	in := req.Body
	areq := analysis.Request{
		Name:        in.Name,
		Numerator:   in.Numerator,
		Denominator: in.Denominator,
		Unwrap:      in.Unwrap,
	}
	if in.Sweep != nil {
		areq.Sweep = *in.Sweep
		if err := in.Sweep.Validate(); err != nil {
			return nil, huma.Error400BadRequest("Invalid sweep", err)
		}
	}

	res, err := analysis.Run(areq)
	if err != nil {
		return nil, StatusError(err)
	}

	resp := &BodeResponse{}
	resp.Body.Document = export.NewDocument(res)

	if in.Save && h.store != nil {
		id, err := h.store.Save(res)
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to save run", err)
		}
		resp.Body.ID = id
	}

	log.Info().
		Str("name", in.Name).
		Int("num_degree", res.Numerator.Degree()).
		Int("den_degree", res.Denominator.Degree()).
		Bool("stable", res.Verdict.Stable).
		Str("id", resp.Body.ID).
		Msg("bode request served")
	return resp, nil
}

func StatusError(err error) error {
	switch {
	case errors.Is(err, poly.ErrInvalidInput), errors.Is(err, response.ErrInvalidSweep):
		return huma.Error400BadRequest("Invalid transfer function", err)
	case errors.Is(err, roots.ErrNumericalFailure):
		return huma.Error422UnprocessableEntity("Root finding failed", err)
	}
	log.Error().Err(err).Msg("analysis failed")
	return huma.Error500InternalServerError("Analysis failed", err)
}

func (h *BodeHandler) ListRuns(ctx context.Context, input *struct{}) (*ListRunsResponse, error) {
	resp := &ListRunsResponse{}
	resp.Body.Runs = []storage.RunMetadata{}
	if h.store == nil {
		return resp, nil
	}

	runs, err := h.store.List()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list runs", err)
	}
	resp.Body.Runs = runs
	return resp, nil
}

func (h *BodeHandler) GetRun(ctx context.Context, req *GetRunRequest) (*GetRunResponse, error) {
	if h.store == nil {
		return nil, huma.Error404NotFound("Run not found")
	}

	meta, err := h.store.Load(req.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, huma.Error404NotFound("Run not found", err)
		}
		return nil, huma.Error500InternalServerError("Failed to load run", err)
	}
	data, err := h.store.LoadResponse(req.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load response", err)
	}

	resp := &GetRunResponse{}
	resp.Body.Run = *meta
	resp.Body.Points = export.Points(data)
	return resp, nil
}
