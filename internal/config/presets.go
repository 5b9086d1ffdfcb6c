package config

import "sort"

func preset(name string, num, den []float64) *Config {
	cfg := DefaultConfig()
	cfg.Name = name
	cfg.Numerator = num
	cfg.Denominator = den
	return cfg
}

var Presets = map[string]*Config{
	"first_order":  preset("first_order", []float64{1}, []float64{1, 1}),
	"lead_lag":     preset("lead_lag", []float64{1, 2}, []float64{1, 4, 3}),
	"second_order": preset("second_order", []float64{1}, []float64{1, 1.4, 1}),
	"resonant":     preset("resonant", []float64{100}, []float64{1, 0.2, 100}),
	"third_order": func() *Config {
		cfg := preset("third_order", []float64{1}, []float64{1, 3, 3, 1})
		cfg.UnwrapPhase = true
		return cfg
	}(),
	"integrator": func() *Config {
		cfg := preset("integrator", []float64{1}, []float64{1, 0})
		cfg.AllowZeroDenominator = true
		return cfg
	}(),
	"unstable": preset("unstable", []float64{1}, []float64{1, -1, 2}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Numerator = append([]float64(nil), p.Numerator...)
	cfg.Denominator = append([]float64(nil), p.Denominator...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
