package config

import (
	"os"

	"github.com/san-kum/bode/internal/analysis"
	"github.com/san-kum/bode/internal/response"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPlotWidth   = 80
	DefaultPlotHeight  = 12
	DefaultImageWidth  = 6.0 // inches
	DefaultImageHeight = 4.0
)

type Config struct {
	Name                 string      `yaml:"name"`
	Numerator            []float64   `yaml:"numerator"`
	Denominator          []float64   `yaml:"denominator"`
	Sweep                SweepConfig `yaml:"sweep"`
	UnwrapPhase          bool        `yaml:"unwrap_phase"`
	AllowZeroDenominator bool        `yaml:"allow_zero_denominator"`
	Plot                 PlotConfig  `yaml:"plot"`
}

type SweepConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

type PlotConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	ImageWidth  float64 `yaml:"image_width"`
	ImageHeight float64 `yaml:"image_height"`
	Theme       string  `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:        "first_order",
		Numerator:   []float64{1},
		Denominator: []float64{1, 1},
		Sweep: SweepConfig{
			Min:  response.DefaultMin,
			Max:  response.DefaultMax,
			Step: response.DefaultStep,
		},
		Plot: PlotConfig{
			Width:       DefaultPlotWidth,
			Height:      DefaultPlotHeight,
			ImageWidth:  DefaultImageWidth,
			ImageHeight: DefaultImageHeight,
			Theme:       "terminal",
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto reads path over cfg. Keys missing from the file keep their
// current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides sweep, plot and phase settings from BODE_* environment
// variables, e.g. BODE_SWEEP_MAX=1e6.
func ApplyEnv(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix("BODE")
	v.AutomaticEnv()

	if v.IsSet("sweep_min") {
		cfg.Sweep.Min = v.GetFloat64("sweep_min")
	}
	if v.IsSet("sweep_max") {
		cfg.Sweep.Max = v.GetFloat64("sweep_max")
	}
	if v.IsSet("sweep_step") {
		cfg.Sweep.Step = v.GetFloat64("sweep_step")
	}
	if v.IsSet("unwrap") {
		cfg.UnwrapPhase = v.GetBool("unwrap")
	}
	if v.IsSet("plot_width") {
		cfg.Plot.Width = v.GetInt("plot_width")
	}
	if v.IsSet("plot_height") {
		cfg.Plot.Height = v.GetInt("plot_height")
	}
}

func (s SweepConfig) Sweep() response.Sweep {
	return response.Sweep{Min: s.Min, Max: s.Max, Step: s.Step}
}

func (c *Config) Request() analysis.Request {
	return analysis.Request{
		Name:        c.Name,
		Numerator:   c.Numerator,
		Denominator: c.Denominator,
		Sweep:       c.Sweep.Sweep(),
		Unwrap:      c.UnwrapPhase,
	}
}
