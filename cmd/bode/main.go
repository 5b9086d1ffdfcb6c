package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/san-kum/bode/internal/config"
	"github.com/san-kum/bode/internal/poly"
	"github.com/san-kum/bode/internal/tui"
	"github.com/san-kum/bode/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string

	configFile string
	presetName string
	numText    string
	denText    string
	sweepMin   float64
	sweepMax   float64
	sweepStep  float64
	unwrap     bool
	allowZero  bool

	quantity      string
	imageQuantity string
	width         int
	height        int
	imgWidth      float64
	imgHeight     float64
	output        string
	save          bool

	addr    string
	origins []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bode",
		Short: "bode plots and stability of rational transfer functions",
		Long: "bode sweeps H(s) = N(s)/D(s) along the imaginary axis, reports magnitude\n" +
			"and phase, and checks the poles of D(s) for stability. Without a\n" +
			"subcommand it opens the interactive editor.",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}
			return tui.RunInteractive(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".bode", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	addSystemFlags(rootCmd)

	plotCmd := &cobra.Command{
		Use:   "plot [numerator] [denominator]",
		Short: "compute and draw the bode plot",
		Example: `  bode plot "1" "1 1"
  bode plot --preset resonant --quantity phase
  bode plot --num "1 2" --den "1 4 3" --save`,
		Args: cobra.MaximumNArgs(2),
		RunE: plotTransfer,
	}
	addSystemFlags(plotCmd)
	addChartFlags(plotCmd)
	plotCmd.Flags().BoolVar(&save, "save", false, "save the result to the data directory")

	rootsCmd := &cobra.Command{
		Use:   "roots [numerator] [denominator]",
		Short: "print poles and zeros",
		Args:  cobra.MaximumNArgs(2),
		RunE:  printRoots,
	}
	addSystemFlags(rootsCmd)

	stabilityCmd := &cobra.Command{
		Use:   "stability [numerator] [denominator]",
		Short: "check whether all poles lie in the open left half plane",
		Args:  cobra.MaximumNArgs(2),
		RunE:  checkStability,
	}
	addSystemFlags(stabilityCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	addChartFlags(showCmd)

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run response to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <run_id>.csv)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <run_id>.json)")

	exportImageCmd := &cobra.Command{
		Use:   "export-image [run_id]",
		Short: "render run to an image (png, jpg, jpeg, svg)",
		Args:  cobra.ExactArgs(1),
		RunE:  exportImage,
	}
	exportImageCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <run_id>_<quantity>.png)")
	exportImageCmd.Flags().StringVar(&imageQuantity, "quantity", "magnitude", "magnitude or phase")
	exportImageCmd.Flags().Float64Var(&imgWidth, "image-width", config.DefaultImageWidth, "image width in inches")
	exportImageCmd.Flags().Float64Var(&imgHeight, "image-height", config.DefaultImageHeight, "image height in inches")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in transfer functions",
		RunE:  listPresets,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "analyse every system of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&allowZero, "allow-zero", false, "accept zero denominator coefficients")
	batchCmd.Flags().BoolVar(&save, "save", false, "save every result to the data directory")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the HTTP API",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringSliceVar(&origins, "origins", nil, "allowed CORS origins (default any)")

	rootCmd.AddCommand(plotCmd, rootsCmd, stabilityCmd, listCmd, showCmd, exportCSVCmd, exportJSONCmd, exportImageCmd, presetsCmd, batchCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	return nil
}

func addSystemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&presetName, "preset", "", "use a built-in transfer function")
	cmd.Flags().StringVar(&numText, "num", "", "numerator coefficients, highest power first")
	cmd.Flags().StringVar(&denText, "den", "", "denominator coefficients, highest power first")
	cmd.Flags().Float64Var(&sweepMin, "min", config.DefaultConfig().Sweep.Min, "lowest frequency (rad/s)")
	cmd.Flags().Float64Var(&sweepMax, "max", config.DefaultConfig().Sweep.Max, "highest frequency (rad/s)")
	cmd.Flags().Float64Var(&sweepStep, "step", config.DefaultConfig().Sweep.Step, "ratio between successive frequencies")
	cmd.Flags().BoolVar(&unwrap, "unwrap", false, "unwrap phase across samples")
	cmd.Flags().BoolVar(&allowZero, "allow-zero", false, "accept zero denominator coefficients")
}

func addChartFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&quantity, "quantity", "", "draw only magnitude or phase")
	cmd.Flags().IntVar(&width, "width", config.DefaultPlotWidth, "chart width")
	cmd.Flags().IntVar(&height, "height", config.DefaultPlotHeight, "chart height")
}

// resolveConfig layers preset, config file, BODE_* environment and flags, in
// that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if presetName != "" {
		cfg = config.GetPreset(presetName)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	config.ApplyEnv(cfg)

	flags := cmd.Flags()
	if flags.Changed("allow-zero") {
		cfg.AllowZeroDenominator = allowZero
	}
	if flags.Changed("unwrap") {
		cfg.UnwrapPhase = unwrap
	}
	if flags.Changed("min") {
		cfg.Sweep.Min = sweepMin
	}
	if flags.Changed("max") {
		cfg.Sweep.Max = sweepMax
	}
	if flags.Changed("step") {
		cfg.Sweep.Step = sweepStep
	}
	if flags.Lookup("width") != nil && flags.Changed("width") {
		cfg.Plot.Width = width
	}
	if flags.Lookup("height") != nil && flags.Changed("height") {
		cfg.Plot.Height = height
	}

	num, den := numText, denText
	if len(args) > 0 {
		num = args[0]
	}
	if len(args) > 1 {
		den = args[1]
	}
	if num != "" {
		coeffs, err := poly.ParseCoefficients(num)
		if err != nil {
			return nil, fmt.Errorf("numerator: %w", err)
		}
		cfg.Numerator = coeffs
		cfg.Name = "custom"
	}
	if den != "" {
		coeffs, err := poly.ParseDenominator(den, cfg.AllowZeroDenominator)
		if err != nil {
			return nil, fmt.Errorf("denominator: %w", err)
		}
		cfg.Denominator = coeffs
		cfg.Name = "custom"
	}

	viz.SetTheme(cfg.Plot.Theme)
	log.Debug().
		Str("name", cfg.Name).
		Floats64("numerator", cfg.Numerator).
		Floats64("denominator", cfg.Denominator).
		Interface("sweep", cfg.Sweep).
		Msg("configuration resolved")
	return cfg, nil
}
