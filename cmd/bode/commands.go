package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/bode/internal/analysis"
	"github.com/san-kum/bode/internal/config"
	"github.com/san-kum/bode/internal/export"
	"github.com/san-kum/bode/internal/poly"
	"github.com/san-kum/bode/internal/response"
	"github.com/san-kum/bode/internal/roots"
	"github.com/san-kum/bode/internal/stability"
	"github.com/san-kum/bode/internal/storage"
	"github.com/san-kum/bode/internal/viz"
	"github.com/spf13/cobra"
)

func transfer(num, den poly.Polynomial) string {
	return "(" + num.String() + ") / (" + den.String() + ")"
}

// quantities returns the curves to draw; an empty flag means both.
func quantities() ([]response.Quantity, error) {
	if quantity == "" {
		return []response.Quantity{response.Magnitude, response.Phase}, nil
	}
	q, err := response.ParseQuantity(quantity)
	if err != nil {
		return nil, err
	}
	return []response.Quantity{q}, nil
}

func printCharts(resp *response.Response, w, h int) error {
	qs, err := quantities()
	if err != nil {
		return err
	}
	for _, q := range qs {
		fmt.Println(viz.ASCII(resp, q, w, h))
		fmt.Println()
	}
	return nil
}

func printVerdict(v stability.Verdict) {
	fmt.Println(viz.StatusStyle(viz.StatusFor(v.Stable)).Render(v.Message()))
}

func plotTransfer(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	res, err := analysis.Run(cfg.Request())
	if err != nil {
		return err
	}

	fmt.Printf("H(s) = %s\n", transfer(res.Numerator, res.Denominator))
	fmt.Printf("sweep: %g to %g rad/s, ratio %g, %d samples\n\n",
		res.Sweep.Min, res.Sweep.Max, res.Sweep.Step, res.Response.Len())

	if err := printCharts(res.Response, cfg.Plot.Width, cfg.Plot.Height); err != nil {
		return err
	}
	printVerdict(res.Verdict)

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(res)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func printRootTable(label string, p poly.Polynomial, markUnstable bool) error {
	rs, err := roots.Find(p)
	if err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}

	fmt.Printf("%s: %s (degree %d)\n", label, p.String(), p.Trim().Degree())
	if len(rs) == 0 {
		fmt.Println("  none")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  #\tREAL\tIMAG\t")
	for i, r := range rs {
		mark := ""
		if markUnstable && real(r) >= 0 {
			mark = "rhp"
		}
		fmt.Fprintf(w, "  %d\t% .6g\t% .6g\t%s\n", i+1, real(r), imag(r), mark)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("  residual: %.3g\n", roots.Residual(p, rs))
	return nil
}

func printRoots(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	num, err := poly.New(cfg.Numerator)
	if err != nil {
		return fmt.Errorf("numerator: %w", err)
	}
	den, err := poly.New(cfg.Denominator)
	if err != nil {
		return fmt.Errorf("denominator: %w", err)
	}

	if num.IsZero() {
		fmt.Println("zeros: numerator is identically zero")
	} else if err := printRootTable("zeros", num, false); err != nil {
		return err
	}
	fmt.Println()
	return printRootTable("poles", den, true)
}

func checkStability(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	den, err := poly.New(cfg.Denominator)
	if err != nil {
		return fmt.Errorf("denominator: %w", err)
	}
	v, err := stability.Analyze(den)
	if err != nil {
		return err
	}

	fmt.Printf("D(s) = %s\n", den.String())
	printVerdict(v)
	for _, r := range v.Unstable {
		fmt.Printf("  pole %.6g in the closed right half plane\n", r)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSAMPLES\tSTABLE\tTRANSFER")

	for _, run := range runs {
		num, _ := poly.New(run.Numerator)
		den, _ := poly.New(run.Denominator)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%t\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Samples,
			run.Stable,
			transfer(num, den),
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	resp, err := st.LoadResponse(runID)
	if err != nil {
		return err
	}

	num, _ := poly.New(meta.Numerator)
	den, _ := poly.New(meta.Denominator)

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s\n", meta.Name)
	fmt.Printf("time: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("H(s) = %s\n", transfer(num, den))
	fmt.Printf("sweep: %g to %g rad/s, ratio %g, %d samples\n",
		meta.Sweep.Min, meta.Sweep.Max, meta.Sweep.Step, meta.Samples)
	if len(meta.Roots) > 0 {
		parts := make([]string, len(meta.Roots))
		for i, r := range meta.Roots {
			parts[i] = fmt.Sprintf("%.4g", r.Complex())
		}
		fmt.Printf("poles: %s\n", strings.Join(parts, "  "))
	}
	fmt.Println()

	if err := printCharts(resp, width, height); err != nil {
		return err
	}

	status := "The transfer function is unstable."
	if meta.Stable {
		status = "The transfer function is stable."
	}
	fmt.Println(viz.StatusStyle(viz.StatusFor(meta.Stable)).Render(status))
	return nil
}

func outputPath(runID, ext string) string {
	if output != "" {
		return output
	}
	return runID + ext
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	resp, err := st.LoadResponse(runID)
	if err != nil {
		return err
	}

	path := outputPath(runID, ".csv")
	if err := export.CSVFile(path, resp); err != nil {
		return err
	}

	fmt.Printf("exported %d samples to %s\n", resp.Len(), path)
	return nil
}

// rerun repeats a saved analysis from its metadata. The sweep and the
// coefficients fully determine the result.
func rerun(meta *storage.RunMetadata) (*analysis.Result, error) {
	return analysis.Run(analysis.Request{
		Name:        meta.Name,
		Numerator:   meta.Numerator,
		Denominator: meta.Denominator,
		Sweep:       meta.Sweep,
		Unwrap:      meta.Unwrap,
	})
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	res, err := rerun(meta)
	if err != nil {
		return err
	}

	path := outputPath(runID, ".json")
	if err := export.JSONFile(path, res); err != nil {
		return err
	}

	fmt.Printf("exported to %s\n", path)
	return nil
}

func exportImage(cmd *cobra.Command, args []string) error {
	runID := args[0]

	q, err := response.ParseQuantity(imageQuantity)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	resp, err := st.LoadResponse(runID)
	if err != nil {
		return err
	}

	path := outputPath(runID, "_"+q.String()+".png")
	if err := export.SaveImage(resp, q, path, imgWidth, imgHeight); err != nil {
		if errors.Is(err, export.ErrUnsupportedFormat) {
			return fmt.Errorf("%w (use .png, .jpg, .jpeg or .svg)", err)
		}
		return err
	}

	fmt.Printf("exported %s plot to %s\n", q, filepath.Clean(path))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTRANSFER\tNOTES")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		num, _ := poly.New(p.Numerator)
		den, _ := poly.New(p.Denominator)

		var notes []string
		if p.UnwrapPhase {
			notes = append(notes, "unwrapped phase")
		}
		if p.AllowZeroDenominator {
			notes = append(notes, "zero coefficients allowed")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, transfer(num, den), strings.Join(notes, ", "))
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := analysis.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	reqs, err := sc.Requests(allowZero)
	if err != nil {
		return err
	}

	if sc.Name != "" {
		fmt.Printf("scenario: %s\n", sc.Name)
	}
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Printf("analysing %d systems...\n\n", len(reqs))

	results, batchErr := analysis.RunBatch(reqs)

	var st *storage.Store
	if save {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTRANSFER\tSTABLE\tPEAK DB\tELAPSED\tRUN ID")
	for i, res := range results {
		if res == nil {
			fmt.Fprintf(w, "%s\t-\terror\t-\t-\t-\n", reqs[i].Name)
			continue
		}
		runID := "-"
		if st != nil {
			id, err := st.Save(res)
			if err != nil {
				return err
			}
			runID = id
		}
		fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%v\t%s\n",
			res.Name,
			transfer(res.Numerator, res.Denominator),
			res.Verdict.Stable,
			peak(res.Response),
			res.Elapsed.Round(time.Microsecond),
			runID,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return batchErr
}

func peak(resp *response.Response) string {
	best, found := 0.0, false
	for _, v := range resp.MagnitudeDB {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !found || v > best {
			best, found = v, true
		}
	}
	if !found {
		return "-"
	}
	return fmt.Sprintf("%.2f", best)
}
