package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slab-tools/slab/internal/analysis"
	"github.com/slab-tools/slab/internal/chart"
	"github.com/slab-tools/slab/internal/electronic"
	"github.com/slab-tools/slab/internal/home"
	"github.com/slab-tools/slab/internal/outcar"
	"github.com/slab-tools/slab/internal/vasp"
)

var chartOut string

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render analysis charts as PNG files",
}

// chartOutPath resolves the output path for a chart, defaulting to the
// charts directory under the slab home.
func chartOutPath(sourcePath, suffix string) (string, error) {
	if chartOut != "" {
		return chartOut, nil
	}
	h, err := home.New(homeDir)
	if err != nil {
		return "", err
	}
	if err := h.EnsureExists(); err != nil {
		return "", err
	}
	base := strings.TrimSuffix(filepath.Base(filepath.Dir(sourcePath)), string(filepath.Separator))
	if base == "" || base == "." {
		base = "run"
	}
	return filepath.Join(h.ChartsDir(), fmt.Sprintf("%s_%s.png", base, suffix)), nil
}

var chartConvergenceCmd = &cobra.Command{
	Use:   "convergence [OUTCAR]",
	Short: "Render the energy convergence profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := vasp.ValidateFilePath(outcarArg(args), "outcar_path", "OUTCAR")
		if err != nil {
			return err
		}
		summary, err := outcar.ParseSummaryFile(resolved)
		if err != nil {
			return err
		}
		profile := analysis.BuildConvergenceProfile(summary)

		outPath, err := chartOutPath(resolved, "convergence")
		if err != nil {
			return err
		}
		if err := chart.RenderConvergenceProfile(&profile, summary.SystemName, outPath); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, outPath)
		return nil
	},
}

var chartForceCmd = &cobra.Command{
	Use:   "force [OUTCAR]",
	Short: "Render the per-step maximum force profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := vasp.ValidateFilePath(outcarArg(args), "outcar_path", "OUTCAR")
		if err != nil {
			return err
		}
		summary, err := outcar.ParseSummaryFile(resolved)
		if err != nil {
			return err
		}
		series, err := outcar.ParseIonicSeriesFile(resolved)
		if err != nil {
			return err
		}

		outPath, err := chartOutPath(resolved, "force")
		if err != nil {
			return err
		}
		if err := chart.RenderForceProfile(series, summary.SystemName, outPath); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, outPath)
		return nil
	},
}

var (
	chartDosWindow    float64
	chartDosMaxPoints int
)

var chartDosCmd = &cobra.Command{
	Use:   "dos [DOSCAR]",
	Short: "Render the total DOS profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "DOSCAR"
		if len(args) > 0 {
			path = args[0]
		}
		resolved, err := vasp.ValidateFilePath(path, "doscar_path", "DOSCAR")
		if err != nil {
			return err
		}

		cfg := localConfig()
		window := chartDosWindow
		if window == 0 {
			window = cfg.Dos.EnergyWindowEV
		}
		maxPoints := chartDosMaxPoints
		if maxPoints == 0 {
			maxPoints = cfg.Dos.MaxPoints
		}

		profile, err := electronic.ParseDosProfileFile(resolved, window, maxPoints)
		if err != nil {
			return err
		}

		outPath, err := chartOutPath(resolved, "dos")
		if err != nil {
			return err
		}
		if err := chart.RenderDosProfile(profile, outPath); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, outPath)
		return nil
	},
}

func init() {
	chartCmd.PersistentFlags().StringVar(&chartOut, "out", "", "Output PNG path (default under ~/.slab/charts)")
	chartDosCmd.Flags().Float64Var(&chartDosWindow, "window", 0, "Energy window around E-fermi in eV (0 = config default)")
	chartDosCmd.Flags().IntVar(&chartDosMaxPoints, "max-points", 0, "Downsampling cap (0 = config default)")

	chartCmd.AddCommand(chartConvergenceCmd, chartForceCmd, chartDosCmd)
	rootCmd.AddCommand(chartCmd)
}
