package main

import (
	"github.com/spf13/cobra"

	"github.com/slab-tools/slab/internal/analysis"
	"github.com/slab-tools/slab/internal/api"
	"github.com/slab-tools/slab/internal/batch"
	"github.com/slab-tools/slab/internal/config"
	"github.com/slab-tools/slab/internal/outcar"
	"github.com/slab-tools/slab/internal/tabular"
	"github.com/slab-tools/slab/internal/vasp"
)

// localConfig loads configuration for commands that run without a server.
// Load failures fall back to defaults so local analysis always works.
func localConfig() *config.Config {
	mgr, err := config.NewManager(cfgFile)
	if err != nil {
		return config.DefaultConfig()
	}
	return mgr.Get()
}

// outcarArg resolves the optional positional OUTCAR path argument.
func outcarArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "OUTCAR"
}

var summaryCmd = &cobra.Command{
	Use:   "summary [OUTCAR]",
	Short: "Summarize an OUTCAR file",
	Long: `Parse an OUTCAR file into run-level scalar diagnostics: system name,
ion count, ionic step count, final energy, final Fermi energy and the
maximum force of the last ionic step.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := vasp.ValidateFilePath(outcarArg(args), "outcar_path", "OUTCAR")
		if err != nil {
			return err
		}
		summary, err := outcar.ParseSummaryFile(resolved)
		if err != nil {
			return err
		}
		return api.Output(summary)
	},
}

var (
	diagEnergyTol float64
	diagForceTol  float64
)

var diagnosticsCmd = &cobra.Command{
	Use:   "diagnostics [OUTCAR]",
	Short: "Run convergence diagnostics on an OUTCAR file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := vasp.ValidateFilePath(outcarArg(args), "outcar_path", "OUTCAR")
		if err != nil {
			return err
		}
		obs, err := outcar.ParseObservablesFile(resolved)
		if err != nil {
			return err
		}

		cfg := localConfig()
		energyTol := diagEnergyTol
		if energyTol == 0 {
			energyTol = cfg.Analysis.EnergyToleranceEV
		}
		forceTol := diagForceTol
		if forceTol == 0 {
			forceTol = cfg.Analysis.ForceToleranceEVPerA
		}

		return api.Output(analysis.BuildDiagnostics(obs, energyTol, forceTol))
	},
}

var ionicSeriesCmd = &cobra.Command{
	Use:   "ionic-series [OUTCAR]",
	Short: "Build the per-step ionic series for an OUTCAR file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := vasp.ValidateFilePath(outcarArg(args), "outcar_path", "OUTCAR")
		if err != nil {
			return err
		}
		series, err := outcar.ParseIonicSeriesFile(resolved)
		if err != nil {
			return err
		}
		return api.Output(series)
	},
}

var (
	exportDataset   string
	exportDelimiter string
)

var exportCmd = &cobra.Command{
	Use:   "export [OUTCAR]",
	Short: "Export an OUTCAR dataset as CSV text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := vasp.ValidateFilePath(outcarArg(args), "outcar_path", "OUTCAR")
		if err != nil {
			return err
		}

		var export *tabular.Export
		switch exportDataset {
		case tabular.DatasetConvergenceProfile:
			summary, err := outcar.ParseSummaryFile(resolved)
			if err != nil {
				return err
			}
			profile := analysis.BuildConvergenceProfile(summary)
			export, err = tabular.ConvergenceProfileExport(summary.SourcePath, profile, summary.Warnings, exportDelimiter)
			if err != nil {
				return err
			}
		case tabular.DatasetIonicSeries:
			series, err := outcar.ParseIonicSeriesFile(resolved)
			if err != nil {
				return err
			}
			export, err = tabular.IonicSeriesExport(series, exportDelimiter)
			if err != nil {
				return err
			}
		default:
			return vasp.NewValidationError(vasp.CodeValidation,
				"unknown dataset: %s (want %s or %s)",
				exportDataset, tabular.DatasetConvergenceProfile, tabular.DatasetIonicSeries)
		}

		return api.Output(export)
	},
}

var (
	discoverRecursive bool
	discoverMaxRuns   int
)

var discoverCmd = &cobra.Command{
	Use:   "discover [dir]",
	Short: "Discover OUTCAR files under a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}

		maxRuns := discoverMaxRuns
		if maxRuns == 0 {
			maxRuns = localConfig().Batch.MaxRuns
		}

		discovery, err := batch.Discover(root, discoverRecursive, maxRuns)
		if err != nil {
			return err
		}
		return api.Output(discovery)
	},
}

func init() {
	diagnosticsCmd.Flags().Float64Var(&diagEnergyTol, "energy-tol", 0, "Energy tolerance in eV (0 = config default)")
	diagnosticsCmd.Flags().Float64Var(&diagForceTol, "force-tol", 0, "Force tolerance in eV/A (0 = config default)")

	exportCmd.Flags().StringVar(&exportDataset, "dataset", tabular.DatasetConvergenceProfile, "Dataset to export")
	exportCmd.Flags().StringVar(&exportDelimiter, "delimiter", "comma", "CSV delimiter (comma, tab, semicolon)")

	discoverCmd.Flags().BoolVar(&discoverRecursive, "recursive", false, "Walk the whole tree instead of root plus children")
	discoverCmd.Flags().IntVar(&discoverMaxRuns, "max-runs", 0, "Result cap (0 = config default)")

	rootCmd.AddCommand(summaryCmd, diagnosticsCmd, ionicSeriesCmd, exportCmd, discoverCmd)
}
