package main

import (
	"github.com/spf13/cobra"

	"github.com/slab-tools/slab/internal/api"
	"github.com/slab-tools/slab/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "slab",
	Short: "Post-processing toolkit for VASP relaxation outputs",
	Long: `Slab parses and analyzes the text outputs of VASP atomistic
simulations without rerunning any physics.

It covers:
  - OUTCAR summaries, convergence diagnostics and per-step series
  - EIGENVAL band-gap classification and DOSCAR density-of-states profiles
  - Batch screening over many runs with ranking and statistics
  - Relaxation input generation (INCAR/KPOINTS/POSCAR)`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.slab/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "slab home directory (default: ~/.slab)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
