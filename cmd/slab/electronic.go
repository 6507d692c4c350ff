package main

import (
	"github.com/spf13/cobra"

	"github.com/slab-tools/slab/internal/api"
	"github.com/slab-tools/slab/internal/electronic"
	"github.com/slab-tools/slab/internal/vasp"
)

var (
	electronicEigenval string
	electronicDoscar   string
)

var electronicCmd = &cobra.Command{
	Use:   "electronic",
	Short: "Extract band-gap and DOS metadata from EIGENVAL/DOSCAR",
	Long: `Parse EIGENVAL and/or DOSCAR into electronic-structure metadata.

Either file may be omitted; a missing input becomes a warning in the
output instead of an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if electronicEigenval == "" && electronicDoscar == "" {
			return vasp.NewValidationError(vasp.CodeValidation, "--eigenval or --doscar is required")
		}

		eigenvalPath := electronicEigenval
		if eigenvalPath != "" {
			resolved, err := vasp.ValidateFilePath(eigenvalPath, "eigenval_path", "EIGENVAL")
			if err != nil {
				return err
			}
			eigenvalPath = resolved
		}
		doscarPath := electronicDoscar
		if doscarPath != "" {
			resolved, err := vasp.ValidateFilePath(doscarPath, "doscar_path", "DOSCAR")
			if err != nil {
				return err
			}
			doscarPath = resolved
		}

		meta, err := electronic.ParseMetadata(eigenvalPath, doscarPath)
		if err != nil {
			return err
		}
		return api.Output(meta)
	},
}

var (
	dosWindow    float64
	dosMaxPoints int
)

var dosProfileCmd = &cobra.Command{
	Use:   "dos-profile [DOSCAR]",
	Short: "Build a plot-ready total DOS profile from a DOSCAR",
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
		window := dosWindow
		if window == 0 {
			window = cfg.Dos.EnergyWindowEV
		}
		maxPoints := dosMaxPoints
		if maxPoints == 0 {
			maxPoints = cfg.Dos.MaxPoints
		}

		profile, err := electronic.ParseDosProfileFile(resolved, window, maxPoints)
		if err != nil {
			return err
		}
		return api.Output(profile)
	},
}

func init() {
	electronicCmd.Flags().StringVar(&electronicEigenval, "eigenval", "", "Path to the EIGENVAL file")
	electronicCmd.Flags().StringVar(&electronicDoscar, "doscar", "", "Path to the DOSCAR file")

	dosProfileCmd.Flags().Float64Var(&dosWindow, "window", 0, "Energy window around E-fermi in eV (0 = config default)")
	dosProfileCmd.Flags().IntVar(&dosMaxPoints, "max-points", 0, "Downsampling cap (0 = config default)")

	rootCmd.AddCommand(electronicCmd, dosProfileCmd)
}
