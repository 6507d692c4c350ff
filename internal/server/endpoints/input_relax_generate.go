package endpoints

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/slab-tools/slab/internal/api"
	"github.com/slab-tools/slab/internal/inputgen"
	"github.com/slab-tools/slab/internal/vasp"
)

// RelaxGenerateEndpoint handles POST /v1/input/relax-generate.
type RelaxGenerateEndpoint struct{}

func (e *RelaxGenerateEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/v1/input/relax-generate", e.handler
}

// applyRelaxDefaults fills zero-valued settings from the standard
// relaxation defaults.
func applyRelaxDefaults(spec *inputgen.RelaxSpec) {
	defaults := inputgen.NewRelaxSpec(spec.Structure)
	if spec.Encut == 0 {
		spec.Encut = defaults.Encut
	}
	if spec.Ediff == 0 {
		spec.Ediff = defaults.Ediff
	}
	if spec.Ediffg == 0 {
		spec.Ediffg = defaults.Ediffg
	}
	if spec.Ibrion == 0 {
		spec.Ibrion = defaults.Ibrion
	}
	if spec.Isif == 0 {
		spec.Isif = defaults.Isif
	}
	if spec.Nsw == 0 {
		spec.Nsw = defaults.Nsw
	}
	if spec.Sigma == 0 {
		spec.Sigma = defaults.Sigma
	}
	if spec.Ispin == 0 {
		spec.Ispin = defaults.Ispin
	}
	if spec.KMesh == [3]int{} {
		spec.KMesh = defaults.KMesh
		spec.GammaCentered = defaults.GammaCentered
	}
}

// handler godoc
//
//	@Summary		Generate relaxation input files
//	@Description	Render INCAR, KPOINTS and POSCAR text from a structure plus settings
//	@Tags			input
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inputgen.RelaxSpec	true	"Relaxation spec"
//	@Success		200		{object}	inputgen.Bundle
//	@Failure		400		{object}	ErrorResponse
//	@Router			/v1/input/relax-generate [post]
func (e *RelaxGenerateEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var spec inputgen.RelaxSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeInvalidBody(w)
		return
	}
	applyRelaxDefaults(&spec)

	gen := inputgen.Generator{Elements: inputgen.PeriodicTable{}}
	bundle, err := gen.Generate(spec)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bundle)
}

func (e *RelaxGenerateEndpoint) Command(getServerURL func() string) *cobra.Command {
	var specPath string
	cmd := &cobra.Command{
		Use:   "relax-generate",
		Short: "Generate relaxation inputs via the server",
		Long: `Generate INCAR, KPOINTS and POSCAR from a JSON relaxation spec.

The spec file holds the structure (comment, lattice_vectors, atoms) and any
non-default settings; omitted settings use the standard relaxation defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := vasp.ValidateFilePath(specPath, "spec", "Relaxation spec")
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(resolved)
			if err != nil {
				return err
			}
			var spec inputgen.RelaxSpec
			if err := json.Unmarshal(raw, &spec); err != nil {
				return vasp.NewValidationError(vasp.CodeValidation, "spec is not valid JSON: %v", err)
			}

			client := api.NewClient(getServerURL())
			var resp inputgen.Bundle
			if err := client.Post(cmd.Context(), "/v1/input/relax-generate", spec, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&specPath, "spec", "", "Path to a JSON relaxation spec file")
	cmd.MarkFlagRequired("spec")
	return cmd
}
