package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/slab-tools/slab/internal/analysis"
	"github.com/slab-tools/slab/internal/api"
	"github.com/slab-tools/slab/internal/outcar"
	"github.com/slab-tools/slab/internal/vasp"
)

// DiagnosticsRequest is the request body for OUTCAR diagnostics. Zero
// tolerances fall back to the configured defaults.
type DiagnosticsRequest struct {
	OutcarPath           string  `json:"outcar_path"`
	EnergyToleranceEV    float64 `json:"energy_tolerance_ev,omitempty"`
	ForceToleranceEVPerA float64 `json:"force_tolerance_ev_per_a,omitempty"`
}

// DiagnosticsEndpoint handles POST /v1/outcar/diagnostics.
type DiagnosticsEndpoint struct{}

func (e *DiagnosticsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/v1/outcar/diagnostics", e.handler
}

// handler godoc
//
//	@Summary		Run convergence diagnostics on an OUTCAR
//	@Description	Parse observables and evaluate energy and force convergence
//	@Tags			outcar
//	@Accept			json
//	@Produce		json
//	@Param			request	body		DiagnosticsRequest	true	"Diagnostics request"
//	@Success		200		{object}	vasp.Diagnostics
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/v1/outcar/diagnostics [post]
func (e *DiagnosticsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req DiagnosticsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	resolved, err := vasp.ValidateFilePath(req.OutcarPath, "outcar_path", "OUTCAR")
	if err != nil {
		writeError(w, err)
		return
	}

	obs, err := outcar.ParseObservablesFile(resolved)
	if err != nil {
		writeError(w, err)
		return
	}

	energyTol, forceTol := tolerances(r, req.EnergyToleranceEV, req.ForceToleranceEVPerA)
	writeJSON(w, http.StatusOK, analysis.BuildDiagnostics(obs, energyTol, forceTol))
}

func (e *DiagnosticsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var outcarPath string
	var energyTol, forceTol float64
	cmd := &cobra.Command{
		Use:   "diagnostics",
		Short: "Run convergence diagnostics via the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp vasp.Diagnostics
			if err := client.Post(cmd.Context(), "/v1/outcar/diagnostics", DiagnosticsRequest{
				OutcarPath:           outcarPath,
				EnergyToleranceEV:    energyTol,
				ForceToleranceEVPerA: forceTol,
			}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&outcarPath, "outcar", "OUTCAR", "Path to the OUTCAR file")
	cmd.Flags().Float64Var(&energyTol, "energy-tol", 0, "Energy tolerance in eV (0 = server default)")
	cmd.Flags().Float64Var(&forceTol, "force-tol", 0, "Force tolerance in eV/A (0 = server default)")
	return cmd
}
