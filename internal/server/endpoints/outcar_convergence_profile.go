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

// ConvergenceProfileRequest is the request body for a convergence profile.
type ConvergenceProfileRequest struct {
	OutcarPath string `json:"outcar_path"`
}

// ConvergenceProfileResponse is the chart-ready energy series for one run.
type ConvergenceProfileResponse struct {
	SourcePath string                         `json:"source_path"`
	SystemName string                         `json:"system_name,omitempty"`
	Points     []vasp.ConvergenceProfilePoint `json:"points"`
	Warnings   []string                       `json:"warnings"`
}

// ConvergenceProfileEndpoint handles POST /v1/outcar/convergence-profile.
type ConvergenceProfileEndpoint struct{}

func (e *ConvergenceProfileEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/v1/outcar/convergence-profile", e.handler
}

// handler godoc
//
//	@Summary		Build a chart-ready energy convergence profile
//	@Tags			outcar
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ConvergenceProfileRequest	true	"Profile request"
//	@Success		200		{object}	ConvergenceProfileResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/v1/outcar/convergence-profile [post]
func (e *ConvergenceProfileEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ConvergenceProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	resolved, err := vasp.ValidateFilePath(req.OutcarPath, "outcar_path", "OUTCAR")
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := outcar.ParseSummaryFile(resolved)
	if err != nil {
		writeError(w, err)
		return
	}

	profile := analysis.BuildConvergenceProfile(summary)
	writeJSON(w, http.StatusOK, ConvergenceProfileResponse{
		SourcePath: summary.SourcePath,
		SystemName: summary.SystemName,
		Points:     profile.Points,
		Warnings:   summary.Warnings,
	})
}

func (e *ConvergenceProfileEndpoint) Command(getServerURL func() string) *cobra.Command {
	var outcarPath string
	cmd := &cobra.Command{
		Use:   "convergence-profile",
		Short: "Build an energy convergence profile via the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ConvergenceProfileResponse
			if err := client.Post(cmd.Context(), "/v1/outcar/convergence-profile", ConvergenceProfileRequest{
				OutcarPath: outcarPath,
			}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&outcarPath, "outcar", "OUTCAR", "Path to the OUTCAR file")
	return cmd
}
