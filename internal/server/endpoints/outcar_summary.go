package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/slab-tools/slab/internal/api"
	"github.com/slab-tools/slab/internal/outcar"
	"github.com/slab-tools/slab/internal/vasp"
)

// SummaryRequest is the request body for an OUTCAR summary.
type SummaryRequest struct {
	OutcarPath     string `json:"outcar_path"`
	IncludeHistory bool   `json:"include_history"`
}

// SummaryEndpoint handles POST /v1/outcar/summary.
type SummaryEndpoint struct{}

func (e *SummaryEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/v1/outcar/summary", e.handler
}

// handler godoc
//
//	@Summary		Summarize an OUTCAR
//	@Description	Parse an OUTCAR file into run-level scalar diagnostics
//	@Tags			outcar
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SummaryRequest	true	"Summary request"
//	@Success		200		{object}	vasp.Summary
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/v1/outcar/summary [post]
func (e *SummaryEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
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
	if !req.IncludeHistory {
		summary.EnergyHistory = nil
	}

	writeJSON(w, http.StatusOK, summary)
}

func (e *SummaryEndpoint) Command(getServerURL func() string) *cobra.Command {
	var outcarPath string
	var includeHistory bool
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize an OUTCAR via the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp vasp.Summary
			if err := client.Post(cmd.Context(), "/v1/outcar/summary", SummaryRequest{
				OutcarPath:     outcarPath,
				IncludeHistory: includeHistory,
			}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&outcarPath, "outcar", "OUTCAR", "Path to the OUTCAR file")
	cmd.Flags().BoolVar(&includeHistory, "history", false, "Include the full per-step energy history")
	return cmd
}
