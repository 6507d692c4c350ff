package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/slab-tools/slab/internal/analysis"
	"github.com/slab-tools/slab/internal/api"
	"github.com/slab-tools/slab/internal/outcar"
	"github.com/slab-tools/slab/internal/tabular"
	"github.com/slab-tools/slab/internal/vasp"
)

// ExportRequest is the request body for a tabular export.
type ExportRequest struct {
	OutcarPath string `json:"outcar_path"`
	Dataset    string `json:"dataset"`             // convergence_profile or ionic_series
	Delimiter  string `json:"delimiter,omitempty"` // comma (default), tab, semicolon
}

// ExportEndpoint handles POST /v1/outcar/export-tabular.
type ExportEndpoint struct{}

func (e *ExportEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/v1/outcar/export-tabular", e.handler
}

// handler godoc
//
//	@Summary		Export an OUTCAR dataset as CSV text
//	@Tags			outcar
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ExportRequest	true	"Export request"
//	@Success		200		{object}	tabular.Export
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/v1/outcar/export-tabular [post]
func (e *ExportEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	export, err := buildExport(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, export)
}

// buildExport resolves the dataset name and renders it. Shared with the
// local CLI export command.
func buildExport(req ExportRequest) (*tabular.Export, error) {
	resolved, err := vasp.ValidateFilePath(req.OutcarPath, "outcar_path", "OUTCAR")
	if err != nil {
		return nil, err
	}

	switch req.Dataset {
	case tabular.DatasetConvergenceProfile:
		summary, err := outcar.ParseSummaryFile(resolved)
		if err != nil {
			return nil, err
		}
		profile := analysis.BuildConvergenceProfile(summary)
		return tabular.ConvergenceProfileExport(summary.SourcePath, profile, summary.Warnings, req.Delimiter)
	case tabular.DatasetIonicSeries:
		series, err := outcar.ParseIonicSeriesFile(resolved)
		if err != nil {
			return nil, err
		}
		return tabular.IonicSeriesExport(series, req.Delimiter)
	default:
		return nil, vasp.NewValidationError(vasp.CodeValidation,
			"unknown dataset: %s (want %s or %s)",
			req.Dataset, tabular.DatasetConvergenceProfile, tabular.DatasetIonicSeries)
	}
}

func (e *ExportEndpoint) Command(getServerURL func() string) *cobra.Command {
	var outcarPath, dataset, delimiter string
	cmd := &cobra.Command{
		Use:   "export-tabular",
		Short: "Export an OUTCAR dataset as CSV via the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp tabular.Export
			if err := client.Post(cmd.Context(), "/v1/outcar/export-tabular", ExportRequest{
				OutcarPath: outcarPath,
				Dataset:    dataset,
				Delimiter:  delimiter,
			}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&outcarPath, "outcar", "OUTCAR", "Path to the OUTCAR file")
	cmd.Flags().StringVar(&dataset, "dataset", tabular.DatasetConvergenceProfile, "Dataset to export")
	cmd.Flags().StringVar(&delimiter, "delimiter", "comma", "CSV delimiter (comma, tab, semicolon)")
	return cmd
}
