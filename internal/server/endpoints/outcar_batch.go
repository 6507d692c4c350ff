package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/slab-tools/slab/internal/api"
	"github.com/slab-tools/slab/internal/batch"
	"github.com/slab-tools/slab/internal/vasp"
)

// BatchRequest is the shared request shape for batch operations. Paths come
// either inline or from a JSON manifest file; exactly one source is required.
type BatchRequest struct {
	OutcarPaths          []string `json:"outcar_paths,omitempty"`
	ManifestPath         string   `json:"manifest_path,omitempty"`
	FailFast             bool     `json:"fail_fast,omitempty"`
	EnergyToleranceEV    float64  `json:"energy_tolerance_ev,omitempty"`
	ForceToleranceEVPerA float64  `json:"force_tolerance_ev_per_a,omitempty"`
	TopN                 int      `json:"top_n,omitempty"`
}

// resolvePaths returns the effective path list and fail-fast flag.
func (req *BatchRequest) resolvePaths() ([]string, bool, error) {
	switch {
	case len(req.OutcarPaths) > 0 && req.ManifestPath != "":
		return nil, false, vasp.NewValidationError(vasp.CodeValidation,
			"provide either outcar_paths or manifest_path, not both")
	case req.ManifestPath != "":
		manifest, err := batch.LoadManifest(req.ManifestPath)
		if err != nil {
			return nil, false, err
		}
		return manifest.OutcarPaths, req.FailFast || manifest.FailFast, nil
	case len(req.OutcarPaths) > 0:
		return req.OutcarPaths, req.FailFast, nil
	default:
		return nil, false, vasp.NewValidationError(vasp.CodeValidation,
			"outcar_paths or manifest_path is required")
	}
}

// batchFlags wires the shared batch flags onto a command.
func batchFlags(cmd *cobra.Command, req *BatchRequest) {
	cmd.Flags().StringSliceVar(&req.OutcarPaths, "outcar", nil, "OUTCAR paths (repeatable)")
	cmd.Flags().StringVar(&req.ManifestPath, "manifest", "", "Path to a JSON batch manifest")
	cmd.Flags().BoolVar(&req.FailFast, "fail-fast", false, "Stop at the first failed file")
}

// BatchSummaryEndpoint handles POST /v1/outcar/batch-summary.
type BatchSummaryEndpoint struct{}

func (e *BatchSummaryEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/v1/outcar/batch-summary", e.handler
}

// handler godoc
//
//	@Summary		Summarize many OUTCARs in one call
//	@Tags			batch
//	@Accept			json
//	@Produce		json
//	@Param			request	body		BatchRequest	true	"Batch request"
//	@Success		200		{object}	batch.SummaryReport
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/v1/outcar/batch-summary [post]
func (e *BatchSummaryEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	paths, failFast, err := req.resolvePaths()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, batch.SummarizeAll(paths, failFast))
}

func (e *BatchSummaryEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req BatchRequest
	cmd := &cobra.Command{
		Use:   "batch-summary",
		Short: "Summarize many OUTCARs via the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp batch.SummaryReport
			if err := client.Post(cmd.Context(), "/v1/outcar/batch-summary", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	batchFlags(cmd, &req)
	return cmd
}

// BatchDiagnosticsEndpoint handles POST /v1/outcar/batch-diagnostics.
type BatchDiagnosticsEndpoint struct{}

func (e *BatchDiagnosticsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/v1/outcar/batch-diagnostics", e.handler
}

// handler godoc
//
//	@Summary		Run convergence diagnostics over many OUTCARs
//	@Tags			batch
//	@Accept			json
//	@Produce		json
//	@Param			request	body		BatchRequest	true	"Batch request"
//	@Success		200		{object}	batch.DiagnosticsReport
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/v1/outcar/batch-diagnostics [post]
func (e *BatchDiagnosticsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	paths, failFast, err := req.resolvePaths()
	if err != nil {
		writeError(w, err)
		return
	}

	energyTol, forceTol := tolerances(r, req.EnergyToleranceEV, req.ForceToleranceEVPerA)
	writeJSON(w, http.StatusOK, batch.DiagnoseAll(paths, energyTol, forceTol, failFast))
}

func (e *BatchDiagnosticsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req BatchRequest
	cmd := &cobra.Command{
		Use:   "batch-diagnostics",
		Short: "Run diagnostics over many OUTCARs via the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp batch.DiagnosticsReport
			if err := client.Post(cmd.Context(), "/v1/outcar/batch-diagnostics", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	batchFlags(cmd, &req)
	cmd.Flags().Float64Var(&req.EnergyToleranceEV, "energy-tol", 0, "Energy tolerance in eV (0 = server default)")
	cmd.Flags().Float64Var(&req.ForceToleranceEVPerA, "force-tol", 0, "Force tolerance in eV/A (0 = server default)")
	return cmd
}

// BatchInsightsEndpoint handles POST /v1/outcar/batch-insights.
type BatchInsightsEndpoint struct{}

func (e *BatchInsightsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/v1/outcar/batch-insights", e.handler
}

// handler godoc
//
//	@Summary		Compute screening statistics over many OUTCARs
//	@Description	Convergence counts, energy statistics and a lowest-energy ranking
//	@Tags			batch
//	@Accept			json
//	@Produce		json
//	@Param			request	body		BatchRequest	true	"Batch request"
//	@Success		200		{object}	batch.InsightsReport
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/v1/outcar/batch-insights [post]
func (e *BatchInsightsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	paths, failFast, err := req.resolvePaths()
	if err != nil {
		writeError(w, err)
		return
	}

	topN := req.TopN
	if topN == 0 {
		topN = currentConfig(r).Batch.TopN
	}
	energyTol, forceTol := tolerances(r, req.EnergyToleranceEV, req.ForceToleranceEVPerA)
	writeJSON(w, http.StatusOK, batch.BuildInsights(paths, energyTol, forceTol, topN, failFast))
}

func (e *BatchInsightsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req BatchRequest
	cmd := &cobra.Command{
		Use:   "batch-insights",
		Short: "Compute batch screening statistics via the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp batch.InsightsReport
			if err := client.Post(cmd.Context(), "/v1/outcar/batch-insights", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	batchFlags(cmd, &req)
	cmd.Flags().Float64Var(&req.EnergyToleranceEV, "energy-tol", 0, "Energy tolerance in eV (0 = server default)")
	cmd.Flags().Float64Var(&req.ForceToleranceEVPerA, "force-tol", 0, "Force tolerance in eV/A (0 = server default)")
	cmd.Flags().IntVar(&req.TopN, "top", 0, "Size of the lowest-energy ranking (0 = server default)")
	return cmd
}
