package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/slab-tools/slab/internal/api"
	"github.com/slab-tools/slab/internal/batch"
)

// DiscoverRequest is the request body for run discovery.
type DiscoverRequest struct {
	RootDir   string `json:"root_dir"`
	Recursive bool   `json:"recursive,omitempty"`
	MaxRuns   int    `json:"max_runs,omitempty"`
}

// DiscoverEndpoint handles POST /v1/outcar/discover.
type DiscoverEndpoint struct{}

func (e *DiscoverEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/v1/outcar/discover", e.handler
}

// handler godoc
//
//	@Summary		Discover OUTCAR files under a directory
//	@Tags			batch
//	@Accept			json
//	@Produce		json
//	@Param			request	body		DiscoverRequest	true	"Discovery request"
//	@Success		200		{object}	batch.Discovery
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/v1/outcar/discover [post]
func (e *DiscoverEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req DiscoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	maxRuns := req.MaxRuns
	if maxRuns == 0 {
		maxRuns = currentConfig(r).Batch.MaxRuns
	}

	discovery, err := batch.Discover(req.RootDir, req.Recursive, maxRuns)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, discovery)
}

func (e *DiscoverEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req DiscoverRequest
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Discover OUTCAR files via the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp batch.Discovery
			if err := client.Post(cmd.Context(), "/v1/outcar/discover", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&req.RootDir, "root", ".", "Directory to search")
	cmd.Flags().BoolVar(&req.Recursive, "recursive", false, "Walk the whole tree instead of root plus children")
	cmd.Flags().IntVar(&req.MaxRuns, "max-runs", 0, "Result cap (0 = server default)")
	return cmd
}
