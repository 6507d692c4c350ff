package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/slab-tools/slab/internal/api"
	"github.com/slab-tools/slab/internal/outcar"
	"github.com/slab-tools/slab/internal/vasp"
)

// IonicSeriesRequest is the request body for a per-step ionic series.
type IonicSeriesRequest struct {
	OutcarPath string `json:"outcar_path"`
}

// IonicSeriesEndpoint handles POST /v1/outcar/ionic-series.
type IonicSeriesEndpoint struct{}

func (e *IonicSeriesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/v1/outcar/ionic-series", e.handler
}

// handler godoc
//
//	@Summary		Build the per-step ionic series for an OUTCAR
//	@Description	Correlate energy, force, pressure and Fermi signals per ionic step
//	@Tags			outcar
//	@Accept			json
//	@Produce		json
//	@Param			request	body		IonicSeriesRequest	true	"Series request"
//	@Success		200		{object}	vasp.IonicSeries
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/v1/outcar/ionic-series [post]
func (e *IonicSeriesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req IonicSeriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	resolved, err := vasp.ValidateFilePath(req.OutcarPath, "outcar_path", "OUTCAR")
	if err != nil {
		writeError(w, err)
		return
	}

	series, err := outcar.ParseIonicSeriesFile(resolved)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, series)
}

func (e *IonicSeriesEndpoint) Command(getServerURL func() string) *cobra.Command {
	var outcarPath string
	cmd := &cobra.Command{
		Use:   "ionic-series",
		Short: "Build the per-step ionic series via the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp vasp.IonicSeries
			if err := client.Post(cmd.Context(), "/v1/outcar/ionic-series", IonicSeriesRequest{
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
