package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/slab-tools/slab/internal/api"
	"github.com/slab-tools/slab/internal/electronic"
	"github.com/slab-tools/slab/internal/vasp"
)

// DosProfileRequest is the request body for a DOS profile. Zero-valued
// window and max_points fall back to the configured defaults.
type DosProfileRequest struct {
	DoscarPath     string  `json:"doscar_path"`
	EnergyWindowEV float64 `json:"energy_window_ev,omitempty"`
	MaxPoints      int     `json:"max_points,omitempty"`
}

// DosProfileEndpoint handles POST /v1/electronic/dos-profile.
type DosProfileEndpoint struct{}

func (e *DosProfileEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/v1/electronic/dos-profile", e.handler
}

// handler godoc
//
//	@Summary		Build a plot-ready total DOS profile
//	@Description	Window the DOS around the Fermi level and downsample for rendering
//	@Tags			electronic
//	@Accept			json
//	@Produce		json
//	@Param			request	body		DosProfileRequest	true	"Profile request"
//	@Success		200		{object}	vasp.DosProfile
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/v1/electronic/dos-profile [post]
func (e *DosProfileEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req DosProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	resolved, err := vasp.ValidateFilePath(req.DoscarPath, "doscar_path", "DOSCAR")
	if err != nil {
		writeError(w, err)
		return
	}

	cfg := currentConfig(r)
	window := req.EnergyWindowEV
	if window == 0 {
		window = cfg.Dos.EnergyWindowEV
	}
	maxPoints := req.MaxPoints
	if maxPoints == 0 {
		maxPoints = cfg.Dos.MaxPoints
	}

	profile, err := electronic.ParseDosProfileFile(resolved, window, maxPoints)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (e *DosProfileEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req DosProfileRequest
	cmd := &cobra.Command{
		Use:   "dos-profile",
		Short: "Build a plot-ready DOS profile via the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp vasp.DosProfile
			if err := client.Post(cmd.Context(), "/v1/electronic/dos-profile", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&req.DoscarPath, "doscar", "DOSCAR", "Path to the DOSCAR file")
	cmd.Flags().Float64Var(&req.EnergyWindowEV, "window", 0, "Energy window around E-fermi in eV (0 = server default)")
	cmd.Flags().IntVar(&req.MaxPoints, "max-points", 0, "Downsampling cap (0 = server default)")
	return cmd
}
