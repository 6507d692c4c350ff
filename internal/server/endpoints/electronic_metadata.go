package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/slab-tools/slab/internal/api"
	"github.com/slab-tools/slab/internal/electronic"
	"github.com/slab-tools/slab/internal/vasp"
)

// ElectronicMetadataRequest is the request body for electronic-structure
// metadata. Both paths are optional, but at least one must be given.
type ElectronicMetadataRequest struct {
	EigenvalPath string `json:"eigenval_path,omitempty"`
	DoscarPath   string `json:"doscar_path,omitempty"`
}

// ElectronicMetadataEndpoint handles POST /v1/electronic/metadata.
type ElectronicMetadataEndpoint struct{}

func (e *ElectronicMetadataEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/v1/electronic/metadata", e.handler
}

// handler godoc
//
//	@Summary		Extract band-gap and DOS metadata
//	@Description	Parse EIGENVAL and/or DOSCAR; a missing input becomes a warning
//	@Tags			electronic
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ElectronicMetadataRequest	true	"Metadata request"
//	@Success		200		{object}	vasp.ElectronicMetadata
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/v1/electronic/metadata [post]
func (e *ElectronicMetadataEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ElectronicMetadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	meta, err := parseElectronicMetadata(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

// parseElectronicMetadata validates whichever paths were supplied and runs
// the combined parser. Shared with the local CLI electronic command.
func parseElectronicMetadata(req ElectronicMetadataRequest) (*vasp.ElectronicMetadata, error) {
	if req.EigenvalPath == "" && req.DoscarPath == "" {
		return nil, vasp.NewValidationError(vasp.CodeValidation,
			"eigenval_path or doscar_path is required")
	}

	eigenvalPath := req.EigenvalPath
	if eigenvalPath != "" {
		resolved, err := vasp.ValidateFilePath(eigenvalPath, "eigenval_path", "EIGENVAL")
		if err != nil {
			return nil, err
		}
		eigenvalPath = resolved
	}

	doscarPath := req.DoscarPath
	if doscarPath != "" {
		resolved, err := vasp.ValidateFilePath(doscarPath, "doscar_path", "DOSCAR")
		if err != nil {
			return nil, err
		}
		doscarPath = resolved
	}

	return electronic.ParseMetadata(eigenvalPath, doscarPath)
}

func (e *ElectronicMetadataEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req ElectronicMetadataRequest
	cmd := &cobra.Command{
		Use:   "electronic-metadata",
		Short: "Extract band-gap and DOS metadata via the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp vasp.ElectronicMetadata
			if err := client.Post(cmd.Context(), "/v1/electronic/metadata", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&req.EigenvalPath, "eigenval", "", "Path to the EIGENVAL file")
	cmd.Flags().StringVar(&req.DoscarPath, "doscar", "", "Path to the DOSCAR file")
	return cmd
}
