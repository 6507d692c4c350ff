// Package endpoints defines every slab API operation as an api.Endpoint:
// one HTTP route plus the cobra command that calls it.
package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/slab-tools/slab/internal/config"
	"github.com/slab-tools/slab/internal/svcctx"
	"github.com/slab-tools/slab/internal/vasp"
)

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error vasp.AppError `json:"error"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps err to the stable error envelope. Validation-class
// failures are 400, parse and IO failures 422, everything else 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case vasp.IsValidationError(err):
		status = http.StatusBadRequest
	case vasp.IsParseError(err), vasp.IsIOError(err):
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, ErrorResponse{Error: vasp.NormalizeError(err)})
}

// writeInvalidBody reports an undecodable request body.
func writeInvalidBody(w http.ResponseWriter) {
	writeError(w, vasp.NewValidationError(vasp.CodeValidation, "invalid request body"))
}

// currentConfig returns the live configuration, falling back to defaults
// when no manager flows through the request context.
func currentConfig(r *http.Request) *config.Config {
	if mgr := svcctx.ConfigFrom(r.Context()); mgr != nil {
		return mgr.Get()
	}
	return config.DefaultConfig()
}

// tolerances resolves the effective convergence tolerances for a request.
// Zero-valued request fields fall back to configuration.
func tolerances(r *http.Request, energyTolEV, forceTol float64) (float64, float64) {
	cfg := currentConfig(r)
	if energyTolEV == 0 {
		energyTolEV = cfg.Analysis.EnergyToleranceEV
	}
	if forceTol == 0 {
		forceTol = cfg.Analysis.ForceToleranceEVPerA
	}
	return energyTolEV, forceTol
}
