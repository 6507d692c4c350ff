// Package batch runs the single-file parsers over many OUTCAR paths with
// per-row success/failure capture. Iteration is strictly sequential; input
// order equals output row order, and an optional fail-fast flag stops at the
// first failed row.
package batch

import (
	"github.com/google/uuid"

	"github.com/slab-tools/slab/internal/analysis"
	"github.com/slab-tools/slab/internal/outcar"
	"github.com/slab-tools/slab/internal/vasp"
)

// Row statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// SummaryRow is one per-file result of a batch summary run.
type SummaryRow struct {
	OutcarPath         string         `json:"outcar_path"`
	Status             string         `json:"status"`
	SystemName         string         `json:"system_name,omitempty"`
	IonicSteps         int            `json:"ionic_steps"`
	FinalTotalEnergyEV *float64       `json:"final_total_energy_ev,omitempty"`
	FinalFermiEnergyEV *float64       `json:"final_fermi_energy_ev,omitempty"`
	MaxForceEVPerA     *float64       `json:"max_force_ev_per_a,omitempty"`
	Warnings           []string       `json:"warnings,omitempty"`
	Error              *vasp.AppError `json:"error,omitempty"`
}

// SummaryReport aggregates a batch summary run.
type SummaryReport struct {
	ReportID     string       `json:"report_id"`
	TotalCount   int          `json:"total_count"`
	SuccessCount int          `json:"success_count"`
	ErrorCount   int          `json:"error_count"`
	Rows         []SummaryRow `json:"rows"`
}

// SummarizeAll parses each OUTCAR path in order into a summary row.
func SummarizeAll(paths []string, failFast bool) SummaryReport {
	report := SummaryReport{ReportID: uuid.NewString()}

	for _, path := range paths {
		row, err := summarizeOne(path)
		if err != nil {
			appErr := vasp.NormalizeError(err)
			report.Rows = append(report.Rows, SummaryRow{
				OutcarPath: path,
				Status:     StatusError,
				Error:      &appErr,
			})
			report.ErrorCount++
			if failFast {
				break
			}
			continue
		}
		report.Rows = append(report.Rows, *row)
		report.SuccessCount++
	}

	report.TotalCount = len(report.Rows)
	return report
}

func summarizeOne(path string) (*SummaryRow, error) {
	resolved, err := vasp.ValidateFilePath(path, "outcar_path", "OUTCAR")
	if err != nil {
		return nil, err
	}
	summary, err := outcar.ParseSummaryFile(resolved)
	if err != nil {
		return nil, err
	}
	return &SummaryRow{
		OutcarPath:         summary.SourcePath,
		Status:             StatusOK,
		SystemName:         summary.SystemName,
		IonicSteps:         summary.IonicSteps,
		FinalTotalEnergyEV: summary.FinalTotalEnergyEV,
		FinalFermiEnergyEV: summary.FinalFermiEnergyEV,
		MaxForceEVPerA:     summary.MaxForceEVPerA,
		Warnings:           summary.Warnings,
	}, nil
}

// DiagnosticsRow is one per-file result of a batch diagnostics run.
type DiagnosticsRow struct {
	OutcarPath         string         `json:"outcar_path"`
	Status             string         `json:"status"`
	FinalTotalEnergyEV *float64       `json:"final_total_energy_ev,omitempty"`
	MaxForceEVPerA     *float64       `json:"max_force_ev_per_a,omitempty"`
	ExternalPressureKb *float64       `json:"external_pressure_kb,omitempty"`
	IsEnergyConverged  *bool          `json:"is_energy_converged,omitempty"`
	IsForceConverged   *bool          `json:"is_force_converged,omitempty"`
	IsConverged        *bool          `json:"is_converged,omitempty"`
	Warnings           []string       `json:"warnings,omitempty"`
	Error              *vasp.AppError `json:"error,omitempty"`
}

// DiagnosticsReport aggregates a batch diagnostics run.
type DiagnosticsReport struct {
	ReportID     string           `json:"report_id"`
	TotalCount   int              `json:"total_count"`
	SuccessCount int              `json:"success_count"`
	ErrorCount   int              `json:"error_count"`
	Rows         []DiagnosticsRow `json:"rows"`
}

// DiagnoseAll runs observables parsing plus a convergence report over each
// path in order.
func DiagnoseAll(paths []string, energyToleranceEV, forceToleranceEVPerA float64, failFast bool) DiagnosticsReport {
	report := DiagnosticsReport{ReportID: uuid.NewString()}

	for _, path := range paths {
		row, err := diagnoseOne(path, energyToleranceEV, forceToleranceEVPerA)
		if err != nil {
			appErr := vasp.NormalizeError(err)
			report.Rows = append(report.Rows, DiagnosticsRow{
				OutcarPath: path,
				Status:     StatusError,
				Error:      &appErr,
			})
			report.ErrorCount++
			if failFast {
				break
			}
			continue
		}
		report.Rows = append(report.Rows, *row)
		report.SuccessCount++
	}

	report.TotalCount = len(report.Rows)
	return report
}

func diagnoseOne(path string, energyTolEV, forceTol float64) (*DiagnosticsRow, error) {
	resolved, err := vasp.ValidateFilePath(path, "outcar_path", "OUTCAR")
	if err != nil {
		return nil, err
	}
	obs, err := outcar.ParseObservablesFile(resolved)
	if err != nil {
		return nil, err
	}

	diag := analysis.BuildDiagnostics(obs, energyTolEV, forceTol)
	return &DiagnosticsRow{
		OutcarPath:         diag.SourcePath,
		Status:             StatusOK,
		FinalTotalEnergyEV: diag.Summary.FinalTotalEnergyEV,
		MaxForceEVPerA:     diag.Summary.MaxForceEVPerA,
		ExternalPressureKb: diag.ExternalPressureKb,
		IsEnergyConverged:  diag.Convergence.IsEnergyConverged,
		IsForceConverged:   diag.Convergence.IsForceConverged,
		IsConverged:        vasp.Bool(diag.Convergence.IsConverged),
		Warnings:           diag.Warnings,
	}, nil
}
