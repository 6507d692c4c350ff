package batch

import (
	"sort"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/slab-tools/slab/internal/analysis"
	"github.com/slab-tools/slab/internal/outcar"
	"github.com/slab-tools/slab/internal/vasp"
)

// DefaultTopN is the default size of the lowest-energy ranking.
const DefaultTopN = 5

// InsightsRow is one per-file result of a batch insights run. IsConverged is
// tri-state here: nil means convergence could not be evaluated.
type InsightsRow struct {
	OutcarPath         string         `json:"outcar_path"`
	Status             string         `json:"status"`
	SystemName         string         `json:"system_name,omitempty"`
	FinalTotalEnergyEV *float64       `json:"final_total_energy_ev,omitempty"`
	MaxForceEVPerA     *float64       `json:"max_force_ev_per_a,omitempty"`
	ExternalPressureKb *float64       `json:"external_pressure_kb,omitempty"`
	IsConverged        *bool          `json:"is_converged,omitempty"`
	Warnings           []string       `json:"warnings,omitempty"`
	Error              *vasp.AppError `json:"error,omitempty"`
}

// TopRun is one entry of the lowest-energy ranking.
type TopRun struct {
	Rank               int      `json:"rank"`
	OutcarPath         string   `json:"outcar_path"`
	SystemName         string   `json:"system_name,omitempty"`
	FinalTotalEnergyEV float64  `json:"final_total_energy_ev"`
	MaxForceEVPerA     *float64 `json:"max_force_ev_per_a,omitempty"`
	IsConverged        *bool    `json:"is_converged,omitempty"`
}

// InsightsReport carries screening statistics over a batch of runs.
type InsightsReport struct {
	ReportID                string        `json:"report_id"`
	TotalCount              int           `json:"total_count"`
	SuccessCount            int           `json:"success_count"`
	ErrorCount              int           `json:"error_count"`
	ConvergedCount          int           `json:"converged_count"`
	NotConvergedCount       int           `json:"not_converged_count"`
	UnknownConvergenceCount int           `json:"unknown_convergence_count"`
	EnergyMinEV             *float64      `json:"energy_min_ev,omitempty"`
	EnergyMaxEV             *float64      `json:"energy_max_ev,omitempty"`
	EnergyMeanEV            *float64      `json:"energy_mean_ev,omitempty"`
	EnergySpanEV            *float64      `json:"energy_span_ev,omitempty"`
	MeanMaxForceEVPerA      *float64      `json:"mean_max_force_ev_per_a,omitempty"`
	TopLowestEnergy         []TopRun      `json:"top_lowest_energy"`
	Rows                    []InsightsRow `json:"rows"`
}

// BuildInsights parses every path, classifies convergence as true/false/
// unknown, and computes energy and force statistics plus a top-N
// lowest-energy ranking over the successful rows.
func BuildInsights(paths []string, energyToleranceEV, forceToleranceEVPerA float64, topN int, failFast bool) InsightsReport {
	if topN <= 0 {
		topN = DefaultTopN
	}

	report := InsightsReport{ReportID: uuid.NewString()}

	for _, path := range paths {
		row, err := insightsOne(path, energyToleranceEV, forceToleranceEVPerA)
		if err != nil {
			appErr := vasp.NormalizeError(err)
			report.Rows = append(report.Rows, InsightsRow{
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

		switch {
		case row.IsConverged == nil:
			report.UnknownConvergenceCount++
		case *row.IsConverged:
			report.ConvergedCount++
		default:
			report.NotConvergedCount++
		}

		report.Rows = append(report.Rows, *row)
		report.SuccessCount++
	}

	report.TotalCount = len(report.Rows)

	var energies, forces []float64
	var ranked []InsightsRow
	for _, row := range report.Rows {
		if row.Status != StatusOK {
			continue
		}
		if row.FinalTotalEnergyEV != nil {
			energies = append(energies, *row.FinalTotalEnergyEV)
			ranked = append(ranked, row)
		}
		if row.MaxForceEVPerA != nil {
			forces = append(forces, *row.MaxForceEVPerA)
		}
	}

	if len(energies) > 0 {
		report.EnergyMinEV = vasp.Float(floats.Min(energies))
		report.EnergyMaxEV = vasp.Float(floats.Max(energies))
		report.EnergyMeanEV = vasp.Float(stat.Mean(energies, nil))
		report.EnergySpanEV = vasp.Float(*report.EnergyMaxEV - *report.EnergyMinEV)
	}
	if len(forces) > 0 {
		report.MeanMaxForceEVPerA = vasp.Float(stat.Mean(forces, nil))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].FinalTotalEnergyEV < *ranked[j].FinalTotalEnergyEV
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	report.TopLowestEnergy = make([]TopRun, 0, len(ranked))
	for i, row := range ranked {
		report.TopLowestEnergy = append(report.TopLowestEnergy, TopRun{
			Rank:               i + 1,
			OutcarPath:         row.OutcarPath,
			SystemName:         row.SystemName,
			FinalTotalEnergyEV: *row.FinalTotalEnergyEV,
			MaxForceEVPerA:     row.MaxForceEVPerA,
			IsConverged:        row.IsConverged,
		})
	}

	return report
}

func insightsOne(path string, energyTolEV, forceTol float64) (*InsightsRow, error) {
	resolved, err := vasp.ValidateFilePath(path, "outcar_path", "OUTCAR")
	if err != nil {
		return nil, err
	}
	obs, err := outcar.ParseObservablesFile(resolved)
	if err != nil {
		return nil, err
	}

	diag := analysis.BuildDiagnostics(obs, energyTolEV, forceTol)

	// Tri-state view: the strict combined flag only counts when both
	// sub-checks were actually evaluable.
	var isConverged *bool
	if diag.Convergence.IsEnergyConverged != nil && diag.Convergence.IsForceConverged != nil {
		isConverged = vasp.Bool(diag.Convergence.IsConverged)
	}

	return &InsightsRow{
		OutcarPath:         diag.SourcePath,
		Status:             StatusOK,
		SystemName:         diag.Summary.SystemName,
		FinalTotalEnergyEV: diag.Summary.FinalTotalEnergyEV,
		MaxForceEVPerA:     diag.Summary.MaxForceEVPerA,
		ExternalPressureKb: diag.ExternalPressureKb,
		IsConverged:        isConverged,
		Warnings:           diag.Warnings,
	}, nil
}
