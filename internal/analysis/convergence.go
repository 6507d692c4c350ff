// Package analysis derives convergence verdicts and chart-ready profiles
// from parsed OUTCAR summaries. Everything here is a pure function over a
// summary plus caller-supplied tolerances.
package analysis

import (
	"math"

	"github.com/slab-tools/slab/internal/vasp"
)

// Default tolerances for convergence checks, matching typical relaxation
// acceptance criteria.
const (
	DefaultEnergyToleranceEV    = 1e-4
	DefaultForceToleranceEVPerA = 0.02
)

// BuildConvergenceReport evaluates energy and force convergence against the
// given tolerances. Sub-flags stay absent when their input is missing; the
// combined flag is a strict bool that treats absent as not converged.
func BuildConvergenceReport(summary *vasp.Summary, energyToleranceEV, forceToleranceEVPerA float64) vasp.ConvergenceReport {
	report := vasp.ConvergenceReport{
		EnergyToleranceEV:    energyToleranceEV,
		ForceToleranceEVPerA: forceToleranceEVPerA,
	}

	history := summary.EnergyHistory
	if len(history) >= 2 {
		change := math.Abs(history[len(history)-1].TotalEnergyEV - history[len(history)-2].TotalEnergyEV)
		report.FinalEnergyChangeEV = vasp.Float(change)
		report.IsEnergyConverged = vasp.Bool(change <= energyToleranceEV)
	}

	if summary.MaxForceEVPerA != nil {
		report.IsForceConverged = vasp.Bool(*summary.MaxForceEVPerA <= forceToleranceEVPerA)
	}

	report.IsConverged = report.IsEnergyConverged != nil && *report.IsEnergyConverged &&
		report.IsForceConverged != nil && *report.IsForceConverged

	return report
}

// BuildConvergenceProfile turns the energy history into a chart-ready
// series: per-step energy, delta to the previous step (absent for the first
// point) and energy relative to the final step.
func BuildConvergenceProfile(summary *vasp.Summary) vasp.ConvergenceProfile {
	history := summary.EnergyHistory
	if len(history) == 0 {
		return vasp.ConvergenceProfile{Points: []vasp.ConvergenceProfilePoint{}}
	}

	final := history[len(history)-1].TotalEnergyEV
	points := make([]vasp.ConvergenceProfilePoint, 0, len(history))
	for i, energy := range history {
		point := vasp.ConvergenceProfilePoint{
			IonicStep:        energy.IonicStep,
			TotalEnergyEV:    energy.TotalEnergyEV,
			RelativeEnergyEV: energy.TotalEnergyEV - final,
		}
		if i > 0 {
			point.DeltaEnergyEV = vasp.Float(energy.TotalEnergyEV - history[i-1].TotalEnergyEV)
		}
		points = append(points, point)
	}

	return vasp.ConvergenceProfile{Points: points}
}

// BuildDiagnostics assembles the full single-run diagnostics view:
// observables plus a convergence report, with warnings merged, deduplicated
// and extended when a convergence sub-check could not be evaluated.
func BuildDiagnostics(obs *vasp.Observables, energyToleranceEV, forceToleranceEVPerA float64) vasp.Diagnostics {
	convergence := BuildConvergenceReport(&obs.Summary, energyToleranceEV, forceToleranceEVPerA)

	warnings := make([]string, 0, len(obs.Summary.Warnings)+len(obs.Warnings)+2)
	warnings = append(warnings, obs.Summary.Warnings...)
	warnings = append(warnings, obs.Warnings...)
	if convergence.IsEnergyConverged == nil {
		warnings = append(warnings, "Energy convergence could not be evaluated (insufficient TOTEN history)")
	}
	if convergence.IsForceConverged == nil {
		warnings = append(warnings, "Force convergence could not be evaluated (missing force table)")
	}

	return vasp.Diagnostics{
		SourcePath:         obs.SourcePath,
		Summary:            obs.Summary,
		ExternalPressureKb: obs.ExternalPressureKb,
		StressTensorKb:     obs.StressTensorKb,
		Magnetization:      obs.Magnetization,
		Convergence:        convergence,
		Warnings:           vasp.DedupWarnings(warnings),
	}
}
