package outcar

import (
	"strings"

	"github.com/slab-tools/slab/internal/vasp"
)

// ParseIonicSeriesFile reads and builds the per-step series from disk.
func ParseIonicSeriesFile(path string) (*vasp.IonicSeries, error) {
	text, err := vasp.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseIonicSeriesText(text, path)
}

// ParseIonicSeriesText correlates the independently scanned per-step lists
// (force maxima, pressures, Fermi energies) against the energy history and
// produces one record per ionic step.
//
// The energy history is the authoritative step index. The i-th occurrence of
// every other list is assumed to describe the same step as the i-th energy
// entry: block occurrence order must match simulation step order, which the
// source format gives no way to verify. Lists shorter than the history leave
// trailing steps absent; longer lists are truncated.
func ParseIonicSeriesText(text, sourcePath string) (*vasp.IonicSeries, error) {
	summary, err := ParseSummaryText(text, sourcePath)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(text, "\n")
	forces := scanForceBlockMaxima(lines)
	pressures := scanExternalPressures(text)
	fermis := scanFermiEnergies(text)

	history := summary.EnergyHistory
	points := make([]vasp.IonicSeriesPoint, 0, len(history))
	for i, energy := range history {
		point := vasp.IonicSeriesPoint{
			IonicStep:          energy.IonicStep,
			TotalEnergyEV:      energy.TotalEnergyEV,
			RelativeEnergyEV:   energy.TotalEnergyEV - history[len(history)-1].TotalEnergyEV,
			MaxForceEVPerA:     alignSeries(forces, i),
			ExternalPressureKb: alignSeries(pressures, i),
			FermiEnergyEV:      alignSeries(fermis, i),
		}
		if i > 0 {
			point.DeltaEnergyEV = vasp.Float(energy.TotalEnergyEV - history[i-1].TotalEnergyEV)
		}
		points = append(points, point)
	}

	return &vasp.IonicSeries{
		SourcePath: sourcePath,
		Points:     points,
		Warnings:   summary.Warnings,
	}, nil
}

// alignSeries positions one scanned per-step list against the energy-history
// index: entry i describes step i+1, missing entries are absent, extra
// trailing entries are ignored. Every per-step consumer goes through this so
// the alignment policy lives in one place.
func alignSeries(values []float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	v := values[i]
	return &v
}
