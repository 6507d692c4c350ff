package outcar

import (
	"strings"

	"github.com/slab-tools/slab/internal/vasp"
)

// magnetizationAxis is the collinear axis VASP reports site moments on.
const magnetizationAxis = "z"

// ParseSummaryFile reads and parses an OUTCAR file from disk.
func ParseSummaryFile(path string) (*vasp.Summary, error) {
	text, err := vasp.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSummaryText(text, path)
}

// ParseSummaryText parses OUTCAR text into a transport-neutral summary.
//
// The only content-sanity check is the validity guard: text with no energy
// history, no system name, no ion count and no Fermi energy is rejected as
// not an OUTCAR. Any other missing sub-structure becomes a warning.
func ParseSummaryText(text, sourcePath string) (*vasp.Summary, error) {
	lines := strings.Split(text, "\n")

	systemName := scanSystemName(lines)
	nions := scanNIons(text)
	history := scanEnergyHistory(text)
	fermiEnergies := scanFermiEnergies(text)
	forceMaxima := scanForceBlockMaxima(lines)

	if len(history) == 0 && systemName == "" && nions == nil && len(fermiEnergies) == 0 {
		return nil, vasp.NewParseError("input does not look like a valid VASP OUTCAR file")
	}

	var warnings []string
	if len(history) == 0 {
		warnings = append(warnings, "No TOTEN energy records were found")
	}
	if len(fermiEnergies) == 0 {
		warnings = append(warnings, "No Fermi energy records were found")
	}
	if len(forceMaxima) == 0 {
		warnings = append(warnings, "No force table was found")
	}

	summary := &vasp.Summary{
		SourcePath:           sourcePath,
		SystemName:           systemName,
		NIons:                nions,
		IonicSteps:           len(history),
		ElectronicIterations: countElectronicIterations(lines),
		EnergyHistory:        history,
		Warnings:             warnings,
	}
	if len(history) > 0 {
		summary.FinalTotalEnergyEV = vasp.Float(history[len(history)-1].TotalEnergyEV)
	}
	if len(fermiEnergies) > 0 {
		summary.FinalFermiEnergyEV = vasp.Float(fermiEnergies[len(fermiEnergies)-1])
	}
	if len(forceMaxima) > 0 {
		summary.MaxForceEVPerA = vasp.Float(forceMaxima[len(forceMaxima)-1])
	}

	return summary, nil
}

// ParseObservablesFile reads and parses diagnostics observables from disk.
func ParseObservablesFile(path string) (*vasp.Observables, error) {
	text, err := vasp.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseObservablesText(text, path)
}

// ParseObservablesText extends the summary with the final stress tensor,
// external pressure and magnetization snapshots.
func ParseObservablesText(text, sourcePath string) (*vasp.Observables, error) {
	summary, err := ParseSummaryText(text, sourcePath)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(text, "\n")
	pressures := scanExternalPressures(text)
	stresses := scanStressTensors(text)
	magnetization := scanMagnetization(lines, magnetizationAxis)

	var warnings []string
	if len(pressures) == 0 {
		warnings = append(warnings, "No external pressure records were found")
	}
	if len(stresses) == 0 {
		warnings = append(warnings, "No stress tensor records were found")
	}
	if magnetization == nil {
		warnings = append(warnings, "No magnetization (z) table was found")
	}

	obs := &vasp.Observables{
		SourcePath:    sourcePath,
		Summary:       *summary,
		Magnetization: magnetization,
		Warnings:      warnings,
	}
	if len(pressures) > 0 {
		obs.ExternalPressureKb = vasp.Float(pressures[len(pressures)-1])
	}
	if len(stresses) > 0 {
		last := stresses[len(stresses)-1]
		obs.StressTensorKb = &last
	}

	return obs, nil
}
