package electronic

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/slab-tools/slab/internal/vasp"
)

// dosTable is the decoded DOSCAR header plus the total-DOS columns.
type dosTable struct {
	energyMaxEV      float64
	energyMinEV      float64
	nedos            int
	efermiEV         float64
	isSpinPolarized  bool
	hasIntegratedDos bool
	energies         []float64
	dosTotals        []float64
}

// ParseDoscarFile reads a DOSCAR file and returns header metadata plus
// derived scalars.
func ParseDoscarFile(path string) (*vasp.DosMetadata, error) {
	text, err := vasp.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDoscarText(text)
}

// ParseDoscarText parses the DOSCAR header and total-DOS table into
// metadata. The energy step derives from the first two energies; the DOS at
// the Fermi level is the value at the energy point nearest E-fermi.
func ParseDoscarText(text string) (*vasp.DosMetadata, error) {
	table, err := parseDosTable(text)
	if err != nil {
		return nil, err
	}

	meta := &vasp.DosMetadata{
		EnergyMinEV:      table.energyMinEV,
		EnergyMaxEV:      table.energyMaxEV,
		Nedos:            table.nedos,
		EfermiEV:         table.efermiEV,
		IsSpinPolarized:  table.isSpinPolarized,
		HasIntegratedDos: table.hasIntegratedDos,
		TotalDosAtFermi:  table.dosTotals[nearestIndex(table.energies, table.efermiEV)],
	}
	if len(table.energies) >= 2 {
		meta.EnergyStepEV = vasp.Float(table.energies[1] - table.energies[0])
	}

	return meta, nil
}

// ParseDosProfileFile reads a DOSCAR and builds a plotting-friendly total
// DOS profile around the Fermi level.
func ParseDosProfileFile(path string, energyWindowEV float64, maxPoints int) (*vasp.DosProfile, error) {
	text, err := vasp.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDosProfileText(text, path, energyWindowEV, maxPoints)
}

// ParseDosProfileText selects the points within energyWindowEV of E-fermi
// (falling back to the full table with a warning when the window is empty)
// and downsamples by uniform index striding when the selection exceeds
// maxPoints, always keeping the first and last selected points.
func ParseDosProfileText(text, sourcePath string, energyWindowEV float64, maxPoints int) (*vasp.DosProfile, error) {
	if energyWindowEV <= 0 {
		return nil, vasp.NewValidationError(vasp.CodeValidation, "energy_window_ev must be > 0")
	}
	if maxPoints <= 0 {
		return nil, vasp.NewValidationError(vasp.CodeValidation, "max_points must be > 0")
	}

	table, err := parseDosTable(text)
	if err != nil {
		return nil, err
	}

	type sample struct{ energy, dos float64 }
	var selected []sample
	for i, energy := range table.energies {
		if math.Abs(energy-table.efermiEV) <= energyWindowEV {
			selected = append(selected, sample{energy, table.dosTotals[i]})
		}
	}

	var warnings []string
	if len(selected) == 0 {
		for i, energy := range table.energies {
			selected = append(selected, sample{energy, table.dosTotals[i]})
		}
		warnings = append(warnings, "Requested energy window had no points; returning full DOS range")
	}

	sampled := selected
	if len(selected) > maxPoints {
		sampled = make([]sample, 0, maxPoints)
		for _, idx := range sampleIndices(len(selected), maxPoints) {
			sampled = append(sampled, selected[idx])
		}
		warnings = append(warnings, fmt.Sprintf(
			"DOS points were downsampled from %d to %d for UI-friendly rendering",
			len(selected), len(sampled),
		))
	}

	points := make([]vasp.DosProfilePoint, 0, len(sampled))
	for i, s := range sampled {
		points = append(points, vasp.DosProfilePoint{
			Index:            i + 1,
			EnergyEV:         s.energy,
			EnergyRelativeEV: s.energy - table.efermiEV,
			DosTotal:         s.dos,
		})
	}

	return &vasp.DosProfile{
		SourcePath:     sourcePath,
		EfermiEV:       table.efermiEV,
		EnergyWindowEV: energyWindowEV,
		Points:         points,
		Warnings:       warnings,
	}, nil
}

// ParseMetadata combines the band-gap and DOS views for one run. Either path
// may be empty; a missing input yields a warning rather than an error.
func ParseMetadata(eigenvalPath, doscarPath string) (*vasp.ElectronicMetadata, error) {
	meta := &vasp.ElectronicMetadata{
		EigenvalPath: eigenvalPath,
		DoscarPath:   doscarPath,
	}

	if eigenvalPath != "" {
		bandGap, err := ParseEigenvalFile(eigenvalPath)
		if err != nil {
			return nil, err
		}
		meta.BandGap = bandGap
	} else {
		meta.Warnings = append(meta.Warnings, "EIGENVAL not provided; band gap metadata unavailable")
	}

	if doscarPath != "" {
		dosMeta, err := ParseDoscarFile(doscarPath)
		if err != nil {
			return nil, err
		}
		meta.DosMetadata = dosMeta
	} else {
		meta.Warnings = append(meta.Warnings, "DOSCAR not provided; DOS metadata unavailable")
	}

	return meta, nil
}

// parseDosTable decodes the six-line preamble (Emax Emin NEDOS Efermi on
// line 6) and the NEDOS total-DOS rows that follow. Row width >=5 means two
// spin DOS columns (summed into one total); width >=3 means an integrated
// DOS column is present.
func parseDosTable(text string) (*dosTable, error) {
	lines := strings.Split(text, "\n")
	if len(lines) < 7 {
		return nil, vasp.NewParseError("DOSCAR appears too short")
	}

	header := strings.Fields(lines[5])
	if len(header) < 4 {
		return nil, vasp.NewParseError("unable to parse DOSCAR header line 6")
	}

	energyMax, err1 := strconv.ParseFloat(header[0], 64)
	energyMin, err2 := strconv.ParseFloat(header[1], 64)
	nedosF, err3 := strconv.ParseFloat(header[2], 64)
	efermi, err4 := strconv.ParseFloat(header[3], 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return nil, vasp.NewParseError("DOSCAR header contains non-numeric values")
	}

	nedos := int(nedosF)
	if nedos <= 0 {
		return nil, vasp.NewParseError("DOSCAR NEDOS must be positive")
	}
	if len(lines) < 6+nedos {
		return nil, vasp.NewParseError("DOSCAR ended before total DOS table was complete")
	}

	totalLines := lines[6 : 6+nedos]
	firstTokens := strings.Fields(totalLines[0])
	if len(firstTokens) < 2 {
		return nil, vasp.NewParseError("unexpected DOSCAR total DOS row format")
	}

	table := &dosTable{
		energyMaxEV:      energyMax,
		energyMinEV:      energyMin,
		nedos:            nedos,
		efermiEV:         efermi,
		isSpinPolarized:  len(firstTokens) >= 5,
		hasIntegratedDos: len(firstTokens) >= 3,
	}

	for _, row := range totalLines {
		parts := strings.Fields(row)
		if len(parts) < 2 {
			continue
		}

		energy, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			continue
		}

		var dosTotal float64
		if table.isSpinPolarized {
			if len(parts) < 3 {
				continue
			}
			up, err1 := strconv.ParseFloat(parts[1], 64)
			dn, err2 := strconv.ParseFloat(parts[2], 64)
			if err1 != nil || err2 != nil {
				continue
			}
			dosTotal = up + dn
		} else {
			v, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				continue
			}
			dosTotal = v
		}

		table.energies = append(table.energies, energy)
		table.dosTotals = append(table.dosTotals, dosTotal)
	}

	if len(table.energies) == 0 {
		return nil, vasp.NewParseError("unable to parse total DOS data from DOSCAR")
	}

	return table, nil
}

// nearestIndex returns the index whose energy is closest to target.
func nearestIndex(energies []float64, target float64) int {
	best := 0
	bestDist := math.Abs(energies[0] - target)
	for i, e := range energies[1:] {
		if d := math.Abs(e - target); d < bestDist {
			best = i + 1
			bestDist = d
		}
	}
	return best
}

// sampleIndices strides uniformly across n selected points so that exactly
// maxPoints survive, always including the first and last.
func sampleIndices(n, maxPoints int) []int {
	if n <= maxPoints {
		indices := make([]int, n)
		for i := range indices {
			indices[i] = i
		}
		return indices
	}
	if maxPoints == 1 {
		return []int{0}
	}

	last := n - 1
	indices := make([]int, 0, maxPoints)
	for i := 0; i < maxPoints; i++ {
		indices = append(indices, int(math.Round(float64(i)*float64(last)/float64(maxPoints-1))))
	}
	return indices
}
