// Package outcar extracts physical observables from free-format OUTCAR
// text: total-energy history, forces, stress, pressure, magnetization, Fermi
// level and SCF iteration counts, plus per-step correlated series built on
// top of them. Each block kind is scanned by its own small state machine so
// block boundaries and failure modes stay independently testable.
package outcar

import (
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/slab-tools/slab/internal/vasp"
)

// numPat matches a float in decimal or exponential notation.
const numPat = `([+-]?\d+(?:\.\d+)?(?:[Ee][+-]?\d+)?)`

// Marker patterns for the fixed textual block anchors. These are process-wide
// immutable configuration with no lifecycle beyond process start.
var (
	systemRE   = regexp.MustCompile(`^\s*SYSTEM\s*=\s*(.+)$`)
	nionsRE    = regexp.MustCompile(`NIONS\s*=\s*(\d+)`)
	totenRE    = regexp.MustCompile(`free\s+energy\s+TOTEN\s*=\s*` + numPat)
	fermiRE    = regexp.MustCompile(`E-fermi\s*:\s*` + numPat)
	elecIterRE = regexp.MustCompile(`^\s*(?:DAV|RMM|CG)\s*:\s*\d+`)
	pressureRE = regexp.MustCompile(`(?i)external\s+pressure\s*=\s*` + numPat + `\s*kB`)
	stressRE   = regexp.MustCompile(`(?m)^\s*in\s+kB\s+` + numPat + `\s+` + numPat + `\s+` + numPat + `\s+` + numPat + `\s+` + numPat + `\s+` + numPat + `\s*$`)
)

// forceHeader anchors the per-atom force table.
const forceHeader = "TOTAL-FORCE (eV/Angst)"

// scanSystemName returns the first SYSTEM = ... value, trimmed.
func scanSystemName(lines []string) string {
	for _, line := range lines {
		if m := systemRE.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// scanNIons returns the declared ion count, or nil when absent.
func scanNIons(text string) *int {
	m := nionsRE.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// scanEnergyHistory collects every TOTEN match in file order. Each match is
// one ionic step; steps are numbered 1..N by occurrence, regardless of any
// step index printed elsewhere in the text.
func scanEnergyHistory(text string) []vasp.EnergyPoint {
	matches := totenRE.FindAllStringSubmatch(text, -1)
	history := make([]vasp.EnergyPoint, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		history = append(history, vasp.EnergyPoint{
			IonicStep:     len(history) + 1,
			TotalEnergyEV: v,
		})
	}
	return history
}

// scanFermiEnergies collects every E-fermi match in file order. Summary
// views keep only the last (converged) value; the ionic-series builder
// aligns the full list by step.
func scanFermiEnergies(text string) []float64 {
	return scanAllFloats(fermiRE, text)
}

// scanExternalPressures collects every "external pressure = ... kB" match.
func scanExternalPressures(text string) []float64 {
	return scanAllFloats(pressureRE, text)
}

func scanAllFloats(re *regexp.Regexp, text string) []float64 {
	matches := re.FindAllStringSubmatch(text, -1)
	values := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values
}

// scanStressTensors collects every six-component "in kB" stress line.
func scanStressTensors(text string) []vasp.StressTensor {
	matches := stressRE.FindAllStringSubmatch(text, -1)
	tensors := make([]vasp.StressTensor, 0, len(matches))
	for _, m := range matches {
		vals := make([]float64, 6)
		ok := true
		for i := 0; i < 6; i++ {
			v, err := strconv.ParseFloat(m[i+1], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		tensors = append(tensors, vasp.StressTensor{
			XXKb: vals[0], YYKb: vals[1], ZZKb: vals[2],
			XYKb: vals[3], YZKb: vals[4], ZXKb: vals[5],
		})
	}
	return tensors
}

// countElectronicIterations counts SCF iteration lines (DAV/RMM/CG tags)
// across the whole run. This is an approximate run-wide total, not per step.
func countElectronicIterations(lines []string) int {
	count := 0
	for _, line := range lines {
		if elecIterRE.MatchString(line) {
			count++
		}
	}
	return count
}

// scanForceBlockMaxima walks every force-table block and returns the maximum
// force norm per block, in block order. One block corresponds to one ionic
// step that reported a force table.
//
// Block state machine: header seen, skip to the next separator line, then
// consume data rows (>=6 whitespace fields, last three are fx fy fz) until a
// blank line or another separator terminates the block.
func scanForceBlockMaxima(lines []string) []float64 {
	var maxima []float64
	idx := 0

	for idx < len(lines) {
		if !strings.Contains(lines[idx], forceHeader) {
			idx++
			continue
		}

		idx++
		for idx < len(lines) && !strings.Contains(lines[idx], "----") {
			idx++
		}
		idx++

		blockMax := 0.0
		foundRow := false
		for idx < len(lines) {
			row := strings.TrimSpace(lines[idx])
			if row == "" || strings.Contains(row, "----") {
				break
			}

			parts := strings.Fields(row)
			if len(parts) < 6 {
				idx++
				continue
			}

			force := make([]float64, 0, 3)
			for _, tok := range parts[len(parts)-3:] {
				v, err := strconv.ParseFloat(tok, 64)
				if err != nil {
					break
				}
				force = append(force, v)
			}
			if len(force) != 3 {
				idx++
				continue
			}

			foundRow = true
			if norm := floats.Norm(force, 2); norm > blockMax {
				blockMax = norm
			}
			idx++
		}

		if foundRow {
			maxima = append(maxima, blockMax)
		}
		idx++
	}

	return maxima
}

// scanMagnetization returns the last magnetization table for the given axis,
// or nil when the file has none. Numbered rows contribute their last column
// as the site moment; the block terminates at the "tot" row (whose last
// column is the total moment) or at a blank line.
func scanMagnetization(lines []string, axis string) *vasp.Magnetization {
	header := "magnetization (" + strings.ToLower(axis) + ")"
	var latest *vasp.Magnetization
	idx := 0

	for idx < len(lines) {
		if strings.ToLower(strings.TrimSpace(lines[idx])) != header {
			idx++
			continue
		}

		idx++
		for idx < len(lines) && !strings.Contains(lines[idx], "----") {
			idx++
		}
		if idx >= len(lines) {
			break
		}
		idx++

		var siteMoments []float64
		var totalMoment *float64

		for idx < len(lines) {
			row := strings.TrimSpace(lines[idx])
			if row == "" {
				break
			}
			if strings.Contains(row, "----") || strings.HasPrefix(strings.ToLower(row), "# of ion") {
				idx++
				continue
			}

			parts := strings.Fields(row)
			if len(parts) == 0 {
				break
			}

			if strings.ToLower(parts[0]) == "tot" {
				if v, err := strconv.ParseFloat(parts[len(parts)-1], 64); err == nil {
					totalMoment = &v
				}
				break
			}

			if _, err := strconv.Atoi(parts[0]); err == nil {
				if v, perr := strconv.ParseFloat(parts[len(parts)-1], 64); perr == nil {
					siteMoments = append(siteMoments, v)
				}
				idx++
				continue
			}

			break
		}

		latest = &vasp.Magnetization{
			Axis:           strings.ToLower(axis),
			TotalMomentMuB: totalMoment,
			SiteMomentsMuB: siteMoments,
		}
		idx++
	}

	return latest
}
