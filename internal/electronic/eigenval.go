// Package electronic extracts band-gap and density-of-states views from
// EIGENVAL and DOSCAR files: the fixed six-line preambles, the repeating
// k-point/band blocks and the total-DOS table.
package electronic

import (
	"strconv"
	"strings"

	"github.com/slab-tools/slab/internal/vasp"
)

const (
	// occupationThreshold separates occupied from unoccupied states.
	occupationThreshold = 1e-3

	// metallicGapThresholdEV is the gap below which a channel counts as
	// metallic.
	metallicGapThresholdEV = 1e-6
)

// state is one (energy, occupation, k-index) sample for a spin channel.
type state struct {
	energyEV   float64
	occupation float64
	kIndex     int
}

// ParseEigenvalFile reads an EIGENVAL file and computes the spin-resolved
// band-gap summary.
func ParseEigenvalFile(path string) (*vasp.BandGapSummary, error) {
	text, err := vasp.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseEigenvalText(text)
}

// ParseEigenvalText parses EIGENVAL text: a six-line preamble whose last
// line carries the k-point and band counts, then one block per k-point (a
// four-field header row followed by exactly bandCount band rows). Three
// columns per band row means a single channel; five or more means separate
// up/down channels.
func ParseEigenvalText(text string) (*vasp.BandGapSummary, error) {
	lines := strings.Split(text, "\n")
	if len(lines) < 8 {
		return nil, vasp.NewParseError("EIGENVAL appears too short")
	}

	nKpoints, nBands, err := parseEigenvalCounts(lines)
	if err != nil {
		return nil, err
	}

	var channels [][]state
	idx := 6
	parsedKpoints := 0

	for idx < len(lines) && parsedKpoints < nKpoints {
		if strings.TrimSpace(lines[idx]) == "" {
			idx++
			continue
		}

		kparts := strings.Fields(lines[idx])
		if len(kparts) < 4 || !allFloat(kparts[:4]) {
			idx++
			continue
		}

		parsedKpoints++
		idx++

		for band := 0; band < nBands; band++ {
			if idx >= len(lines) {
				return nil, vasp.NewParseError("EIGENVAL ended before all bands were parsed")
			}
			row := strings.Fields(lines[idx])
			idx++

			switch {
			case len(row) == 0:
				continue
			case len(row) == 3:
				// band_index, eigenvalue, occupation
				channels = ensureChannels(channels, 1)
				energy, err1 := strconv.ParseFloat(row[1], 64)
				occ, err2 := strconv.ParseFloat(row[2], 64)
				if err1 != nil || err2 != nil {
					return nil, vasp.NewParseError("unexpected EIGENVAL band row format: %s", strings.Join(row, " "))
				}
				channels[0] = append(channels[0], state{energy, occ, parsedKpoints})
			case len(row) >= 5:
				// band_index, eig_up, eig_dn, occ_up, occ_dn
				channels = ensureChannels(channels, 2)
				eUp, err1 := strconv.ParseFloat(row[1], 64)
				eDn, err2 := strconv.ParseFloat(row[2], 64)
				occUp, err3 := strconv.ParseFloat(row[3], 64)
				occDn, err4 := strconv.ParseFloat(row[4], 64)
				if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
					return nil, vasp.NewParseError("unexpected EIGENVAL band row format: %s", strings.Join(row, " "))
				}
				channels[0] = append(channels[0], state{eUp, occUp, parsedKpoints})
				channels[1] = append(channels[1], state{eDn, occDn, parsedKpoints})
			default:
				return nil, vasp.NewParseError("unexpected EIGENVAL band row format: %s", strings.Join(row, " "))
			}
		}
	}

	if parsedKpoints == 0 || len(channels) == 0 {
		return nil, vasp.NewParseError("unable to parse k-point/band data from EIGENVAL")
	}

	spinLabels := []string{vasp.SpinTotal}
	if len(channels) == 2 {
		spinLabels = []string{vasp.SpinUp, vasp.SpinDown}
	}

	summaries := make([]vasp.BandGapChannel, 0, len(channels))
	for i, data := range channels {
		channel, err := buildChannelGap(spinLabels[i], data)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, channel)
	}

	representative := summaries[0]
	isMetal := false
	for _, c := range summaries {
		if c.IsMetal {
			isMetal = true
			representative = c
			break
		}
	}
	if !isMetal {
		for _, c := range summaries[1:] {
			if c.GapEV < representative.GapEV {
				representative = c
			}
		}
	}

	return &vasp.BandGapSummary{
		IsSpinPolarized:  len(summaries) == 2,
		IsMetal:          isMetal,
		FundamentalGapEV: representative.GapEV,
		VbmEV:            representative.VbmEV,
		CbmEV:            representative.CbmEV,
		IsDirect:         representative.IsDirect,
		Channel:          representative.Spin,
		Channels:         summaries,
	}, nil
}

func parseEigenvalCounts(lines []string) (nKpoints, nBands int, err error) {
	counts := strings.Fields(lines[5])
	if len(counts) < 3 {
		return 0, 0, vasp.NewParseError("unable to parse EIGENVAL counts line")
	}

	kf, err1 := strconv.ParseFloat(counts[1], 64)
	bf, err2 := strconv.ParseFloat(counts[2], 64)
	if err1 != nil || err2 != nil {
		return 0, 0, vasp.NewParseError("EIGENVAL counts line contains invalid values")
	}

	nKpoints, nBands = int(kf), int(bf)
	if nKpoints <= 0 || nBands <= 0 {
		return 0, 0, vasp.NewParseError("EIGENVAL counts line has non-positive values")
	}
	return nKpoints, nBands, nil
}

// buildChannelGap classifies one spin channel. VBM is the highest occupied
// state (first occurrence wins ties), CBM the lowest unoccupied state; the
// gap is floored at zero.
func buildChannelGap(spin string, data []state) (vasp.BandGapChannel, error) {
	var occupied, unoccupied []state
	for _, s := range data {
		if s.occupation > occupationThreshold {
			occupied = append(occupied, s)
		} else {
			unoccupied = append(unoccupied, s)
		}
	}

	if len(occupied) == 0 || len(unoccupied) == 0 {
		return vasp.BandGapChannel{}, vasp.NewParseError("insufficient occupied/unoccupied states for spin channel: %s", spin)
	}

	vbm := occupied[0]
	for _, s := range occupied[1:] {
		if s.energyEV > vbm.energyEV {
			vbm = s
		}
	}
	cbm := unoccupied[0]
	for _, s := range unoccupied[1:] {
		if s.energyEV < cbm.energyEV {
			cbm = s
		}
	}

	gap := cbm.energyEV - vbm.energyEV
	if gap < 0 {
		gap = 0
	}

	return vasp.BandGapChannel{
		Spin:           spin,
		GapEV:          gap,
		VbmEV:          vbm.energyEV,
		CbmEV:          cbm.energyEV,
		IsDirect:       vbm.kIndex == cbm.kIndex,
		KPointIndexVbm: vbm.kIndex,
		KPointIndexCbm: cbm.kIndex,
		IsMetal:        gap <= metallicGapThresholdEV,
	}, nil
}

func ensureChannels(channels [][]state, count int) [][]state {
	for len(channels) < count {
		channels = append(channels, nil)
	}
	return channels
}

func allFloat(tokens []string) bool {
	for _, tok := range tokens {
		if _, err := strconv.ParseFloat(tok, 64); err != nil {
			return false
		}
	}
	return true
}
