// Package tabular builds transport-neutral CSV text from chart-ready OUTCAR
// datasets with a deterministic newline and cell-formatting policy.
package tabular

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/slab-tools/slab/internal/vasp"
)

// Dataset names accepted by Export.
const (
	DatasetConvergenceProfile = "convergence_profile"
	DatasetIonicSeries        = "ionic_series"
)

// Delimiters maps delimiter names to runes.
var Delimiters = map[string]rune{
	"comma":     ',',
	"tab":       '\t',
	"semicolon": ';',
}

// Export is a rendered tabular dataset plus metadata for the caller.
type Export struct {
	SourcePath   string   `json:"source_path"`
	Dataset      string   `json:"dataset"`
	Format       string   `json:"format"`
	Delimiter    string   `json:"delimiter"`
	FilenameHint string   `json:"filename_hint"`
	NRows        int      `json:"n_rows"`
	Content      string   `json:"content"`
	Warnings     []string `json:"warnings"`
}

// BuildCSVText renders headers and rows as CSV with "\n" line endings.
// Nil cells render empty; floats use up-to-12-significant-digit notation.
func BuildCSVText(headers []string, rows [][]any, delimiter rune) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = delimiter

	if err := w.Write(headers); err != nil {
		return "", err
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = serializeCell(cell)
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return sb.String(), w.Error()
}

// ConvergenceProfileExport renders a convergence profile as CSV.
func ConvergenceProfileExport(sourcePath string, profile vasp.ConvergenceProfile, warnings []string, delimiterName string) (*Export, error) {
	delim, err := delimiterFor(delimiterName)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(profile.Points))
	for _, p := range profile.Points {
		rows = append(rows, []any{p.IonicStep, p.TotalEnergyEV, p.DeltaEnergyEV, p.RelativeEnergyEV})
	}

	content, err := BuildCSVText(
		[]string{"ionic_step", "total_energy_ev", "delta_energy_ev", "relative_energy_ev"},
		rows, delim,
	)
	if err != nil {
		return nil, err
	}

	return &Export{
		SourcePath:   sourcePath,
		Dataset:      DatasetConvergenceProfile,
		Format:       "csv",
		Delimiter:    delimiterName,
		FilenameHint: "convergence_profile.csv",
		NRows:        len(rows),
		Content:      content,
		Warnings:     warnings,
	}, nil
}

// IonicSeriesExport renders an ionic series as CSV.
func IonicSeriesExport(series *vasp.IonicSeries, delimiterName string) (*Export, error) {
	delim, err := delimiterFor(delimiterName)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(series.Points))
	for _, p := range series.Points {
		rows = append(rows, []any{
			p.IonicStep, p.TotalEnergyEV, p.DeltaEnergyEV, p.RelativeEnergyEV,
			p.MaxForceEVPerA, p.ExternalPressureKb, p.FermiEnergyEV,
		})
	}

	content, err := BuildCSVText(
		[]string{
			"ionic_step", "total_energy_ev", "delta_energy_ev", "relative_energy_ev",
			"max_force_ev_per_a", "external_pressure_kb", "fermi_energy_ev",
		},
		rows, delim,
	)
	if err != nil {
		return nil, err
	}

	return &Export{
		SourcePath:   series.SourcePath,
		Dataset:      DatasetIonicSeries,
		Format:       "csv",
		Delimiter:    delimiterName,
		FilenameHint: "ionic_series.csv",
		NRows:        len(rows),
		Content:      content,
		Warnings:     series.Warnings,
	}, nil
}

func delimiterFor(name string) (rune, error) {
	if name == "" {
		name = "comma"
	}
	delim, ok := Delimiters[name]
	if !ok {
		return 0, vasp.NewValidationError(vasp.CodeValidation, "unknown delimiter: %s (want comma, tab or semicolon)", name)
	}
	return delim, nil
}

func serializeCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case *float64:
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'g', 12, 64)
	case float64:
		return strconv.FormatFloat(v, 'g', 12, 64)
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
