package tabular

import (
	"strings"
	"testing"

	"github.com/slab-tools/slab/internal/vasp"
)

func TestBuildCSVText(t *testing.T) {
	t.Run("nil cells render empty", func(t *testing.T) {
		var absent *float64
		content, err := BuildCSVText(
			[]string{"step", "energy", "delta"},
			[][]any{
				{1, -19.9, absent},
				{2, -20.0, vasp.Float(-0.1)},
			},
			',',
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "step,energy,delta\n1,-19.9,\n2,-20,-0.1\n"
		if content != want {
			t.Errorf("expected %q, got %q", want, content)
		}
	})

	t.Run("tab delimiter", func(t *testing.T) {
		content, err := BuildCSVText([]string{"a", "b"}, [][]any{{1, 2}}, '\t')
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if content != "a\tb\n1\t2\n" {
			t.Errorf("unexpected content: %q", content)
		}
	})

	t.Run("significant digits", func(t *testing.T) {
		content, err := BuildCSVText([]string{"v"}, [][]any{{-20.000050001234}}, ',')
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(content, "-20.0000500012") {
			t.Errorf("expected 12 significant digits, got %q", content)
		}
	})
}

func TestConvergenceProfileExport(t *testing.T) {
	profile := vasp.ConvergenceProfile{
		Points: []vasp.ConvergenceProfilePoint{
			{IonicStep: 1, TotalEnergyEV: -19.9, RelativeEnergyEV: 0.1},
			{IonicStep: 2, TotalEnergyEV: -20.0, DeltaEnergyEV: vasp.Float(-0.1), RelativeEnergyEV: 0},
		},
	}

	export, err := ConvergenceProfileExport("/runs/si/OUTCAR", profile, []string{"w1"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if export.Dataset != DatasetConvergenceProfile || export.Format != "csv" {
		t.Errorf("unexpected identity: %+v", export)
	}
	if export.FilenameHint != "convergence_profile.csv" {
		t.Errorf("unexpected filename hint: %s", export.FilenameHint)
	}
	if export.NRows != 2 {
		t.Errorf("expected 2 rows, got %d", export.NRows)
	}
	if len(export.Warnings) != 1 || export.Warnings[0] != "w1" {
		t.Errorf("warnings not carried: %v", export.Warnings)
	}

	lines := strings.Split(strings.TrimRight(export.Content, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %v", lines)
	}
	if lines[0] != "ionic_step,total_energy_ev,delta_energy_ev,relative_energy_ev" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if lines[1] != "1,-19.9,,0.1" {
		t.Errorf("unexpected first row: %s", lines[1])
	}
}

func TestIonicSeriesExport(t *testing.T) {
	series := &vasp.IonicSeries{
		SourcePath: "/runs/si/OUTCAR",
		Points: []vasp.IonicSeriesPoint{
			{
				IonicStep:        1,
				TotalEnergyEV:    -20.0,
				RelativeEnergyEV: 0,
				MaxForceEVPerA:   vasp.Float(0.05),
				FermiEnergyEV:    vasp.Float(4.25),
			},
		},
	}

	export, err := IonicSeriesExport(series, "semicolon")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if export.Dataset != DatasetIonicSeries || export.Delimiter != "semicolon" {
		t.Errorf("unexpected identity: %+v", export)
	}
	if export.FilenameHint != "ionic_series.csv" {
		t.Errorf("unexpected filename hint: %s", export.FilenameHint)
	}

	lines := strings.Split(strings.TrimRight(export.Content, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus 1 row, got %v", lines)
	}
	if lines[1] != "1;-20;;0;0.05;;4.25" {
		t.Errorf("unexpected row: %s", lines[1])
	}
}

func TestDelimiterFor_Unknown(t *testing.T) {
	_, err := IonicSeriesExport(&vasp.IonicSeries{}, "pipe")
	if !vasp.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := "unknown delimiter: pipe (want comma, tab or semicolon)"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
