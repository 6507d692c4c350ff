package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/slab-tools/slab/internal/vasp"
)

// writeOutcar writes a minimal two-step OUTCAR with the given system name,
// final energy and maximum force, and returns its path.
func writeOutcar(t *testing.T, dir, name string, finalEnergyEV, maxForce float64) string {
	t.Helper()
	text := fmt.Sprintf(`   SYSTEM = %s
  free  energy   TOTEN  =       %.8f eV
  free  energy   TOTEN  =       %.8f eV

 POSITION                                       TOTAL-FORCE (eV/Angst)
 ------------------------------------------------------------------
      0.0      0.0      0.0         %.6f      0.000000      0.000000
 ------------------------------------------------------------------

 E-fermi :   4.0000     XC(G=0):  -9.0000
`, name, finalEnergyEV+0.00001, finalEnergyEV, maxForce)

	path := filepath.Join(dir, name, "OUTCAR")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSummarizeAll(t *testing.T) {
	dir := t.TempDir()
	good1 := writeOutcar(t, dir, "run-a", -20.0, 0.01)
	good2 := writeOutcar(t, dir, "run-b", -21.5, 0.01)
	missing := filepath.Join(dir, "run-c", "OUTCAR")

	report := SummarizeAll([]string{good1, missing, good2}, false)

	if report.ReportID == "" {
		t.Error("expected a report ID")
	}
	if report.TotalCount != 3 || report.SuccessCount != 2 || report.ErrorCount != 1 {
		t.Errorf("unexpected counts: %d/%d/%d", report.TotalCount, report.SuccessCount, report.ErrorCount)
	}
	if len(report.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(report.Rows))
	}

	t.Run("order matches input", func(t *testing.T) {
		if report.Rows[0].SystemName != "run-a" || report.Rows[2].SystemName != "run-b" {
			t.Errorf("rows out of order: %+v", report.Rows)
		}
	})

	t.Run("failed row carries a typed error", func(t *testing.T) {
		row := report.Rows[1]
		if row.Status != StatusError {
			t.Fatalf("expected error status, got %s", row.Status)
		}
		if row.OutcarPath != missing {
			t.Errorf("expected the original path on the error row, got %s", row.OutcarPath)
		}
		if row.Error == nil || row.Error.Code != vasp.CodeFileNotFound {
			t.Errorf("expected FILE_NOT_FOUND, got %v", row.Error)
		}
	})

	t.Run("successful row carries scalars", func(t *testing.T) {
		row := report.Rows[0]
		if row.Status != StatusOK || row.IonicSteps != 2 {
			t.Errorf("unexpected row: %+v", row)
		}
		if row.FinalTotalEnergyEV == nil || *row.FinalTotalEnergyEV != -20.0 {
			t.Errorf("expected final energy -20.0, got %v", row.FinalTotalEnergyEV)
		}
	})
}

func TestSummarizeAll_FailFast(t *testing.T) {
	dir := t.TempDir()
	good := writeOutcar(t, dir, "run-a", -20.0, 0.01)
	missing := filepath.Join(dir, "nope", "OUTCAR")

	report := SummarizeAll([]string{missing, good}, true)

	if report.TotalCount != 1 || report.ErrorCount != 1 || report.SuccessCount != 0 {
		t.Errorf("expected a single error row, got %d/%d/%d",
			report.TotalCount, report.SuccessCount, report.ErrorCount)
	}
}

func TestDiagnoseAll(t *testing.T) {
	dir := t.TempDir()
	converged := writeOutcar(t, dir, "tight", -20.0, 0.01)
	looseForces := writeOutcar(t, dir, "loose", -21.0, 0.8)

	report := DiagnoseAll([]string{converged, looseForces}, 1e-4, 0.02, false)

	if report.SuccessCount != 2 {
		t.Fatalf("expected 2 successful rows, got %d", report.SuccessCount)
	}

	first := report.Rows[0]
	if first.IsConverged == nil || !*first.IsConverged {
		t.Errorf("expected the tight run to be converged: %+v", first)
	}

	second := report.Rows[1]
	if second.IsForceConverged == nil || *second.IsForceConverged {
		t.Errorf("expected the loose run to fail the force check: %+v", second)
	}
	if second.IsConverged == nil || *second.IsConverged {
		t.Errorf("expected the loose run to be not converged: %+v", second)
	}
}

func TestBuildInsights(t *testing.T) {
	dir := t.TempDir()
	pathA := writeOutcar(t, dir, "a", -10.0, 0.01)
	pathB := writeOutcar(t, dir, "b", -30.0, 0.01)
	pathC := writeOutcar(t, dir, "c", -20.0, 0.9)
	missing := filepath.Join(dir, "gone", "OUTCAR")

	report := BuildInsights([]string{pathA, pathB, pathC, missing}, 1e-4, 0.02, 2, false)

	t.Run("counts", func(t *testing.T) {
		if report.TotalCount != 4 || report.SuccessCount != 3 || report.ErrorCount != 1 {
			t.Errorf("unexpected counts: %d/%d/%d", report.TotalCount, report.SuccessCount, report.ErrorCount)
		}
		if report.ConvergedCount != 2 || report.NotConvergedCount != 1 || report.UnknownConvergenceCount != 0 {
			t.Errorf("unexpected convergence counts: %d/%d/%d",
				report.ConvergedCount, report.NotConvergedCount, report.UnknownConvergenceCount)
		}
	})

	t.Run("energy statistics", func(t *testing.T) {
		if report.EnergyMinEV == nil || *report.EnergyMinEV != -30.0 {
			t.Errorf("expected min -30, got %v", report.EnergyMinEV)
		}
		if report.EnergyMaxEV == nil || *report.EnergyMaxEV != -10.0 {
			t.Errorf("expected max -10, got %v", report.EnergyMaxEV)
		}
		if report.EnergyMeanEV == nil || *report.EnergyMeanEV != -20.0 {
			t.Errorf("expected mean -20, got %v", report.EnergyMeanEV)
		}
		if report.EnergySpanEV == nil || *report.EnergySpanEV != 20.0 {
			t.Errorf("expected span 20, got %v", report.EnergySpanEV)
		}
	})

	t.Run("top ranking honors topN", func(t *testing.T) {
		if len(report.TopLowestEnergy) != 2 {
			t.Fatalf("expected 2 ranked runs, got %d", len(report.TopLowestEnergy))
		}
		if report.TopLowestEnergy[0].Rank != 1 || report.TopLowestEnergy[0].SystemName != "b" {
			t.Errorf("expected run b first, got %+v", report.TopLowestEnergy[0])
		}
		if report.TopLowestEnergy[1].SystemName != "c" {
			t.Errorf("expected run c second, got %+v", report.TopLowestEnergy[1])
		}
	})
}

func TestBuildInsights_UnknownConvergence(t *testing.T) {
	dir := t.TempDir()

	// A single-step run with no force table: neither sub-check is evaluable.
	path := filepath.Join(dir, "OUTCAR")
	text := `   SYSTEM = sparse
  free  energy   TOTEN  =       -5.00000000 eV
`
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	report := BuildInsights([]string{path}, 1e-4, 0.02, 0, false)
	if report.UnknownConvergenceCount != 1 {
		t.Errorf("expected 1 unknown-convergence row, got %d", report.UnknownConvergenceCount)
	}
	if len(report.Rows) != 1 || report.Rows[0].IsConverged != nil {
		t.Errorf("expected a tri-state nil flag, got %+v", report.Rows)
	}
}
