package outcar

import (
	"testing"
)

func TestParseIonicSeriesText(t *testing.T) {
	series, err := ParseIonicSeriesText(relaxationFixture, "/runs/si/OUTCAR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.SourcePath != "/runs/si/OUTCAR" {
		t.Errorf("expected source path /runs/si/OUTCAR, got %s", series.SourcePath)
	}
	if len(series.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(series.Points))
	}

	t.Run("first step", func(t *testing.T) {
		p := series.Points[0]
		if p.IonicStep != 1 {
			t.Errorf("expected step 1, got %d", p.IonicStep)
		}
		if !approxEqual(p.TotalEnergyEV, -19.9) {
			t.Errorf("expected energy -19.9, got %v", p.TotalEnergyEV)
		}
		if p.DeltaEnergyEV != nil {
			t.Errorf("expected no delta on the first step, got %v", *p.DeltaEnergyEV)
		}
		if !approxEqual(p.RelativeEnergyEV, 0.10005) {
			t.Errorf("expected relative energy 0.10005, got %v", p.RelativeEnergyEV)
		}
		if p.MaxForceEVPerA == nil || !approxEqual(*p.MaxForceEVPerA, 0.05) {
			t.Errorf("expected max force 0.05, got %v", p.MaxForceEVPerA)
		}
		if p.ExternalPressureKb == nil || !approxEqual(*p.ExternalPressureKb, -12.34) {
			t.Errorf("expected pressure -12.34, got %v", p.ExternalPressureKb)
		}
		if p.FermiEnergyEV == nil || !approxEqual(*p.FermiEnergyEV, 4.1) {
			t.Errorf("expected fermi 4.1, got %v", p.FermiEnergyEV)
		}
	})

	t.Run("second step", func(t *testing.T) {
		p := series.Points[1]
		if p.IonicStep != 2 {
			t.Errorf("expected step 2, got %d", p.IonicStep)
		}
		if p.DeltaEnergyEV == nil || !approxEqual(*p.DeltaEnergyEV, -0.10005) {
			t.Errorf("expected delta -0.10005, got %v", p.DeltaEnergyEV)
		}
		if !approxEqual(p.RelativeEnergyEV, 0) {
			t.Errorf("expected relative energy 0, got %v", p.RelativeEnergyEV)
		}
		if p.MaxForceEVPerA == nil || !approxEqual(*p.MaxForceEVPerA, 0.01) {
			t.Errorf("expected max force 0.01, got %v", p.MaxForceEVPerA)
		}
		if p.FermiEnergyEV == nil || !approxEqual(*p.FermiEnergyEV, 4.25) {
			t.Errorf("expected fermi 4.25, got %v", p.FermiEnergyEV)
		}
	})
}

func TestParseIonicSeriesText_ShortSideLists(t *testing.T) {
	// Two energy steps, but the force table and pressure only appear once.
	text := `   SYSTEM = partial run
  free  energy   TOTEN  =       -10.00000000 eV
  external pressure =        5.00 kB  Pullay stress =        0.00 kB

 POSITION                                       TOTAL-FORCE (eV/Angst)
 ------------------------------------------------------------------
      0.0      0.0      0.0         0.000000      0.000000      0.250000
 ------------------------------------------------------------------

  free  energy   TOTEN  =       -10.50000000 eV
 E-fermi :   2.0000     XC(G=0):  -1.0000
`
	series, err := ParseIonicSeriesText(text, "OUTCAR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(series.Points))
	}

	first, second := series.Points[0], series.Points[1]
	if first.MaxForceEVPerA == nil || !approxEqual(*first.MaxForceEVPerA, 0.25) {
		t.Errorf("expected force 0.25 on step 1, got %v", first.MaxForceEVPerA)
	}
	if second.MaxForceEVPerA != nil {
		t.Errorf("expected no force on step 2, got %v", *second.MaxForceEVPerA)
	}
	if second.ExternalPressureKb != nil {
		t.Errorf("expected no pressure on step 2, got %v", *second.ExternalPressureKb)
	}
	if second.FermiEnergyEV != nil {
		t.Errorf("expected no fermi on step 2 (single entry aligns to step 1), got %v", *second.FermiEnergyEV)
	}
}

func TestAlignSeries(t *testing.T) {
	values := []float64{1.5, 2.5}

	if v := alignSeries(values, 0); v == nil || *v != 1.5 {
		t.Errorf("expected 1.5 at index 0, got %v", v)
	}
	if v := alignSeries(values, 2); v != nil {
		t.Errorf("expected nil past the end, got %v", *v)
	}
	if v := alignSeries(nil, 0); v != nil {
		t.Errorf("expected nil for empty list, got %v", *v)
	}
}
