package electronic

import (
	"math"
	"testing"

	"github.com/slab-tools/slab/internal/vasp"
)

// nonSpinEigenval has 2 k-points and 4 bands in a single channel. VBM 2.2
// and CBM 3.5 both sit on k-point 1, so the 1.3 eV gap is direct.
const nonSpinEigenval = `    2    2    1    1
  0.1183000E+02  0.3866975E-09  0.3866975E-09  0.3866975E-09  0.5000000E-15
  1.0000000000000000E-004
  CAR
 Si bulk
      8      2      4

  0.0000000E+00  0.0000000E+00  0.0000000E+00  0.5000000E+00
    1      -5.000000   2.000000
    2       2.200000   2.000000
    3       3.500000   0.000000
    4       6.000000   0.000000

  0.5000000E+00  0.5000000E+00  0.0000000E+00  0.5000000E+00
    1      -4.800000   2.000000
    2       2.000000   2.000000
    3       3.800000   0.000000
    4       6.500000   0.000000
`

// spinEigenval has one k-point and 3 bands with separate up/down columns.
// The up channel has a 1.5 eV gap; the down channel has an occupied and an
// unoccupied state at the same energy, making it metallic.
const spinEigenval = `    2    2    1    2
  0.1183000E+02  0.3866975E-09  0.3866975E-09  0.3866975E-09  0.5000000E-15
  1.0000000000000000E-004
  CAR
 Fe bcc
     16      1      3

  0.0000000E+00  0.0000000E+00  0.0000000E+00  1.0000000E+00
    1      -3.000000  -3.100000   1.000000   1.000000
    2       1.000000   1.000000   1.000000   1.000000
    3       2.500000   1.000000   0.000000   0.000000
`

func floatsClose(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestParseEigenvalText_NonSpin(t *testing.T) {
	summary, err := ParseEigenvalText(nonSpinEigenval)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.IsSpinPolarized {
		t.Error("expected a non-spin-polarized run")
	}
	if summary.IsMetal {
		t.Error("expected an insulating run")
	}
	if !floatsClose(summary.FundamentalGapEV, 1.3) {
		t.Errorf("expected gap 1.3, got %v", summary.FundamentalGapEV)
	}
	if !floatsClose(summary.VbmEV, 2.2) || !floatsClose(summary.CbmEV, 3.5) {
		t.Errorf("expected VBM 2.2 / CBM 3.5, got %v / %v", summary.VbmEV, summary.CbmEV)
	}
	if !summary.IsDirect {
		t.Error("expected a direct gap (VBM and CBM on the same k-point)")
	}
	if summary.Channel != vasp.SpinTotal {
		t.Errorf("expected channel %q, got %q", vasp.SpinTotal, summary.Channel)
	}
	if len(summary.Channels) != 1 {
		t.Fatalf("expected 1 channel, got %d", len(summary.Channels))
	}
	if summary.Channels[0].KPointIndexVbm != 1 || summary.Channels[0].KPointIndexCbm != 1 {
		t.Errorf("expected both extrema on k-point 1, got %+v", summary.Channels[0])
	}
}

func TestParseEigenvalText_SpinPolarizedMetal(t *testing.T) {
	summary, err := ParseEigenvalText(spinEigenval)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.IsSpinPolarized {
		t.Error("expected a spin-polarized run")
	}
	if !summary.IsMetal {
		t.Error("expected the down channel to make the run metallic")
	}
	if summary.Channel != vasp.SpinDown {
		t.Errorf("expected the metallic channel to be representative, got %q", summary.Channel)
	}
	if !floatsClose(summary.FundamentalGapEV, 0) {
		t.Errorf("expected zero gap, got %v", summary.FundamentalGapEV)
	}

	if len(summary.Channels) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(summary.Channels))
	}
	up := summary.Channels[0]
	if up.Spin != vasp.SpinUp || up.IsMetal {
		t.Errorf("expected a gapped up channel, got %+v", up)
	}
	if !floatsClose(up.GapEV, 1.5) {
		t.Errorf("expected up gap 1.5, got %v", up.GapEV)
	}
}

func TestParseEigenvalText_Errors(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		_, err := ParseEigenvalText("header\n")
		if err == nil || !vasp.IsParseError(err) {
			t.Errorf("expected PARSE_ERROR, got %v", err)
		}
	})

	t.Run("bad counts line", func(t *testing.T) {
		text := "a\nb\nc\nd\ne\nonly-one-field\n\n\n"
		_, err := ParseEigenvalText(text)
		if err == nil || !vasp.IsParseError(err) {
			t.Errorf("expected PARSE_ERROR, got %v", err)
		}
	})

	t.Run("truncated band block", func(t *testing.T) {
		text := `a
b
c
d
e
      8      1      4
  0.0000000E+00  0.0000000E+00  0.0000000E+00  0.5000000E+00
    1      -5.000000   2.000000
`
		_, err := ParseEigenvalText(text)
		if err == nil || !vasp.IsParseError(err) {
			t.Errorf("expected PARSE_ERROR, got %v", err)
		}
	})

	t.Run("malformed band row", func(t *testing.T) {
		text := `a
b
c
d
e
      8      1      2
  0.0000000E+00  0.0000000E+00  0.0000000E+00  0.5000000E+00
    1      -5.000000   2.000000   extra
    2       1.000000   0.000000
`
		_, err := ParseEigenvalText(text)
		if err == nil || !vasp.IsParseError(err) {
			t.Errorf("expected PARSE_ERROR, got %v", err)
		}
	})
}
