// Package vasp defines the immutable value objects shared by the OUTCAR,
// EIGENVAL and DOSCAR parsers, the error taxonomy for parse/IO failures, and
// the common file reader. Every value here is constructed once by a parse or
// analysis call and never mutated afterward.
package vasp

// EnergyPoint is one total-energy sample from an ionic step. Step numbers
// are 1-based and assigned by occurrence order in the file, not read from it.
type EnergyPoint struct {
	IonicStep     int     `json:"ionic_step"`
	TotalEnergyEV float64 `json:"total_energy_ev"`
}

// Summary holds the converged scalar diagnostics extracted from an OUTCAR.
//
// Invariants: IonicSteps == len(EnergyHistory), and FinalTotalEnergyEV equals
// the last history entry's energy whenever the history is non-empty.
type Summary struct {
	SourcePath           string        `json:"source_path"`
	SystemName           string        `json:"system_name,omitempty"`
	NIons                *int          `json:"nions,omitempty"`
	IonicSteps           int           `json:"ionic_steps"`
	ElectronicIterations int           `json:"electronic_iterations"`
	FinalTotalEnergyEV   *float64      `json:"final_total_energy_ev,omitempty"`
	FinalFermiEnergyEV   *float64      `json:"final_fermi_energy_ev,omitempty"`
	MaxForceEVPerA       *float64      `json:"max_force_ev_per_a,omitempty"`
	EnergyHistory        []EnergyPoint `json:"energy_history"`
	Warnings             []string      `json:"warnings"`
}

// StressTensor holds the six symmetric stress components in kilobar from the
// final reported "in kB" snapshot.
type StressTensor struct {
	XXKb float64 `json:"xx_kb"`
	YYKb float64 `json:"yy_kb"`
	ZZKb float64 `json:"zz_kb"`
	XYKb float64 `json:"xy_kb"`
	YZKb float64 `json:"yz_kb"`
	ZXKb float64 `json:"zx_kb"`
}

// Magnetization is the final per-site magnetization snapshot for one axis.
// Site moments appear in site-index order.
type Magnetization struct {
	Axis           string    `json:"axis"`
	TotalMomentMuB *float64  `json:"total_moment_mu_b,omitempty"`
	SiteMomentsMuB []float64 `json:"site_moments_mu_b"`
}

// Observables extends a Summary with stress, pressure and magnetization,
// all with last-occurrence semantics.
type Observables struct {
	SourcePath         string         `json:"source_path"`
	Summary            Summary        `json:"summary"`
	ExternalPressureKb *float64       `json:"external_pressure_kb,omitempty"`
	StressTensorKb     *StressTensor  `json:"stress_tensor_kb,omitempty"`
	Magnetization      *Magnetization `json:"magnetization,omitempty"`
	Warnings           []string       `json:"warnings"`
}

// ConvergenceReport is the three-way convergence verdict for one run.
//
// IsConverged is a strict boolean: it is true only when both sub-flags are
// explicitly true. An absent sub-flag makes it false; callers needing
// indeterminate semantics must inspect the sub-flags.
type ConvergenceReport struct {
	EnergyToleranceEV    float64  `json:"energy_tolerance_ev"`
	ForceToleranceEVPerA float64  `json:"force_tolerance_ev_per_a"`
	FinalEnergyChangeEV  *float64 `json:"final_energy_change_ev,omitempty"`
	IsEnergyConverged    *bool    `json:"is_energy_converged,omitempty"`
	IsForceConverged     *bool    `json:"is_force_converged,omitempty"`
	IsConverged          bool     `json:"is_converged"`
}

// ConvergenceProfilePoint is one chart-ready row of the energy history.
type ConvergenceProfilePoint struct {
	IonicStep        int      `json:"ionic_step"`
	TotalEnergyEV    float64  `json:"total_energy_ev"`
	DeltaEnergyEV    *float64 `json:"delta_energy_ev,omitempty"`
	RelativeEnergyEV float64  `json:"relative_energy_ev"`
}

// ConvergenceProfile is the full chart-ready energy series.
type ConvergenceProfile struct {
	Points []ConvergenceProfilePoint `json:"points"`
}

// Diagnostics combines observables with a convergence report for one run.
type Diagnostics struct {
	SourcePath         string             `json:"source_path"`
	Summary            Summary            `json:"summary"`
	ExternalPressureKb *float64           `json:"external_pressure_kb,omitempty"`
	StressTensorKb     *StressTensor      `json:"stress_tensor_kb,omitempty"`
	Magnetization      *Magnetization     `json:"magnetization,omitempty"`
	Convergence        ConvergenceReport  `json:"convergence"`
	Warnings           []string           `json:"warnings"`
}

// IonicSeriesPoint correlates the per-step signals for one ionic step. Any
// optional field is nil when that signal's block count does not reach this
// step index.
type IonicSeriesPoint struct {
	IonicStep          int      `json:"ionic_step"`
	TotalEnergyEV      float64  `json:"total_energy_ev"`
	DeltaEnergyEV      *float64 `json:"delta_energy_ev,omitempty"`
	RelativeEnergyEV   float64  `json:"relative_energy_ev"`
	MaxForceEVPerA     *float64 `json:"max_force_ev_per_a,omitempty"`
	ExternalPressureKb *float64 `json:"external_pressure_kb,omitempty"`
	FermiEnergyEV      *float64 `json:"fermi_energy_ev,omitempty"`
}

// IonicSeries is the per-step multi-metric series for charting and export.
type IonicSeries struct {
	SourcePath string             `json:"source_path"`
	Points     []IonicSeriesPoint `json:"points"`
	Warnings   []string           `json:"warnings"`
}

// Spin channel labels used by BandGapChannel.
const (
	SpinTotal = "total"
	SpinUp    = "up"
	SpinDown  = "down"
)

// BandGapChannel is the gap classification for one spin channel.
type BandGapChannel struct {
	Spin           string  `json:"spin"`
	GapEV          float64 `json:"gap_ev"`
	VbmEV          float64 `json:"vbm_ev"`
	CbmEV          float64 `json:"cbm_ev"`
	IsDirect       bool    `json:"is_direct"`
	KPointIndexVbm int     `json:"kpoint_index_vbm"`
	KPointIndexCbm int     `json:"kpoint_index_cbm"`
	IsMetal        bool    `json:"is_metal"`
}

// BandGapSummary is the overall gap classification. The representative
// channel is the first metallic channel when any exists, otherwise the
// channel with the smallest gap.
type BandGapSummary struct {
	IsSpinPolarized  bool             `json:"is_spin_polarized"`
	IsMetal          bool             `json:"is_metal"`
	FundamentalGapEV float64          `json:"fundamental_gap_ev"`
	VbmEV            float64          `json:"vbm_ev"`
	CbmEV            float64          `json:"cbm_ev"`
	IsDirect         bool             `json:"is_direct"`
	Channel          string           `json:"channel"`
	Channels         []BandGapChannel `json:"channels"`
}

// DosMetadata holds the DOSCAR header values and derived scalars.
type DosMetadata struct {
	EnergyMinEV      float64  `json:"energy_min_ev"`
	EnergyMaxEV      float64  `json:"energy_max_ev"`
	Nedos            int      `json:"nedos"`
	EfermiEV         float64  `json:"efermi_ev"`
	IsSpinPolarized  bool     `json:"is_spin_polarized"`
	HasIntegratedDos bool     `json:"has_integrated_dos"`
	EnergyStepEV     *float64 `json:"energy_step_ev,omitempty"`
	TotalDosAtFermi  float64  `json:"total_dos_at_fermi"`
}

// DosProfilePoint is one plotting-friendly total-DOS sample.
type DosProfilePoint struct {
	Index            int     `json:"index"`
	EnergyEV         float64 `json:"energy_ev"`
	EnergyRelativeEV float64 `json:"energy_relative_ev"`
	DosTotal         float64 `json:"dos_total"`
}

// DosProfile is a windowed, optionally downsampled total-DOS series.
type DosProfile struct {
	SourcePath     string            `json:"source_path"`
	EfermiEV       float64           `json:"efermi_ev"`
	EnergyWindowEV float64           `json:"energy_window_ev"`
	Points         []DosProfilePoint `json:"points"`
	Warnings       []string          `json:"warnings"`
}

// ElectronicMetadata combines the band-gap and DOS views for one run. A
// missing input file yields a warning, not an error.
type ElectronicMetadata struct {
	EigenvalPath string          `json:"eigenval_path,omitempty"`
	DoscarPath   string          `json:"doscar_path,omitempty"`
	BandGap      *BandGapSummary `json:"band_gap,omitempty"`
	DosMetadata  *DosMetadata    `json:"dos_metadata,omitempty"`
	Warnings     []string        `json:"warnings"`
}

// Float returns a pointer to v. Used when populating optional fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// DedupWarnings removes duplicate warning strings while preserving the order
// of first occurrence.
func DedupWarnings(warnings []string) []string {
	seen := make(map[string]struct{}, len(warnings))
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
