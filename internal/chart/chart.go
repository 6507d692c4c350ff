// Package chart renders analysis results to PNG files for quick visual
// inspection of relaxation runs and DOS profiles.
package chart

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/slab-tools/slab/internal/vasp"
)

var (
	energyColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	forceColor  = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	fermiColor  = color.RGBA{R: 44, G: 160, B: 44, A: 255}
)

// RenderConvergenceProfile plots per-step total energy against ionic step
// index and writes a PNG to outPath.
func RenderConvergenceProfile(profile *vasp.ConvergenceProfile, systemName, outPath string) error {
	if profile == nil || len(profile.Points) == 0 {
		return vasp.NewValidationError(vasp.CodeValidation, "convergence profile has no points to plot")
	}

	pts := make(plotter.XYs, len(profile.Points))
	for i, point := range profile.Points {
		pts[i].X = float64(point.IonicStep)
		pts[i].Y = point.TotalEnergyEV
	}

	p := plot.New()
	p.Title.Text = chartTitle(systemName, "Energy convergence")
	p.X.Label.Text = "Ionic step"
	p.Y.Label.Text = "Total energy (eV)"
	p.Add(plotter.NewGrid())

	line, scatter, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("building energy series: %w", err)
	}
	line.Color = energyColor
	scatter.Color = energyColor
	p.Add(line, scatter)

	return savePNG(p, outPath)
}

// RenderDosProfile plots a DOS profile with the Fermi energy as the energy
// origin and writes a PNG to outPath.
func RenderDosProfile(profile *vasp.DosProfile, outPath string) error {
	if profile == nil || len(profile.Points) == 0 {
		return vasp.NewValidationError(vasp.CodeValidation, "DOS profile has no points to plot")
	}

	dosPts := make(plotter.XYs, len(profile.Points))
	for i, point := range profile.Points {
		dosPts[i].X = point.EnergyRelativeEV
		dosPts[i].Y = point.DosTotal
	}

	p := plot.New()
	p.Title.Text = "Density of states"
	p.X.Label.Text = "E - E_F (eV)"
	p.Y.Label.Text = "DOS (states/eV)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(dosPts)
	if err != nil {
		return fmt.Errorf("building DOS series: %w", err)
	}
	line.Color = energyColor
	p.Add(line)

	// Vertical marker at the Fermi level.
	fermi := plotter.XYs{{X: 0, Y: 0}, {X: 0, Y: maxY(dosPts)}}
	marker, err := plotter.NewLine(fermi)
	if err != nil {
		return fmt.Errorf("building Fermi marker: %w", err)
	}
	marker.Color = fermiColor
	marker.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(marker)
	p.Legend.Add("E_F", marker)

	return savePNG(p, outPath)
}

// RenderForceProfile plots per-step maximum force magnitude against ionic
// step index and writes a PNG to outPath. Steps without a force table are
// skipped.
func RenderForceProfile(series *vasp.IonicSeries, systemName, outPath string) error {
	if series == nil {
		return vasp.NewValidationError(vasp.CodeValidation, "ionic series has no points to plot")
	}

	var pts plotter.XYs
	for _, point := range series.Points {
		if point.MaxForceEVPerA == nil {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(point.IonicStep), Y: *point.MaxForceEVPerA})
	}
	if len(pts) == 0 {
		return vasp.NewValidationError(vasp.CodeValidation, "ionic series has no force data to plot")
	}

	p := plot.New()
	p.Title.Text = chartTitle(systemName, "Force convergence")
	p.X.Label.Text = "Ionic step"
	p.Y.Label.Text = "Max force (eV/A)"
	p.Add(plotter.NewGrid())

	line, scatter, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("building force series: %w", err)
	}
	line.Color = forceColor
	scatter.Color = forceColor
	p.Add(line, scatter)

	return savePNG(p, outPath)
}

func savePNG(p *plot.Plot, outPath string) error {
	if strings.ToLower(filepath.Ext(outPath)) != ".png" {
		return vasp.NewValidationError(vasp.CodeValidation, "chart output path must end in .png").
			WithDetails(map[string]string{"path": outPath})
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, outPath); err != nil {
		return vasp.NewIOError("unable to write chart", outPath, err)
	}
	return nil
}

func chartTitle(systemName, kind string) string {
	if systemName == "" {
		return kind
	}
	return fmt.Sprintf("%s (%s)", kind, systemName)
}

func maxY(pts plotter.XYs) float64 {
	max := 0.0
	for _, pt := range pts {
		if pt.Y > max {
			max = pt.Y
		}
	}
	return max
}
