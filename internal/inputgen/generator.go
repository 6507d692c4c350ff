// Package inputgen renders INCAR/KPOINTS/POSCAR text for standard geometry
// relaxation workflows from a structure-plus-settings description.
package inputgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/slab-tools/slab/internal/vasp"
)

// Atom is one site of the input structure, in fractional coordinates.
type Atom struct {
	Element    string     `json:"element"`
	FracCoords [3]float64 `json:"frac_coords"`
}

// Structure describes the periodic cell to relax.
type Structure struct {
	Comment        string        `json:"comment"`
	LatticeVectors [3][3]float64 `json:"lattice_vectors"`
	Atoms          []Atom        `json:"atoms"`
}

// IncarOverride is one caller-supplied INCAR tag; overrides apply after the
// defaults in the order given.
type IncarOverride struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// RelaxSpec carries the relaxation settings. NewRelaxSpec supplies the
// defaults used for routine relaxations.
type RelaxSpec struct {
	Structure      Structure       `json:"structure"`
	Encut          int             `json:"encut"`
	Ediff          float64         `json:"ediff"`
	Ediffg         float64         `json:"ediffg"`
	Ibrion         int             `json:"ibrion"`
	Isif           int             `json:"isif"`
	Nsw            int             `json:"nsw"`
	Ismear         int             `json:"ismear"`
	Sigma          float64         `json:"sigma"`
	Ispin          int             `json:"ispin"`
	Magmom         string          `json:"magmom,omitempty"`
	KMesh          [3]int          `json:"kmesh"`
	GammaCentered  bool            `json:"gamma_centered"`
	IncarOverrides []IncarOverride `json:"incar_overrides,omitempty"`
}

// NewRelaxSpec returns a RelaxSpec with default relaxation settings for the
// given structure.
func NewRelaxSpec(structure Structure) RelaxSpec {
	return RelaxSpec{
		Structure:     structure,
		Encut:         520,
		Ediff:         1e-5,
		Ediffg:        -0.02,
		Ibrion:        2,
		Isif:          3,
		Nsw:           120,
		Ismear:        0,
		Sigma:         0.05,
		Ispin:         2,
		KMesh:         [3]int{6, 6, 6},
		GammaCentered: true,
	}
}

// Bundle is the rendered input-file set.
type Bundle struct {
	SystemName  string   `json:"system_name"`
	NAtoms      int      `json:"n_atoms"`
	IncarText   string   `json:"incar_text"`
	KpointsText string   `json:"kpoints_text"`
	PoscarText  string   `json:"poscar_text"`
	Warnings    []string `json:"warnings"`
}

// Generator renders relaxation input bundles. The element validator is a
// pluggable capability; the zero Generator accepts every symbol.
type Generator struct {
	Elements ElementValidator
}

// Generate renders INCAR, KPOINTS and POSCAR from spec. Unknown element
// symbols produce warnings, not failures.
func (g Generator) Generate(spec RelaxSpec) (*Bundle, error) {
	if len(spec.Structure.Atoms) == 0 {
		return nil, vasp.NewValidationError(vasp.CodeValidation, "structure must contain at least one atom")
	}

	validator := g.Elements
	if validator == nil {
		validator = AllowAllElements{}
	}

	var warnings []string
	for _, element := range speciesOrder(spec.Structure.Atoms) {
		if !validator.IsKnownElement(element) {
			warnings = append(warnings, fmt.Sprintf("Unknown element symbol: %s", element))
		}
	}

	return &Bundle{
		SystemName:  spec.Structure.Comment,
		NAtoms:      len(spec.Structure.Atoms),
		IncarText:   renderIncar(spec),
		KpointsText: renderKpoints(spec),
		PoscarText:  renderPoscar(spec),
		Warnings:    vasp.DedupWarnings(warnings),
	}, nil
}

func renderIncar(spec RelaxSpec) string {
	type tag struct {
		key   string
		value string
	}

	tags := []tag{
		{"SYSTEM", spec.Structure.Comment},
		{"ENCUT", strconv.Itoa(spec.Encut)},
		{"PREC", "Accurate"},
		{"EDIFF", formatIncarFloat(spec.Ediff)},
		{"EDIFFG", formatIncarFloat(spec.Ediffg)},
		{"IBRION", strconv.Itoa(spec.Ibrion)},
		{"ISIF", strconv.Itoa(spec.Isif)},
		{"NSW", strconv.Itoa(spec.Nsw)},
		{"ISMEAR", strconv.Itoa(spec.Ismear)},
		{"SIGMA", formatIncarFloat(spec.Sigma)},
		{"ISPIN", strconv.Itoa(spec.Ispin)},
		{"LREAL", "Auto"},
	}
	if spec.Magmom != "" {
		tags = append(tags, tag{"MAGMOM", spec.Magmom})
	}

	for _, override := range spec.IncarOverrides {
		key := strings.ToUpper(override.Key)
		replaced := false
		for i := range tags {
			if tags[i].key == key {
				tags[i].value = override.Value
				replaced = true
				break
			}
		}
		if !replaced {
			tags = append(tags, tag{key, override.Value})
		}
	}

	var sb strings.Builder
	for _, t := range tags {
		fmt.Fprintf(&sb, "%s = %s\n", t.key, t.value)
	}
	return sb.String()
}

func renderKpoints(spec RelaxSpec) string {
	scheme := "Monkhorst-Pack"
	if spec.GammaCentered {
		scheme = "Gamma"
	}
	return strings.Join([]string{
		"Automatic mesh",
		"0",
		scheme,
		fmt.Sprintf("%d %d %d", spec.KMesh[0], spec.KMesh[1], spec.KMesh[2]),
		"0 0 0",
		"",
	}, "\n")
}

func renderPoscar(spec RelaxSpec) string {
	species := speciesOrder(spec.Structure.Atoms)

	counts := make([]string, 0, len(species))
	for _, element := range species {
		n := 0
		for _, atom := range spec.Structure.Atoms {
			if atom.Element == element {
				n++
			}
		}
		counts = append(counts, strconv.Itoa(n))
	}

	lines := []string{spec.Structure.Comment, "1.0"}
	for _, vec := range spec.Structure.LatticeVectors {
		lines = append(lines, fmt.Sprintf("% .10f % .10f % .10f", vec[0], vec[1], vec[2]))
	}
	lines = append(lines, strings.Join(species, " "), strings.Join(counts, " "), "Direct")

	// Sites grouped by species, preserving in-species order.
	for _, element := range species {
		for _, atom := range spec.Structure.Atoms {
			if atom.Element != element {
				continue
			}
			lines = append(lines, fmt.Sprintf("% .10f % .10f % .10f",
				atom.FracCoords[0], atom.FracCoords[1], atom.FracCoords[2]))
		}
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// speciesOrder lists distinct elements in first-appearance order.
func speciesOrder(atoms []Atom) []string {
	var species []string
	seen := map[string]struct{}{}
	for _, atom := range atoms {
		if _, ok := seen[atom.Element]; ok {
			continue
		}
		seen[atom.Element] = struct{}{}
		species = append(species, atom.Element)
	}
	return species
}

func formatIncarFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}
