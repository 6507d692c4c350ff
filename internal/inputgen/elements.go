package inputgen

import "strings"

// ElementValidator reports whether an element symbol is known. Generators
// use it to warn about likely typos without blocking generation.
type ElementValidator interface {
	IsKnownElement(symbol string) bool
}

// AllowAllElements accepts every non-empty symbol.
type AllowAllElements struct{}

func (AllowAllElements) IsKnownElement(symbol string) bool {
	return strings.TrimSpace(symbol) != ""
}

// PeriodicTable validates symbols against the standard periodic table.
type PeriodicTable struct{}

func (PeriodicTable) IsKnownElement(symbol string) bool {
	_, ok := periodicSymbols[symbol]
	return ok
}

var periodicSymbols = func() map[string]struct{} {
	symbols := []string{
		"H", "He",
		"Li", "Be", "B", "C", "N", "O", "F", "Ne",
		"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
		"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
		"Ga", "Ge", "As", "Se", "Br", "Kr",
		"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd",
		"In", "Sn", "Sb", "Te", "I", "Xe",
		"Cs", "Ba",
		"La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb", "Lu",
		"Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
		"Tl", "Pb", "Bi", "Po", "At", "Rn",
		"Fr", "Ra",
		"Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm", "Md", "No", "Lr",
		"Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds", "Rg", "Cn",
		"Nh", "Fl", "Mc", "Lv", "Ts", "Og",
	}
	m := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		m[s] = struct{}{}
	}
	return m
}()
