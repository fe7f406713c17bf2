package core

import "math"

// Atomic masses (monoisotopic)
const (
	MassH = 1.0078250321
	MassC = 12.0000000000
	MassO = 15.9949146221

	// Proton mass, the [M+H]+ adduct shift
	ProtonMass = 1.00727646688
	// Electron mass, removed from cation adducts
	ElectronMass = 0.00054857990946
)

// ElementalComposition stores the C, H, O counts of a lipid fragment
type ElementalComposition struct {
	C, H, O int
}

// Mass returns the monoisotopic mass of the composition
func (c ElementalComposition) Mass() float64 {
	return float64(c.C)*MassC +
		float64(c.H)*MassH +
		float64(c.O)*MassO
}

// Add returns the element-wise sum of two compositions
func (c ElementalComposition) Add(o ElementalComposition) ElementalComposition {
	return ElementalComposition{C: c.C + o.C, H: c.H + o.H, O: c.O + o.O}
}

var (
	// Glycerol backbone C3H8O3
	glycerol = ElementalComposition{C: 3, H: 8, O: 3}
	// Water released by each esterification
	water = ElementalComposition{C: 0, H: 2, O: 1}
)

// CalculateFattyAcidMass computes the neutral monoisotopic mass of a free fatty acid.
// A double bond removes two hydrogens, a triple bond four.
func CalculateFattyAcidMass(fa FattyAcid) float64 {
	return fa.Composition().Mass()
}

// CalculateTAGMass computes the neutral monoisotopic mass of a triacylglycerol
// esterified with the three given fatty acids.
func CalculateTAGMass(sn1, sn2, sn3 FattyAcid) float64 {
	comp := glycerol
	for _, fa := range []FattyAcid{sn1, sn2, sn3} {
		comp = comp.Add(fa.Composition())
		comp.H -= water.H
		comp.O -= water.O
	}
	return comp.Mass()
}

// RoundFloat rounds a float to n decimal places
func RoundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
