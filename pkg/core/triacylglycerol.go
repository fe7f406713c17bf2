package core

import "strings"

// Acyl is a fatty acid esterified at one glycerol position, with its species label
type Acyl struct {
	Label     string
	FattyAcid FattyAcid
}

// Triacylglycerol holds the acyls at sn-1, sn-2 and sn-3 in that order.
type Triacylglycerol [3]Acyl

// Mass returns the neutral monoisotopic mass of the TAG
func (t Triacylglycerol) Mass() float64 {
	return CalculateTAGMass(t[0].FattyAcid, t[1].FattyAcid, t[2].FattyAcid)
}

// ECN returns the sum of the per-position equivalent carbon numbers
func (t Triacylglycerol) ECN() int {
	return t[0].FattyAcid.ECN() + t[1].FattyAcid.ECN() + t[2].FattyAcid.ECN()
}

// Unsaturation returns the total number of unsaturated bonds
func (t Triacylglycerol) Unsaturation() int {
	return t[0].FattyAcid.Unsaturation() + t[1].FattyAcid.Unsaturation() + t[2].FattyAcid.Unsaturation()
}

// Name returns the stereospecific species name, e.g. "POP"
func (t Triacylglycerol) Name() string {
	return strings.Join([]string{t[0].Label, t[1].Label, t[2].Label}, "")
}
