package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Isomerism of an unsaturated bond
type Isomerism int

const (
	IsomerismUnknown Isomerism = iota
	Cis
	Trans
)

// BondOrder of an unsaturated bond
type BondOrder int

const (
	BondOrderUnknown BondOrder = iota
	Double
	Triple
)

// Bond describes one unsaturated bond of a fatty acid chain.
// Zero values are wildcards: Position 0 means "any position".
type Bond struct {
	Position  uint8
	Isomerism Isomerism
	Order     BondOrder
}

// IsWildcard reports whether nothing is known about the bond besides its existence
func (b Bond) IsWildcard() bool {
	return b.Position == 0 && b.Isomerism == IsomerismUnknown && b.Order != Triple
}

func (b Bond) String() string {
	var sb strings.Builder
	if b.Position != 0 {
		sb.WriteString(strconv.Itoa(int(b.Position)))
	}
	switch b.Isomerism {
	case Cis:
		sb.WriteByte('c')
	case Trans:
		sb.WriteByte('t')
	}
	if b.Order == Triple {
		sb.WriteByte('a')
	}
	return sb.String()
}

// Saturation classifies a fatty acid as saturated or unsaturated
type Saturation int

const (
	Saturated Saturation = iota
	Unsaturated
)

// String returns the one-letter code used in type compositions
func (s Saturation) String() string {
	if s == Saturated {
		return "S"
	}
	return "U"
}

// FattyAcid represents an acyl chain by carbon count and its unsaturated bonds.
type FattyAcid struct {
	Carbons     uint8
	Unsaturated []Bond
}

// Unsaturation returns the number of unsaturated bonds
func (fa FattyAcid) Unsaturation() int {
	return len(fa.Unsaturated)
}

// ECN returns the equivalent carbon number: carbons - 2 * unsaturated bonds
func (fa FattyAcid) ECN() int {
	return int(fa.Carbons) - 2*fa.Unsaturation()
}

// Saturation returns Saturated when the chain has no unsaturated bonds
func (fa FattyAcid) Saturation() Saturation {
	if len(fa.Unsaturated) == 0 {
		return Saturated
	}
	return Unsaturated
}

// Composition returns the elemental composition of the free fatty acid
func (fa FattyAcid) Composition() ElementalComposition {
	h := 2 * int(fa.Carbons)
	for _, b := range fa.Unsaturated {
		if b.Order == Triple {
			h -= 4
		} else {
			h -= 2
		}
	}
	return ElementalComposition{C: int(fa.Carbons), H: h, O: 2}
}

// Mass returns the neutral monoisotopic mass of the free fatty acid
func (fa FattyAcid) Mass() float64 {
	return CalculateFattyAcidMass(fa)
}

// Validate checks the bond count and bond positions against the chain length.
func (fa FattyAcid) Validate() error {
	var errs []string

	if fa.Carbons == 0 {
		errs = append(errs, "carbon count must be positive")
	}
	if len(fa.Unsaturated) > int(fa.Carbons) {
		errs = append(errs, fmt.Sprintf("%d unsaturated bonds exceed %d carbons", len(fa.Unsaturated), fa.Carbons))
	}

	seen := make(map[uint8]bool)
	for i, b := range fa.Unsaturated {
		if b.Position == 0 {
			continue
		}
		if b.Position >= fa.Carbons {
			errs = append(errs, fmt.Sprintf("bond %d position %d must be below %d", i, b.Position, fa.Carbons))
		}
		if seen[b.Position] {
			errs = append(errs, fmt.Sprintf("bond %d position %d is duplicated", i, b.Position))
		}
		seen[b.Position] = true
	}

	if len(errs) > 0 {
		return &SchemaError{
			Field:   "FattyAcid",
			Message: strings.Join(errs, "; "),
		}
	}
	return nil
}

// String returns the notation "C:D" followed by the known bonds, e.g. "18:2Δ9c,12c".
// Wildcard bonds are only counted.
func (fa FattyAcid) String() string {
	s := fmt.Sprintf("%d:%d", fa.Carbons, len(fa.Unsaturated))

	var bonds []string
	for _, b := range fa.Unsaturated {
		if !b.IsWildcard() {
			bonds = append(bonds, b.String())
		}
	}
	if len(bonds) > 0 {
		s += "Δ" + strings.Join(bonds, ",")
	}
	return s
}

// ParseFattyAcid parses the "C:D" notation with an optional bond list introduced
// by "Δ" (or "D"). Examples: "16:0", "18:1Δ9c", "18:2D9c,12c", "18:1Δ9a" (triple).
// Bonds not listed are wildcards.
func ParseFattyAcid(s string) (FattyAcid, error) {
	s = strings.TrimSpace(s)

	head, list := s, ""
	if idx := strings.IndexAny(s, "ΔD"); idx >= 0 {
		head = s[:idx]
		if strings.HasPrefix(s[idx:], "Δ") {
			list = s[idx+len("Δ"):]
		} else {
			list = s[idx+1:]
		}
	}

	parts := strings.Split(head, ":")
	if len(parts) != 2 {
		return FattyAcid{}, fmt.Errorf("invalid fatty acid '%s', expected 'C:D'", s)
	}
	carbons, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 8)
	if err != nil {
		return FattyAcid{}, fmt.Errorf("invalid carbon count in '%s': %w", s, err)
	}
	count, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 8)
	if err != nil {
		return FattyAcid{}, fmt.Errorf("invalid unsaturation in '%s': %w", s, err)
	}

	fa := FattyAcid{Carbons: uint8(carbons)}
	if list != "" {
		for _, item := range strings.Split(list, ",") {
			b, err := parseBond(strings.TrimSpace(item))
			if err != nil {
				return FattyAcid{}, fmt.Errorf("invalid bond in '%s': %w", s, err)
			}
			fa.Unsaturated = append(fa.Unsaturated, b)
		}
	}
	if len(fa.Unsaturated) > int(count) {
		return FattyAcid{}, fmt.Errorf("fatty acid '%s' lists %d bonds but declares %d", s, len(fa.Unsaturated), count)
	}
	for len(fa.Unsaturated) < int(count) {
		fa.Unsaturated = append(fa.Unsaturated, Bond{})
	}

	return fa, nil
}

// parseBond parses "[position][c|t][a]"
func parseBond(s string) (Bond, error) {
	if s == "" {
		return Bond{}, fmt.Errorf("empty bond")
	}
	b := Bond{Order: Double}

	digits := len(s) - len(strings.TrimLeft(s, "0123456789"))
	if digits > 0 {
		pos, err := strconv.ParseUint(s[:digits], 10, 8)
		if err != nil {
			return Bond{}, fmt.Errorf("invalid position '%s': %w", s[:digits], err)
		}
		if pos == 0 {
			return Bond{}, fmt.Errorf("bond position must be positive")
		}
		b.Position = uint8(pos)
	}

	for _, r := range s[digits:] {
		switch r {
		case 'c', 'Z':
			b.Isomerism = Cis
		case 't', 'E':
			b.Isomerism = Trans
		case 'a':
			b.Order = Triple
		default:
			return Bond{}, fmt.Errorf("unexpected '%c' in bond '%s'", r, s)
		}
	}
	return b, nil
}
