// Package composition defines the closed set of composition kinds, their
// stereospecificity modes and the keys they derive from a triacylglycerol.
package composition

import (
	"fmt"
	"strings"

	"github.com/ChrisMcGann/TAGKey/pkg/core"
)

// Kind selects what property of a TAG a composition groups by.
type Kind int

const (
	Mass Kind = iota
	EquivalentCarbonNumber
	Species
	Type
	Unsaturation
)

var kindNames = map[Kind]string{
	Mass:                   "Mass",
	EquivalentCarbonNumber: "EquivalentCarbonNumber",
	Species:                "Species",
	Type:                   "Type",
	Unsaturation:           "Unsaturation",
}

var kindCodes = map[Kind]string{
	Mass:                   "M",
	EquivalentCarbonNumber: "ECN",
	Species:                "S",
	Type:                   "T",
	Unsaturation:           "U",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Stereospecificity is how much positional identity a key retains.
type Stereospecificity int

const (
	// Stereospecific keeps sn-1, sn-2 and sn-3 apart.
	Stereospecific Stereospecificity = iota
	// Positional is a non-stereospecific permutation that keeps sn-2 apart
	// from the interchangeable sn-1/sn-3 pair.
	Positional
	// NonStereospecific is a permutation that ignores all positions.
	NonStereospecific
	// Aggregation collapses the positions into a scalar sum.
	Aggregation
)

var stereoPrefixes = map[Stereospecificity]string{
	Stereospecific:    "S",
	Positional:        "P",
	NonStereospecific: "N",
	Aggregation:       "",
}

func (s Stereospecificity) String() string {
	switch s {
	case Stereospecific:
		return "Stereospecific"
	case Positional:
		return "Positional"
	case NonStereospecific:
		return "NonStereospecific"
	case Aggregation:
		return "Aggregation"
	}
	return fmt.Sprintf("Stereospecificity(%d)", int(s))
}

// rank orders stereospecificity modes by retained information.
func (s Stereospecificity) rank() int {
	return int(Aggregation - s)
}

// Composition is one grouping level: a kind crossed with a stereospecificity.
type Composition struct {
	Kind              Kind
	Stereospecificity Stereospecificity
}

// Common compositions
var (
	SSC   = Composition{Species, Stereospecific}
	PSC   = Composition{Species, Positional}
	NSC   = Composition{Species, NonStereospecific}
	STC   = Composition{Type, Stereospecific}
	PTC   = Composition{Type, Positional}
	NTC   = Composition{Type, NonStereospecific}
	ECNC  = Composition{EquivalentCarbonNumber, Aggregation}
	SECNC = Composition{EquivalentCarbonNumber, Stereospecific}
	UC    = Composition{Unsaturation, Aggregation}
	MC    = Composition{Mass, Aggregation}
)

// String returns the short code, e.g. "NSC" or "ECNC"
func (c Composition) String() string {
	return stereoPrefixes[c.Stereospecificity] + kindCodes[c.Kind] + "C"
}

// Validate rejects kind/stereospecificity combinations that have no meaning.
func (c Composition) Validate() error {
	if _, ok := kindCodes[c.Kind]; !ok {
		return &core.UnsupportedCompositionError{Composition: c.String(), Reason: "unknown kind " + c.Kind.String()}
	}
	if _, ok := stereoPrefixes[c.Stereospecificity]; !ok {
		return &core.UnsupportedCompositionError{Composition: c.String(), Reason: "unknown stereospecificity " + c.Stereospecificity.String()}
	}

	switch c.Kind {
	case Mass:
		if c.Stereospecificity != Aggregation {
			return &core.UnsupportedCompositionError{
				Composition: c.String(),
				Reason:      "mass is a property of the whole molecule and only supports aggregation",
			}
		}
	case Species, Type:
		if c.Stereospecificity == Aggregation {
			return &core.UnsupportedCompositionError{
				Composition: c.String(),
				Reason:      c.Kind.String() + " labels cannot be summed, use a permutation mode",
			}
		}
	}
	return nil
}

// Determines reports whether the key of c fixes the key of o, i.e. o is
// equal to or coarser than c.
func (c Composition) Determines(o Composition) bool {
	if c.Stereospecificity.rank() < o.Stereospecificity.rank() {
		return false
	}
	switch c.Kind {
	case Species:
		return true
	case Unsaturation:
		// Per-position bond counts fix the saturation letters
		return o.Kind == Unsaturation || (o.Kind == Type && c.Stereospecificity != Aggregation)
	default:
		return o.Kind == c.Kind
	}
}

// Parse parses a short code such as "SSC", "PTC", "NECNC", "UC" or "MC".
// The result is not validated.
func Parse(s string) (Composition, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	body, ok := strings.CutSuffix(code, "C")
	if !ok {
		return Composition{}, fmt.Errorf("invalid composition '%s', expected a code ending in 'C'", s)
	}
	for stereo, prefix := range stereoPrefixes {
		for kind, kc := range kindCodes {
			if prefix+kc == body {
				return Composition{Kind: kind, Stereospecificity: stereo}, nil
			}
		}
	}
	return Composition{}, fmt.Errorf("unknown composition '%s'", s)
}

// MarshalText implements encoding.TextMarshaler
func (c Composition) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Composition) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ValidateGroups checks an ordered list of nesting levels. Level 0 is the
// outermost group and every following level must refine the ones before it:
// a level whose key is already fixed by an earlier level is rejected.
func ValidateGroups(groups []Composition) error {
	if len(groups) == 0 {
		return &core.UnsupportedCompositionError{Reason: "at least one composition level is required"}
	}
	for i, c := range groups {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("level %d: %w", i, err)
		}
		for j := 0; j < i; j++ {
			if groups[j].Determines(c) {
				return &core.UnsupportedCompositionError{
					Composition: c.String(),
					Reason:      fmt.Sprintf("level %d is already determined by level %d (%s)", i, j, groups[j]),
				}
			}
		}
	}
	return nil
}
