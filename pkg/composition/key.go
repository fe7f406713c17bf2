package composition

import (
	"cmp"
	"encoding/binary"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ChrisMcGann/TAGKey/pkg/core"
)

// Key is the label a composition level assigns to a TAG. Numeric keys
// (mass, ECN, unsaturation) carry one number per retained position, or a
// single sum; label keys (species, type) carry one label per position.
type Key struct {
	Labels  []string
	Numbers []float64
}

// TextKey returns a label key
func TextKey(labels ...string) Key {
	return Key{Labels: labels}
}

// NumberKey returns a numeric key
func NumberKey(xs ...float64) Key {
	return Key{Numbers: xs}
}

// IsNumeric reports whether the key compares numerically
func (k Key) IsNumeric() bool {
	return k.Numbers != nil
}

// String joins single-character labels directly ("POP") and longer labels
// with '-' ("Ln-O-P").
func (k Key) String() string {
	if !k.IsNumeric() {
		sep := ""
		for _, l := range k.Labels {
			if utf8.RuneCountInString(l) != 1 {
				sep = "-"
				break
			}
		}
		return strings.Join(k.Labels, sep)
	}
	parts := make([]string, len(k.Numbers))
	for i, x := range k.Numbers {
		parts[i] = strconv.FormatFloat(x, 'f', -1, 64)
	}
	return strings.Join(parts, "-")
}

// Compare orders keys naturally: numbers numerically (tuples element-wise),
// text lexicographically. Numeric keys sort before text keys.
func (k Key) Compare(o Key) int {
	switch {
	case k.IsNumeric() && o.IsNumeric():
		return slices.CompareFunc(k.Numbers, o.Numbers, cmp.Compare[float64])
	case k.IsNumeric():
		return -1
	case o.IsNumeric():
		return 1
	}
	return slices.Compare(k.Labels, o.Labels)
}

// AppendIdentity appends an encoding of k that differs for every distinct key.
// Labels are length-prefixed so ("A", "AA") and ("AA", "A") stay apart.
func (k Key) AppendIdentity(b []byte) []byte {
	if k.IsNumeric() {
		b = append(b, 'n')
		b = binary.AppendUvarint(b, uint64(len(k.Numbers)))
		for _, x := range k.Numbers {
			b = binary.BigEndian.AppendUint64(b, math.Float64bits(x))
		}
		return b
	}
	b = append(b, 't')
	b = binary.AppendUvarint(b, uint64(len(k.Labels)))
	for _, l := range k.Labels {
		b = binary.AppendUvarint(b, uint64(len(l)))
		b = append(b, l...)
	}
	return b
}

// KeyOptions parameterize key derivation
type KeyOptions struct {
	Adduct    float64 // Mass shift added to the neutral TAG mass
	Precision int     // Decimal places kept for mass keys
}

// Key derives the composition key of a TAG.
func (c Composition) Key(t core.Triacylglycerol, opts KeyOptions) (Key, error) {
	if err := c.Validate(); err != nil {
		return Key{}, err
	}

	switch c.Kind {
	case Mass:
		return NumberKey(core.RoundFloat(t.Mass()+opts.Adduct, opts.Precision)), nil
	case EquivalentCarbonNumber:
		return c.numberKey(t, func(fa core.FattyAcid) float64 { return float64(fa.ECN()) }), nil
	case Unsaturation:
		return c.numberKey(t, func(fa core.FattyAcid) float64 { return float64(fa.Unsaturation()) }), nil
	case Species:
		return c.textKey([3]string{t[0].Label, t[1].Label, t[2].Label}), nil
	case Type:
		return c.textKey([3]string{
			t[0].FattyAcid.Saturation().String(),
			t[1].FattyAcid.Saturation().String(),
			t[2].FattyAcid.Saturation().String(),
		}), nil
	}
	return Key{}, &core.UnsupportedCompositionError{Composition: c.String(), Reason: "no key for kind " + c.Kind.String()}
}

func (c Composition) numberKey(t core.Triacylglycerol, value func(core.FattyAcid) float64) Key {
	xs := [3]float64{value(t[0].FattyAcid), value(t[1].FattyAcid), value(t[2].FattyAcid)}
	if c.Stereospecificity == Aggregation {
		return NumberKey(xs[0] + xs[1] + xs[2])
	}
	xs = permute(c.Stereospecificity, xs, cmp.Compare[float64])
	return NumberKey(xs[:]...)
}

func (c Composition) textKey(labels [3]string) Key {
	labels = permute(c.Stereospecificity, labels, strings.Compare)
	return TextKey(labels[:]...)
}

// permute reorders the sn-1, sn-2, sn-3 values to remove the positional
// identity the mode does not retain.
func permute[T any](s Stereospecificity, xs [3]T, compare func(a, b T) int) [3]T {
	switch s {
	case Positional:
		if compare(xs[0], xs[2]) > 0 {
			xs[0], xs[2] = xs[2], xs[0]
		}
	case NonStereospecific:
		slices.SortFunc(xs[:], compare)
	}
	return xs
}
