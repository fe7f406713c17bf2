// Package calculation derives positional fatty acid fractions and the TAG
// species table from reconciled sample data.
package calculation

import (
	"fmt"
	"strings"

	"github.com/ChrisMcGann/TAGKey/pkg/core"
	"github.com/ChrisMcGann/TAGKey/pkg/reconcile"
)

// Method is the quantitative model used to combine positional fractions
type Method int

const (
	Vanderwal Method = iota
	Gunstone
)

func (m Method) String() string {
	switch m {
	case Vanderwal:
		return "vanderwal"
	case Gunstone:
		return "gunstone"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod parses a method name, case-insensitively
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vanderwal", "":
		return Vanderwal, nil
	case "gunstone":
		return Gunstone, nil
	}
	return 0, fmt.Errorf("unknown method: %s", s)
}

// From selects the measurement the sn-1,3 fractions are derived from
type From int

const (
	FromDAG1223 From = iota
	FromMAG2
)

func (f From) String() string {
	switch f {
	case FromDAG1223:
		return "dag1223"
	case FromMAG2:
		return "mag2"
	}
	return fmt.Sprintf("From(%d)", int(f))
}

// ParseFrom parses a source name, case-insensitively
func ParseFrom(s string) (From, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dag1223", "":
		return FromDAG1223, nil
	case "mag2":
		return FromMAG2, nil
	}
	return 0, fmt.Errorf("unknown sn-1,3 source: %s", s)
}

// Options control the TAG calculation
type Options struct {
	Method Method
	From   From
}

// TAGRow is one TAG triplet with one value per sample; nil means absent.
type TAGRow struct {
	TAG    core.Triacylglycerol
	Values []*float64
}

// TAGTable holds the TAG species of all samples
type TAGTable struct {
	Samples []core.Metadata
	Rows    []TAGRow
}

// Calculate computes the TAG species table. Triplets absent from every sample
// are dropped.
func Calculate(t *reconcile.Table, opts Options) (*TAGTable, error) {
	switch opts.Method {
	case Vanderwal:
	case Gunstone:
		return nil, &core.NotImplementedError{Feature: "Gunstone method"}
	default:
		return nil, fmt.Errorf("unknown method: %v", opts.Method)
	}

	fractions, err := Positional(t, opts.From)
	if err != nil {
		return nil, err
	}

	n := len(t.Rows)
	out := &TAGTable{Samples: t.Samples}
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				values := make([]*float64, len(t.Samples))
				present := false
				for s, f := range fractions {
					if f.SN13[x] == nil || f.SN2[y] == nil || f.SN13[z] == nil {
						continue
					}
					v := *f.SN13[x] * *f.SN2[y] * *f.SN13[z]
					values[s] = &v
					present = true
				}
				if !present {
					continue
				}
				out.Rows = append(out.Rows, TAGRow{
					TAG:    core.Triacylglycerol{acyl(t.Rows[x]), acyl(t.Rows[y]), acyl(t.Rows[z])},
					Values: values,
				})
			}
		}
	}

	return out, nil
}

func acyl(r reconcile.Row) core.Acyl {
	return core.Acyl{Label: r.Species, FattyAcid: r.FattyAcid}
}
