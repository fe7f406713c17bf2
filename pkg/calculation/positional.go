package calculation

import (
	"github.com/ChrisMcGann/TAGKey/pkg/core"
	"github.com/ChrisMcGann/TAGKey/pkg/reconcile"
)

// Fractions are the normalized positional fractions of one sample, indexed
// like the reconciled rows.
type Fractions struct {
	SN13 []*float64
	SN2  []*float64
}

// Positional computes per-sample sn-1,3 and sn-2 fractions.
//
//	sn-2   = MAG2
//	sn-1,3 = 3·TAG − 2·DAG1223    (FromDAG1223)
//	sn-1,3 = (3·TAG − MAG2) / 2   (FromMAG2)
//
// Negative values clamp to zero and each position is normalized to sum to one
// within a sample. A fatty acid absent from a sample stays nil.
func Positional(t *reconcile.Table, from From) ([]Fractions, error) {
	out := make([]Fractions, len(t.Samples))
	for s := range t.Samples {
		f := Fractions{
			SN13: make([]*float64, len(t.Rows)),
			SN2:  make([]*float64, len(t.Rows)),
		}
		for i, row := range t.Rows {
			if len(row.TAG) != len(t.Samples) || len(row.DAG1223) != len(t.Samples) || len(row.MAG2) != len(t.Samples) {
				return nil, &core.SchemaError{Field: row.Species, Message: "value columns do not match sample count"}
			}
			tag, dag, mag := row.TAG[s], row.DAG1223[s], row.MAG2[s]
			if tag == nil || dag == nil || mag == nil {
				continue
			}

			var sn13 float64
			switch from {
			case FromDAG1223:
				sn13 = 3**tag - 2**dag
			case FromMAG2:
				sn13 = (3**tag - *mag) / 2
			default:
				return nil, &core.NotImplementedError{Feature: "sn-1,3 source " + from.String()}
			}
			f.SN13[i] = clamp(sn13)
			f.SN2[i] = clamp(*mag)
		}
		normalize(f.SN13)
		normalize(f.SN2)
		out[s] = f
	}
	return out, nil
}

func clamp(v float64) *float64 {
	if v < 0 {
		v = 0
	}
	return &v
}

// normalize scales the present values to sum to one. A zero sum leaves the
// values untouched.
func normalize(xs []*float64) {
	sum := 0.0
	for _, x := range xs {
		if x != nil {
			sum += *x
		}
	}
	if sum == 0 {
		return
	}
	for _, x := range xs {
		if x != nil {
			*x /= sum
		}
	}
}
