package compose

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/ChrisMcGann/TAGKey/pkg/composition"
	"github.com/ChrisMcGann/TAGKey/pkg/core"
)

// MaxDDOF is the largest supported delta degrees of freedom
const MaxDDOF = 2

// Stat summarizes one level value across samples
type Stat struct {
	Mean              float64
	StandardDeviation float64
	Count             int // Non-null samples
}

// Row is an aggregated composition row
type Row struct {
	Keys   []composition.Key
	Values []Stat
}

// Table is the aggregated composition table
type Table struct {
	Samples []core.Metadata
	Groups  []composition.Composition
	Rows    []Row
}

// Aggregate replaces every per-sample value list by its mean and standard
// deviation.
func Aggregate(d *Derived, ddof int) (*Table, error) {
	if ddof < 0 || ddof > MaxDDOF {
		return nil, fmt.Errorf("ddof must be in [0, %d], got %d", MaxDDOF, ddof)
	}

	t := &Table{
		Samples: d.Samples,
		Groups:  d.Groups,
		Rows:    make([]Row, len(d.Rows)),
	}
	for r, row := range d.Rows {
		values := make([]Stat, len(row.Values))
		for i, xs := range row.Values {
			values[i] = Summarize(xs, ddof)
		}
		t.Rows[r] = Row{Keys: row.Keys, Values: values}
	}
	return t, nil
}

// Summarize computes the statistics of the non-null values. The standard
// deviation divides the sum of squares by n − ddof and is NaN when that is
// not positive; a single value with ddof 0 has zero deviation.
func Summarize(xs []*float64, ddof int) Stat {
	present := make([]float64, 0, len(xs))
	for _, x := range xs {
		if x != nil {
			present = append(present, *x)
		}
	}

	n := len(present)
	st := Stat{Count: n, Mean: math.NaN(), StandardDeviation: math.NaN()}
	if n == 0 {
		return st
	}
	st.Mean = stats.Mean(present)

	dof := n - ddof
	switch {
	case dof <= 0:
	case n == 1:
		st.StandardDeviation = 0
		if math.IsNaN(present[0]) {
			st.StandardDeviation = math.NaN()
		}
	default:
		ss := stats.Variance(present) * float64(n-1)
		st.StandardDeviation = math.Sqrt(ss / float64(dof))
	}
	return st
}
