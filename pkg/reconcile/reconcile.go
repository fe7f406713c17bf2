// Package reconcile joins fatty acid sample tables into a single table with
// one value column per sample.
package reconcile

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/ChrisMcGann/TAGKey/pkg/core"
)

// Row is one fatty acid across all reconciled samples. The value slices hold
// one entry per sample; nil means the fatty acid is absent from that sample.
type Row struct {
	Species   string
	FattyAcid core.FattyAcid

	// Derived columns
	ECN          int
	Mass         float64
	Saturation   core.Saturation
	Unsaturation int

	TAG     []*float64
	DAG1223 []*float64
	MAG2    []*float64
}

// Table is the reconciled fatty acid table
type Table struct {
	Samples []core.Metadata
	Rows    []Row
}

// Reconcile selects one sample when index is set, otherwise full outer joins
// all samples on the content hash of (FattyAcid, Species). Rows keep the order
// in which they first appear.
func Reconcile(samples []*core.Sample, index *int) (*Table, error) {
	if len(samples) == 0 {
		return nil, &core.SchemaError{Field: "samples", Message: "at least one sample is required"}
	}

	if index != nil {
		if *index < 0 || *index >= len(samples) {
			return nil, fmt.Errorf("sample index %d out of range [0, %d)", *index, len(samples))
		}
		samples = samples[*index : *index+1]
	}

	for i, s := range samples {
		if s == nil {
			return nil, &core.SchemaError{Field: fmt.Sprintf("samples[%d]", i), Message: "sample is nil"}
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}

	t := &Table{Samples: make([]core.Metadata, len(samples))}
	buckets := make(map[uint64][]int)

	for si, s := range samples {
		t.Samples[si] = s.Metadata
		for _, r := range s.Rows {
			idx := t.lookup(buckets, r)
			if idx < 0 {
				idx = len(t.Rows)
				h := RowHash(r.FattyAcid, r.Label)
				buckets[h] = append(buckets[h], idx)
				t.Rows = append(t.Rows, newRow(r, len(samples)))
			}
			row := &t.Rows[idx]
			row.TAG[si] = value(r.TAG)
			row.DAG1223[si] = value(r.DAG1223)
			row.MAG2[si] = value(r.MAG2)
		}
	}

	return t, nil
}

// lookup finds the joined row for a sample row, or -1
func (t *Table) lookup(buckets map[uint64][]int, r core.Row) int {
	fa := r.FattyAcid.String()
	for _, idx := range buckets[RowHash(r.FattyAcid, r.Label)] {
		if t.Rows[idx].Species == r.Label && t.Rows[idx].FattyAcid.String() == fa {
			return idx
		}
	}
	return -1
}

// RowHash is the join key of a fatty acid row
func RowHash(fa core.FattyAcid, species string) uint64 {
	d := xxhash.New()
	d.WriteString(fa.String())
	d.Write([]byte{0})
	d.WriteString(species)
	return d.Sum64()
}

func newRow(r core.Row, n int) Row {
	return Row{
		Species:      r.Label,
		FattyAcid:    r.FattyAcid,
		ECN:          r.FattyAcid.ECN(),
		Mass:         r.FattyAcid.Mass(),
		Saturation:   r.FattyAcid.Saturation(),
		Unsaturation: r.FattyAcid.Unsaturation(),
		TAG:          make([]*float64, n),
		DAG1223:      make([]*float64, n),
		MAG2:         make([]*float64, n),
	}
}

func value(v float64) *float64 {
	return &v
}
