// Package compose groups TAG species into nested composition levels and
// summarizes the grouped values across samples.
package compose

import (
	"github.com/ChrisMcGann/TAGKey/pkg/calculation"
	"github.com/ChrisMcGann/TAGKey/pkg/composition"
	"github.com/ChrisMcGann/TAGKey/pkg/core"
)

// DerivedRow is one distinct composite key. Values[i][s] is the running sum
// of level i in sample s, taken over all TAGs sharing Keys[0..i].
type DerivedRow struct {
	Keys   []composition.Key
	Values [][]*float64
}

// Derived is the per-sample composition table
type Derived struct {
	Samples []core.Metadata
	Groups  []composition.Composition
	Rows    []DerivedRow
}

// partition accumulates per-sample sums for one composite key prefix
type partition struct {
	sums []*float64
}

func (p *partition) add(values []*float64) {
	for s, v := range values {
		if v == nil {
			continue
		}
		if p.sums[s] == nil {
			x := *v
			p.sums[s] = &x
			continue
		}
		*p.sums[s] += *v
	}
}

// Derive keys every TAG at each level and computes the running partition sums.
// Rows are deduplicated on the full composite key in first-occurrence order.
// A sum is nil only when every contribution to it is nil.
func Derive(tags *calculation.TAGTable, groups []composition.Composition, opts composition.KeyOptions) (*Derived, error) {
	if err := composition.ValidateGroups(groups); err != nil {
		return nil, err
	}

	n := len(tags.Samples)
	keys := make([][]composition.Key, len(tags.Rows))
	prefixes := make([][]string, len(tags.Rows))
	for r, row := range tags.Rows {
		if len(row.Values) != n {
			return nil, &core.SchemaError{Field: row.TAG.Name(), Message: "value count does not match sample count"}
		}

		keys[r] = make([]composition.Key, len(groups))
		prefixes[r] = make([]string, len(groups))
		var id []byte
		for i, c := range groups {
			k, err := c.Key(row.TAG, opts)
			if err != nil {
				return nil, err
			}
			keys[r][i] = k
			id = k.AppendIdentity(id)
			prefixes[r][i] = string(id)
		}
	}

	// Running sums, one partition table per level
	levels := make([]map[string]*partition, len(groups))
	for i := range groups {
		levels[i] = make(map[string]*partition)
	}
	for r, row := range tags.Rows {
		for i := range groups {
			p, ok := levels[i][prefixes[r][i]]
			if !ok {
				p = &partition{sums: make([]*float64, n)}
				levels[i][prefixes[r][i]] = p
			}
			p.add(row.Values)
		}
	}

	out := &Derived{Samples: tags.Samples, Groups: groups}
	last := len(groups) - 1
	seen := make(map[string]bool)
	for r := range tags.Rows {
		full := prefixes[r][last]
		if seen[full] {
			continue
		}
		seen[full] = true

		values := make([][]*float64, len(groups))
		for i := range groups {
			values[i] = levels[i][prefixes[r][i]].sums
		}
		out.Rows = append(out.Rows, DerivedRow{Keys: keys[r], Values: values})
	}

	return out, nil
}
