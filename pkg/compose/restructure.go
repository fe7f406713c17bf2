package compose

import (
	"github.com/ChrisMcGann/TAGKey/pkg/composition"
	"github.com/ChrisMcGann/TAGKey/pkg/core"
)

// Entry is one cell of a composition column
type Entry struct {
	Key   composition.Key
	Value Stat
}

// Column holds one composition level, one entry per table row
type Column struct {
	Composition composition.Composition
	Entries     []Entry
}

// Result is the presentation shape of a composition table
type Result struct {
	Samples []core.Metadata
	Columns []Column
}

// Len returns the number of rows
func (r *Result) Len() int {
	if len(r.Columns) == 0 {
		return 0
	}
	return len(r.Columns[0].Entries)
}

// Restructure projects the row-major table into one column per level
func Restructure(t *Table) *Result {
	res := &Result{
		Samples: t.Samples,
		Columns: make([]Column, len(t.Groups)),
	}
	for i, c := range t.Groups {
		col := Column{Composition: c, Entries: make([]Entry, len(t.Rows))}
		for r, row := range t.Rows {
			col.Entries[r] = Entry{Key: row.Keys[i], Value: row.Values[i]}
		}
		res.Columns[i] = col
	}
	return res
}
