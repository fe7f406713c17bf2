// Package text renders composition results and fatty acid tables as aligned
// text columns.
package text

import (
	"fmt"
	"io"
	"strconv"

	"github.com/aclements/go-gg/table"

	"github.com/ChrisMcGann/TAGKey/pkg/compose"
	"github.com/ChrisMcGann/TAGKey/pkg/reconcile"
)

// Options control result rendering
type Options struct {
	// GroupByFirst prints a group header for every distinct first-level key
	GroupByFirst bool

	// ValueFormat is the printf verb for means and deviations
	ValueFormat string
}

// DefaultValueFormat is used when Options.ValueFormat is empty
const DefaultValueFormat = "%.4f"

// Null is printed for a value absent from a sample
const Null = "-"

// errWriter remembers the first write error
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// ResultTable builds the presentation table of a result: per level, the key
// column followed by its mean and standard deviation.
func ResultTable(res *compose.Result) *table.Table {
	b := new(table.Builder)
	for _, col := range res.Columns {
		name := col.Composition.String()
		keys := make([]string, len(col.Entries))
		means := make([]float64, len(col.Entries))
		stds := make([]float64, len(col.Entries))
		for i, e := range col.Entries {
			keys[i] = e.Key.String()
			means[i] = e.Value.Mean
			stds[i] = e.Value.StandardDeviation
		}
		b.Add(name, keys).Add(name+" mean", means).Add(name+" sd", stds)
	}
	return b.Done()
}

// WriteResult renders a composition result
func WriteResult(w io.Writer, res *compose.Result, opts Options) error {
	format := opts.ValueFormat
	if format == "" {
		format = DefaultValueFormat
	}

	formats := make([]string, 0, 3*len(res.Columns))
	for range res.Columns {
		formats = append(formats, "%s", format, format)
	}

	var g table.Grouping = ResultTable(res)
	if opts.GroupByFirst && len(res.Columns) > 0 {
		g = table.GroupBy(g, res.Columns[0].Composition.String())
	}

	ew := &errWriter{w: w}
	table.Fprint(ew, g, formats...)
	return ew.err
}

// FattyAcidTable builds the presentation table of reconciled fatty acids with
// their derived columns and per-sample values.
func FattyAcidTable(t *reconcile.Table) *table.Table {
	n := len(t.Rows)
	species := make([]string, n)
	fattyAcids := make([]string, n)
	ecn := make([]int, n)
	mass := make([]float64, n)
	saturation := make([]string, n)
	unsaturation := make([]int, n)
	for i, row := range t.Rows {
		species[i] = row.Species
		fattyAcids[i] = row.FattyAcid.String()
		ecn[i] = row.ECN
		mass[i] = row.Mass
		saturation[i] = row.Saturation.String()
		unsaturation[i] = row.Unsaturation
	}

	b := new(table.Builder).
		Add("Species", species).
		Add("FattyAcid", fattyAcids).
		Add("ECN", ecn).
		Add("Mass", mass).
		Add("Saturation", saturation).
		Add("Unsaturation", unsaturation)

	for s, label := range sampleLabels(t) {
		for _, c := range []struct {
			name   string
			values func(reconcile.Row) *float64
		}{
			{"TAG", func(r reconcile.Row) *float64 { return r.TAG[s] }},
			{"DAG1223", func(r reconcile.Row) *float64 { return r.DAG1223[s] }},
			{"MAG2", func(r reconcile.Row) *float64 { return r.MAG2[s] }},
		} {
			col := make([]string, n)
			for i, row := range t.Rows {
				col[i] = formatOptional(c.values(row))
			}
			b.Add(label+" "+c.name, col)
		}
	}
	return b.Done()
}

// WriteFattyAcids renders a reconciled fatty acid table
func WriteFattyAcids(w io.Writer, t *reconcile.Table) error {
	ew := &errWriter{w: w}
	table.Fprint(ew, FattyAcidTable(t), "%s", "%s", "%d", "%.4f", "%s", "%d")
	return ew.err
}

func formatOptional(v *float64) string {
	if v == nil {
		return Null
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// sampleLabels names each sample's columns, disambiguating repeated names
func sampleLabels(t *reconcile.Table) []string {
	labels := make([]string, len(t.Samples))
	seen := make(map[string]int)
	for i, m := range t.Samples {
		label := m.DisplayName()
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		seen[label]++
		if seen[label] > 1 {
			label = fmt.Sprintf("%s(%d)", label, seen[label])
		}
		labels[i] = label
	}
	return labels
}
