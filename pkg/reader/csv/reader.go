// Package csv provides streaming readers for CSV fatty acid sample tables
package csv

import (
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ChrisMcGann/TAGKey/pkg/core"
)

// Required column names
const (
	ColumnLabel     = "Label"
	ColumnFattyAcid = "FattyAcid"
	ColumnTAG       = "TAG"
	ColumnDAG1223   = "DAG1223"
	ColumnMAG2      = "MAG2"
)

// RequiredColumns lists the columns every sample table must carry
var RequiredColumns = []string{ColumnLabel, ColumnFattyAcid, ColumnTAG, ColumnDAG1223, ColumnMAG2}

// Reader provides streaming access to CSV sample tables
type Reader struct {
	csv        *stdcsv.Reader
	columns    map[string]int
	lineNum    int
	currentRow *core.Row
	err        error
}

// NewReader creates a new CSV sample reader. The header is read on the first call to Next.
func NewReader(r io.Reader) *Reader {
	cr := stdcsv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	return &Reader{csv: cr}
}

// Next advances to the next row. Returns false when no more rows or error.
func (r *Reader) Next() bool {
	r.currentRow = nil
	if r.err != nil {
		return false
	}

	if r.columns == nil {
		if err := r.readHeader(); err != nil {
			r.err = err
			return false
		}
	}

	row, err := r.readRow()
	if err != nil {
		if err != io.EOF {
			r.err = err
		}
		return false
	}

	r.currentRow = row
	return true
}

// Row returns the current row
func (r *Reader) Row() *core.Row {
	return r.currentRow
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

// readHeader maps column names to field indexes and checks required columns
func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if err == io.EOF {
		return &core.SchemaError{Field: "header", Message: "file is empty"}
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	r.lineNum++

	r.columns = make(map[string]int, len(header))
	for i, name := range header {
		r.columns[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := r.columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &core.SchemaError{
			Field:   "header",
			Message: "missing required columns: " + strings.Join(missing, ", "),
		}
	}
	return nil
}

// readRow reads and parses a single record
func (r *Reader) readRow() (*core.Row, error) {
	record, err := r.csv.Read()
	if err != nil {
		return nil, err
	}
	r.lineNum++

	field := func(name string) (string, error) {
		idx := r.columns[name]
		if idx >= len(record) {
			return "", &core.SchemaError{Field: name, Message: fmt.Sprintf("line %d: missing value", r.lineNum)}
		}
		return strings.TrimSpace(record[idx]), nil
	}

	label, err := field(ColumnLabel)
	if err != nil {
		return nil, err
	}

	faStr, err := field(ColumnFattyAcid)
	if err != nil {
		return nil, err
	}
	fa, err := core.ParseFattyAcid(faStr)
	if err != nil {
		return nil, &core.SchemaError{Field: ColumnFattyAcid, Message: fmt.Sprintf("line %d: %v", r.lineNum, err)}
	}

	row := &core.Row{Label: label, FattyAcid: fa}
	for _, target := range []struct {
		name string
		dst  *float64
	}{
		{ColumnTAG, &row.TAG},
		{ColumnDAG1223, &row.DAG1223},
		{ColumnMAG2, &row.MAG2},
	} {
		s, err := field(target.name)
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, &core.SchemaError{Field: target.name, Message: fmt.Sprintf("line %d: invalid value '%s'", r.lineNum, s)}
		}
		*target.dst = v
	}

	return row, nil
}

// ReadSample reads all rows into a sample and validates it
func ReadSample(r io.Reader, meta core.Metadata) (*core.Sample, error) {
	sample := &core.Sample{Metadata: meta}

	reader := NewReader(r)
	for reader.Next() {
		sample.Rows = append(sample.Rows, *reader.Row())
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}

	if err := sample.Validate(); err != nil {
		return nil, err
	}
	return sample, nil
}

// LoadFile reads a sample from a CSV file, naming it after the file
func LoadFile(path string) (*core.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample file: %w", err)
	}
	defer f.Close()

	base := filepath.Base(path)
	meta := core.Metadata{
		Name:       strings.TrimSuffix(base, filepath.Ext(base)),
		SourceFile: path,
	}
	sample, err := ReadSample(f, meta)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sample, nil
}
