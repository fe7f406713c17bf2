// Package sqlite provides SQLite database export of composition results
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ChrisMcGann/TAGKey/pkg/compose"
	"github.com/ChrisMcGann/TAGKey/pkg/composition"
	"github.com/ChrisMcGann/TAGKey/pkg/core"
)

const (
	// Date format for HeaderTable (ISO 8601)
	headerDateFormat = "2006-01-02"

	// SchemaVersion is stored in HeaderTable.version
	SchemaVersion = 1
)

// Writer handles writing composition results to SQLite database files.
// All inserts share one transaction, committed by Finalize.
type Writer struct {
	db         *sql.DB
	tx         *sql.Tx
	outputPath string
	sampleStmt *sql.Stmt
	levelStmt  *sql.Stmt
	entryStmt  *sql.Stmt
	sampleID   int

	// Header fields written by Finalize
	Description string
	Fingerprint uint64
}

// NewWriter creates a new SQLite writer
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
		sampleID:   1,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	w.tx = tx

	if err := w.prepareStatements(); err != nil {
		tx.Rollback()
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS SampleTable (
		SampleId INTEGER PRIMARY KEY,
		Name TEXT,
		Description TEXT,
		Date TEXT,
		SourceFile TEXT
	);

	CREATE TABLE IF NOT EXISTS LevelTable (
		Level INTEGER PRIMARY KEY,
		Composition TEXT NOT NULL,
		Filter DOUBLE
	);

	CREATE TABLE IF NOT EXISTS CompositionTable (
		RowIndex INTEGER NOT NULL,
		Level INTEGER NOT NULL REFERENCES LevelTable(Level),
		Key TEXT NOT NULL,
		blobKey BLOB,
		Mean DOUBLE,
		StandardDeviation DOUBLE,
		Count INTEGER,
		PRIMARY KEY (RowIndex, Level)
	);

	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		CreationDate TEXT,
		Description TEXT,
		Fingerprint TEXT
	);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// prepareStatements prepares SQL statements for batch insertion
func (w *Writer) prepareStatements() error {
	var err error

	w.sampleStmt, err = w.tx.Prepare(`
		INSERT INTO SampleTable (SampleId, Name, Description, Date, SourceFile)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare sample statement: %w", err)
	}

	w.levelStmt, err = w.tx.Prepare(`
		INSERT INTO LevelTable (Level, Composition, Filter) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare level statement: %w", err)
	}

	w.entryStmt, err = w.tx.Prepare(`
		INSERT INTO CompositionTable (
			RowIndex, Level, Key, blobKey, Mean, StandardDeviation, Count
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare composition statement: %w", err)
	}

	return nil
}

// WriteSample writes one sample identity
func (w *Writer) WriteSample(m core.Metadata) error {
	_, err := w.sampleStmt.Exec(w.sampleID, m.Name, m.Description, m.Date, m.SourceFile)
	if err != nil {
		return fmt.Errorf("failed to insert sample: %w", err)
	}
	w.sampleID++
	return nil
}

// WriteLevel writes one composition level definition
func (w *Writer) WriteLevel(level int, c composition.Composition, threshold float64) error {
	if _, err := w.levelStmt.Exec(level, c.String(), threshold); err != nil {
		return fmt.Errorf("failed to insert level: %w", err)
	}
	return nil
}

// WriteEntry writes the key and statistics of one row at one level.
// NaN statistics are stored as NULL.
func (w *Writer) WriteEntry(row, level int, e compose.Entry) error {
	var blob []byte
	if e.Key.IsNumeric() {
		blob = encodeFloat64s(e.Key.Numbers)
	}

	_, err := w.entryStmt.Exec(
		row,                                 // RowIndex
		level,                               // Level
		e.Key.String(),                      // Key
		blob,                                // blobKey
		nullable(e.Value.Mean),              // Mean
		nullable(e.Value.StandardDeviation), // StandardDeviation
		e.Value.Count,                       // Count
	)
	if err != nil {
		return fmt.Errorf("failed to insert composition entry: %w", err)
	}
	return nil
}

// WriteResult writes samples, levels and every entry of a result
func (w *Writer) WriteResult(res *compose.Result, thresholds []float64) error {
	for _, m := range res.Samples {
		if err := w.WriteSample(m); err != nil {
			return err
		}
	}

	for level, col := range res.Columns {
		threshold := 0.0
		if level < len(thresholds) {
			threshold = thresholds[level]
		}
		if err := w.WriteLevel(level, col.Composition, threshold); err != nil {
			return err
		}
		for row, e := range col.Entries {
			if err := w.WriteEntry(row, level, e); err != nil {
				return err
			}
		}
	}
	return nil
}

// encodeFloat64s encodes values as a little-endian float64 blob
func encodeFloat64s(xs []float64) []byte {
	buf := make([]byte, len(xs)*8)
	for i, x := range xs {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(x))
	}
	return buf
}

func nullable(x float64) interface{} {
	if math.IsNaN(x) {
		return nil
	}
	return x
}

// Finalize writes the header table, commits and closes the database
func (w *Writer) Finalize() error {
	_, err := w.tx.Exec(`
		INSERT INTO HeaderTable (version, CreationDate, Description, Fingerprint)
		VALUES (?, ?, ?, ?)
	`, SchemaVersion, time.Now().Format(headerDateFormat), w.Description, fmt.Sprintf("%016x", w.Fingerprint))
	if err != nil {
		w.tx.Rollback()
		w.db.Close()
		return fmt.Errorf("failed to insert header: %w", err)
	}

	// Close prepared statements
	for _, stmt := range []*sql.Stmt{w.sampleStmt, w.levelStmt, w.entryStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}

	if err := w.tx.Commit(); err != nil {
		w.db.Close()
		return fmt.Errorf("failed to commit: %w", err)
	}

	// Close database
	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// Abort discards everything written and closes the database
func (w *Writer) Abort() error {
	for _, stmt := range []*sql.Stmt{w.sampleStmt, w.levelStmt, w.entryStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	w.tx.Rollback()
	return w.db.Close()
}

// Close closes the database connection (alias for Finalize)
func (w *Writer) Close() error {
	return w.Finalize()
}
