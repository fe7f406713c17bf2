// Package core provides the data models and validation logic for fatty acid
// and triacylglycerol analytical data used by TAGKey.
package core

import (
	"fmt"
	"math"
	"strings"
)

// Metadata identifies a sample.
type Metadata struct {
	Name        string
	Description string
	Date        string

	// Internal tracking
	SourceFile string
}

// Row is one fatty acid measured in a sample.
type Row struct {
	Label     string    // Species label (e.g., "P", "O", "L")
	FattyAcid FattyAcid // Chain structure
	TAG       float64   // Fraction in triacylglycerols
	DAG1223   float64   // Fraction in sn-1,2/2,3 diacylglycerols
	MAG2      float64   // Fraction in sn-2 monoacylglycerols
}

// Sample is a loaded measurement table, one row per distinct fatty acid.
type Sample struct {
	Metadata Metadata
	Rows     []Row
}

// Validate checks that a sample meets all requirements for processing.
// Violations are reported as a *SchemaError.
func (s *Sample) Validate() error {
	var errs []string

	if len(s.Rows) == 0 {
		errs = append(errs, "at least one fatty acid is required")
	}

	labels := make(map[string]bool)
	for i, row := range s.Rows {
		if row.Label == "" {
			errs = append(errs, fmt.Sprintf("row %d has an empty label", i))
		} else if labels[row.Label] {
			errs = append(errs, fmt.Sprintf("row %d label %q is duplicated", i, row.Label))
		}
		labels[row.Label] = true

		if err := row.FattyAcid.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", i, err))
		}

		if math.IsInf(row.TAG, 0) || math.IsInf(row.DAG1223, 0) || math.IsInf(row.MAG2, 0) {
			errs = append(errs, fmt.Sprintf("row %d has an infinite value", i))
		}
	}

	if len(errs) > 0 {
		return &SchemaError{
			Field:   "Sample " + s.Name(),
			Message: strings.Join(errs, "; "),
		}
	}

	return nil
}

// Labels returns the species labels in row order
func (s *Sample) Labels() []string {
	labels := make([]string, len(s.Rows))
	for i, row := range s.Rows {
		labels[i] = row.Label
	}
	return labels
}

// Name returns the sample name, falling back to the source file
func (s *Sample) Name() string {
	return s.Metadata.DisplayName()
}

// DisplayName returns Name, or SourceFile when the name is empty
func (m Metadata) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.SourceFile
}
