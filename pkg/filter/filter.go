// Package filter provides threshold filtering and sorting of composition tables
package filter

import (
	"fmt"

	"github.com/ChrisMcGann/TAGKey/pkg/compose"
)

// Config holds filtering and sorting configuration
type Config struct {
	Thresholds   []float64 // Mean a row must exceed, per level (missing entries = no cutoff)
	ShowFiltered bool      // Keep rows below threshold
	SortBy       SortMode  // Key or Value
	Order        Order     // Ascending or Descending
}

// Apply filters the table in place, then sorts it
func (c *Config) Apply(t *compose.Table) error {
	if len(c.Thresholds) > len(t.Groups) {
		return fmt.Errorf("%d thresholds given for %d levels", len(c.Thresholds), len(t.Groups))
	}

	if !c.ShowFiltered {
		c.filterByThreshold(t)
	}

	return c.sort(t)
}

// filterByThreshold keeps rows whose mean exceeds the threshold at every level
func (c *Config) filterByThreshold(t *compose.Table) {
	filtered := t.Rows[:0]
	for _, row := range t.Rows {
		if c.passes(row) {
			filtered = append(filtered, row)
		}
	}
	t.Rows = filtered
}

// passes reports whether a row exceeds every level's threshold.
// A NaN mean fails any positive threshold.
func (c *Config) passes(row compose.Row) bool {
	for i, threshold := range c.Thresholds {
		if threshold <= 0 {
			continue
		}
		if !(row.Values[i].Mean > threshold) {
			return false
		}
	}
	return true
}
