package filter

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/ChrisMcGann/TAGKey/pkg/compose"
)

// SortMode selects what rows are ordered by
type SortMode int

const (
	SortByKey SortMode = iota
	SortByValue
)

func (m SortMode) String() string {
	if m == SortByValue {
		return "value"
	}
	return "key"
}

// ParseSortMode parses "key" or "value"
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "key", "":
		return SortByKey, nil
	case "value":
		return SortByValue, nil
	}
	return 0, fmt.Errorf("unknown sort mode: %s", s)
}

// Order is the sort direction
type Order int

const (
	Ascending Order = iota
	Descending
)

func (o Order) String() string {
	if o == Descending {
		return "descending"
	}
	return "ascending"
}

// ParseOrder parses "asc"/"ascending" or "desc"/"descending"
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending", "":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return 0, fmt.Errorf("unknown sort order: %s", s)
}

// sort orders rows by the tuple of level keys or level means. Ties keep their
// original order. NaN means sort first ascending and last descending.
func (c *Config) sort(t *compose.Table) error {
	var desc bool
	switch c.Order {
	case Ascending:
	case Descending:
		desc = true
	default:
		return fmt.Errorf("unknown sort order: %v", c.Order)
	}

	switch c.SortBy {
	case SortByKey:
		slices.SortStableFunc(t.Rows, func(a, b compose.Row) int {
			if desc {
				return compareKeys(b, a)
			}
			return compareKeys(a, b)
		})
	case SortByValue:
		slices.SortStableFunc(t.Rows, func(a, b compose.Row) int {
			return compareValues(a, b, desc)
		})
	default:
		return fmt.Errorf("unknown sort mode: %v", c.SortBy)
	}
	return nil
}

func compareKeys(a, b compose.Row) int {
	for i := range a.Keys {
		if c := a.Keys[i].Compare(b.Keys[i]); c != 0 {
			return c
		}
	}
	return 0
}

// compareValues compares means level by level. cmp.Compare orders NaN before
// any number, so reversing it for descending order puts NaN last.
func compareValues(a, b compose.Row, desc bool) int {
	for i := range a.Values {
		c := cmp.Compare(a.Values[i].Mean, b.Values[i].Mean)
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}
