package estimate

import (
	"fmt"
	"math"
	"sort"
)

// Table is an immutable snapshot of the reference rows, indexed by lookup
// key. It is safe for concurrent use.
type Table struct {
	rows  []ReferenceRow
	index map[LookupKey][]int
}

// NewTable validates rows and builds the lookup index. Duplicate keys are
// accepted here; Resolve reports them as not found.
func NewTable(rows []ReferenceRow) (*Table, error) {
	t := &Table{
		rows:  make([]ReferenceRow, len(rows)),
		index: make(map[LookupKey][]int, len(rows)),
	}
	copy(t.rows, rows)

	for i, row := range t.rows {
		if err := validateRow(row); err != nil {
			return nil, fmt.Errorf("reference row %d: %w", i+1, err)
		}
		key := row.Key()
		t.index[key] = append(t.index[key], i)
	}
	return t, nil
}

func validateRow(row ReferenceRow) error {
	if !row.DocumentType.Valid() {
		return fmt.Errorf("unknown document type %q", row.DocumentType)
	}
	if row.Tool == "" {
		return fmt.Errorf("tool is empty")
	}
	if row.RevisionCount < 1 {
		return fmt.Errorf("revision count %d is not positive", row.RevisionCount)
	}
	if row.ComplexityClass == "" {
		return fmt.Errorf("complexity class is empty")
	}
	if math.IsNaN(row.TotalHours) || math.IsInf(row.TotalHours, 0) || row.TotalHours < 0 {
		return fmt.Errorf("total hours %v is not a non-negative number", row.TotalHours)
	}
	return nil
}

// Resolve returns the hours of the single row matching key exactly. Zero or
// several matching rows yield a *core.LookupNotFoundError.
func (t *Table) Resolve(key LookupKey) (float64, error) {
	positions := t.index[key]
	if len(positions) != 1 {
		return 0, key.notFound(len(positions))
	}
	return t.rows[positions[0]].TotalHours, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of the rows in load order.
func (t *Table) Rows() []ReferenceRow {
	out := make([]ReferenceRow, len(t.rows))
	copy(out, t.rows)
	return out
}

// DuplicateKeys lists keys held by more than one row, sorted for stable
// reporting. Lookups against these keys always fail.
func (t *Table) DuplicateKeys() []LookupKey {
	var dups []LookupKey
	for key, positions := range t.index {
		if len(positions) > 1 {
			dups = append(dups, key)
		}
	}
	sort.Slice(dups, func(i, j int) bool {
		a, b := dups[i], dups[j]
		if a.DocumentType != b.DocumentType {
			return a.DocumentType < b.DocumentType
		}
		if a.Tool != b.Tool {
			return a.Tool < b.Tool
		}
		if a.RevisionCount != b.RevisionCount {
			return a.RevisionCount < b.RevisionCount
		}
		return a.ComplexityClass < b.ComplexityClass
	})
	return dups
}
