// Package tables models the named tables the engine consumes and produces:
// ordered rows of cells, grouped into a Set keyed by table name. It is the
// boundary contract between the engine and whatever loads or stores the
// underlying documents; nothing in this package touches files.
//
// Cells hold scalar values (string, float64, int, bool, time.Time or nil).
// Rows and columns are addressed 1-based, matching how spreadsheet tools
// number them, so "data starts at row 3" reads the same here as in the
// destination workbook.
package tables

import (
	"strings"

	"github.com/eliteembassy/songbridge/pkg/errors"
)

// Table is one named grid of cells. The zero value is not usable; create
// tables with New.
type Table struct {
	name string
	rows [][]any
}

// New creates an empty table with the given name.
func New(name string) *Table {
	return &Table{name: name}
}

// NewWithRows creates a table from existing row data. The slice is used
// directly, not copied.
func NewWithRows(name string, rows [][]any) *Table {
	return &Table{name: name, rows: rows}
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// MaxRow returns the number of rows in the table.
func (t *Table) MaxRow() int {
	return len(t.rows)
}

// MaxCol returns the width of the widest row.
func (t *Table) MaxCol() int {
	max := 0
	for _, r := range t.rows {
		if len(r) > max {
			max = len(r)
		}
	}
	return max
}

// Cell returns the value at the given 1-based row and column, or nil when
// the coordinates fall outside the populated area.
func (t *Table) Cell(row, col int) any {
	if row < 1 || col < 1 || row > len(t.rows) {
		return nil
	}
	r := t.rows[row-1]
	if col > len(r) {
		return nil
	}
	return r[col-1]
}

// SetCell writes a value at the given 1-based row and column, growing the
// table as needed. Coordinates below 1 are ignored.
func (t *Table) SetCell(row, col int, v any) {
	if row < 1 || col < 1 {
		return
	}
	for len(t.rows) < row {
		t.rows = append(t.rows, nil)
	}
	r := t.rows[row-1]
	for len(r) < col {
		r = append(r, nil)
	}
	r[col-1] = v
	t.rows[row-1] = r
}

// AppendRow adds a row to the end of the table and returns its 1-based
// row number.
func (t *Table) AppendRow(cells ...any) int {
	t.rows = append(t.rows, cells)
	return len(t.rows)
}

// Truncate removes every row after the first keep rows. Truncate(2) leaves
// the header and instruction rows and deletes the data region.
func (t *Table) Truncate(keep int) {
	if keep < 0 {
		keep = 0
	}
	if len(t.rows) > keep {
		t.rows = t.rows[:keep]
	}
}

// Rows returns the underlying row data. Mutating the result mutates the
// table.
func (t *Table) Rows() [][]any {
	return t.rows
}

// Set is an ordered collection of named tables, as loaded from one source
// document. Lookup order follows insertion order, so "first matching table
// wins" is deterministic.
type Set struct {
	name   string
	tables []*Table
}

// NewSet creates a Set with the given name (typically the source document
// name, used in error messages).
func NewSet(name string, ts ...*Table) *Set {
	return &Set{name: name, tables: ts}
}

// Name returns the set name.
func (s *Set) Name() string {
	return s.name
}

// Add appends a table to the set.
func (s *Set) Add(t *Table) {
	s.tables = append(s.tables, t)
}

// Tables returns the tables in insertion order.
func (s *Set) Tables() []*Table {
	return s.tables
}

// FindContains returns the first table whose name contains the given
// substring, compared case-insensitively, or nil when none matches.
func (s *Set) FindContains(substr string) *Table {
	upper := strings.ToUpper(substr)
	for _, t := range s.tables {
		if strings.Contains(strings.ToUpper(t.name), upper) {
			return t
		}
	}
	return nil
}

// FindExact returns the table whose name equals the given name,
// compared case-insensitively, or nil when none matches.
func (s *Set) FindExact(name string) *Table {
	for _, t := range s.tables {
		if strings.EqualFold(t.name, name) {
			return t
		}
	}
	return nil
}

// RequireContains is FindContains that returns a structural error naming
// the missing table.
func (s *Set) RequireContains(substr string) (*Table, error) {
	if t := s.FindContains(substr); t != nil {
		return t, nil
	}
	return nil, errors.NewMissingTableError(s.name, substr)
}

// RequireExact is FindExact that returns a structural error naming the
// missing table.
func (s *Set) RequireExact(name string) (*Table, error) {
	if t := s.FindExact(name); t != nil {
		return t, nil
	}
	return nil, errors.NewMissingTableError(s.name, name)
}
