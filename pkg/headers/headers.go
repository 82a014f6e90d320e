// Package headers resolves unreliable source column names to positions.
// Input schemas are not controlled: the same logical field arrives under
// different labels from one installation to the next, so columns are located
// by keyword search over the header row instead of by fixed offsets.
//
// An Index is built once per table and never re-searched per row. The first
// column whose upper-cased label contains every keyword of a set wins; when
// two columns share keywords an installation may mis-map, which is a
// documented risk of keyword addressing, not something the resolver corrects.
package headers

import (
	"strings"

	"github.com/eliteembassy/songbridge/pkg/errors"
	"github.com/eliteembassy/songbridge/pkg/normalize"
	"github.com/eliteembassy/songbridge/pkg/tables"
)

// maxHeaderScanRows bounds the search for a header row on tables where it
// is not guaranteed to be row 1.
const maxHeaderScanRows = 10

// KeywordSet lists substrings that must all appear in a column label,
// compared upper-cased.
type KeywordSet []string

// Spec is an ordered list of keyword-set alternatives, tried in priority
// order.
type Spec []KeywordSet

// Words builds a single-alternative Spec from keywords.
func Words(keywords ...string) Spec {
	return Spec{KeywordSet(keywords)}
}

// headerCol pairs a column position with its comparable label form.
type headerCol struct {
	col   int
	label string // upper-cased, trimmed, apostrophes removed
}

// Index maps canonical fields to column positions within one table.
// Immutable after Resolve.
type Index struct {
	table     *tables.Table
	headerRow int
	cols      []headerCol
}

// Resolve scans up to the first ten rows of a table, selects the first row
// containing at least one non-empty cell as the header row, and builds the
// label index from that row only. A table with no header row yields an
// empty index whose lookups all report "not found".
func Resolve(t *tables.Table) *Index {
	ix := &Index{table: t}

	limit := t.MaxRow()
	if limit > maxHeaderScanRows {
		limit = maxHeaderScanRows
	}

	for r := 1; r <= limit; r++ {
		var cols []headerCol
		for c := 1; c <= t.MaxCol(); c++ {
			v := t.Cell(r, c)
			if v == nil {
				continue
			}
			label := canonLabel(normalize.String(v))
			if label == "" {
				continue
			}
			cols = append(cols, headerCol{col: c, label: label})
		}
		if len(cols) > 0 {
			ix.headerRow = r
			ix.cols = cols
			break
		}
	}

	return ix
}

// Table returns the table the index was built from.
func (ix *Index) Table() *tables.Table {
	return ix.table
}

// HeaderRow returns the 1-based row the header was found on, or 0 when the
// table had no header row within the scan bound.
func (ix *Index) HeaderRow() int {
	return ix.headerRow
}

// FirstDataRow returns the row data begins on: one past the instruction row
// that follows the header. Sinks keep the header and instruction rows and
// write from here.
func (ix *Index) FirstDataRow() int {
	return ix.headerRow + 2
}

// Find returns the 1-based position of the first column whose label
// contains all keywords of some alternative, trying alternatives in
// priority order. Returns 0 when no column matches.
func (ix *Index) Find(spec Spec) int {
	for _, set := range spec {
		upper := make([]string, len(set))
		for i, k := range set {
			upper[i] = strings.ToUpper(k)
		}
	columns:
		for _, hc := range ix.cols {
			for _, k := range upper {
				if !strings.Contains(hc.label, k) {
					continue columns
				}
			}
			return hc.col
		}
	}
	return 0
}

// FindWords is Find with a single keyword-set alternative.
func (ix *Index) FindWords(keywords ...string) int {
	return ix.Find(Words(keywords...))
}

// Exact returns the position of the column whose label equals the given
// one, compared upper-cased with apostrophes removed, or 0 when absent.
func (ix *Index) Exact(label string) int {
	want := canonLabel(label)
	for _, hc := range ix.cols {
		if hc.label == want {
			return hc.col
		}
	}
	return 0
}

// Label returns the header cell's original text for a resolved column,
// or "" for a zero column. Callers use it when the source's own wording
// must appear in output, as with prefixed note fields.
func (ix *Index) Label(col int) string {
	if col == 0 || ix.headerRow == 0 {
		return ""
	}
	return strings.TrimSpace(normalize.String(ix.table.Cell(ix.headerRow, col)))
}

// Require resolves a mandatory column, returning a structural error naming
// the canonical field when the table lacks it.
func (ix *Index) Require(field string, spec Spec) (int, error) {
	if col := ix.Find(spec); col != 0 {
		return col, nil
	}
	return 0, errors.NewMissingColumnError(ix.table.Name(), field)
}

// Value reads the cell under a resolved column for a 1-based row. A zero
// column (field not present) yields nil, never an error.
func (ix *Index) Value(row, col int) any {
	if col == 0 {
		return nil
	}
	return ix.table.Cell(row, col)
}

// canonLabel produces the label form used for matching: trimmed,
// upper-cased, apostrophes dropped so "Publishers' Names" matches the
// PUBLISHERS NAMES keyword pair.
func canonLabel(label string) string {
	s := strings.ToUpper(strings.TrimSpace(label))
	return strings.ReplaceAll(s, "'", "")
}
