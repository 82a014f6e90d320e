// Package intake reads the loosely-structured intake form export: it
// resolves the form's uncontrolled column labels once, builds the lookups
// that join intake rows to destination work rows, and extracts the
// per-work rights-holder records embedded in indexed column families.
package intake

import (
	"strconv"

	"github.com/eliteembassy/songbridge/pkg/headers"
	"github.com/eliteembassy/songbridge/pkg/normalize"
	"github.com/eliteembassy/songbridge/pkg/tables"
)

// maxParticipantSlots is the arity of the indexed column families probed
// per work ("Composer {i} ...", "Publisher {i} ...").
const maxParticipantSlots = 10

// Columns holds every intake column position the engine needs, resolved
// once per table. A zero position means the installation's form lacks that
// field; downstream derivation treats it as empty, never as an error.
type Columns struct {
	Title       int
	Key         int // business key, joined against the work table's Foreign ID
	AltTitles   int
	WriterTotal int
	EliteShare  int // "Elite Embassy represents %" mechanical ownership

	Participants [maxParticipantSlots]ParticipantColumns
}

// ParticipantColumns is one indexed family of per-rights-holder columns.
type ParticipantColumns struct {
	PublisherName     int
	PublisherCAE      int
	PublisherCapacity int
	ComposerFirst     int
	ComposerMiddle    int
	ComposerSurname   int
	ComposerShare     int
	ComposerCapacity  int
	ComposerControl   int
}

// ResolveColumns locates every intake field by keyword search over the
// header row.
func ResolveColumns(ix *headers.Index) *Columns {
	cols := &Columns{
		Title: ix.FindWords("TITLE"),
		Key: ix.Find(headers.Spec{
			{"EEP", "MASTER", "CATALOG", "NUMBER"},
			{"EEP", "CATALOG", "NUMBER"},
		}),
		AltTitles: ix.Find(headers.Spec{
			{"ALTERNATE", "TITLE"},
			{"ALT", "TITLE"},
			{"ALTERNATE"},
		}),
		WriterTotal: ix.Find(headers.Spec{
			{"WRITER", "TOTAL"},
			{"TOTAL", "WRITERS"},
		}),
		EliteShare: ix.FindWords("ELITE", "EMBASSY", "REPRESENTS", "%"),
	}

	for i := 1; i <= maxParticipantSlots; i++ {
		n := strconv.Itoa(i)
		cols.Participants[i-1] = ParticipantColumns{
			PublisherName:     ix.FindWords("PUBLISHER " + n + " NAME"),
			PublisherCAE:      ix.FindWords("PUBLISHER " + n + " CAE"),
			PublisherCapacity: ix.FindWords("PUBLISHER " + n + " CAPACITY"),
			ComposerFirst:     ix.FindWords("COMPOSER " + n + " FIRST"),
			ComposerMiddle:    ix.FindWords("COMPOSER " + n + " MIDDLE"),
			ComposerSurname:   ix.FindWords("COMPOSER " + n + " SURNAME"),
			ComposerShare:     ix.FindWords("COMPOSER " + n + " SHARE"),
			ComposerCapacity:  ix.FindWords("COMPOSER " + n + " CAPACITY"),
			ComposerControl:   ix.FindWords("COMPOSER " + n + " CONTROLLED"),
		}
	}

	return cols
}

// Row is a read-only view of one intake record.
type Row struct {
	ix   *headers.Index
	cols *Columns
	row  int
}

// Number returns the 1-based table row this record sits on.
func (r Row) Number() int {
	return r.row
}

// Value reads the cell under a resolved column; a zero column yields nil.
func (r Row) Value(col int) any {
	return r.ix.Value(r.row, col)
}

// altKey joins the normalized work title and business key, mirroring how
// alternate titles are looked up from the destination side.
type altKey struct {
	title string
	key   string
}

// Index holds the two lookups built in one pass over the intake table:
// business key to intake row, and (title, key) to alternate-title strings.
type Index struct {
	ix        *headers.Index
	cols      *Columns
	rows      map[string]Row
	altTitles map[altKey][]string
}

// BuildIndex scans the intake table once and builds both lookups.
// Duplicate business keys overwrite earlier rows: last row wins, by policy.
func BuildIndex(t *tables.Table) *Index {
	hdr := headers.Resolve(t)
	cols := ResolveColumns(hdr)

	idx := &Index{
		ix:        hdr,
		cols:      cols,
		rows:      make(map[string]Row),
		altTitles: make(map[altKey][]string),
	}

	if hdr.HeaderRow() == 0 || cols.Key == 0 {
		return idx
	}

	for r := hdr.HeaderRow() + 1; r <= t.MaxRow(); r++ {
		row := Row{ix: hdr, cols: cols, row: r}

		key := normalize.Key(row.Value(cols.Key))
		if key == "" {
			continue
		}
		idx.rows[key] = row

		title := normalize.Key(row.Value(cols.Title))
		if title == "" || cols.AltTitles == 0 {
			continue
		}
		raw, ok := row.Value(cols.AltTitles).(string)
		if !ok {
			continue
		}
		if alts := normalize.SplitLines(raw); len(alts) > 0 {
			idx.altTitles[altKey{title: title, key: key}] = alts
		}
	}

	return idx
}

// Columns returns the resolved intake column positions.
func (idx *Index) Columns() *Columns {
	return idx.cols
}

// Lookup returns the intake row for a normalized business key.
func (idx *Index) Lookup(key string) (Row, bool) {
	row, ok := idx.rows[key]
	return row, ok
}

// AltTitles returns the alternate-title strings recorded for a work,
// keyed by its normalized title and business key.
func (idx *Index) AltTitles(titleKey, businessKey string) []string {
	return idx.altTitles[altKey{title: titleKey, key: businessKey}]
}

// Len returns the number of distinct business keys indexed.
func (idx *Index) Len() int {
	return len(idx.rows)
}

// Rows iterates the indexed rows; order is unspecified.
func (idx *Index) Rows(fn func(key string, row Row)) {
	for k, r := range idx.rows {
		fn(k, r)
	}
}
