// Package enrich populates the destination works table from the intake
// export: a positional copy of every intake row into the works data region,
// with per-field cleanup rules, an aggregated notes column, the priority
// flag, and the configured static fills.
//
// Destination columns are addressed by their exact template names; a
// template that lacks a column simply does not receive that field. Source
// columns use exact names too, except the writer, publisher and share
// fields, whose uncontrolled labels are resolved by keyword.
package enrich

import (
	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/eliteembassy/songbridge/pkg/headers"
	"github.com/eliteembassy/songbridge/pkg/normalize"
	"github.com/eliteembassy/songbridge/pkg/rules"
	"github.com/eliteembassy/songbridge/pkg/tables"
)

// worksTableName is the destination table the enrichment writes into.
const worksTableName = "Works"

// fieldMap routes one source column to one destination column with an
// optional cleanup transform. A nil transform copies the value as-is.
type fieldMap struct {
	source    string
	dest      string
	transform func(cfg rules.Config, v any) any
}

// fieldMaps is the core column routing, applied in order.
var fieldMaps = []fieldMap{
	{source: "Title", dest: "Title"},
	{source: "ISWC", dest: "ISWC", transform: gateIdentifier},
	{source: "TUNECODE #", dest: "Tunecode", transform: filterExcluded},
	{source: "Recording Release Date (CWR)", dest: "Copyright Date", transform: formatDate},
	{source: "Recording Label Name", dest: "Label Copy"},
	{source: "Artist(s)", dest: "Performers", transform: joinPerformers},
	{source: "Recording ISRC", dest: "Track ISRCs", transform: joinISRCs},
}

func gateIdentifier(cfg rules.Config, v any) any {
	return emptyToNil(cfg.GateIdentifier(normalize.String(v)))
}

func filterExcluded(cfg rules.Config, v any) any {
	return emptyToNil(cfg.FilterExcluded(normalize.String(v)))
}

func formatDate(_ rules.Config, v any) any {
	return emptyToNil(rules.FormatDate(v))
}

func joinPerformers(_ rules.Config, v any) any {
	return emptyToNil(rules.JoinLines(normalize.String(v), "; "))
}

func joinISRCs(cfg rules.Config, v any) any {
	return emptyToNil(cfg.FilterExcluded(rules.JoinLines(normalize.String(v), ";")))
}

// emptyToNil turns a cleaned-away value into an explicit nil so the
// destination cell is cleared rather than left holding template content.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Result summarizes one enrichment run.
type Result struct {
	Started   utc.Time
	Completed utc.Time

	RowsWritten   int
	ColumnsMapped int
}

// Runner executes the enrichment over one destination table set.
type Runner struct {
	cfg rules.Config
	log zerolog.Logger
}

// NewRunner creates a Runner.
func NewRunner(cfg rules.Config, log zerolog.Logger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// Run copies the intake rows into the destination works table. Row i of the
// intake data region lands on row i of the works data region, growing the
// table when the intake outruns it. A missing works table is structural;
// missing columns on either side are skipped.
func (r *Runner) Run(dest *tables.Set, src *tables.Table) (*Result, error) {
	res := &Result{Started: utc.Now()}

	works, err := dest.RequireExact(worksTableName)
	if err != nil {
		return nil, err
	}

	six := headers.Resolve(src)
	dix := headers.Resolve(works)

	srcStart := six.HeaderRow() + 1
	rows := src.MaxRow() - six.HeaderRow()
	if six.HeaderRow() == 0 || rows <= 0 {
		r.log.Warn().Str("table", src.Name()).Msg("intake table has no data rows")
		res.Completed = utc.Now()
		return res, nil
	}

	for _, fm := range fieldMaps {
		srcCol := six.Exact(fm.source)
		destCol := dix.Exact(fm.dest)
		if srcCol == 0 || destCol == 0 {
			r.log.Debug().
				Str("source", fm.source).
				Str("dest", fm.dest).
				Msg("field not present on both sides, skipped")
			continue
		}
		res.ColumnsMapped++

		for i := 0; i < rows; i++ {
			v := six.Value(srcStart+i, srcCol)
			if fm.transform != nil {
				v = fm.transform(r.cfg, v)
			}
			works.SetCell(dix.FirstDataRow()+i, destCol, v)
		}
	}

	r.writeNotes(six, dix, works, srcStart, rows)
	r.writePriority(six, dix, works, srcStart, rows)
	r.writeStatics(dix, works, rows)

	res.RowsWritten = rows
	res.Completed = utc.Now()
	r.log.Info().
		Int("rows", res.RowsWritten).
		Int("columns_mapped", res.ColumnsMapped).
		Msg("works enrichment complete")

	return res, nil
}

// notesFields builds the ordered note sources for one intake table. The
// writer, publisher and share labels vary by installation, so their columns
// are keyword-resolved and their resolved labels used as prefixes.
func (r *Runner) notesFields(six *headers.Index) []rules.NotesField {
	writers := six.FindWords("WRITERS", "COMPOSER")
	publishers := six.FindWords("PUBLISHERS", "NAMES")
	shares := six.FindWords("SHARES")

	return []rules.NotesField{
		{Label: "EEP Master Catalog Number", Col: six.Exact("EEP Master Catalog Number")},
		{Label: "ISWC", Col: six.Exact("ISWC"), ApplyExclusions: true},
		{Label: "PORTAL LINK TO SONG - MULTI LINE", Col: six.Exact("PORTAL LINK TO SONG - MULTI LINE")},
		{Label: six.Label(writers), Col: writers, Prefix: true},
		{Label: six.Label(publishers), Col: publishers, Prefix: true},
		{Label: six.Label(shares), Col: shares, Prefix: true},
		{Label: "USA TEAM NOTES", Col: six.Exact("USA TEAM NOTES")},
		{Label: "GLOBAL TEAM NOTES", Col: six.Exact("GLOBAL TEAM NOTES")},
	}
}

func (r *Runner) writeNotes(six, dix *headers.Index, works *tables.Table, srcStart, rows int) {
	destCol := dix.Exact("Notes")
	if destCol == 0 {
		return
	}
	fields := r.notesFields(six)

	for i := 0; i < rows; i++ {
		row := srcStart + i
		note := r.cfg.Notes(fields, func(col int) any { return six.Value(row, col) })
		works.SetCell(dix.FirstDataRow()+i, destCol, emptyToNil(note))
	}
}

// writePriority derives the priority flag. When the intake lacks the status
// column every written row gets FALSE, matching the flag's default.
func (r *Runner) writePriority(six, dix *headers.Index, works *tables.Table, srcStart, rows int) {
	destCol := dix.Exact("Priority Work")
	if destCol == 0 {
		return
	}
	srcCol := six.Exact("Popular Catalog Status")

	for i := 0; i < rows; i++ {
		flag := r.cfg.PriorityFlag(six.Value(srcStart+i, srcCol))
		works.SetCell(dix.FirstDataRow()+i, destCol, flag)
	}
}

func (r *Runner) writeStatics(dix *headers.Index, works *tables.Table, rows int) {
	for name, value := range r.cfg.StaticFills {
		destCol := dix.Exact(name)
		if destCol == 0 {
			continue
		}
		for i := 0; i < rows; i++ {
			works.SetCell(dix.FirstDataRow()+i, destCol, value)
		}
	}
}
