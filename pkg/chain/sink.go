package chain

import (
	"strconv"

	"github.com/rs/zerolog"

	"github.com/eliteembassy/songbridge/pkg/headers"
	"github.com/eliteembassy/songbridge/pkg/tables"
)

// slotColumns holds the resolved destination columns for one participant
// slot of the chain table. Zero positions are skipped on write: a template
// that lacks a column simply does not receive that value.
type slotColumns struct {
	typ           int
	name          int
	first         int
	middle        int
	surname       int
	cae           int
	controlled    int
	mechOwned     int
	mechCollected int
	perfOwned     int
	perfCollected int
	capacity      int
}

// Sink writes derived chain rows into the destination chain table. The
// table's data region is cleared on creation; writes append from the first
// data row down.
type Sink struct {
	table *tables.Table
	log   zerolog.Logger

	workID    int
	workTitle int
	workMain  int
	workTune  int
	territory int

	slots   [maxSlots]slotColumns
	cursor  int
	written int
}

// NewSink resolves the chain table's columns, clears its data region, and
// positions the write cursor at the first data row.
func NewSink(t *tables.Table, log zerolog.Logger) *Sink {
	ix := headers.Resolve(t)

	s := &Sink{
		table:     t,
		log:       log,
		workID:    ix.Find(headers.Spec{{"WORK", "ID"}, {"ID"}}),
		workTitle: ix.FindWords("WORK", "TITLE"),
		workMain:  ix.FindWords("WORK", "MAIN"),
		workTune:  ix.FindWords("WORK", "TUNE"),
		territory: ix.FindWords("TERRITORY"),
		cursor:    ix.FirstDataRow(),
	}

	for i := 1; i <= maxSlots; i++ {
		n := slotLabel(i)
		s.slots[i-1] = slotColumns{
			typ:           ix.FindWords(n, "TYPE"),
			name:          ix.FindWords(n, "NAME"),
			first:         ix.FindWords(n, "FIRST"),
			middle:        ix.FindWords(n, "MIDDLE"),
			surname:       ix.FindWords(n, "SURNAME"),
			cae:           ix.FindWords(n, "CAE"),
			controlled:    ix.FindWords(n, "CONTROLLED"),
			mechOwned:     ix.FindWords(n, "MECHANICAL", "OWNED"),
			mechCollected: ix.FindWords(n, "MECHANICAL", "COLLECTED"),
			perfOwned:     ix.FindWords(n, "PERFORMANCE", "OWNED"),
			perfCollected: ix.FindWords(n, "PERFORMANCE", "COLLECTED"),
			capacity:      ix.FindWords(n, "CAPACITY"),
		}
	}

	t.Truncate(ix.HeaderRow() + 1)
	return s
}

// Write appends one chain row at the cursor.
func (s *Sink) Write(row Row) {
	r := s.cursor
	s.cursor++
	s.written++

	s.set(r, s.workID, row.Work.ID)
	s.set(r, s.workTitle, row.Work.Title)
	s.set(r, s.workMain, row.Work.MainID)
	s.set(r, s.workTune, row.Work.Tunecode)
	s.set(r, s.territory, row.Work.Territory)

	for i, slot := range row.Slots {
		if i >= maxSlots {
			break
		}
		sc := s.slots[i]
		s.set(r, sc.typ, slot.Type)
		s.set(r, sc.name, slot.Name)
		s.set(r, sc.first, slot.FirstName)
		s.set(r, sc.middle, slot.MiddleName)
		s.set(r, sc.surname, slot.Surname)
		s.set(r, sc.cae, slot.CAE)
		s.set(r, sc.controlled, slot.Controlled)
		s.set(r, sc.mechOwned, slot.MechanicalOwned)
		s.set(r, sc.mechCollected, slot.MechanicalCollected)
		s.set(r, sc.perfOwned, slot.PerformanceOwned)
		s.set(r, sc.perfCollected, slot.PerformanceCollected)
		s.set(r, sc.capacity, slot.Capacity)
	}
}

// Written returns how many rows have been appended so far.
func (s *Sink) Written() int {
	return s.written
}

func (s *Sink) set(row, col int, v any) {
	if col == 0 {
		return
	}
	if str, ok := v.(string); ok && str == "" {
		return
	}
	s.table.SetCell(row, col, v)
}

// slotLabel renders the destination's indexed slot prefix.
func slotLabel(i int) string {
	return "PARTICIPANT " + strconv.Itoa(i)
}

// AltSink writes alternate-title rows into the destination's alternate
// titles table, whose layout is fixed rather than keyword-addressed.
type AltSink struct {
	table *tables.Table

	workID    int
	workTitle int
	workMain  int
	workTune  int
	altTitle  int
	language  int

	cursor int
}

// NewAltSink resolves the alternate-titles table's fixed columns, clears
// its data region, and positions the write cursor at the first data row.
func NewAltSink(t *tables.Table) *AltSink {
	ix := headers.Resolve(t)

	s := &AltSink{
		table:     t,
		workTitle: ix.Exact("WORK TITLE"),
		workMain:  ix.Exact("WORK MAIN IDENTIFIER"),
		workTune:  ix.Exact("WORK TUNECODE"),
		altTitle:  ix.Exact("ALTERNATE TITLE"),
		language:  ix.Exact("LANGUAGE"),
		cursor:    ix.FirstDataRow(),
	}
	if s.workID = ix.Exact("WORK ID"); s.workID == 0 {
		s.workID = ix.Exact("ID")
	}

	t.Truncate(ix.HeaderRow() + 1)
	return s
}

// Write appends one alternate-title row at the cursor.
func (s *AltSink) Write(work Work, title string) {
	r := s.cursor
	s.cursor++

	s.set(r, s.workID, work.ID)
	s.set(r, s.workTitle, work.Title)
	s.set(r, s.workMain, work.MainID)
	s.set(r, s.workTune, work.Tunecode)
	s.set(r, s.altTitle, title)
	s.set(r, s.language, work.Language)
}

func (s *AltSink) set(row, col int, v any) {
	if col == 0 {
		return
	}
	if str, ok := v.(string); ok && str == "" {
		return
	}
	s.table.SetCell(row, col, v)
}
