// Package validate inspects an intake export for data-quality problems
// before a run: values the engine would silently drop or coerce, surfaced
// as warnings so the catalog team can fix the form instead of chasing
// missing output. Nothing here blocks processing.
package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eliteembassy/songbridge/pkg/headers"
	"github.com/eliteembassy/songbridge/pkg/intake"
	"github.com/eliteembassy/songbridge/pkg/normalize"
	"github.com/eliteembassy/songbridge/pkg/rules"
	"github.com/eliteembassy/songbridge/pkg/tables"
)

// Warning is one finding, located by table row and, when it concerns a
// single rights holder, the participant slot.
type Warning struct {
	Row     int // 1-based table row, 0 for table-level findings
	Slot    int // participant slot, 0 for row-level findings
	Field   string
	Value   string
	Message string
}

// String renders the warning for console output.
func (w Warning) String() string {
	var b strings.Builder
	if w.Row > 0 {
		fmt.Fprintf(&b, "row %d: ", w.Row)
	}
	if w.Slot > 0 {
		fmt.Fprintf(&b, "composer %d: ", w.Slot)
	}
	b.WriteString(w.Message)
	if w.Value != "" {
		fmt.Fprintf(&b, " (%s %q)", w.Field, w.Value)
	}
	return b.String()
}

// Checker runs the validation pass under one rule configuration.
type Checker struct {
	cfg rules.Config
}

// New creates a Checker.
func New(cfg rules.Config) *Checker {
	return &Checker{cfg: cfg}
}

// Check scans every data row of an intake table and returns the findings
// in row order.
func (c *Checker) Check(t *tables.Table) []Warning {
	hdr := headers.Resolve(t)
	if hdr.HeaderRow() == 0 {
		return []Warning{{Message: "table has no header row"}}
	}
	cols := intake.ResolveColumns(hdr)

	var ws []Warning
	if cols.Key == 0 {
		ws = append(ws, Warning{
			Field:   "business key",
			Message: "no business key column found, nothing will join",
		})
	}

	seen := make(map[string]int)
	for row := hdr.HeaderRow() + 1; row <= t.MaxRow(); row++ {
		ws = append(ws, c.checkRow(hdr, cols, row, seen)...)
	}
	return ws
}

func (c *Checker) checkRow(hdr *headers.Index, cols *intake.Columns, row int, seen map[string]int) []Warning {
	var ws []Warning

	if cols.Key != 0 {
		key := normalize.Key(hdr.Value(row, cols.Key))
		switch {
		case key == "":
			ws = append(ws, Warning{
				Row:     row,
				Field:   "business key",
				Message: "missing business key, row will not join",
			})
		case seen[key] != 0:
			ws = append(ws, Warning{
				Row:     row,
				Field:   "business key",
				Value:   key,
				Message: fmt.Sprintf("duplicate business key, overrides row %d", seen[key]),
			})
			seen[key] = row
		default:
			seen[key] = row
		}
	}

	ws = append(ws, c.checkWriterTotal(hdr, cols, row)...)

	for slot := 1; slot <= len(cols.Participants); slot++ {
		ws = append(ws, c.checkParticipant(hdr, cols.Participants[slot-1], row, slot)...)
	}
	return ws
}

func (c *Checker) checkWriterTotal(hdr *headers.Index, cols *intake.Columns, row int) []Warning {
	if cols.WriterTotal == 0 {
		return nil
	}
	raw := strings.TrimSpace(normalize.String(hdr.Value(row, cols.WriterTotal)))
	if raw == "" {
		return nil
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return []Warning{{
			Row:     row,
			Field:   "writer total",
			Value:   raw,
			Message: "writer total is not a number, no rights holders will be read",
		}}
	}
	if int(n) > c.cfg.MaxParticipants {
		return []Warning{{
			Row:     row,
			Field:   "writer total",
			Value:   raw,
			Message: fmt.Sprintf("writer total exceeds the %d-slot capacity, extra writers will be dropped", c.cfg.MaxParticipants),
		}}
	}
	return nil
}

func (c *Checker) checkParticipant(hdr *headers.Index, pc intake.ParticipantColumns, row, slot int) []Warning {
	var ws []Warning

	mark := strings.TrimSpace(normalize.String(hdr.Value(row, pc.ComposerControl)))
	if mark != "" && !strings.EqualFold(mark, "Y") && !strings.EqualFold(mark, "N") {
		ws = append(ws, Warning{
			Row:     row,
			Slot:    slot,
			Field:   "controlled marker",
			Value:   mark,
			Message: "controlled marker is not Y or N, treated as N",
		})
	}

	code := strings.TrimSpace(normalize.String(hdr.Value(row, pc.ComposerCapacity)))
	if code != "" && looksLikeCode(code) {
		if _, ok := c.cfg.CapacityLabels[strings.ToUpper(code)]; !ok {
			ws = append(ws, Warning{
				Row:     row,
				Slot:    slot,
				Field:   "capacity",
				Value:   code,
				Message: "unrecognized capacity code, passed through unmapped",
			})
		}
	}
	return ws
}

// looksLikeCode separates short capacity codes from values that are already
// spelled-out labels; only codes are checked against the mapping.
func looksLikeCode(s string) bool {
	return len(s) <= 3
}
