package intake

import (
	"strconv"
	"strings"

	"github.com/eliteembassy/songbridge/pkg/normalize"
	"github.com/eliteembassy/songbridge/pkg/rules"
)

// Participant is one rights holder extracted from a work's indexed column
// family: the composer identity and share plus the publisher the composer
// is signed to.
type Participant struct {
	// Index is the 1-based slot in the intake form's column family.
	Index int

	FirstName  string
	MiddleName string
	Surname    string

	// Share is the composer's declared share, parsed to a 0-100 percent.
	Share float64

	// Capacity is the mapped capacity label; CapacityCode keeps the raw
	// cell text for diagnostics.
	Capacity     string
	CapacityCode string

	// Controlled reflects the composer's explicit Y/N declaration;
	// ControlledMark keeps the raw cell text for diagnostics.
	Controlled     bool
	ControlledMark string

	PublisherName     string
	PublisherCAE      string
	PublisherCapacity string

	// PublisherControlled is derived from the publisher name, not the
	// composer's Y/N marker. The two disagree routinely and drive
	// different outputs.
	PublisherControlled bool

	// Mechanical is the company's represented mechanical ownership for
	// the work. HasMechanical distinguishes an explicit zero from a cell
	// with no number in it.
	Mechanical    float64
	HasMechanical bool
}

// FullName joins the non-empty name parts with single spaces.
func (p Participant) FullName() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.FirstName, p.MiddleName, p.Surname} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// empty reports whether the slot's column family carried no values at all.
// A slot with only a marker, share, capacity or CAE is still a declared
// rights holder; the name columns alone do not decide presence.
func (p Participant) empty() bool {
	return p.FirstName == "" && p.MiddleName == "" && p.Surname == "" &&
		p.CapacityCode == "" && p.ControlledMark == "" &&
		p.PublisherName == "" && p.PublisherCAE == "" &&
		p.PublisherCapacity == ""
}

// DeclaredWriters parses the row's writer-count field. The second return is
// false when the cell is missing or not numeric.
func (r Row) DeclaredWriters() (int, bool) {
	if r.cols.WriterTotal == 0 {
		return 0, false
	}
	s := strings.TrimSpace(normalize.String(r.Value(r.cols.WriterTotal)))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// MechanicalShare reads the company's represented mechanical percentage for
// the work. The number may be embedded in surrounding text.
func (r Row) MechanicalShare() (float64, bool) {
	if r.cols.EliteShare == 0 {
		return 0, false
	}
	return rules.ExtractNumber(r.Value(r.cols.EliteShare))
}

// Participants extracts the rights holders declared on the row, capped at
// the configured slot maximum. Only slots whose entire column family is
// blank are skipped.
func (r Row) Participants(cfg rules.Config) []Participant {
	declared, ok := r.DeclaredWriters()
	if !ok || declared <= 0 {
		return nil
	}
	n := declared
	if n > cfg.MaxParticipants {
		n = cfg.MaxParticipants
	}
	if n > maxParticipantSlots {
		n = maxParticipantSlots
	}

	mech, hasMech := r.MechanicalShare()

	out := make([]Participant, 0, n)
	for i := 1; i <= n; i++ {
		pc := r.cols.Participants[i-1]

		p := Participant{
			Index:             i,
			FirstName:         r.text(pc.ComposerFirst),
			MiddleName:        r.text(pc.ComposerMiddle),
			Surname:           r.text(pc.ComposerSurname),
			Share:             rules.ParsePercent(r.Value(pc.ComposerShare)),
			CapacityCode:      r.text(pc.ComposerCapacity),
			ControlledMark:    r.text(pc.ComposerControl),
			PublisherName:     r.text(pc.PublisherName),
			PublisherCAE:      r.text(pc.PublisherCAE),
			PublisherCapacity: r.text(pc.PublisherCapacity),
			Mechanical:        mech,
			HasMechanical:     hasMech,
		}
		p.Capacity = cfg.MapCapacity(p.CapacityCode)
		p.Controlled = rules.ControlledMarker(p.ControlledMark)
		p.PublisherControlled = cfg.InHouse(p.PublisherName)

		if p.empty() && r.text(pc.ComposerShare) == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// text reads a cell as trimmed string text; a zero column yields "".
func (r Row) text(col int) string {
	if col == 0 {
		return ""
	}
	return strings.TrimSpace(normalize.String(r.Value(col)))
}
