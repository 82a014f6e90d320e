package rules

import (
	"strings"

	"github.com/eliteembassy/songbridge/pkg/normalize"
)

// NotesField is one entry in the ordered list of source fields aggregated
// into the free-text Notes column.
type NotesField struct {
	// Label is the resolved source column label, used verbatim as the
	// prefix text when Prefix is set.
	Label string

	// Col is the resolved 1-based source column; zero means the field is
	// absent from this installation's intake and is skipped.
	Col int

	// Prefix prepends "<Label>: " to the value.
	Prefix bool

	// ApplyExclusions runs the value through the exclusion filter before
	// inclusion.
	ApplyExclusions bool
}

// Notes concatenates the configured source fields into one string. Values
// are trimmed, internal whitespace collapsed to single spaces, empty values
// skipped, and the surviving parts joined with a single space.
func (c Config) Notes(fields []NotesField, value func(col int) any) string {
	var parts []string
	for _, f := range fields {
		if f.Col == 0 {
			continue
		}

		s := normalize.String(value(f.Col))
		if f.ApplyExclusions {
			s = c.FilterExcluded(s)
		}
		s = normalize.Collapse(s)
		if s == "" {
			continue
		}

		if f.Prefix {
			s = f.Label + ": " + s
		}
		parts = append(parts, s)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
