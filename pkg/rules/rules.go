package rules

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/eliteembassy/songbridge/pkg/normalize"
)

// numberRe finds the first run of digits, optionally with one decimal
// point, anywhere in a string.
var numberRe = regexp.MustCompile(`\d+(\.\d+)?`)

// dateLayouts are tried in order when parsing date fields permissively.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// outputDateFormat renders valid dates as MM/DD/YYYY.
const outputDateFormat = "01/02/2006"

// JoinLines splits multi-line input on line breaks, trims each line, drops
// empties, and rejoins with the given separator. Performer-style fields use
// "; ", code lists use ";".
func JoinLines(s, separator string) string {
	return strings.Join(normalize.SplitLines(s), separator)
}

// Excluded reports whether a value contains any disqualifying token from
// the exclusion list, compared case-insensitively.
func (c Config) Excluded(s string) bool {
	upper := strings.ToUpper(s)
	for _, token := range c.Exclusions {
		if strings.Contains(upper, strings.ToUpper(token)) {
			return true
		}
	}
	return false
}

// FilterExcluded discards a value containing a disqualifying token,
// returning the empty string in its place.
func (c Config) FilterExcluded(s string) string {
	if c.Excluded(s) {
		return ""
	}
	return s
}

// GateIdentifier applies the length-gated identifier rule: multi-line
// values and single-line values longer than the configured maximum are
// dropped silently, never truncated. The exclusion list applies as well.
func (c Config) GateIdentifier(s string) string {
	if normalize.IsMultiline(s) {
		return ""
	}
	s = c.FilterExcluded(s)
	if len(strings.TrimSpace(s)) > c.MaxIdentifierLen {
		return ""
	}
	return s
}

// FormatDate parses a date cell permissively and renders it as MM/DD/YYYY.
// Unparsable values yield the empty string rather than failing the row.
func FormatDate(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(outputDateFormat)
	}

	s := strings.TrimSpace(normalize.String(v))
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(outputDateFormat)
		}
	}
	return ""
}

// ParsePercent parses a percentage cell into a 0-100 float. A trailing "%"
// is stripped; a result in (0, 1] is interpreted as a fraction and rescaled.
// Non-numeric or missing input yields 0.
func ParsePercent(v any) float64 {
	s := strings.TrimSpace(normalize.String(v))
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if f > 0 && f <= 1 {
		return f * 100
	}
	return f
}

// ExtractNumber takes the first run of digits (optionally with one decimal
// point) found anywhere in the text, so "EEP-50" yields 50. The second
// return is false when the text holds no digits at all, which is distinct
// from an explicit zero.
func ExtractNumber(v any) (float64, bool) {
	s := strings.TrimSpace(normalize.String(v))
	if s == "" {
		return 0, false
	}
	m := numberRe.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// MapCapacity translates a short capacity code to its display label.
// Unrecognized codes pass through unchanged; empty input stays empty.
func (c Config) MapCapacity(v any) string {
	s := strings.TrimSpace(normalize.String(v))
	if s == "" {
		return ""
	}
	if label, ok := c.CapacityLabels[strings.ToUpper(s)]; ok {
		return label
	}
	return s
}

// PriorityFlag derives "TRUE"/"FALSE" from an exact case-insensitive match
// against the priority marker status. Anything else, including a missing
// value, is FALSE.
func (c Config) PriorityFlag(v any) string {
	s := strings.TrimSpace(normalize.String(v))
	if strings.EqualFold(s, c.PriorityMarker) {
		return "TRUE"
	}
	return "FALSE"
}

// InHouse reports whether a publisher name belongs to the company,
// detected by case-insensitive fragment match on the normalized name.
// This classification drives chain-row grouping and is deliberately
// separate from a composer's explicit controlled marker.
func (c Config) InHouse(publisherName string) bool {
	key := normalize.Key(publisherName)
	if key == "" {
		return false
	}
	for _, fragment := range c.InHousePublishers {
		if strings.Contains(key, strings.ToLower(fragment)) {
			return true
		}
	}
	return false
}

// ControlledMarker interprets an explicit Y/N controlled declaration:
// Y (any case) is true, anything else false.
func ControlledMarker(v any) bool {
	return strings.EqualFold(strings.TrimSpace(normalize.String(v)), "Y")
}
