// Package normalize canonicalizes scalar cell values for key comparison and
// display. Key is the sole function used to build and probe join keys: two
// cells join iff their normalized forms are equal, raw values are never
// compared directly.
package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Pre-compiled regular expressions for value normalization.
var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	trailingZeroRe = regexp.MustCompile(`^\d+\.0$`)
)

var titleCaser = cases.Title(language.English)

// Key normalizes a raw cell value into a join key. Rules, in order:
// nil and NaN become ""; an integer-valued float is cast to integer before
// stringifying; everything else is stringified, trimmed, internal whitespace
// runs collapsed to one space, and lower-cased; finally an integer literal
// carrying a ".0" suffix has the suffix stripped.
//
// Key is total and idempotent: Key(Key(x)) == Key(x) for all x.
func Key(v any) string {
	s := String(v)
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespaceRe.ReplaceAllString(s, " ")
	if trailingZeroRe.MatchString(s) {
		s = s[:len(s)-2]
	}
	return s
}

// String converts a cell value to its text form without changing case or
// spacing. Integer-valued floats render without a fractional part, so a
// source that stored "42" as 42.0 still joins against the text "42".
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case time.Time:
		return x.Format("2006-01-02")
	default:
		return fmt.Sprint(x)
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Collapse trims a string and reduces internal whitespace runs, including
// line breaks, to single spaces.
func Collapse(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// SplitLines splits multi-line cell content into separate strings on line
// breaks, trimming each and dropping empties.
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "\n")
	var out []string
	for _, part := range strings.Split(s, "\n") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsMultiline reports whether a string spans more than one line.
func IsMultiline(s string) bool {
	return strings.ContainsAny(s, "\n\r")
}

// Title renders a string in English title case, used for alternate-title
// output rows.
func Title(s string) string {
	return titleCaser.String(strings.TrimSpace(s))
}
