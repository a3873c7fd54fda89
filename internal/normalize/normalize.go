// Package normalize coerces raw text tokens into numbers, flags and
// timestamps. Nothing in here returns an error: callers get either a usable
// value, their own fallback, or an ok=false signal.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// clean strips whitespace, carriage returns and CSV quoting from a token.
func clean(token string) string {
	return strings.Trim(token, " \t\r\n\"")
}

// Float parses token as a finite number.
func Float(token string) (float64, bool) {
	t := clean(token)
	if t == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Numeric returns the parsed token, or fallback when it is not a finite number.
func Numeric(token string, fallback float64) float64 {
	if v, ok := Float(token); ok {
		return v
	}
	return fallback
}

// Booleanish is true iff token is "true" (any case) or "1".
func Booleanish(token string) bool {
	t := clean(token)
	return t == "1" || strings.EqualFold(t, "true")
}

// IsBooleanish reports whether token looks like a flag at all:
// true/false in any case, or 1/0.
func IsBooleanish(token string) bool {
	t := clean(token)
	return t == "1" || t == "0" || strings.EqualFold(t, "true") || strings.EqualFold(t, "false")
}

// Layouts without a zone are read as UTC.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05-0700",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Timestamp parses a date-time token into Unix milliseconds. The second
// return value is false on parse failure; the row should then be dropped.
func Timestamp(token string) (int64, bool) {
	t := clean(token)
	if t == "" {
		return 0, false
	}
	if ms, ok := parseLayouts(t); ok {
		return ms, true
	}
	rebuilt, ok := rebuild(t)
	if !ok {
		return 0, false
	}
	return parseLayouts(rebuilt)
}

func parseLayouts(s string) (int64, bool) {
	for _, layout := range layouts {
		ts, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		ms := ts.UnixMilli()
		if ms < 0 {
			return 0, false
		}
		return ms, true
	}
	return 0, false
}

// rebuild splits loosely formatted dates such as "2024-1-5 3:07" or
// "01/05/2024 03:07:00" into parts and reassembles them as
// YYYY-MM-DDTHH:MM:SS. A leading four-digit part is the year; otherwise a
// trailing-year form is read month first.
func rebuild(s string) (string, bool) {
	s = strings.TrimSuffix(s, "Z")
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == ' ' || r == ':' || r == 'T' || r == '/'
	})
	if len(parts) < 3 || len(parts) > 6 {
		return "", false
	}
	for i, p := range parts {
		if i == len(parts)-1 && len(parts) == 6 {
			// drop fractional seconds; anything else after them is an
			// offset this path cannot honour
			if dot := strings.IndexByte(p, '.'); dot > 0 {
				if !allDigits(p[dot+1:]) {
					return "", false
				}
				p = p[:dot]
				parts[i] = p
			}
		}
		if !allDigits(p) {
			return "", false
		}
	}

	var year, month, day string
	switch {
	case len(parts[0]) == 4:
		year, month, day = parts[0], parts[1], parts[2]
	case len(parts[2]) == 4:
		month, day, year = parts[0], parts[1], parts[2]
	default:
		return "", false
	}
	clock := []string{"0", "0", "0"}
	copy(clock, parts[3:])

	return fmt.Sprintf("%s-%s-%sT%s:%s:%s",
		year, pad2(month), pad2(day), pad2(clock[0]), pad2(clock[1]), pad2(clock[2])), true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
