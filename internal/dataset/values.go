package dataset

import (
	"strconv"
	"strings"
	"time"
)

// IsNull reports whether a raw cell represents a missing value.
func IsNull(s string) bool {
	s = strings.TrimSpace(s)
	switch s {
	case "", "null", "NULL", "N/A", "n/a", "NaN", "nan":
		return true
	}
	return false
}

// ParseNumeric parses a cell as a number, tolerating thousands separators
// and common currency prefixes ("$1,234.56").
func ParseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(s, "€")
	s = strings.TrimPrefix(s, "£")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
	"Jan-2006",
	"January 2006",
}

// ParseDate parses a cell against the supported date layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NumericColumn returns the parseable numeric values of the named column,
// excluding nulls and unparseable cells.
func (d *Dataset) NumericColumn(name string) []float64 {
	raw, ok := d.Column(name)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(raw))
	for _, cell := range raw {
		if IsNull(cell) {
			continue
		}
		if v, ok := ParseNumeric(cell); ok {
			out = append(out, v)
		}
	}
	return out
}

// DateColumn returns the parseable dates of the named column, excluding
// nulls and unparseable cells.
func (d *Dataset) DateColumn(name string) []time.Time {
	raw, ok := d.Column(name)
	if !ok {
		return nil
	}
	out := make([]time.Time, 0, len(raw))
	for _, cell := range raw {
		if IsNull(cell) {
			continue
		}
		if t, ok := ParseDate(cell); ok {
			out = append(out, t)
		}
	}
	return out
}

// IsNumericColumn reports whether at least 80% of the column's non-null
// values parse as numbers. The threshold matches type detection used during
// discovery so typed views agree with profiling.
func (d *Dataset) IsNumericColumn(name string) bool {
	return d.columnTypeRatio(name, func(s string) bool {
		_, ok := ParseNumeric(s)
		return ok
	}) >= 0.8
}

// IsDateColumn reports whether the column is date-like: a sample of up to
// 10 non-null values must all parse as dates.
func (d *Dataset) IsDateColumn(name string) bool {
	raw, ok := d.Column(name)
	if !ok {
		return false
	}
	sampled := 0
	for _, cell := range raw {
		if IsNull(cell) {
			continue
		}
		if _, ok := ParseDate(cell); !ok {
			return false
		}
		sampled++
		if sampled == 10 {
			break
		}
	}
	return sampled > 0
}

func (d *Dataset) columnTypeRatio(name string, pred func(string) bool) float64 {
	raw, ok := d.Column(name)
	if !ok {
		return 0
	}
	nonNull, matches := 0, 0
	for _, cell := range raw {
		if IsNull(cell) {
			continue
		}
		nonNull++
		if pred(cell) {
			matches++
		}
	}
	if nonNull == 0 {
		return 0
	}
	return float64(matches) / float64(nonNull)
}
