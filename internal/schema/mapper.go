package schema

import (
	"github.com/dataglance/dataglance/internal/catalog"
)

// DefaultFuzzyThreshold is the minimum similarity ratio for the fuzzy
// fallback to claim a column. It directly determines mapping correctness,
// so it is configurable rather than buried as a literal.
const DefaultFuzzyThreshold = 0.6

// Mapping maps canonical field names to the raw column that satisfies them.
// Values are pairwise distinct: one raw column never satisfies two canonical
// fields. Absence of a key is the normal "unmapped" state, not an error.
type Mapping map[string]string

// MappedFields returns the set of canonical field names present in the
// mapping, the shape the capability gate consumes.
func (m Mapping) MappedFields() map[string]bool {
	out := make(map[string]bool, len(m))
	for field := range m {
		out[field] = true
	}
	return out
}

// RawColumns returns the claimed raw columns.
func (m Mapping) RawColumns() []string {
	out := make([]string, 0, len(m))
	for _, raw := range m {
		out = append(out, raw)
	}
	return out
}

// Mapper maps raw column names onto a domain's canonical fields.
type Mapper struct {
	catalog   *catalog.Catalog
	threshold float64
}

// NewMapper creates a mapper with the given fuzzy-match threshold. A zero
// or negative threshold selects DefaultFuzzyThreshold.
func NewMapper(c *catalog.Catalog, threshold float64) *Mapper {
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	return &Mapper{catalog: c, threshold: threshold}
}

// MapColumns builds a ColumnMapping for the given domain.
//
// For each canonical field in canonical iteration order, the field's family
// regex patterns are tried against every raw column in original column
// order; the first unclaimed match wins. When no pattern matches, the best
// unclaimed column by fuzzy similarity against the canonical field name is
// taken if it clears the threshold. Fields with no match stay unmapped; a
// partial or empty mapping is a valid result.
func (m *Mapper) MapColumns(columns []string, domain catalog.DomainID) Mapping {
	d, ok := m.catalog.Domain(domain)
	if !ok {
		d = m.catalog.General()
	}

	mapping := make(Mapping)
	claimed := make(map[string]bool, len(columns))

	for _, field := range d.Fields() {
		raw, found := m.matchField(field, columns, d, claimed)
		if !found {
			continue
		}
		mapping[field.Name] = raw
		claimed[raw] = true
	}
	return mapping
}

func (m *Mapper) matchField(field catalog.CanonicalField, columns []string, d *catalog.DomainProfile, claimed map[string]bool) (string, bool) {
	// Regex pass over the field's keyword family.
	if field.Family != "" {
		for _, col := range columns {
			if claimed[col] {
				continue
			}
			for _, re := range d.Patterns[field.Family] {
				if re.MatchString(col) {
					return col, true
				}
			}
		}
	}

	// Fuzzy fallback against the canonical field name.
	bestCol := ""
	bestScore := 0.0
	for _, col := range columns {
		if claimed[col] {
			continue
		}
		if s := similarity(field.Name, col); s > bestScore {
			bestCol = col
			bestScore = s
		}
	}
	if bestScore >= m.threshold {
		return bestCol, true
	}
	return "", false
}
