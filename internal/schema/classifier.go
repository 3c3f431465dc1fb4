// Package schema implements the adaptive data-understanding steps that run
// when a dataset arrives: domain classification from column names, mapping
// of raw columns onto the canonical schema, and tier-based capability
// gating. All three consume the shared keyword families from the catalog.
package schema

import (
	"strings"

	"github.com/dataglance/dataglance/internal/catalog"
)

// Classifier scores a dataset's column names against each registered domain
// profile.
type Classifier struct {
	catalog *catalog.Catalog
}

// NewClassifier creates a classifier over the given catalog.
func NewClassifier(c *catalog.Catalog) *Classifier {
	return &Classifier{catalog: c}
}

// Classify picks the most likely business domain for the given column names
// and returns it with a confidence in [0,1].
//
// For each domain, score = matched patterns / total patterns, where generic
// keywords match as substrings of the concatenated lowercase column names
// and family patterns match when at least one column name satisfies the
// regex. Ties break toward the earlier domain in registration order. If no
// domain scores above zero, the general sentinel is returned with
// confidence 0. The matching is deliberately recall-oriented: a false
// positive only changes which canonical fields the mapper looks for, and
// unmapped fields simply gate capabilities off downstream.
func (c *Classifier) Classify(columns []string) (catalog.DomainID, float64) {
	lowered := make([]string, len(columns))
	for i, col := range columns {
		lowered[i] = strings.ToLower(col)
	}
	joined := strings.Join(lowered, " ")

	best := c.catalog.General().ID
	bestScore := 0.0

	for _, d := range c.catalog.Domains() {
		total := d.TotalPatterns()
		if total == 0 {
			continue
		}

		matched := 0
		for _, kw := range d.Keywords {
			if strings.Contains(joined, kw) {
				matched++
			}
		}
		for _, patterns := range d.Patterns {
			for _, re := range patterns {
				for _, col := range columns {
					if re.MatchString(col) {
						matched++
						break
					}
				}
			}
		}

		score := float64(matched) / float64(total)
		if score > bestScore {
			best = d.ID
			bestScore = score
		}
	}

	if bestScore == 0 {
		return c.catalog.General().ID, 0.0
	}
	return best, bestScore
}
