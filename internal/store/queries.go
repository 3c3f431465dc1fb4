package store

import (
	"fmt"

	"github.com/dataglance/dataglance/internal/dataset"
)

// SuggestedQuery pairs a descriptive id with a ready-to-run statement.
type SuggestedQuery struct {
	ID    string
	Query string
}

// GenerateQueries builds starter queries for a dataset: a record count,
// per-column distinct counts, top-value breakdowns for low-cardinality text
// columns, and min/max/avg/sum stats for numeric columns. The order is
// stable so callers can present the list directly.
func GenerateQueries(ds *dataset.Dataset) []SuggestedQuery {
	queries := []SuggestedQuery{
		{ID: "count_all", Query: fmt.Sprintf("SELECT COUNT(*) AS total_records FROM %s", tableName)},
	}

	for _, col := range ds.Columns() {
		q := quoteIdent(col)
		queries = append(queries, SuggestedQuery{
			ID:    "count_distinct_" + col,
			Query: fmt.Sprintf("SELECT COUNT(DISTINCT %s) AS unique_values FROM %s", q, tableName),
		})
	}

	for _, col := range ds.Columns() {
		if ds.IsNumericColumn(col) {
			continue
		}
		if distinctCount(ds, col) >= 50 {
			continue
		}
		q := quoteIdent(col)
		queries = append(queries, SuggestedQuery{
			ID: "top_" + col,
			Query: fmt.Sprintf("SELECT %s, COUNT(*) AS count FROM %s GROUP BY %s ORDER BY count DESC LIMIT 10",
				q, tableName, q),
		})
	}

	for _, col := range ds.Columns() {
		if !ds.IsNumericColumn(col) {
			continue
		}
		q := quoteIdent(col)
		queries = append(queries, SuggestedQuery{
			ID: "stats_" + col,
			Query: fmt.Sprintf("SELECT MIN(%s) AS min, MAX(%s) AS max, AVG(%s) AS avg, SUM(%s) AS total FROM %s",
				q, q, q, q, tableName),
		})
	}

	return queries
}

func distinctCount(ds *dataset.Dataset, col string) int {
	values, ok := ds.Column(col)
	if !ok {
		return 0
	}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}
