package analysis

import (
	"context"
	"sort"

	"github.com/dataglance/dataglance/internal/catalog"
	"github.com/dataglance/dataglance/internal/dataset"
)

// insightGenerator is the slice of the insight client the dispatcher needs.
type insightGenerator interface {
	Generate(ctx context.Context, payload map[string]any, domain catalog.DomainID, analysisType string) string
}

// genericModule answers questions no built-in module covers. It summarizes
// the dataset structure and hands the question to the insight client, which
// always returns text (static fallback included), so the generic path never
// leaves a question unanswered.
func genericModule(insights insightGenerator) Module {
	return func(ctx context.Context, req *Request) (*Result, error) {
		payload := structuralPayload(req)
		if req.Question != "" {
			payload["question"] = req.Question
		}
		if req.Text != "" {
			payload["question_text"] = req.Text
		}
		summary := insights.Generate(ctx, payload, req.Domain, "custom_analysis")
		return &Result{Summary: summary}, nil
	}
}

// structuralPayload captures dataset shape without row-level values so the
// prompt stays small and deterministic.
func structuralPayload(req *Request) map[string]any {
	ds := req.Dataset
	var numericCols, categoricalCols []string
	missing := make(map[string]any)
	for _, col := range ds.Columns() {
		if ds.IsNumericColumn(col) {
			numericCols = append(numericCols, col)
		} else {
			categoricalCols = append(categoricalCols, col)
		}
		values, _ := ds.Column(col)
		nulls := 0
		for _, v := range values {
			if dataset.IsNull(v) {
				nulls++
			}
		}
		if nulls > 0 {
			missing[col] = nulls
		}
	}
	sort.Strings(numericCols)
	sort.Strings(categoricalCols)

	mapped := make(map[string]any, len(req.Mapping))
	for field, col := range req.Mapping {
		mapped[field] = col
	}

	return map[string]any{
		"rows":                ds.RowCount(),
		"columns":             len(ds.Columns()),
		"numeric_columns":     numericCols,
		"categorical_columns": categoricalCols,
		"missing_values":      missing,
		"mapped_fields":       mapped,
	}
}
