// Package analysis routes canonical question ids to pluggable analysis
// modules and normalizes their result shape. The registry is an explicit
// table populated at start-up; unknown question ids fall through to a
// generic handler backed by the insight client, so every question id is
// guaranteed an answer.
package analysis

import (
	"github.com/google/uuid"

	"github.com/dataglance/dataglance/internal/catalog"
	"github.com/dataglance/dataglance/internal/dataset"
	"github.com/dataglance/dataglance/internal/schema"
)

// Request carries everything a module needs: the dataset, the confirmed
// column mapping, the domain, and the question being asked. Params holds
// optional module-specific arguments.
type Request struct {
	ID       string
	Dataset  *dataset.Dataset
	Mapping  schema.Mapping
	Domain   catalog.DomainID
	Question string // question id
	Text     string // free-form question text, set for generic analyses
	Params   map[string]string
}

// NewRequest builds a Request with a fresh id.
func NewRequest(ds *dataset.Dataset, mapping schema.Mapping, domain catalog.DomainID, question string) *Request {
	return &Request{
		ID:      uuid.NewString(),
		Dataset: ds,
		Mapping: mapping,
		Domain:  domain,
		Question: question,
	}
}

// Result is the normalized output of any analysis module. Summary is always
// non-empty; Table and Figure are optional pure-data renderables with no
// dependency on how they are displayed.
type Result struct {
	Summary string  `json:"summary"`
	Table   *Table  `json:"table,omitempty"`
	Figure  *Figure `json:"figure,omitempty"`
}

// Table is tabular module output.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Figure is a renderer-agnostic chart description.
type Figure struct {
	Kind   string    `json:"kind"` // "bar", "line", "pie"
	Title  string    `json:"title"`
	XLabel string    `json:"x_label"`
	YLabel string    `json:"y_label"`
	X      []string  `json:"x"`
	Y      []float64 `json:"y"`
}

// column resolves a canonical field to its raw column values via the
// mapping. Returns false when the field is unmapped.
func (r *Request) column(field string) ([]string, bool) {
	raw, ok := r.Mapping[field]
	if !ok {
		return nil, false
	}
	return r.Dataset.Column(raw)
}

// numericColumn resolves a canonical field to parsed numeric values.
func (r *Request) numericColumn(field string) ([]float64, bool) {
	raw, ok := r.Mapping[field]
	if !ok {
		return nil, false
	}
	return r.Dataset.NumericColumn(raw), true
}
