// Package dataset provides the in-memory tabular dataset the core operates
// on. A dataset is loaded once from CSV, kept as raw string cells, and typed
// views (numeric, date) are derived on demand. Unparseable values coerce to
// missing rather than failing: arbitrary column names and cell contents are
// expected input, not errors.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Dataset is an immutable table: a header row plus raw string cells.
type Dataset struct {
	columns []string
	colIdx  map[string]int
	rows    [][]string
}

// FromCSV reads a dataset from CSV data. The first row is the header.
// Malformed rows are skipped; short rows are padded with empty cells so
// column access never goes out of bounds.
func FromCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to read CSV header: %w", err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("dataset: CSV has no columns")
	}

	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	d := &Dataset{
		columns: header,
		colIdx:  make(map[string]int, len(header)),
	}
	for i, name := range header {
		if _, dup := d.colIdx[name]; !dup {
			d.colIdx[name] = i
		}
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		}
		d.rows = append(d.rows, row[:len(header)])
	}

	if len(d.rows) == 0 {
		return nil, fmt.Errorf("dataset: CSV has no data rows")
	}
	return d, nil
}

// FromRecords builds a dataset from pre-parsed records. Used by tests and by
// callers that already hold tabular data.
func FromRecords(columns []string, rows [][]string) *Dataset {
	d := &Dataset{
		columns: columns,
		colIdx:  make(map[string]int, len(columns)),
	}
	for i, name := range columns {
		if _, dup := d.colIdx[name]; !dup {
			d.colIdx[name] = i
		}
	}
	for _, row := range rows {
		if len(row) < len(columns) {
			padded := make([]string, len(columns))
			copy(padded, row)
			row = padded
		}
		d.rows = append(d.rows, row[:len(columns)])
	}
	return d
}

// Columns returns the header names in original order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// RowCount returns the number of data rows.
func (d *Dataset) RowCount() int {
	return len(d.rows)
}

// Rows returns the raw cells. Callers must not mutate the result.
func (d *Dataset) Rows() [][]string {
	return d.rows
}

// Column returns all raw values of the named column in row order.
func (d *Dataset) Column(name string) ([]string, bool) {
	idx, ok := d.colIdx[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(d.rows))
	for i, row := range d.rows {
		out[i] = row[idx]
	}
	return out, true
}

// DuplicateCount returns the number of rows that are exact duplicates of an
// earlier row.
func (d *Dataset) DuplicateCount() int {
	seen := make(map[string]bool, len(d.rows))
	dups := 0
	for _, row := range d.rows {
		key := strings.Join(row, "\x1f")
		if seen[key] {
			dups++
		} else {
			seen[key] = true
		}
	}
	return dups
}

// NullCount returns the total number of missing cells across all columns.
func (d *Dataset) NullCount() int {
	n := 0
	for _, row := range d.rows {
		for _, cell := range row {
			if IsNull(cell) {
				n++
			}
		}
	}
	return n
}
