// Package store loads a dataset into an in-memory SQLite database and runs
// read-only SQL against it. The database lives only as long as the Store:
// closing it discards everything, so no dataset content outlives the session.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/dataglance/dataglance/internal/dataset"
)

// tableName is the fixed table every dataset is loaded into. Queries
// reference it directly, e.g. SELECT COUNT(*) FROM data.
const tableName = "data"

// Store wraps a single-session in-memory database.
type Store struct {
	db      *sql.DB
	columns []string
}

// QueryResult holds rows from a query as strings, matching the dataset's
// own representation.
type QueryResult struct {
	Columns []string
	Rows    [][]string
}

// Open creates a fresh in-memory database.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open in-memory database: %w", err)
	}
	// The in-memory database is tied to a single connection; a second
	// connection would see an empty database.
	db.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

// Close releases the database and all loaded data.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadDataset creates the data table from the dataset's columns and inserts
// every row. All columns are TEXT; SQLite's dynamic typing still lets SUM
// and AVG work on numeric-looking values.
func (s *Store) LoadDataset(ctx context.Context, ds *dataset.Dataset) error {
	cols := ds.Columns()
	if len(cols) == 0 {
		return fmt.Errorf("dataset has no columns")
	}

	quoted := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
		placeholders[i] = "?"
	}

	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)); err != nil {
		return fmt.Errorf("reset table: %w", err)
	}
	createStmt := fmt.Sprintf("CREATE TABLE %s (%s)", tableName, strings.Join(quoted, ", "))
	if _, err := s.db.ExecContext(ctx, createStmt); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer tx.Rollback()

	insertStmt := fmt.Sprintf("INSERT INTO %s VALUES (%s)", tableName, strings.Join(placeholders, ", "))
	stmt, err := tx.PrepareContext(ctx, insertStmt)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range ds.Rows() {
		args := make([]any, len(cols))
		for i := range cols {
			if i < len(row) {
				args[i] = row[i]
			} else {
				args[i] = ""
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}
	s.columns = append([]string(nil), cols...)
	return nil
}

// Columns returns the loaded dataset's column names.
func (s *Store) Columns() []string {
	return append([]string(nil), s.columns...)
}

// Query runs a read-only statement against the data table. Anything other
// than a single SELECT (or WITH ... SELECT) is rejected before it reaches
// the database.
func (s *Store) Query(ctx context.Context, query string) (*QueryResult, error) {
	if err := validateReadOnly(query); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	result := &QueryResult{Columns: cols}
	for rows.Next() {
		raw := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := make([]string, len(cols))
		for i, v := range raw {
			if v.Valid {
				row[i] = v.String
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return result, nil
}

// validateReadOnly rejects statements that could change state. The check is
// a guardrail, not a parser: it requires the statement to start with SELECT
// or WITH and to contain no statement separator.
func validateReadOnly(query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return fmt.Errorf("empty query")
	}
	if strings.Contains(trimmed, ";") {
		return fmt.Errorf("multiple statements are not allowed")
	}
	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return fmt.Errorf("only SELECT queries are allowed")
	}
	return nil
}

// quoteIdent quotes a column name for use in DDL, doubling any embedded
// quote characters.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
