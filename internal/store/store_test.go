package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataglance/dataglance/internal/dataset"
)

func loadedStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ds := dataset.FromRecords(
		[]string{"Product", "Amount", "Region"},
		[][]string{
			{"Widget", "100", "North"},
			{"Gadget", "300", "South"},
			{"Widget", "200", "North"},
		},
	)
	require.NoError(t, s.LoadDataset(context.Background(), ds))
	return s
}

func TestQueryCount(t *testing.T) {
	s := loadedStore(t)

	result, err := s.Query(context.Background(), "SELECT COUNT(*) AS total FROM data")
	require.NoError(t, err)
	assert.Equal(t, []string{"total"}, result.Columns)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "3", result.Rows[0][0])
}

func TestQueryGroupBy(t *testing.T) {
	s := loadedStore(t)

	result, err := s.Query(context.Background(),
		`SELECT Product, SUM(Amount) AS total FROM data GROUP BY Product ORDER BY total DESC`)
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "Widget", result.Rows[0][0])
	assert.Equal(t, "300", result.Rows[0][1])
}

func TestQueryRejectsWrites(t *testing.T) {
	s := loadedStore(t)

	for _, q := range []string{
		"DROP TABLE data",
		"DELETE FROM data",
		"INSERT INTO data VALUES ('x','1','y')",
		"UPDATE data SET Amount = 0",
		"SELECT 1; DROP TABLE data",
		"",
	} {
		_, err := s.Query(context.Background(), q)
		assert.Error(t, err, "query %q must be rejected", q)
	}

	// The table must still be intact afterwards.
	result, err := s.Query(context.Background(), "SELECT COUNT(*) FROM data")
	require.NoError(t, err)
	assert.Equal(t, "3", result.Rows[0][0])
}

func TestQueryAllowsCTE(t *testing.T) {
	s := loadedStore(t)

	result, err := s.Query(context.Background(),
		"WITH north AS (SELECT * FROM data WHERE Region = 'North') SELECT COUNT(*) FROM north")
	require.NoError(t, err)
	assert.Equal(t, "2", result.Rows[0][0])
}

func TestLoadDatasetReplacesPrevious(t *testing.T) {
	s := loadedStore(t)

	ds := dataset.FromRecords([]string{"Only"}, [][]string{{"one"}})
	require.NoError(t, s.LoadDataset(context.Background(), ds))

	result, err := s.Query(context.Background(), "SELECT COUNT(*) FROM data")
	require.NoError(t, err)
	assert.Equal(t, "1", result.Rows[0][0])
	assert.Equal(t, []string{"Only"}, s.Columns())
}

func TestQuotedColumnNames(t *testing.T) {
	s, err := Open()
	require.NoError(t, err)
	defer s.Close()

	ds := dataset.FromRecords([]string{"Order Total", "Group"}, [][]string{{"10", "a"}})
	require.NoError(t, s.LoadDataset(context.Background(), ds))

	result, err := s.Query(context.Background(), `SELECT "Order Total" FROM data`)
	require.NoError(t, err)
	assert.Equal(t, "10", result.Rows[0][0])
}

func TestGenerateQueries(t *testing.T) {
	ds := dataset.FromRecords(
		[]string{"Product", "Amount"},
		[][]string{{"Widget", "100"}, {"Gadget", "300"}},
	)

	queries := GenerateQueries(ds)
	ids := make(map[string]string, len(queries))
	for _, q := range queries {
		ids[q.ID] = q.Query
	}

	assert.Contains(t, ids, "count_all")
	assert.Contains(t, ids, "count_distinct_Product")
	assert.Contains(t, ids, "top_Product")
	assert.Contains(t, ids, "stats_Amount")
	assert.NotContains(t, ids, "top_Amount", "numeric columns get stats, not top-value queries")

	// Generated queries must actually run.
	s, err := Open()
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.LoadDataset(context.Background(), ds))
	for _, q := range queries {
		_, err := s.Query(context.Background(), q.Query)
		assert.NoError(t, err, "generated query %s must execute", q.ID)
	}
}
