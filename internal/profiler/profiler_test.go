package profiler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataglance/dataglance/internal/catalog"
	"github.com/dataglance/dataglance/internal/dataset"
)

func cleanDataset() *dataset.Dataset {
	return dataset.FromRecords(
		[]string{"Date", "Product", "Amount", "CustomerID"},
		[][]string{
			{"2024-01-01", "Widget", "100", "C1"},
			{"2024-01-02", "Gadget", "200", "C2"},
			{"2024-01-03", "Widget", "150", "C1"},
			{"2024-01-04", "Doohickey", "300", "C3"},
			{"2024-01-05", "Gadget", "250", "C4"},
		},
	)
}

func TestProfileCleanDataset(t *testing.T) {
	p := New()
	profile := p.Profile(cleanDataset(), catalog.DomainRetail)

	assert.Equal(t, 100, profile.Quality.Score)
	assert.Empty(t, profile.Quality.Issues)
	assert.Equal(t, 5, profile.Metadata.TotalRows)
	assert.Equal(t, 4, profile.Metadata.TotalColumns)

	amount, ok := profile.Columns["Amount"]
	require.True(t, ok)
	assert.Equal(t, "numeric", amount.DataType)
	require.NotNil(t, amount.Numeric)
	assert.Equal(t, 100.0, amount.Numeric.Min)
	assert.Equal(t, 300.0, amount.Numeric.Max)
	assert.Equal(t, 200.0, amount.Numeric.Mean)

	date, ok := profile.Columns["Date"]
	require.True(t, ok)
	assert.Equal(t, "date", date.DataType)
	require.NotNil(t, date.Dates)
	assert.Equal(t, 4, date.Dates.SpanDays)
}

// nullsDataset builds 20 unique rows with nullCells missing values in the
// second column, so duplicate and outlier deductions stay out of the way.
func nullsDataset(nullCells int) *dataset.Dataset {
	rows := make([][]string, 20)
	for i := range rows {
		value := fmt.Sprintf("note %d", i)
		if i < nullCells {
			value = ""
		}
		rows[i] = []string{fmt.Sprintf("row %d", i), value}
	}
	return dataset.FromRecords([]string{"Name", "Note"}, rows)
}

func TestQualityMissingValueDeduction(t *testing.T) {
	// 6 of 40 cells missing (15%): one fixed 20-point deduction.
	p := New()
	profile := p.Profile(nullsDataset(6), catalog.DomainGeneral)
	assert.Equal(t, 80, profile.Quality.Score)
	assert.InDelta(t, 15.0, profile.Quality.MissingPercent, 0.001)
	require.Len(t, profile.Quality.Recommendations, 1)
	assert.Contains(t, profile.Quality.Recommendations[0], "imputation")
}

func TestQualityDeductionIsThresholdBased(t *testing.T) {
	// 30% missing takes the same deduction as 15%.
	p := New()
	profile := p.Profile(nullsDataset(12), catalog.DomainGeneral)
	assert.Equal(t, 80, profile.Quality.Score)
}

func TestQualityDuplicateDeduction(t *testing.T) {
	// 2 duplicate rows of 20 (10%): 15-point deduction.
	rows := make([][]string, 20)
	for i := range rows {
		rows[i] = []string{string(rune('a' + i)), "1"}
	}
	rows[18] = []string{"a", "1"}
	rows[19] = []string{"b", "1"}
	ds := dataset.FromRecords([]string{"Name", "Flag"}, rows)

	p := New()
	profile := p.Profile(ds, catalog.DomainGeneral)
	assert.Equal(t, 85, profile.Quality.Score)
	require.NotEmpty(t, profile.Quality.Issues)
	assert.Contains(t, profile.Quality.Issues[0], "Duplicate")
}

func TestQualityOutlierDeduction(t *testing.T) {
	ds := dataset.FromRecords([]string{"V"}, [][]string{
		{"10"}, {"12"}, {"11"}, {"13"}, {"9"}, {"500"},
	})

	p := New()
	profile := p.Profile(ds, catalog.DomainGeneral)
	assert.Equal(t, 90, profile.Quality.Score)
	require.NotEmpty(t, profile.Quality.Issues)
	assert.Contains(t, profile.Quality.Issues[0], "Outliers")
}

func TestQualityScoreFloor(t *testing.T) {
	qa := QualityAssessment{Score: 100}
	qa.Score -= missingDeduction + duplicateDeduction + outlierDeduction
	assert.GreaterOrEqual(t, qa.Score, 0)
}

func TestCountOutliers(t *testing.T) {
	assert.Equal(t, 1, countOutliers([]float64{10, 12, 11, 13, 9, 500}))
	assert.Equal(t, 0, countOutliers([]float64{1, 2, 3, 4, 5}))
	assert.Equal(t, 0, countOutliers([]float64{1, 1000}), "too few values for quartiles")
}

func TestProfileCaching(t *testing.T) {
	p := New()
	ds := cleanDataset()

	first := p.Profile(ds, catalog.DomainRetail)
	second := p.Profile(ds, catalog.DomainRetail)
	assert.Same(t, first, second, "same fingerprint should hit the cache")

	other := p.Profile(ds, catalog.DomainGeneral)
	assert.NotSame(t, first, other, "fingerprint includes the domain")
}

func TestFingerprintSensitivity(t *testing.T) {
	ds := cleanDataset()
	base := Fingerprint(catalog.DomainRetail, ds)

	assert.Equal(t, base, Fingerprint(catalog.DomainRetail, cleanDataset()))

	renamed := dataset.FromRecords([]string{"D", "P", "A", "C"}, ds.Rows())
	assert.NotEqual(t, base, Fingerprint(catalog.DomainRetail, renamed))
}

func TestBusinessInsights(t *testing.T) {
	profile := New().Profile(cleanDataset(), catalog.DomainRetail)

	bi := profile.Insights
	require.NotNil(t, bi.TotalRevenue)
	assert.Equal(t, 1000.0, *bi.TotalRevenue)
	require.NotNil(t, bi.AvgTransaction)
	assert.Equal(t, 200.0, *bi.AvgTransaction)

	require.NotNil(t, bi.UniqueCustomers)
	assert.Equal(t, 4, *bi.UniqueCustomers)
	require.NotNil(t, bi.RepeatCustomers)
	assert.Equal(t, 1, *bi.RepeatCustomers)

	require.NotNil(t, bi.DateSpanDays)
	assert.Equal(t, 4, *bi.DateSpanDays)
}

func TestQuickFacts(t *testing.T) {
	profile := New().Profile(cleanDataset(), catalog.DomainRetail)

	require.NotEmpty(t, profile.QuickFacts)
	assert.Contains(t, profile.QuickFacts[0], "5 records")
}

func TestCategoricalPatterns(t *testing.T) {
	profile := New().Profile(cleanDataset(), catalog.DomainRetail)

	pattern, ok := profile.Patterns.Categorical["Product"]
	require.True(t, ok)
	assert.Equal(t, 2, pattern.Distribution["Widget"])
	assert.Greater(t, pattern.Entropy, 0.0)
}

func TestRelationships(t *testing.T) {
	ds := dataset.FromRecords([]string{"X", "Y"}, [][]string{
		{"1", "2"}, {"2", "4"}, {"3", "6"}, {"4", "8"}, {"5", "10"},
	})
	profile := New().Profile(ds, catalog.DomainGeneral)

	require.NotEmpty(t, profile.Relationships.StrongCorrelations)
	corr := profile.Relationships.StrongCorrelations[0]
	assert.InDelta(t, 1.0, corr.Correlation, 0.001)
}

func TestStatsHelpers(t *testing.T) {
	assert.Equal(t, 3.0, mean([]float64{1, 2, 3, 4, 5}))
	assert.InDelta(t, 1.5811, stdDev([]float64{1, 2, 3, 4, 5}), 0.001)
	assert.Equal(t, 3.0, quantile([]float64{1, 2, 3, 4, 5}, 0.5))
	assert.Equal(t, 1.0, entropy(map[string]int{"a": 5, "b": 5}))
	assert.InDelta(t, -1.0, pearson([]float64{1, 2, 3}, []float64{3, 2, 1}), 0.001)
}
