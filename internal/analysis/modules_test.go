package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataglance/dataglance/internal/catalog"
	"github.com/dataglance/dataglance/internal/dataset"
	"github.com/dataglance/dataglance/internal/schema"
)

func retailRequest(question string) *Request {
	ds := dataset.FromRecords(
		[]string{"Date", "Product", "Amount", "CustomerID", "Location"},
		[][]string{
			{"2024-01-05", "Widget", "100", "C1", "North"},
			{"2024-01-20", "Gadget", "300", "C2", "South"},
			{"2024-02-03", "Widget", "200", "C1", "North"},
			{"2024-02-18", "Doohickey", "50", "C3", "East"},
			{"2024-03-02", "Gadget", "400", "C2", "South"},
			{"2024-03-25", "Widget", "150", "C4", "North"},
		},
	)
	mapping := schema.Mapping{
		"Date":       "Date",
		"Product":    "Product",
		"Amount":     "Amount",
		"CustomerID": "CustomerID",
		"Location":   "Location",
	}
	return NewRequest(ds, mapping, catalog.DomainRetail, question)
}

func TestSummaryStats(t *testing.T) {
	result, err := summaryStats(context.Background(), retailRequest("summary_stats"))
	require.NoError(t, err)

	assert.Contains(t, result.Summary, "1,200.00", "total revenue")
	assert.Contains(t, result.Summary, "200.00", "average transaction")
	require.NotNil(t, result.Table)
	assert.Len(t, result.Table.Rows, 5)
}

func TestSalesTrend(t *testing.T) {
	result, err := salesTrend(context.Background(), retailRequest("sales_trend"))
	require.NoError(t, err)

	require.NotNil(t, result.Figure)
	assert.Equal(t, "line", result.Figure.Kind)
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, result.Figure.X)
	assert.Equal(t, []float64{400, 250, 550}, result.Figure.Y)
	assert.Contains(t, result.Summary, "upward")
}

func TestTopProducts(t *testing.T) {
	result, err := topProducts(context.Background(), retailRequest("top_products"))
	require.NoError(t, err)

	require.NotNil(t, result.Figure)
	assert.Equal(t, "bar", result.Figure.Kind)
	// Gadget 700, Widget 450, Doohickey 50.
	assert.Equal(t, []string{"Gadget", "Widget", "Doohickey"}, result.Figure.X)
	assert.Contains(t, result.Summary, "Gadget")
}

func TestBottomProducts(t *testing.T) {
	result, err := bottomProducts(context.Background(), retailRequest("bottom_products"))
	require.NoError(t, err)
	assert.Equal(t, "Doohickey", result.Figure.X[0])
}

func TestAvgOrderValue(t *testing.T) {
	result, err := avgOrderValue(context.Background(), retailRequest("avg_order_value"))
	require.NoError(t, err)
	assert.Contains(t, result.Summary, "200.00")
}

func TestRepeatRate(t *testing.T) {
	result, err := repeatRate(context.Background(), retailRequest("repeat_rate"))
	require.NoError(t, err)

	// C1 and C2 repeat out of 4 customers.
	assert.Contains(t, result.Summary, "2 of 4")
	assert.Contains(t, result.Summary, "50.0%")
}

func TestSalesByLocation(t *testing.T) {
	result, err := salesByLocation(context.Background(), retailRequest("sales_by_location"))
	require.NoError(t, err)

	// South 700, North 450, East 50.
	assert.Equal(t, []string{"South", "North", "East"}, result.Figure.X)
}

func TestCustomerClusters(t *testing.T) {
	result, err := customerClusters(context.Background(), retailRequest("customer_clusters"))
	require.NoError(t, err)

	require.NotNil(t, result.Figure)
	assert.Equal(t, "pie", result.Figure.Kind)
	var total float64
	for _, v := range result.Figure.Y {
		total += v
	}
	assert.Equal(t, 4.0, total, "every customer lands in exactly one cluster")
}

func TestModulesFailWithoutMapping(t *testing.T) {
	ds := dataset.FromRecords([]string{"X"}, [][]string{{"1"}})
	req := NewRequest(ds, schema.Mapping{}, catalog.DomainRetail, "top_products")

	for id, m := range builtinModules() {
		_, err := m(context.Background(), req)
		assert.Error(t, err, "module %s should fail without mapped fields", id)
	}
}

func TestRealEstateFieldAliases(t *testing.T) {
	ds := dataset.FromRecords(
		[]string{"SaleDate", "Suburb", "SalePrice"},
		[][]string{
			{"2024-01-10", "Carlton", "850000"},
			{"2024-02-12", "Fitzroy", "920000"},
			{"2024-02-20", "Carlton", "780000"},
		},
	)
	mapping := schema.Mapping{"SaleDate": "SaleDate", "Suburb": "Suburb", "SalePrice": "SalePrice"}
	req := NewRequest(ds, mapping, catalog.DomainRealEstate, "top_suburbs")

	result, err := salesByLocation(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Carlton", result.Figure.X[0], "Carlton leads on total value")

	trend, err := salesTrend(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01", "2024-02"}, trend.Figure.X)
}
