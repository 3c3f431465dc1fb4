package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCSV(t *testing.T) {
	csv := "Date,Product,Amount\n2024-01-15,Widget,100.50\n2024-01-16,Gadget,200.00\n"
	ds, err := FromCSV(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Product", "Amount"}, ds.Columns())
	assert.Equal(t, 2, ds.RowCount())

	values, ok := ds.Column("Product")
	require.True(t, ok)
	assert.Equal(t, []string{"Widget", "Gadget"}, values)
}

func TestFromCSVShortRowsPadded(t *testing.T) {
	csv := "A,B,C\n1,2,3\n4,5\n"
	ds, err := FromCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 2, ds.RowCount())

	values, ok := ds.Column("C")
	require.True(t, ok)
	assert.Equal(t, []string{"3", ""}, values)
}

func TestFromCSVErrors(t *testing.T) {
	_, err := FromCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = FromCSV(strings.NewReader("A,B\n"))
	assert.Error(t, err, "header with no data rows should fail")
}

func TestDuplicateCount(t *testing.T) {
	ds := FromRecords([]string{"A", "B"}, [][]string{
		{"1", "x"},
		{"1", "x"},
		{"2", "y"},
		{"1", "x"},
	})
	assert.Equal(t, 2, ds.DuplicateCount())
}

func TestIsNull(t *testing.T) {
	for _, s := range []string{"", "null", "NULL", "N/A", "n/a", "NaN", "nan"} {
		assert.True(t, IsNull(s), "expected %q to be null", s)
	}
	assert.False(t, IsNull("0"))
	assert.False(t, IsNull("none at all"))
}

func TestParseNumeric(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"100", 100, true},
		{"1,234.56", 1234.56, true},
		{"$99.99", 99.99, true},
		{"€50", 50, true},
		{"£25.00", 25, true},
		{"-12.5", -12.5, true},
		{"widget", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseNumeric(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 1e-9, "input %q", tc.in)
		}
	}
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-01-15", "15/01/2024", "01/15/2024", "2024-01-15 10:30:00", "Jan 15, 2024"} {
		_, ok := ParseDate(s)
		assert.True(t, ok, "expected %q to parse as a date", s)
	}
	_, ok := ParseDate("not a date")
	assert.False(t, ok)
}

func TestIsNumericColumnThreshold(t *testing.T) {
	// 4 of 5 values numeric: exactly at the 80% threshold.
	ds := FromRecords([]string{"V"}, [][]string{{"1"}, {"2"}, {"3"}, {"4"}, {"x"}})
	assert.True(t, ds.IsNumericColumn("V"))

	// 3 of 5: below threshold.
	ds = FromRecords([]string{"V"}, [][]string{{"1"}, {"2"}, {"3"}, {"x"}, {"y"}})
	assert.False(t, ds.IsNumericColumn("V"))
}

func TestIsNumericColumnIgnoresNulls(t *testing.T) {
	ds := FromRecords([]string{"V"}, [][]string{{"1"}, {""}, {"N/A"}, {"2"}})
	assert.True(t, ds.IsNumericColumn("V"))
}

func TestIsDateColumn(t *testing.T) {
	ds := FromRecords([]string{"D", "N"}, [][]string{
		{"2024-01-01", "5"},
		{"2024-02-01", "6"},
	})
	assert.True(t, ds.IsDateColumn("D"))
	assert.False(t, ds.IsDateColumn("N"), "plain integers should not read as dates")
}

func TestNumericColumnParsesCurrency(t *testing.T) {
	ds := FromRecords([]string{"Amount"}, [][]string{{"$1,000.00"}, {"$2,500.50"}, {"bad"}})
	values := ds.NumericColumn("Amount")
	require.Len(t, values, 2)
	assert.InDelta(t, 1000.0, values[0], 1e-9)
	assert.InDelta(t, 2500.5, values[1], 1e-9)
}
