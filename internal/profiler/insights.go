package profiler

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dataglance/dataglance/internal/catalog"
	"github.com/dataglance/dataglance/internal/dataset"
)

// extractBusinessInsights computes aggregate business metrics from columns
// detected via the shared keyword families: the first amount-like column
// yields revenue stats, the first date-like column the covered range, the
// first customer-like column repeat/unique counts. Absence of a matching
// column silently skips that section.
func extractBusinessInsights(ds *dataset.Dataset) BusinessInsights {
	var bi BusinessInsights

	if col := firstColumnMatching(ds, catalog.FamilyAmount); col != "" {
		values := ds.NumericColumn(col)
		if len(values) > 0 {
			total, maxV, minV := 0.0, values[0], values[0]
			for _, v := range values {
				total += v
				if v > maxV {
					maxV = v
				}
				if v < minV {
					minV = v
				}
			}
			avg := total / float64(len(values))
			bi.TotalRevenue = &total
			bi.AvgTransaction = &avg
			bi.MaxTransaction = &maxV
			bi.MinTransaction = &minV
		}
	}

	if col := firstColumnMatching(ds, catalog.FamilyDate); col != "" {
		dates := ds.DateColumn(col)
		if len(dates) > 0 {
			earliest, latest := dates[0], dates[0]
			for _, d := range dates {
				if d.Before(earliest) {
					earliest = d
				}
				if d.After(latest) {
					latest = d
				}
			}
			span := int(latest.Sub(earliest).Hours() / 24)
			bi.DateRangeStart = &earliest
			bi.DateRangeEnd = &latest
			bi.DateSpanDays = &span
		}
	}

	if col := firstColumnMatching(ds, catalog.FamilyCustomer); col != "" {
		raw, _ := ds.Column(col)
		counts := make(map[string]int)
		for _, cell := range raw {
			if dataset.IsNull(cell) {
				continue
			}
			counts[cell]++
		}
		unique := len(counts)
		repeat := 0
		for _, c := range counts {
			if c > 1 {
				repeat++
			}
		}
		bi.UniqueCustomers = &unique
		bi.RepeatCustomers = &repeat
	}

	return bi
}

// firstColumnMatching returns the first column (in original order) whose
// name contains one of the family's keywords as a substring.
func firstColumnMatching(ds *dataset.Dataset, family catalog.Family) string {
	keywords := catalog.FamilyKeywords(family)
	for _, col := range ds.Columns() {
		lowered := strings.ToLower(col)
		for _, kw := range keywords {
			if strings.Contains(lowered, kw) {
				return col
			}
		}
	}
	return ""
}

// quickFacts produces a short, human-readable fact list about the dataset.
func quickFacts(ds *dataset.Dataset, profile *DataProfile) []string {
	p := message.NewPrinter(language.English)
	facts := []string{
		p.Sprintf("Dataset contains %d records and %d columns",
			ds.RowCount(), profile.Metadata.TotalColumns),
	}

	totalCells := ds.RowCount() * profile.Metadata.TotalColumns
	if nulls := ds.NullCount(); nulls > 0 && totalCells > 0 {
		facts = append(facts, p.Sprintf("Total missing values: %d (%.1f%%)",
			nulls, float64(nulls)/float64(totalCells)*100))
	}
	if dups := ds.DuplicateCount(); dups > 0 && ds.RowCount() > 0 {
		facts = append(facts, p.Sprintf("Duplicate records: %d (%.1f%%)",
			dups, float64(dups)/float64(ds.RowCount())*100))
	}

	var numericCols, dateCols []string
	for _, col := range profile.Metadata.ColumnNames {
		switch profile.Columns[col].DataType {
		case "numeric":
			numericCols = append(numericCols, col)
		case "date":
			dateCols = append(dateCols, col)
		}
	}
	if len(numericCols) > 0 {
		facts = append(facts, p.Sprintf("Numeric columns: %d (%s)",
			len(numericCols), strings.Join(numericCols, ", ")))
	}
	if len(dateCols) > 0 {
		facts = append(facts, p.Sprintf("Date columns: %d (%s)",
			len(dateCols), strings.Join(dateCols, ", ")))
	}
	return facts
}
