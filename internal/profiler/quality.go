package profiler

import (
	"fmt"

	"github.com/dataglance/dataglance/internal/dataset"
)

// Quality scoring thresholds and deductions. The score starts at 100 and
// deductions are threshold-based, not continuous: a dataset with 11% and
// one with 30% missing values take the same 20-point hit.
const (
	missingThresholdPct   = 10.0
	missingDeduction      = 20
	duplicateThresholdPct = 5.0
	duplicateDeduction    = 15
	outlierColRatio       = 0.05
	outlierDeduction      = 10
)

// assessQuality scores the dataset and pairs each issue with its fixed
// recommendation: missing values -> imputation, duplicates -> dedup review,
// outliers -> investigation.
func assessQuality(ds *dataset.Dataset, profile *DataProfile) QualityAssessment {
	qa := QualityAssessment{Score: 100}

	totalCells := ds.RowCount() * profile.Metadata.TotalColumns
	if totalCells > 0 {
		qa.MissingPercent = round2(float64(ds.NullCount()) / float64(totalCells) * 100)
	}
	if qa.MissingPercent > missingThresholdPct {
		qa.Score -= missingDeduction
		qa.Issues = append(qa.Issues, fmt.Sprintf("High missing values: %.1f%%", qa.MissingPercent))
		qa.Recommendations = append(qa.Recommendations, "Consider imputation strategies for missing values")
	}

	if ds.RowCount() > 0 {
		qa.DuplicatePercent = round2(float64(ds.DuplicateCount()) / float64(ds.RowCount()) * 100)
	}
	if qa.DuplicatePercent > duplicateThresholdPct {
		qa.Score -= duplicateDeduction
		qa.Issues = append(qa.Issues, fmt.Sprintf("Duplicate rows: %.1f%%", qa.DuplicatePercent))
		qa.Recommendations = append(qa.Recommendations, "Review and remove duplicate records if appropriate")
	}

	outlierCols := 0
	for _, col := range profile.Metadata.ColumnNames {
		stats := profile.Columns[col]
		if stats.Numeric == nil || ds.RowCount() == 0 {
			continue
		}
		if float64(stats.Numeric.OutlierCount) > float64(ds.RowCount())*outlierColRatio {
			outlierCols++
		}
	}
	if outlierCols > 0 {
		qa.Score -= outlierDeduction
		qa.Issues = append(qa.Issues, fmt.Sprintf("Outliers detected in %d numeric columns", outlierCols))
		qa.Recommendations = append(qa.Recommendations, "Investigate outliers for data quality issues")
	}

	if qa.Score < 0 {
		qa.Score = 0
	}
	return qa
}
