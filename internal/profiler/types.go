// Package profiler computes a structural and statistical profile of a
// dataset: per-column stats, a data quality assessment with actionable
// recommendations, temporal and categorical patterns, and opportunistic
// business metrics. Profiles are idempotent and cached by a fingerprint of
// the dataset's shape, so re-profiling the same upload is free.
package profiler

import (
	"time"

	"github.com/dataglance/dataglance/internal/catalog"
)

// DataProfile is the full profile of one (dataset, domain) pair.
type DataProfile struct {
	Metadata      Metadata               `json:"metadata"`
	Columns       map[string]ColumnStats `json:"column_analysis"`
	Quality       QualityAssessment      `json:"quality"`
	Patterns      Patterns               `json:"patterns"`
	Relationships Relationships          `json:"relationships"`
	Insights      BusinessInsights       `json:"business_insights"`
	QuickFacts    []string               `json:"quick_facts"`
	Timestamp     time.Time              `json:"timestamp"`
}

// Metadata describes the dataset's shape.
type Metadata struct {
	Domain       catalog.DomainID `json:"domain"`
	TotalRows    int              `json:"total_rows"`
	TotalColumns int              `json:"total_columns"`
	ColumnNames  []string         `json:"column_names"`
}

// ColumnStats holds uniform per-column statistics plus type-specific
// sections. Exactly one of Numeric/Text is set depending on the detected
// type; Dates is set additionally when the column is date-like.
type ColumnStats struct {
	DataType        string  `json:"data_type"`
	NonNullCount    int     `json:"non_null_count"`
	NullCount       int     `json:"null_count"`
	NullPercent     float64 `json:"null_percentage"`
	DistinctCount   int     `json:"unique_count"`
	DistinctPercent float64 `json:"unique_percentage"`
	MostCommon      string  `json:"most_common_value"`
	MostCommonCount int     `json:"most_common_count"`

	Numeric *NumericStats `json:"numeric,omitempty"`
	Text    *TextStats    `json:"text,omitempty"`
	Dates   *DateStats    `json:"dates,omitempty"`
}

// NumericStats covers numeric columns. Outliers are counted with Tukey's
// IQR rule: a value is an outlier iff it falls below Q1-1.5*IQR or above
// Q3+1.5*IQR.
type NumericStats struct {
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Mean          float64 `json:"mean"`
	Median        float64 `json:"median"`
	StdDev        float64 `json:"std"`
	Q1            float64 `json:"q1"`
	Q2            float64 `json:"q2"`
	Q3            float64 `json:"q3"`
	OutlierCount  int     `json:"outliers_count"`
	ZeroCount     int     `json:"zero_count"`
	NegativeCount int     `json:"negative_count"`
}

// TextStats covers textual columns.
type TextStats struct {
	AvgLength      float64 `json:"avg_length"`
	MinLength      int     `json:"min_length"`
	MaxLength      int     `json:"max_length"`
	EmptyCount     int     `json:"empty_strings"`
	WhitespaceOnly int     `json:"whitespace_only"`
}

// DateStats covers date-like columns.
type DateStats struct {
	Earliest  time.Time      `json:"earliest"`
	Latest    time.Time      `json:"latest"`
	SpanDays  int            `json:"span_days"`
	DayOfWeek map[string]int `json:"day_of_week"`
	Month     map[string]int `json:"month"`
	Hour      map[int]int    `json:"hour,omitempty"`
}

// QualityAssessment scores the dataset 0-100. Issues and Recommendations
// are parallel: issue i maps to recommendation i.
type QualityAssessment struct {
	Score            int      `json:"quality_score"`
	Issues           []string `json:"issues"`
	Recommendations  []string `json:"recommendations"`
	MissingPercent   float64  `json:"missing_percentage"`
	DuplicatePercent float64  `json:"duplicate_percentage"`
}

// Patterns holds detected distribution patterns.
type Patterns struct {
	// Temporal maps date-like column names to their distributions.
	Temporal map[string]*DateStats `json:"temporal_patterns"`
	// Categorical maps low-cardinality column names to value counts.
	Categorical map[string]CategoricalPattern `json:"categorical_patterns"`
}

// CategoricalPattern is the value distribution of a low-cardinality column.
type CategoricalPattern struct {
	Distribution map[string]int `json:"distribution"`
	Dominant     string         `json:"dominant_category"`
	Entropy      float64        `json:"entropy"`
}

// Relationships holds cross-column signals.
type Relationships struct {
	StrongCorrelations []Correlation `json:"strong_correlations"`
}

// Correlation is a strong pairwise Pearson correlation (|r| > 0.7).
type Correlation struct {
	Column1     string  `json:"column1"`
	Column2     string  `json:"column2"`
	Correlation float64 `json:"correlation"`
}

// BusinessInsights are opportunistic aggregate metrics computed from
// columns matched by the shared keyword families. A missing section means
// no column of that kind was found; that is a normal state, not an error.
type BusinessInsights struct {
	TotalRevenue    *float64   `json:"total_revenue,omitempty"`
	AvgTransaction  *float64   `json:"avg_transaction,omitempty"`
	MaxTransaction  *float64   `json:"max_transaction,omitempty"`
	MinTransaction  *float64   `json:"min_transaction,omitempty"`
	DateRangeStart  *time.Time `json:"date_range_start,omitempty"`
	DateRangeEnd    *time.Time `json:"date_range_end,omitempty"`
	DateSpanDays    *int       `json:"date_span_days,omitempty"`
	UniqueCustomers *int       `json:"unique_customers,omitempty"`
	RepeatCustomers *int       `json:"repeat_customers,omitempty"`
}
