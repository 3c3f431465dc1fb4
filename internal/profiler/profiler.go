package profiler

import (
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dataglance/dataglance/internal/catalog"
	"github.com/dataglance/dataglance/internal/dataset"
)

// Profiler computes DataProfiles and caches them by dataset fingerprint.
// The cache is guarded by a mutex so the profiler is safe to embed in a
// concurrent server even though the normal host model is one analysis per
// session at a time.
type Profiler struct {
	mu    sync.Mutex
	cache map[string]*DataProfile
}

// New creates a Profiler with an empty cache.
func New() *Profiler {
	return &Profiler{cache: make(map[string]*DataProfile)}
}

// Fingerprint derives the cache key for a (dataset, domain) pair from the
// row count and a hash of the column names. Two uploads with the same shape
// and header share a profile for the lifetime of the process.
func Fingerprint(domain catalog.DomainID, ds *dataset.Dataset) string {
	h := fnv.New64a()
	for _, col := range ds.Columns() {
		h.Write([]byte(col))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%s_%d_%x", domain, ds.RowCount(), h.Sum64())
}

// Profile computes (or returns the cached) profile of the dataset for the
// given domain. The computation is synchronous and never fails: unparseable
// values are treated as missing and excluded from statistics.
func (p *Profiler) Profile(ds *dataset.Dataset, domain catalog.DomainID) *DataProfile {
	key := Fingerprint(domain, ds)

	p.mu.Lock()
	if cached, ok := p.cache[key]; ok {
		p.mu.Unlock()
		return cached
	}
	p.mu.Unlock()

	profile := p.compute(ds, domain)

	p.mu.Lock()
	p.cache[key] = profile
	p.mu.Unlock()
	return profile
}

func (p *Profiler) compute(ds *dataset.Dataset, domain catalog.DomainID) *DataProfile {
	columns := ds.Columns()

	profile := &DataProfile{
		Metadata: Metadata{
			Domain:       domain,
			TotalRows:    ds.RowCount(),
			TotalColumns: len(columns),
			ColumnNames:  columns,
		},
		Columns: make(map[string]ColumnStats, len(columns)),
		Patterns: Patterns{
			Temporal:    make(map[string]*DateStats),
			Categorical: make(map[string]CategoricalPattern),
		},
		Timestamp: time.Now(),
	}

	for _, col := range columns {
		stats := analyzeColumn(ds, col)
		profile.Columns[col] = stats
		if stats.Dates != nil {
			profile.Patterns.Temporal[col] = stats.Dates
		}
	}

	p.detectCategoricalPatterns(ds, profile)
	profile.Relationships = analyzeRelationships(ds, profile)
	profile.Quality = assessQuality(ds, profile)
	profile.Insights = extractBusinessInsights(ds)
	profile.QuickFacts = quickFacts(ds, profile)

	return profile
}

// analyzeColumn computes the uniform per-column statistics plus the
// type-specific section.
func analyzeColumn(ds *dataset.Dataset, col string) ColumnStats {
	raw, _ := ds.Column(col)
	total := len(raw)

	counts := make(map[string]int)
	nonNull := 0
	for _, cell := range raw {
		if dataset.IsNull(cell) {
			continue
		}
		nonNull++
		counts[cell]++
	}

	stats := ColumnStats{
		NonNullCount:  nonNull,
		NullCount:     total - nonNull,
		DistinctCount: len(counts),
	}
	if total > 0 {
		stats.NullPercent = round2(float64(total-nonNull) / float64(total) * 100)
		stats.DistinctPercent = round2(float64(len(counts)) / float64(total) * 100)
	}
	stats.MostCommon, stats.MostCommonCount = mostCommon(counts)

	switch {
	case ds.IsNumericColumn(col):
		stats.DataType = "numeric"
		stats.Numeric = numericStats(ds.NumericColumn(col))
	default:
		stats.DataType = "text"
		stats.Text = textStats(raw)
	}

	if ds.IsDateColumn(col) {
		stats.DataType = "date"
		stats.Dates = dateStats(ds.DateColumn(col))
	}

	return stats
}

func numericStats(values []float64) *NumericStats {
	if len(values) == 0 {
		return &NumericStats{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	ns := &NumericStats{
		Min:          sorted[0],
		Max:          sorted[len(sorted)-1],
		Mean:         mean(values),
		Median:       quantile(sorted, 0.5),
		StdDev:       stdDev(values),
		Q1:           quantile(sorted, 0.25),
		Q2:           quantile(sorted, 0.5),
		Q3:           quantile(sorted, 0.75),
		OutlierCount: countOutliers(values),
	}
	for _, v := range values {
		if v == 0 {
			ns.ZeroCount++
		}
		if v < 0 {
			ns.NegativeCount++
		}
	}
	return ns
}

func textStats(raw []string) *TextStats {
	ts := &TextStats{MinLength: -1}
	totalLen := 0
	counted := 0
	for _, cell := range raw {
		if dataset.IsNull(cell) {
			continue
		}
		n := len(cell)
		counted++
		totalLen += n
		if ts.MinLength < 0 || n < ts.MinLength {
			ts.MinLength = n
		}
		if n > ts.MaxLength {
			ts.MaxLength = n
		}
		if cell == "" {
			ts.EmptyCount++
		} else if strings.TrimSpace(cell) == "" {
			ts.WhitespaceOnly++
		}
	}
	if counted > 0 {
		ts.AvgLength = round2(float64(totalLen) / float64(counted))
	}
	if ts.MinLength < 0 {
		ts.MinLength = 0
	}
	return ts
}

func dateStats(dates []time.Time) *DateStats {
	ds := &DateStats{
		DayOfWeek: make(map[string]int),
		Month:     make(map[string]int),
	}
	if len(dates) == 0 {
		return ds
	}
	ds.Earliest = dates[0]
	ds.Latest = dates[0]
	hours := make(map[int]int)
	for _, d := range dates {
		if d.Before(ds.Earliest) {
			ds.Earliest = d
		}
		if d.After(ds.Latest) {
			ds.Latest = d
		}
		ds.DayOfWeek[d.Weekday().String()]++
		ds.Month[d.Month().String()]++
		hours[d.Hour()]++
	}
	ds.SpanDays = int(ds.Latest.Sub(ds.Earliest).Hours() / 24)
	// Hour distribution only means something when times vary.
	if len(hours) > 1 {
		ds.Hour = hours
	}
	return ds
}

// detectCategoricalPatterns records value distributions for low-cardinality
// text columns (under 20 distinct values).
func (p *Profiler) detectCategoricalPatterns(ds *dataset.Dataset, profile *DataProfile) {
	for col, stats := range profile.Columns {
		if stats.DataType != "text" || stats.DistinctCount == 0 || stats.DistinctCount >= 20 {
			continue
		}
		raw, _ := ds.Column(col)
		dist := make(map[string]int)
		for _, cell := range raw {
			if dataset.IsNull(cell) {
				continue
			}
			dist[cell]++
		}
		dominant, _ := mostCommon(dist)
		profile.Patterns.Categorical[col] = CategoricalPattern{
			Distribution: dist,
			Dominant:     dominant,
			Entropy:      entropy(dist),
		}
	}
}

// analyzeRelationships finds strong pairwise correlations among numeric
// columns. Row alignment only considers rows where both cells parse.
func analyzeRelationships(ds *dataset.Dataset, profile *DataProfile) Relationships {
	var numericCols []string
	for _, col := range profile.Metadata.ColumnNames {
		if stats, ok := profile.Columns[col]; ok && stats.DataType == "numeric" {
			numericCols = append(numericCols, col)
		}
	}

	var rel Relationships
	for i := 0; i < len(numericCols); i++ {
		for j := i + 1; j < len(numericCols); j++ {
			xs, ys := alignedNumeric(ds, numericCols[i], numericCols[j])
			r := pearson(xs, ys)
			if r > 0.7 || r < -0.7 {
				rel.StrongCorrelations = append(rel.StrongCorrelations, Correlation{
					Column1:     numericCols[i],
					Column2:     numericCols[j],
					Correlation: round2(r),
				})
			}
		}
	}
	return rel
}

func alignedNumeric(ds *dataset.Dataset, a, b string) ([]float64, []float64) {
	rawA, _ := ds.Column(a)
	rawB, _ := ds.Column(b)
	var xs, ys []float64
	for i := range rawA {
		va, okA := dataset.ParseNumeric(rawA[i])
		vb, okB := dataset.ParseNumeric(rawB[i])
		if okA && okB {
			xs = append(xs, va)
			ys = append(ys, vb)
		}
	}
	return xs, ys
}

func mostCommon(counts map[string]int) (string, int) {
	best := ""
	bestCount := 0
	// Deterministic: break count ties lexicographically.
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return best, bestCount
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
