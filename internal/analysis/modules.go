package analysis

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dataglance/dataglance/internal/dataset"
)

// builtinModules is the explicit registration table. Ids match the
// canonical question ids surfaced by the question bank.
func builtinModules() map[string]Module {
	return map[string]Module{
		"summary_stats":     summaryStats,
		"sales_trend":       salesTrend,
		"top_products":      topProducts,
		"bottom_products":   bottomProducts,
		"avg_order_value":   avgOrderValue,
		"repeat_rate":       repeatRate,
		"sales_by_location": salesByLocation,
		"top_suburbs":       salesByLocation,
		"customer_clusters": customerClusters,
	}
}

var american = message.NewPrinter(language.English)

// summaryStats reports headline metrics from the mapped amount column.
func summaryStats(ctx context.Context, req *Request) (*Result, error) {
	values, ok := req.numericColumn("Amount")
	if !ok || len(values) == 0 {
		// SalePrice plays the amount role for real estate datasets.
		values, ok = req.numericColumn("SalePrice")
	}
	if !ok || len(values) == 0 {
		return nil, fmt.Errorf("no mapped amount column")
	}

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

	summary := american.Sprintf(
		"Across %d records, total revenue is %.2f with an average transaction of %.2f (min %.2f, max %.2f).",
		req.Dataset.RowCount(), total, avg, minV, maxV)

	return &Result{
		Summary: summary,
		Table: &Table{
			Columns: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Total revenue", american.Sprintf("%.2f", total)},
				{"Average transaction", american.Sprintf("%.2f", avg)},
				{"Minimum transaction", american.Sprintf("%.2f", minV)},
				{"Maximum transaction", american.Sprintf("%.2f", maxV)},
				{"Transaction count", american.Sprintf("%d", len(values))},
			},
		},
	}, nil
}

// salesTrend groups the amount column by month of the date column.
func salesTrend(ctx context.Context, req *Request) (*Result, error) {
	dateRaw, okDate := req.column("Date")
	if !okDate {
		dateRaw, okDate = req.column("SaleDate")
	}
	amountRaw, okAmount := req.column("Amount")
	if !okAmount {
		amountRaw, okAmount = req.column("SalePrice")
	}
	if !okDate || !okAmount {
		return nil, fmt.Errorf("sales trend requires mapped date and amount columns")
	}

	monthly := make(map[string]float64)
	for i := range dateRaw {
		t, okT := dataset.ParseDate(dateRaw[i])
		v, okV := dataset.ParseNumeric(amountRaw[i])
		if !okT || !okV {
			continue
		}
		monthly[t.Format("2006-01")] += v
	}
	if len(monthly) == 0 {
		return nil, fmt.Errorf("no parseable date/amount pairs")
	}

	months := make([]string, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Strings(months)

	ys := make([]float64, len(months))
	rows := make([][]string, len(months))
	for i, m := range months {
		ys[i] = monthly[m]
		rows[i] = []string{m, american.Sprintf("%.2f", monthly[m])}
	}

	first, last := monthly[months[0]], monthly[months[len(months)-1]]
	direction := "held steady"
	if last > first*1.05 {
		direction = "trended upward"
	} else if last < first*0.95 {
		direction = "trended downward"
	}
	summary := american.Sprintf("Sales %s across %d months, from %.2f in %s to %.2f in %s.",
		direction, len(months), first, months[0], last, months[len(months)-1])

	return &Result{
		Summary: summary,
		Table:   &Table{Columns: []string{"Month", "Revenue"}, Rows: rows},
		Figure: &Figure{
			Kind: "line", Title: "Monthly sales", XLabel: "Month", YLabel: "Revenue",
			X: months, Y: ys,
		},
	}, nil
}

func topProducts(ctx context.Context, req *Request) (*Result, error) {
	return rankProducts(req, false)
}

func bottomProducts(ctx context.Context, req *Request) (*Result, error) {
	return rankProducts(req, true)
}

// rankProducts sums the amount column per product and returns the ten
// highest (or lowest) earners.
func rankProducts(req *Request, ascending bool) (*Result, error) {
	productField := "Product"
	if _, ok := req.Mapping[productField]; !ok {
		if _, ok := req.Mapping["MenuItem"]; ok {
			productField = "MenuItem"
		}
	}
	productRaw, okProduct := req.column(productField)
	amountRaw, okAmount := req.column("Amount")
	if !okProduct || !okAmount {
		return nil, fmt.Errorf("product ranking requires mapped product and amount columns")
	}

	totals := make(map[string]float64)
	for i := range productRaw {
		if dataset.IsNull(productRaw[i]) {
			continue
		}
		if v, ok := dataset.ParseNumeric(amountRaw[i]); ok {
			totals[productRaw[i]] += v
		}
	}
	if len(totals) == 0 {
		return nil, fmt.Errorf("no parseable product/amount pairs")
	}

	type ranked struct {
		name  string
		total float64
	}
	items := make([]ranked, 0, len(totals))
	for name, total := range totals {
		items = append(items, ranked{name, total})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].total == items[j].total {
			return items[i].name < items[j].name
		}
		if ascending {
			return items[i].total < items[j].total
		}
		return items[i].total > items[j].total
	})
	if len(items) > 10 {
		items = items[:10]
	}

	xs := make([]string, len(items))
	ys := make([]float64, len(items))
	rows := make([][]string, len(items))
	for i, it := range items {
		xs[i] = it.name
		ys[i] = it.total
		rows[i] = []string{it.name, american.Sprintf("%.2f", it.total)}
	}

	leader := items[0]
	var summary string
	if ascending {
		summary = american.Sprintf("%q is the weakest performer with %.2f in revenue across the bottom %d products.",
			leader.name, leader.total, len(items))
	} else {
		summary = american.Sprintf("%q leads with %.2f in revenue across the top %d products.",
			leader.name, leader.total, len(items))
	}

	return &Result{
		Summary: summary,
		Table:   &Table{Columns: []string{"Product", "Revenue"}, Rows: rows},
		Figure: &Figure{
			Kind: "bar", Title: "Revenue by product", XLabel: "Product", YLabel: "Revenue",
			X: xs, Y: ys,
		},
	}, nil
}

// avgOrderValue reports the mean transaction amount.
func avgOrderValue(ctx context.Context, req *Request) (*Result, error) {
	values, ok := req.numericColumn("Amount")
	if !ok || len(values) == 0 {
		return nil, fmt.Errorf("average order value requires a mapped amount column")
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	avg := total / float64(len(values))
	return &Result{
		Summary: american.Sprintf("Customers spend %.2f per order on average across %d orders.", avg, len(values)),
	}, nil
}

// repeatRate reports the share of customers with more than one record.
func repeatRate(ctx context.Context, req *Request) (*Result, error) {
	customers, ok := req.column("CustomerID")
	if !ok {
		return nil, fmt.Errorf("repeat rate requires a mapped customer column")
	}
	counts := make(map[string]int)
	for _, c := range customers {
		if dataset.IsNull(c) {
			continue
		}
		counts[c]++
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("no customer values present")
	}
	repeat := 0
	for _, n := range counts {
		if n > 1 {
			repeat++
		}
	}
	rate := float64(repeat) / float64(len(counts)) * 100
	return &Result{
		Summary: american.Sprintf("%d of %d customers (%.1f%%) placed more than one order.",
			repeat, len(counts), rate),
		Table: &Table{
			Columns: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Unique customers", american.Sprintf("%d", len(counts))},
				{"Repeat customers", american.Sprintf("%d", repeat)},
				{"Repeat rate", american.Sprintf("%.1f%%", rate)},
			},
		},
	}, nil
}

// salesByLocation sums the amount column per location.
func salesByLocation(ctx context.Context, req *Request) (*Result, error) {
	locField := "Location"
	if _, ok := req.Mapping[locField]; !ok {
		if _, ok := req.Mapping["Suburb"]; ok {
			locField = "Suburb"
		}
	}
	locRaw, okLoc := req.column(locField)
	amountRaw, okAmount := req.column("Amount")
	if !okAmount {
		amountRaw, okAmount = req.column("SalePrice")
	}
	if !okLoc || !okAmount {
		return nil, fmt.Errorf("location analysis requires mapped location and amount columns")
	}

	totals := make(map[string]float64)
	for i := range locRaw {
		if dataset.IsNull(locRaw[i]) {
			continue
		}
		if v, ok := dataset.ParseNumeric(amountRaw[i]); ok {
			totals[locRaw[i]] += v
		}
	}
	if len(totals) == 0 {
		return nil, fmt.Errorf("no parseable location/amount pairs")
	}

	type ranked struct {
		name  string
		total float64
	}
	items := make([]ranked, 0, len(totals))
	for name, total := range totals {
		items = append(items, ranked{name, total})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].total == items[j].total {
			return items[i].name < items[j].name
		}
		return items[i].total > items[j].total
	})

	xs := make([]string, len(items))
	ys := make([]float64, len(items))
	rows := make([][]string, len(items))
	for i, it := range items {
		xs[i] = it.name
		ys[i] = it.total
		rows[i] = []string{it.name, american.Sprintf("%.2f", it.total)}
	}

	return &Result{
		Summary: american.Sprintf("%q is the strongest location with %.2f in revenue across %d locations.",
			items[0].name, items[0].total, len(items)),
		Table: &Table{Columns: []string{"Location", "Revenue"}, Rows: rows},
		Figure: &Figure{
			Kind: "bar", Title: "Revenue by location", XLabel: "Location", YLabel: "Revenue",
			X: xs, Y: ys,
		},
	}, nil
}

// customerClusters buckets customers into low/medium/high spend groups by
// total spend terciles.
func customerClusters(ctx context.Context, req *Request) (*Result, error) {
	custRaw, okCust := req.column("CustomerID")
	amountRaw, okAmount := req.column("Amount")
	if !okCust || !okAmount {
		return nil, fmt.Errorf("customer clustering requires mapped customer and amount columns")
	}

	spend := make(map[string]float64)
	for i := range custRaw {
		if dataset.IsNull(custRaw[i]) {
			continue
		}
		if v, ok := dataset.ParseNumeric(amountRaw[i]); ok {
			spend[custRaw[i]] += v
		}
	}
	if len(spend) == 0 {
		return nil, fmt.Errorf("no parseable customer/amount pairs")
	}

	totals := make([]float64, 0, len(spend))
	for _, v := range spend {
		totals = append(totals, v)
	}
	sort.Float64s(totals)
	lowCut := totals[len(totals)/3]
	highCut := totals[len(totals)*2/3]

	var low, mid, high int
	for _, v := range spend {
		switch {
		case v <= lowCut:
			low++
		case v >= highCut:
			high++
		default:
			mid++
		}
	}

	return &Result{
		Summary: american.Sprintf("Customers split into %d low, %d medium, and %d high spenders (cut points %.2f and %.2f).",
			low, mid, high, lowCut, highCut),
		Figure: &Figure{
			Kind: "pie", Title: "Customer spend clusters",
			X: []string{"Low", "Medium", "High"},
			Y: []float64{float64(low), float64(mid), float64(high)},
		},
	}, nil
}
