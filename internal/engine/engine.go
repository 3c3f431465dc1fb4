// Package engine ties the pipeline together: classify the dataset's domain,
// map its columns to canonical fields, gate the achievable analysis tier,
// profile the data, and plan the questions the dataset can answer. One
// Engine serves many datasets; per-dataset state lives in the AnalysisPlan.
package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/dataglance/dataglance/internal/analysis"
	"github.com/dataglance/dataglance/internal/catalog"
	"github.com/dataglance/dataglance/internal/dataset"
	"github.com/dataglance/dataglance/internal/insight"
	"github.com/dataglance/dataglance/internal/profiler"
	"github.com/dataglance/dataglance/internal/schema"
)

// minRecordsForInsights is the row count below which the plan recommends
// collecting more data.
const minRecordsForInsights = 100

type Engine struct {
	catalog    *catalog.Catalog
	classifier *schema.Classifier
	mapper     *schema.Mapper
	gate       *schema.Gate
	profiler   *profiler.Profiler
	insights   *insight.Client
	registry   *analysis.Registry
}

// New builds an engine on a catalog and an insight client. fuzzyThreshold
// controls how tolerant column mapping is of near-miss names.
func New(cat *catalog.Catalog, insights *insight.Client, fuzzyThreshold float64) *Engine {
	return &Engine{
		catalog:    cat,
		classifier: schema.NewClassifier(cat),
		mapper:     schema.NewMapper(cat, fuzzyThreshold),
		gate:       schema.NewGate(cat),
		profiler:   profiler.New(),
		insights:   insights,
		registry:   analysis.NewRegistry(insights),
	}
}

// AnalysisPlan is everything the engine has determined about one dataset.
type AnalysisPlan struct {
	SessionID       string                 `json:"session_id"`
	Domain          catalog.DomainID       `json:"domain"`
	Confidence      float64                `json:"confidence"`
	Mapping         schema.Mapping         `json:"mapping"`
	Tier            catalog.TierID         `json:"tier"`
	Capabilities    []catalog.CapabilityID `json:"capabilities"`
	Questions       []PlannedQuestion      `json:"questions"`
	InstantInsights string                 `json:"instant_insights"`
	Recommendations []string               `json:"recommendations"`
	Profile         *profiler.DataProfile  `json:"profile"`
}

// CreatePlan runs the full pipeline over a dataset. It never fails: every
// stage has a defined fallback (general domain, empty mapping, lowest tier,
// static insights), so any parseable dataset gets a usable plan.
func (e *Engine) CreatePlan(ctx context.Context, ds *dataset.Dataset) *AnalysisPlan {
	domain, confidence := e.classifier.Classify(ds.Columns())
	mapping := e.mapper.MapColumns(ds.Columns(), domain)
	mapped := mapping.MappedFields()
	tier := e.gate.AchievedTier(domain, mapped)

	plan := &AnalysisPlan{
		SessionID:       uuid.NewString(),
		Domain:          domain,
		Confidence:      confidence,
		Mapping:         mapping,
		Tier:            tier,
		Capabilities:    e.gate.Capabilities(domain, tier),
		Questions:       planQuestions(domain, mapped),
		Recommendations: recommendations(ds, mapped),
		Profile:         e.profiler.Profile(ds, domain),
	}
	plan.InstantInsights = e.instantInsights(ctx, ds, plan)
	return plan
}

// Answer runs one planned question against the dataset. Unknown question
// ids and failing modules degrade through the registry's generic handler,
// so the result always carries a summary.
func (e *Engine) Answer(ctx context.Context, ds *dataset.Dataset, plan *AnalysisPlan, questionID string) *analysis.Result {
	req := analysis.NewRequest(ds, plan.Mapping, plan.Domain, questionID)
	for _, q := range plan.Questions {
		if q.ID == questionID {
			req.Text = q.Text
			break
		}
	}
	return e.registry.Dispatch(ctx, req)
}

// Ask answers a free-form question through the insight-backed generic path.
func (e *Engine) Ask(ctx context.Context, ds *dataset.Dataset, plan *AnalysisPlan, text string) *analysis.Result {
	req := analysis.NewRequest(ds, plan.Mapping, plan.Domain, "")
	req.Text = text
	return e.registry.Dispatch(ctx, req)
}

// QuestionIDs returns the ids with dedicated analysis modules.
func (e *Engine) QuestionIDs() []string {
	return e.registry.QuestionIDs()
}

// instantInsights asks the insight client for a first-glance narrative. The
// payload carries structure and headline revenue numbers, never raw rows.
func (e *Engine) instantInsights(ctx context.Context, ds *dataset.Dataset, plan *AnalysisPlan) string {
	payload := map[string]any{
		"business_type": string(plan.Domain),
		"data_shape": map[string]any{
			"rows":         ds.RowCount(),
			"columns":      len(ds.Columns()),
			"column_names": ds.Columns(),
		},
		"mapped_fields": map[string]string(plan.Mapping),
	}
	if raw, ok := plan.Mapping[amountField(plan.Domain)]; ok {
		values := ds.NumericColumn(raw)
		if len(values) > 0 {
			total := 0.0
			for _, v := range values {
				total += v
			}
			payload["revenue_stats"] = map[string]any{
				"total_revenue":     total,
				"avg_transaction":   total / float64(len(values)),
				"transaction_count": len(values),
			}
		}
	}
	return e.insights.Generate(ctx, payload, plan.Domain, "instant_analysis")
}

// amountField names the canonical field playing the amount role for a
// domain.
func amountField(domain catalog.DomainID) string {
	if domain == catalog.DomainRealEstate {
		return "SalePrice"
	}
	return "Amount"
}

// recommendations suggests how to improve the dataset for analysis.
func recommendations(ds *dataset.Dataset, mapped map[string]bool) []string {
	var recs []string
	if !mapped["Date"] && !mapped["SaleDate"] {
		recs = append(recs, "Add a date column to enable trend analysis")
	}
	if !mapped["Amount"] && !mapped["SalePrice"] {
		recs = append(recs, "Add an amount/price column to enable revenue analysis")
	}
	if !mapped["CustomerID"] {
		recs = append(recs, "Add customer identification to enable customer analysis")
	}
	if ds.RowCount() < minRecordsForInsights {
		recs = append(recs, "Collect more data (100+ records) for better insights")
	}
	return recs
}
