package insight

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dataglance/dataglance/internal/catalog"
)

// staticFallback assembles deterministic, business-relevant text from the
// payload's own numeric fields when every model in the roster has failed.
// The caller must never receive a generic error message: even with an empty
// payload the summary names the domain and gives standing recommendations.
func staticFallback(payload map[string]any, domain catalog.DomainID) string {
	p := message.NewPrinter(language.English)

	var sb strings.Builder
	sb.WriteString("Business Insights Summary\n\n")

	metrics := numericFields(payload)
	if len(metrics) > 0 {
		sb.WriteString("Key metrics from this ")
		sb.WriteString(strings.ReplaceAll(string(domain), "_", " "))
		sb.WriteString(" analysis:\n")
		for _, m := range metrics {
			sb.WriteString("- " + humanizeKey(m.key) + ": " + formatNumber(p, m.value) + "\n")
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString("Analysis of your ")
		sb.WriteString(strings.ReplaceAll(string(domain), "_", " "))
		sb.WriteString(" data completed.\n\n")
	}

	sb.WriteString("Recommendations:\n")
	sb.WriteString("1. Monitor these metrics regularly\n")
	sb.WriteString("2. Investigate any significant trends or outliers\n")
	sb.WriteString("3. Consider implementing targeted improvements\n\n")
	sb.WriteString("Note: Enhanced AI insights are temporarily unavailable. The figures above are computed directly from your data.")
	return sb.String()
}

type numericField struct {
	key   string
	value float64
}

// numericFields extracts numeric payload entries in sorted key order,
// descending one level into nested maps so composite payloads (e.g.
// revenue_stats) still surface their numbers.
func numericFields(payload map[string]any) []numericField {
	var out []numericField
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := payload[k].(type) {
		case float64:
			out = append(out, numericField{k, v})
		case float32:
			out = append(out, numericField{k, float64(v)})
		case int:
			out = append(out, numericField{k, float64(v)})
		case int64:
			out = append(out, numericField{k, float64(v)})
		case map[string]any:
			nested := numericFields(v)
			for _, n := range nested {
				out = append(out, numericField{k + "." + n.key, n.value})
			}
		}
	}
	return out
}

func humanizeKey(key string) string {
	key = strings.ReplaceAll(key, ".", " ")
	key = strings.ReplaceAll(key, "_", " ")
	return key
}

func formatNumber(p *message.Printer, v float64) string {
	if v == float64(int64(v)) {
		return p.Sprintf("%d", int64(v))
	}
	return p.Sprintf("%.2f", v)
}
