package insight

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dataglance/dataglance/internal/catalog"
)

// domainContext pins per-domain terminology so prompts for the same domain
// stay consistent across calls and models.
type domainContext struct {
	knowledge  string
	keyMetrics []string
}

var domainContexts = map[catalog.DomainID]domainContext{
	catalog.DomainRetail: {
		knowledge:  "retail e-commerce business",
		keyMetrics: []string{"revenue", "profit margin", "customer acquisition", "retention"},
	},
	catalog.DomainRealEstate: {
		knowledge:  "real estate market",
		keyMetrics: []string{"property values", "market trends", "agent performance", "time on market"},
	},
	catalog.DomainRestaurant: {
		knowledge:  "restaurant and food service business",
		keyMetrics: []string{"revenue", "menu performance", "table turnover", "customer satisfaction"},
	},
}

var generalContext = domainContext{
	knowledge:  "general business operations",
	keyMetrics: []string{"revenue", "growth", "customer behavior"},
}

// BuildPrompt turns a structured analysis payload into the instruction
// block sent to the model. The output is deterministic for identical
// inputs: the payload is JSON-encoded (Go sorts map keys) and the template
// embeds no timestamps or randomness, which is what makes response caching
// sound.
func BuildPrompt(payload map[string]any, domain catalog.DomainID, analysisType string) string {
	dc, ok := domainContexts[domain]
	if !ok {
		dc = generalContext
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		// Payloads are plain maps of numbers and strings; this only fires
		// on caller error (channels, funcs). Degrade to the flat format.
		data = []byte(fmt.Sprintf("%v", payload))
	}

	var sb strings.Builder
	sb.WriteString("You are a senior business analyst specializing in ")
	sb.WriteString(dc.knowledge)
	sb.WriteString(".\nProvide consistent, actionable insights based on data analysis.\n\n")
	sb.WriteString("CONSISTENCY REQUIREMENTS:\n")
	sb.WriteString("- Use the same analytical framework for similar data patterns\n")
	sb.WriteString("- Maintain consistent terminology and metrics focus\n")
	sb.WriteString("- Focus on " + strings.Join(dc.keyMetrics, ", ") + " as primary metrics\n\n")
	sb.WriteString("RESPONSE FORMAT:\n")
	sb.WriteString("1. Key Finding (1-2 sentences)\n")
	sb.WriteString("2. Business Impact (quantified when possible)\n")
	sb.WriteString("3. Actionable Recommendations (2-3 specific steps)\n")
	sb.WriteString("4. Risk/Opportunity Assessment\n\n")

	sb.WriteString("TASK: ")
	sb.WriteString(taskInstruction(analysisType))
	sb.WriteString("\n\nDATA CONTEXT:\n")
	sb.Write(data)
	sb.WriteString("\n\nDOMAIN: ")
	sb.WriteString(string(domain))
	sb.WriteString("\nANALYSIS TYPE: ")
	sb.WriteString(analysisType)
	sb.WriteString("\n")
	return sb.String()
}

func taskInstruction(analysisType string) string {
	switch analysisType {
	case "sentiment_analysis":
		return "Analyze customer sentiment and provide actionable feedback insights. " +
			"Identify specific improvement areas and quantify sentiment impact on business metrics."
	case "question_generation":
		return "Generate 3-5 specific, actionable business questions that leverage the available " +
			"data columns and can be answered with data analysis."
	case "data_profiling":
		return "Analyze data quality and provide column mapping recommendations, including a " +
			"quality assessment and missing data impact analysis."
	default:
		return "Generate business insights for the following analysis results. Insights must be " +
			"data-driven, specific to the numbers shown, and focused on growth and optimization opportunities."
	}
}
