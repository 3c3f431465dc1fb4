package engine

import "github.com/dataglance/dataglance/internal/catalog"

// Question is a business question the engine can offer for a domain.
// RequiredFields lists the canonical fields the question needs; a question
// with no required fields is always available.
type Question struct {
	ID             string   `json:"id"`
	Text           string   `json:"text"`
	Desc           string   `json:"desc"`
	WhyItMatters   string   `json:"why_it_matters"`
	RequiredFields []string `json:"required_fields,omitempty"`
}

// PlannedQuestion is a question evaluated against a concrete mapping.
// Unavailable questions stay in the plan with their missing fields named,
// so callers can tell users what data would unlock them.
type PlannedQuestion struct {
	Question
	Available     bool     `json:"available"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

func questionsForDomain(domain catalog.DomainID) []Question {
	switch domain {
	case catalog.DomainRetail:
		return retailQuestions()
	case catalog.DomainRealEstate:
		return realEstateQuestions()
	case catalog.DomainRestaurant:
		return restaurantQuestions()
	default:
		return generalQuestions()
	}
}

func retailQuestions() []Question {
	return []Question{
		{
			ID:             "top_products",
			Text:           "Which products bring in the most money?",
			Desc:           "Shows the top 10 products that generate the highest sales.",
			WhyItMatters:   "Helps you focus on your best-performing products and increase their visibility.",
			RequiredFields: []string{"Product", "Amount"},
		},
		{
			ID:             "bottom_products",
			Text:           "Which products sell the least?",
			Desc:           "Displays the 10 lowest-selling products.",
			WhyItMatters:   "Useful to decide what to discount, stop selling, or promote differently.",
			RequiredFields: []string{"Product", "Amount"},
		},
		{
			ID:             "sales_trend",
			Text:           "How have sales changed month by month?",
			Desc:           "Tracks monthly sales for the past year.",
			WhyItMatters:   "Helps spot growth or decline trends and plan inventory and marketing.",
			RequiredFields: []string{"Date", "Amount"},
		},
		{
			ID:             "seasonality",
			Text:           "Are there seasonal trends in sales?",
			Desc:           "Finds patterns in monthly sales over time.",
			WhyItMatters:   "Helps prepare for high-demand seasons (like holidays or end-of-year spikes).",
			RequiredFields: []string{"Date", "Amount"},
		},
		{
			ID:             "avg_order_value",
			Text:           "How much do customers spend per order?",
			Desc:           "Calculates the average amount spent per customer order.",
			WhyItMatters:   "Useful to measure how valuable each order is and track improvements over time.",
			RequiredFields: []string{"Amount"},
		},
		{
			ID:             "sales_by_location",
			Text:           "Where are most of my sales coming from?",
			Desc:           "Highlights top-performing locations or branches.",
			WhyItMatters:   "Lets you invest more in high-performing areas and fix weak ones.",
			RequiredFields: []string{"Location", "Amount"},
		},
		{
			ID:             "sales_by_channel",
			Text:           "Which sales channels are performing better?",
			Desc:           "Compares sales from different channels like online vs in-store.",
			WhyItMatters:   "Helps you understand where to focus your efforts (website, retail store, etc).",
			RequiredFields: []string{"Channel", "Amount"},
		},
		{
			ID:             "customer_clusters",
			Text:           "How are my customers grouped by spend?",
			Desc:           "Groups customers into spend levels like low, medium, high.",
			WhyItMatters:   "Helps tailor offers for loyal customers or re-engage lower spenders.",
			RequiredFields: []string{"CustomerID", "Amount"},
		},
		{
			ID:             "repeat_rate",
			Text:           "How many customers come back again?",
			Desc:           "Shows the percentage of customers who placed more than one order.",
			WhyItMatters:   "Higher repeat rates show strong brand loyalty. Useful for retention strategies.",
			RequiredFields: []string{"CustomerID"},
		},
		{
			ID:             "basket_analysis",
			Text:           "Which products are bought together?",
			Desc:           "Analyzes popular product combinations (market basket analysis).",
			WhyItMatters:   "Helps with upselling or bundling products in promotions.",
			RequiredFields: []string{"CustomerID", "Product"},
		},
		{
			ID:             "churn_prediction",
			Text:           "Which customers are at risk of leaving?",
			Desc:           "Predicts customers likely to stop buying using historical data.",
			WhyItMatters:   "Helps you take action early (e.g., send offers or follow-ups).",
			RequiredFields: []string{"CustomerID", "Amount", "Churn"},
		},
		{
			ID:             "sales_forecast",
			Text:           "What will sales look like in the next 3 months?",
			Desc:           "Estimates sales using recent trends and patterns.",
			WhyItMatters:   "Useful for stock planning and budgeting.",
			RequiredFields: []string{"Date", "Amount"},
		},
		{
			ID:             "promo_effect",
			Text:           "Do discounts and promo codes help increase sales?",
			Desc:           "Looks at how promotions affect buying behavior.",
			WhyItMatters:   "Tells you if promos are working or just cutting profits.",
			RequiredFields: []string{"Promo", "Amount"},
		},
		{
			ID:             "price_elasticity",
			Text:           "What happens if I raise or lower prices?",
			Desc:           "Estimates how price changes affect sales volume.",
			WhyItMatters:   "Helps you price products smarter to balance profit and demand.",
			RequiredFields: []string{"Product", "Amount", "Price"},
		},
		{
			ID:             "cost_profit",
			Text:           "How much profit am I making on each order?",
			Desc:           "Uses cost and selling price to calculate profit margins.",
			WhyItMatters:   "Vital to know your profitability, not just revenue.",
			RequiredFields: []string{"Amount", "Cost"},
		},
		{
			ID:             "stock_alerts",
			Text:           "Which products are at risk of running out?",
			Desc:           "Flags products with low stock and steady demand.",
			WhyItMatters:   "Helps prevent stockouts and missed sales opportunities.",
			RequiredFields: []string{"Product", "Inventory", "Amount", "Date"},
		},
		{
			ID:             "sentiment_reviews",
			Text:           "How do customers feel about our products?",
			Desc:           "Uses AI to analyze positive or negative reviews.",
			WhyItMatters:   "Gives a quick idea of customer satisfaction and areas of improvement.",
			RequiredFields: []string{"Feedback"},
		},
		{
			ID:             "return_rate",
			Text:           "Which products are returned most often?",
			Desc:           "Tracks return/refund rates for each product or category.",
			WhyItMatters:   "Highlights product issues or misaligned customer expectations.",
			RequiredFields: []string{"Product", "IsReturned"},
		},
		{
			ID:             "lifetime_value",
			Text:           "What is the lifetime value of a customer?",
			Desc:           "Estimates total revenue from a customer over time.",
			WhyItMatters:   "Helps you measure the long-term value of loyal customers.",
			RequiredFields: []string{"CustomerID", "Date", "Amount"},
		},
		{
			ID:             "next_best_action",
			Text:           "What should I offer each customer next?",
			Desc:           "Uses AI to recommend products for each customer.",
			WhyItMatters:   "Improves cross-sell and upsell by predicting customer needs.",
			RequiredFields: []string{"CustomerID", "Product", "Amount"},
		},
	}
}

func realEstateQuestions() []Question {
	return []Question{
		{
			ID:             "top_suburbs",
			Text:           "Top-selling suburbs by total value",
			Desc:           "Shows the highest-grossing real estate suburbs.",
			WhyItMatters:   "Lets agents or investors know where the market is hottest.",
			RequiredFields: []string{"Suburb", "SalePrice"},
		},
		{
			ID:             "sales_trend",
			Text:           "How have property sales changed month by month?",
			Desc:           "Tracks monthly sale volume over time.",
			WhyItMatters:   "Shows whether the market is heating up or cooling down.",
			RequiredFields: []string{"SaleDate", "SalePrice"},
		},
	}
}

func restaurantQuestions() []Question {
	return []Question{
		{
			ID:             "top_products",
			Text:           "Which menu items earn the most?",
			Desc:           "Shows the top 10 dishes by revenue.",
			WhyItMatters:   "Helps you feature and price your best sellers.",
			RequiredFields: []string{"MenuItem", "Amount"},
		},
		{
			ID:             "bottom_products",
			Text:           "Which menu items sell the least?",
			Desc:           "Displays the 10 lowest-earning dishes.",
			WhyItMatters:   "Candidates for removal, repricing, or promotion.",
			RequiredFields: []string{"MenuItem", "Amount"},
		},
		{
			ID:             "sales_trend",
			Text:           "How have sales changed month by month?",
			Desc:           "Tracks monthly revenue over time.",
			WhyItMatters:   "Helps plan staffing and stock around busy periods.",
			RequiredFields: []string{"Date", "Amount"},
		},
		{
			ID:             "avg_order_value",
			Text:           "How much do guests spend per order?",
			Desc:           "Calculates the average check size.",
			WhyItMatters:   "A direct lever for revenue: small increases compound quickly.",
			RequiredFields: []string{"Amount"},
		},
		{
			ID:             "repeat_rate",
			Text:           "How many guests come back again?",
			Desc:           "Shows the percentage of guests with more than one visit.",
			WhyItMatters:   "Repeat visits are the cheapest revenue a restaurant has.",
			RequiredFields: []string{"CustomerID"},
		},
	}
}

func generalQuestions() []Question {
	return []Question{
		{
			ID:             "summary_stats",
			Text:           "What are the headline numbers in this data?",
			Desc:           "Reports totals, averages, and extremes for the main value column.",
			WhyItMatters:   "A quick orientation before deeper analysis.",
			RequiredFields: []string{"Amount"},
		},
		{
			ID:             "sales_trend",
			Text:           "How do the values change over time?",
			Desc:           "Tracks the main value column month by month.",
			WhyItMatters:   "Trends are usually the first thing worth knowing about any dataset.",
			RequiredFields: []string{"Date", "Amount"},
		},
	}
}

// planQuestions evaluates a domain's question bank against the mapping.
// Available questions come first, each unavailable question keeps the list
// of fields it is missing.
func planQuestions(domain catalog.DomainID, mapped map[string]bool) []PlannedQuestion {
	bank := questionsForDomain(domain)
	available := make([]PlannedQuestion, 0, len(bank))
	unavailable := make([]PlannedQuestion, 0)
	for _, q := range bank {
		var missing []string
		for _, f := range q.RequiredFields {
			if !mapped[f] {
				missing = append(missing, f)
			}
		}
		pq := PlannedQuestion{Question: q, Available: len(missing) == 0, MissingFields: missing}
		if pq.Available {
			available = append(available, pq)
		} else {
			unavailable = append(unavailable, pq)
		}
	}
	return append(available, unavailable...)
}
