package catalog

// Catalog is the read-only registry of domain profiles. Registration order
// matters: the classifier breaks score ties in favor of the earlier domain.
type Catalog struct {
	domains []*DomainProfile
	byID    map[DomainID]*DomainProfile
}

// New builds a catalog from the given profiles, preserving order. The general
// sentinel domain is always appended if not already present.
func New(profiles ...*DomainProfile) *Catalog {
	c := &Catalog{byID: make(map[DomainID]*DomainProfile)}
	for _, p := range profiles {
		if _, dup := c.byID[p.ID]; dup {
			continue
		}
		c.domains = append(c.domains, p)
		c.byID[p.ID] = p
	}
	if _, ok := c.byID[DomainGeneral]; !ok {
		g := generalProfile()
		c.domains = append(c.domains, g)
		c.byID[g.ID] = g
	}
	return c
}

// Default returns the built-in catalog covering retail, real estate, and
// restaurant datasets.
func Default() *Catalog {
	return New(retailProfile(), realEstateProfile(), restaurantProfile())
}

// Domains returns all profiles in registration order, excluding the general
// sentinel (it never participates in classification scoring).
func (c *Catalog) Domains() []*DomainProfile {
	out := make([]*DomainProfile, 0, len(c.domains))
	for _, d := range c.domains {
		if d.ID == DomainGeneral {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Domain looks up a profile by id.
func (c *Catalog) Domain(id DomainID) (*DomainProfile, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// General returns the sentinel profile used when no domain matches.
func (c *Catalog) General() *DomainProfile {
	return c.byID[DomainGeneral]
}

func retailProfile() *DomainProfile {
	return &DomainProfile{
		ID:          DomainRetail,
		Name:        "Retail & E-commerce",
		Description: "Sales, inventory, customer analytics for retail businesses",
		Keywords: []string{
			"product", "item", "sku", "order", "customer", "amount",
			"price", "quantity", "sale", "purchase",
		},
		Patterns: compileFamilies(defaultFamilyPatterns),
		FieldFamily: map[string]Family{
			"Date":       FamilyDate,
			"Product":    FamilyProduct,
			"Amount":     FamilyAmount,
			"CustomerID": FamilyCustomer,
			"Location":   FamilyLocation,
		},
		Tiers: []Tier{
			{
				ID:          TierEssential,
				Description: "Basic sales analysis",
				Fields:      []string{"Date", "Product", "Amount"},
				Capabilities: []CapabilityID{
					"sales_trends", "top_products", "revenue_analysis",
				},
			},
			{
				ID:          TierEnhanced,
				Description: "Customer and location insights",
				Fields:      []string{"CustomerID", "Location", "Channel"},
				Capabilities: []CapabilityID{
					"customer_analysis", "location_performance", "channel_optimization",
				},
			},
			{
				ID:          TierAdvanced,
				Description: "Comprehensive business intelligence",
				Fields: []string{
					"OrderID", "StoreID", "Gender", "Age",
					"Cost", "Inventory", "IsReturned", "Feedback",
				},
				Capabilities: []CapabilityID{
					"profitability", "inventory_management",
					"sentiment_analysis", "churn_prediction",
				},
			},
		},
	}
}

func realEstateProfile() *DomainProfile {
	patterns := map[Family][]string{
		FamilyDate:     {"saledate", "date", "listed", "sold"},
		FamilyAmount:   {"price", "value", "amount", "cost"},
		FamilyCustomer: {"agent", "buyer", "seller", "client"},
		FamilyLocation: {"suburb", "location", "address", "city", "region"},
		FamilyProduct:  {"property", "propertytype"},
	}
	return &DomainProfile{
		ID:          DomainRealEstate,
		Name:        "Real Estate",
		Description: "Property sales, market trends, agent performance",
		Keywords: []string{
			"property", "house", "apartment", "sale", "price",
			"agent", "suburb", "bedroom", "bathroom",
		},
		Patterns: compileFamilies(patterns),
		FieldFamily: map[string]Family{
			"SaleDate":  FamilyDate,
			"SalePrice": FamilyAmount,
			"Suburb":    FamilyLocation,
			"Agent":     FamilyCustomer,
			"BuyerID":   FamilyCustomer,
		},
		Tiers: []Tier{
			{
				ID:          TierEssential,
				Description: "Basic property analysis",
				Fields:      []string{"SaleDate", "Suburb", "SalePrice"},
				Capabilities: []CapabilityID{
					"price_trends", "top_suburbs", "sales_volume",
				},
			},
			{
				ID:          TierEnhanced,
				Description: "Agent and property type insights",
				Fields:      []string{"Agent", "PropertyType"},
				Capabilities: []CapabilityID{
					"agent_performance", "property_type_analysis",
				},
			},
			{
				ID:          TierAdvanced,
				Description: "Detailed property intelligence",
				Fields: []string{
					"Bedrooms", "Bathrooms", "LandSize", "YearBuilt", "BuyerID",
				},
				Capabilities: []CapabilityID{
					"market_segmentation", "investment_analysis", "buyer_behavior",
				},
			},
		},
	}
}

func restaurantProfile() *DomainProfile {
	patterns := map[Family][]string{
		FamilyDate:     {"date", "time", "order", "service"},
		FamilyAmount:   {"amount", "total", "bill", "price", "cost"},
		FamilyCustomer: {"customer", "guest", "party"},
		FamilyLocation: {"table", "section", "area", "zone"},
		FamilyProduct:  {"menu", "dish", "item", "food"},
	}
	return &DomainProfile{
		ID:          DomainRestaurant,
		Name:        "Restaurant & Food Service",
		Description: "Menu performance, customer satisfaction, operational metrics",
		Keywords: []string{
			"menu", "dish", "food", "order", "customer",
			"table", "waiter", "kitchen",
		},
		Patterns: compileFamilies(patterns),
		FieldFamily: map[string]Family{
			"Date":       FamilyDate,
			"MenuItem":   FamilyProduct,
			"Amount":     FamilyAmount,
			"CustomerID": FamilyCustomer,
			"TableID":    FamilyLocation,
		},
		Tiers: []Tier{
			{
				ID:          TierEssential,
				Description: "Basic sales analysis",
				Fields:      []string{"Date", "MenuItem", "Amount"},
				Capabilities: []CapabilityID{
					"menu_performance", "sales_trends", "revenue_analysis",
				},
			},
			{
				ID:          TierEnhanced,
				Description: "Customer and timing insights",
				Fields:      []string{"CustomerID", "TimeSlot", "TableID"},
				Capabilities: []CapabilityID{
					"customer_behavior", "peak_hours", "table_utilization",
				},
			},
			{
				ID:          TierAdvanced,
				Description: "Comprehensive restaurant intelligence",
				Fields: []string{
					"OrderID", "Category", "Cost", "Rating", "WaitTime",
				},
				Capabilities: []CapabilityID{
					"profitability", "customer_satisfaction", "operational_efficiency",
				},
			},
		},
	}
}

// generalProfile is the sentinel for datasets that match no registered
// domain. It still maps the universal fields so basic analyses stay
// available, but carries no classification keywords.
func generalProfile() *DomainProfile {
	return &DomainProfile{
		ID:          DomainGeneral,
		Name:        "General Business",
		Description: "Fallback profile for unrecognized datasets",
		Patterns:    compileFamilies(defaultFamilyPatterns),
		FieldFamily: map[string]Family{
			"Date":       FamilyDate,
			"Amount":     FamilyAmount,
			"CustomerID": FamilyCustomer,
		},
		Tiers: []Tier{
			{
				ID:          TierEssential,
				Description: "Basic overview",
				Fields:      []string{"Date", "Amount"},
				Capabilities: []CapabilityID{
					"summary_stats", "trend_analysis",
				},
			},
		},
	}
}
