// Package catalog defines the canonical schema catalog: the business domains
// the system understands, the canonical fields each domain expects, and the
// capability tiers those fields unlock. The catalog is built once at start-up,
// either from the embedded defaults or from a YAML override file, and is
// treated as read-only afterwards.
//
// The keyword families defined here are the single source of truth for
// column-name matching. The domain classifier, the column mapper, and the
// data profiler all consume the same families so that "amount-like column"
// means the same thing everywhere.
package catalog

import "regexp"

// DomainID identifies a business vertical.
type DomainID string

// Built-in domains. DomainGeneral is the sentinel returned when no domain
// matches a dataset; it has no keyword patterns and a single minimal tier.
const (
	DomainRetail     DomainID = "retail"
	DomainRealEstate DomainID = "real_estate"
	DomainRestaurant DomainID = "restaurant"
	DomainGeneral    DomainID = "general"
)

// TierID identifies a capability tier within a domain. Tiers are ordered
// essential -> enhanced -> advanced.
type TierID string

const (
	TierEssential TierID = "tier1_essential"
	TierEnhanced  TierID = "tier2_enhanced"
	TierAdvanced  TierID = "tier3_advanced"
)

// CapabilityID names an analysis capability unlocked by a tier.
type CapabilityID string

// Family names a keyword family used for column-name matching.
type Family string

const (
	FamilyDate     Family = "date"
	FamilyAmount   Family = "amount"
	FamilyCustomer Family = "customer"
	FamilyLocation Family = "location"
	FamilyProduct  Family = "product"
)

// CanonicalField is a standardized business concept that raw dataset columns
// are mapped onto. Identity is (Domain, Name). Family is the keyword family
// used to match raw column names; an empty family means fuzzy matching only.
type CanonicalField struct {
	Name   string
	Domain DomainID
	Tier   TierID
	Family Family
}

// Tier is an ordered bundle of canonical field names whose presence unlocks
// a set of capabilities. Tier requirements are evaluated independently:
// achieving a tier requires all of that tier's fields regardless of lower
// tiers.
type Tier struct {
	ID           TierID
	Description  string
	Fields       []string
	Capabilities []CapabilityID
}

// DomainProfile describes one business vertical: its generic keywords, its
// per-family column-name patterns, and its capability tiers.
type DomainProfile struct {
	ID          DomainID
	Name        string
	Description string

	// Keywords are generic terms matched as substrings of the concatenated
	// column names during domain classification.
	Keywords []string

	// Patterns holds the per-family regex patterns for this domain. The
	// classifier counts a pattern as matched when at least one column name
	// satisfies it; the mapper uses the same patterns to pick columns.
	Patterns map[Family][]*regexp.Regexp

	// FieldFamily assigns each canonical field name to the keyword family
	// used to locate it. Fields without an entry fall back to fuzzy matching.
	FieldFamily map[string]Family

	// Tiers in ascending order (essential first).
	Tiers []Tier
}

// TotalPatterns is the classification denominator: generic keywords plus all
// per-family patterns.
func (d *DomainProfile) TotalPatterns() int {
	n := len(d.Keywords)
	for _, ps := range d.Patterns {
		n += len(ps)
	}
	return n
}

// Fields returns the domain's canonical fields in canonical iteration order:
// tier order, then declaration order within each tier.
func (d *DomainProfile) Fields() []CanonicalField {
	var out []CanonicalField
	for _, t := range d.Tiers {
		for _, name := range t.Fields {
			out = append(out, CanonicalField{
				Name:   name,
				Domain: d.ID,
				Tier:   t.ID,
				Family: d.FieldFamily[name],
			})
		}
	}
	return out
}

// TierByID returns the tier with the given id.
func (d *DomainProfile) TierByID(id TierID) (Tier, bool) {
	for _, t := range d.Tiers {
		if t.ID == id {
			return t, true
		}
	}
	return Tier{}, false
}
