package schema

import (
	"github.com/dataglance/dataglance/internal/catalog"
)

// Gate determines which capability tier a mapping achieves and which
// analyses that tier unlocks.
type Gate struct {
	catalog *catalog.Catalog
}

// NewGate creates a capability gate over the given catalog.
func NewGate(c *catalog.Catalog) *Gate {
	return &Gate{catalog: c}
}

// AchievedTier returns the highest tier whose full required-field set is
// present in mappedFields.
//
// Tiers are independent requirement bundles, not nested supersets: a dataset
// that satisfies tier 3's fields but not tier 2's still achieves tier 3.
// This mirrors the policy that each tier names exactly the fields its own
// capabilities need. When no tier qualifies, the lowest tier is returned;
// rejecting a dataset that cannot even support the essential tier is the
// caller's concern, not the gate's.
func (g *Gate) AchievedTier(domain catalog.DomainID, mappedFields map[string]bool) catalog.TierID {
	d, ok := g.catalog.Domain(domain)
	if !ok {
		d = g.catalog.General()
	}

	for i := len(d.Tiers) - 1; i >= 0; i-- {
		if tierSatisfied(d.Tiers[i], mappedFields) {
			return d.Tiers[i].ID
		}
	}
	return d.Tiers[0].ID
}

// Capabilities returns the capability ids unlocked at the given tier. The
// result is a copy; the catalog stays immutable.
func (g *Gate) Capabilities(domain catalog.DomainID, tier catalog.TierID) []catalog.CapabilityID {
	d, ok := g.catalog.Domain(domain)
	if !ok {
		d = g.catalog.General()
	}
	t, ok := d.TierByID(tier)
	if !ok {
		return nil
	}
	out := make([]catalog.CapabilityID, len(t.Capabilities))
	copy(out, t.Capabilities)
	return out
}

func tierSatisfied(t catalog.Tier, mappedFields map[string]bool) bool {
	for _, f := range t.Fields {
		if !mappedFields[f] {
			return false
		}
	}
	return true
}
