package catalog

import "regexp"

// defaultFamilyPatterns are the baseline per-family column-name patterns.
// Domains may extend or override these, but every domain starts from the
// same families so classifier, mapper, and profiler stay consistent.
var defaultFamilyPatterns = map[Family][]string{
	FamilyDate:     {"date", "time", "created", "purchase", "order"},
	FamilyAmount:   {"amount", "price", "total", "revenue", "cost", "value"},
	FamilyCustomer: {"customer", "client", "user", "buyer", "shopper", "id"},
	FamilyLocation: {"location", "region", "city", "state", "country", "store", "branch"},
	FamilyProduct:  {"product", "item", "sku", "menu", "dish"},
}

// FamilyKeywords returns the baseline keyword list for a family. The profiler
// uses this to detect amount-like, date-like, and customer-like columns when
// extracting business insights.
func FamilyKeywords(f Family) []string {
	src := defaultFamilyPatterns[f]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// compileFamilies turns pattern strings into case-insensitive regexes.
// Invalid patterns are skipped rather than aborting catalog construction;
// the built-in patterns are all plain words so this only matters for
// user-supplied YAML overrides.
func compileFamilies(src map[Family][]string) map[Family][]*regexp.Regexp {
	out := make(map[Family][]*regexp.Regexp, len(src))
	for fam, patterns := range src {
		for _, p := range patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				continue
			}
			out[fam] = append(out[fam], re)
		}
	}
	return out
}
