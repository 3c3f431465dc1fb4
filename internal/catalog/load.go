package catalog

import (
	"fmt"
	"log"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// fileCatalog mirrors the YAML override format:
//
//	domains:
//	  retail:
//	    name: Retail & E-commerce
//	    keywords: [product, order, ...]
//	    patterns:
//	      date: [date, time]
//	      amount: [amount, price]
//	    fields:
//	      Date: date
//	      Amount: amount
//	    tiers:
//	      - id: tier1_essential
//	        fields: [Date, Product, Amount]
//	        capabilities: [sales_trends]
type fileCatalog struct {
	Domains map[string]fileDomain `yaml:"domains"`
}

type fileDomain struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description"`
	Keywords    []string            `yaml:"keywords"`
	Patterns    map[string][]string `yaml:"patterns"`
	Fields      map[string]string   `yaml:"fields"`
	Tiers       []fileTier          `yaml:"tiers"`
}

type fileTier struct {
	ID           string   `yaml:"id"`
	Description  string   `yaml:"description"`
	Fields       []string `yaml:"fields"`
	Capabilities []string `yaml:"capabilities"`
}

// LoadFile parses a YAML catalog override. An entry with no tiers or no
// fields in its first tier is rejected so a truncated file cannot silently
// produce a catalog that gates everything off.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to read %s: %w", path, err)
	}

	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("catalog: failed to parse %s: %w", path, err)
	}
	if len(fc.Domains) == 0 {
		return nil, fmt.Errorf("catalog: %s defines no domains", path)
	}

	// YAML maps are unordered, but registration order drives classifier
	// tie-breaks. Keep it stable: built-in domains first in their usual
	// order, then any extra domains alphabetically.
	var profiles []*DomainProfile
	appendDomain := func(key string) error {
		fd, ok := fc.Domains[key]
		if !ok {
			return nil
		}
		p, err := fd.toProfile(DomainID(key))
		if err != nil {
			return err
		}
		profiles = append(profiles, p)
		delete(fc.Domains, key)
		return nil
	}
	for _, known := range []string{string(DomainRetail), string(DomainRealEstate), string(DomainRestaurant)} {
		if err := appendDomain(known); err != nil {
			return nil, err
		}
	}
	for _, key := range sortedKeys(fc.Domains) {
		if err := appendDomain(key); err != nil {
			return nil, err
		}
	}

	return New(profiles...), nil
}

// FromFileOrDefault loads the catalog from path, falling back to the
// built-in catalog when path is empty or the file is missing or malformed.
// The fallback is logged as a warning but never fails: a bad override must
// degrade to defaults, not crash the process.
func FromFileOrDefault(path string) *Catalog {
	if path == "" {
		return Default()
	}
	c, err := LoadFile(path)
	if err != nil {
		log.Printf("catalog: warning: %v; using built-in catalog", err)
		return Default()
	}
	return c
}

func (fd fileDomain) toProfile(id DomainID) (*DomainProfile, error) {
	if len(fd.Tiers) == 0 {
		return nil, fmt.Errorf("catalog: domain %s has no tiers", id)
	}
	if len(fd.Tiers[0].Fields) == 0 {
		return nil, fmt.Errorf("catalog: domain %s tier %s has no fields", id, fd.Tiers[0].ID)
	}

	patterns := fd.Patterns
	if len(patterns) == 0 {
		// Reuse the baseline families when the file omits patterns.
		patterns = map[string][]string{}
		for fam, ps := range defaultFamilyPatterns {
			patterns[string(fam)] = ps
		}
	}
	src := make(map[Family][]string, len(patterns))
	for fam, ps := range patterns {
		src[Family(fam)] = ps
	}

	fieldFamily := make(map[string]Family, len(fd.Fields))
	for field, fam := range fd.Fields {
		fieldFamily[field] = Family(fam)
	}

	tiers := make([]Tier, 0, len(fd.Tiers))
	for _, ft := range fd.Tiers {
		caps := make([]CapabilityID, 0, len(ft.Capabilities))
		for _, c := range ft.Capabilities {
			caps = append(caps, CapabilityID(c))
		}
		tiers = append(tiers, Tier{
			ID:           TierID(ft.ID),
			Description:  ft.Description,
			Fields:       ft.Fields,
			Capabilities: caps,
		})
	}

	name := fd.Name
	if name == "" {
		name = string(id)
	}

	return &DomainProfile{
		ID:          id,
		Name:        name,
		Description: fd.Description,
		Keywords:    fd.Keywords,
		Patterns:    compileFamilies(src),
		FieldFamily: fieldFamily,
		Tiers:       tiers,
	}, nil
}

func sortedKeys(m map[string]fileDomain) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
