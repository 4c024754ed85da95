package hcc

import (
	"fmt"
	"sort"
)

// Catalog is the read-only diagnosis code table, indexed by code and by
// condition family. It is built once at startup and safe for unsynchronized
// concurrent reads from any number of pipeline runs.
type Catalog struct {
	byCode  map[string]DiagnosisCode
	byLabel map[string][]DiagnosisCode
	maxRank map[string]int
}

// NewCatalog builds the catalog indexes. Codes sharing a condition label must
// carry distinct specificity ranks; duplicated codes are rejected.
func NewCatalog(codes []DiagnosisCode) (*Catalog, error) {
	if len(codes) == 0 {
		return nil, ErrCatalogUnavailable
	}
	cat := &Catalog{
		byCode:  make(map[string]DiagnosisCode, len(codes)),
		byLabel: make(map[string][]DiagnosisCode),
		maxRank: make(map[string]int),
	}
	seenRank := make(map[string]map[int]string)
	for _, dc := range codes {
		if dc.Code == "" || dc.ConditionLabel == "" {
			return nil, fmt.Errorf("catalog code %q: code and condition label are required", dc.Code)
		}
		if dc.RelativeWeight < 0 {
			return nil, fmt.Errorf("catalog code %q: negative relative weight", dc.Code)
		}
		if _, dup := cat.byCode[dc.Code]; dup {
			return nil, fmt.Errorf("catalog code %q: duplicate entry", dc.Code)
		}
		ranks := seenRank[dc.ConditionLabel]
		if ranks == nil {
			ranks = make(map[int]string)
			seenRank[dc.ConditionLabel] = ranks
		}
		if other, dup := ranks[dc.SpecificityRank]; dup {
			return nil, fmt.Errorf("catalog code %q: specificity rank %d already used by %q within %q",
				dc.Code, dc.SpecificityRank, other, dc.ConditionLabel)
		}
		ranks[dc.SpecificityRank] = dc.Code
		cat.byCode[dc.Code] = dc
		cat.byLabel[dc.ConditionLabel] = append(cat.byLabel[dc.ConditionLabel], dc)
		if dc.SpecificityRank > cat.maxRank[dc.ConditionLabel] {
			cat.maxRank[dc.ConditionLabel] = dc.SpecificityRank
		}
	}
	for label := range cat.byLabel {
		family := cat.byLabel[label]
		sort.Slice(family, func(i, j int) bool {
			return family[i].SpecificityRank > family[j].SpecificityRank
		})
	}
	return cat, nil
}

// Lookup returns the catalog entry for code.
func (c *Catalog) Lookup(code string) (DiagnosisCode, bool) {
	dc, ok := c.byCode[code]
	return dc, ok
}

// Family returns all codes for a condition label, most specific first.
func (c *Catalog) Family(label string) []DiagnosisCode {
	return c.byLabel[label]
}

// MaxRank returns the highest specificity rank within a condition family.
func (c *Catalog) MaxRank(label string) int {
	return c.maxRank[label]
}

// Size returns the number of catalog entries.
func (c *Catalog) Size() int {
	return len(c.byCode)
}
