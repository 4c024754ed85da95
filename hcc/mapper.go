package hcc

import "log"

// Mapper turns extracted conditions into code candidates against the
// catalog. Non-eligible codes never leave this boundary, so everything the
// scorer sees is category eligible.
type Mapper struct {
	catalog *Catalog
	logger  *log.Logger
}

// NewMapper builds a mapper over the given catalog.
func NewMapper(catalog *Catalog, logger *log.Logger) *Mapper {
	return &Mapper{catalog: catalog, logger: logger}
}

// Map produces candidates for one run. Known codes are authoritative for
// current state: each resolvable eligible known code becomes a CURRENT
// candidate, and each extracted condition yields its most specific eligible
// code as an UPGRADE (when a less specific code is already current for the
// same family) or a MISSED candidate (when nothing is coded for it yet).
// Conditions with no eligible catalog code contribute nothing; that is
// expected, not an error.
func (m *Mapper) Map(conditions []ExtractedCondition, pctx PatientContext) []CodeCandidate {
	extractedByLabel := make(map[string]ExtractedCondition, len(conditions))
	for _, c := range conditions {
		extractedByLabel[c.Label] = c
	}

	var out []CodeCandidate
	currentByLabel := make(map[string]DiagnosisCode)
	for _, code := range pctx.KnownCodes {
		dc, ok := m.catalog.Lookup(code)
		if !ok {
			m.logf("known code %q not in catalog, ignoring", code)
			continue
		}
		if best, seen := currentByLabel[dc.ConditionLabel]; !seen || dc.SpecificityRank > best.SpecificityRank {
			currentByLabel[dc.ConditionLabel] = dc
		}
		if !dc.CategoryEligible {
			m.logf("known code %q is not category eligible, kept for current-state only", code)
			continue
		}
		linked, ok := extractedByLabel[dc.ConditionLabel]
		if !ok {
			// The note did not mention it, but the coded state stands on
			// its own.
			linked = ExtractedCondition{Label: dc.ConditionLabel, Confidence: 1}
		}
		out = append(out, CodeCandidate{Code: dc, Condition: linked, Role: RoleCurrent})
	}

	for _, cond := range conditions {
		family := m.catalog.Family(cond.Label)
		var best *DiagnosisCode
		for i := range family {
			if family[i].CategoryEligible {
				best = &family[i]
				break
			}
		}
		if best == nil {
			m.logf("no eligible catalog code for condition %q, dropping", cond.Label)
			continue
		}
		current, hasCurrent := currentByLabel[cond.Label]
		switch {
		case !hasCurrent:
			out = append(out, CodeCandidate{Code: *best, Condition: cond, Role: RoleMissed})
		case current.SpecificityRank < best.SpecificityRank:
			cur := current
			out = append(out, CodeCandidate{Code: *best, Condition: cond, Role: RoleUpgrade, Current: &cur})
		default:
			// Already coded at (or beyond) the best eligible specificity.
		}
	}
	return out
}

func (m *Mapper) logf(format string, args ...any) {
	if m.logger != nil {
		m.logger.Printf(format, args...)
	}
}
