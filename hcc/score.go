package hcc

import "math"

// Confidence score weighting. Extraction certainty dominates, code
// specificity and documentation completeness refine it.
const (
	extractionWeight    = 0.5
	specificityWeight   = 0.3
	documentationWeight = 0.2
	// qualifierIncrement is the documentation-completeness contribution of
	// one supporting qualifier, capped at 1.0 overall.
	qualifierIncrement = 0.25
)

// Scorer computes the 0-100 confidence score for candidates. It only needs
// the catalog to normalize specificity against the condition family.
type Scorer struct {
	catalog *Catalog
}

// NewScorer builds a scorer over the catalog.
func NewScorer(catalog *Catalog) *Scorer {
	return &Scorer{catalog: catalog}
}

// Score combines extraction confidence, specificity and documentation
// completeness. The result is always in [0,100]; out-of-range intermediate
// values are clamped.
func (s *Scorer) Score(c CodeCandidate) int {
	extraction := clamp01(c.Condition.Confidence)
	specificity := s.specificityFactor(c.Code)
	documentation := clamp01(float64(len(c.Condition.Qualifiers)) * qualifierIncrement)

	raw := 100 * (extractionWeight*extraction + specificityWeight*specificity + documentationWeight*documentation)
	score := int(math.Round(raw))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func (s *Scorer) specificityFactor(dc DiagnosisCode) float64 {
	max := s.catalog.MaxRank(dc.ConditionLabel)
	if max <= 0 {
		return 0
	}
	return clamp01(float64(dc.SpecificityRank) / float64(max))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
