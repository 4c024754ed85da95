package hcc

import (
	"fmt"
	"sort"
	"strings"
)

// Aggregate merges scored candidates into the final ranked recommendation
// list. CURRENT candidates and candidates below the confidence threshold are
// dropped, duplicates by suggested code are collapsed onto the stronger
// instance (rationale merged), and the order is fully deterministic: annual
// impact descending, then confidence descending, then code ascending.
func Aggregate(scored []ScoredCandidate, minConfidence int, provenance string) []Recommendation {
	best := make(map[string]ScoredCandidate)
	rationale := make(map[string][]string)
	for _, sc := range scored {
		if sc.Role == RoleCurrent {
			continue
		}
		if sc.Score < minConfidence {
			continue
		}
		code := sc.Code.Code
		lines := buildRationale(sc, provenance)
		prev, seen := best[code]
		if !seen || better(sc, prev) {
			best[code] = sc
		}
		for _, line := range lines {
			rationale[code] = appendUnique(rationale[code], line)
		}
	}

	out := make([]Recommendation, 0, len(best))
	for code, sc := range best {
		rec := Recommendation{
			Code:         sc.Code.Code,
			Description:  sc.Code.Description,
			Role:         sc.Role,
			Score:        sc.Score,
			AnnualImpact: sc.Impact,
			Rationale:    rationale[code],
		}
		if sc.Current != nil {
			rec.CurrentCode = sc.Current.Code
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AnnualImpact != out[j].AnnualImpact {
			return out[i].AnnualImpact > out[j].AnnualImpact
		}
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// better decides which of two same-code candidates survives deduplication:
// higher confidence wins, ties prefer the higher relative weight and then
// the lexicographically smaller code.
func better(a, b ScoredCandidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Code.RelativeWeight != b.Code.RelativeWeight {
		return a.Code.RelativeWeight > b.Code.RelativeWeight
	}
	return a.Code.Code < b.Code.Code
}

// buildRationale produces the ordered human-readable evidence list for a
// candidate: what was documented, which qualifiers support it, what it maps
// to, what it replaces, and which strategy extracted it.
func buildRationale(sc ScoredCandidate, provenance string) []string {
	var lines []string
	if sc.Condition.Evidence != "" {
		lines = append(lines, fmt.Sprintf("documented as %q", sc.Condition.Evidence))
	}
	if len(sc.Condition.Qualifiers) > 0 {
		lines = append(lines, "supporting qualifiers: "+strings.Join(sc.Condition.Qualifiers, ", "))
	}
	if sc.Code.CategoryCode != "" {
		lines = append(lines, fmt.Sprintf("maps to %s (%s) with relative weight %.3f",
			sc.Code.CategoryCode, sc.Code.CategoryDesc, sc.Code.RelativeWeight))
	} else {
		lines = append(lines, fmt.Sprintf("relative weight %.3f", sc.Code.RelativeWeight))
	}
	if sc.Current != nil {
		lines = append(lines, fmt.Sprintf("replaces %s (relative weight %.3f)",
			sc.Current.Code, sc.Current.RelativeWeight))
	}
	if provenance != "" {
		lines = append(lines, "extraction: "+provenance)
	}
	return lines
}
