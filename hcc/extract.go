package hcc

import (
	"context"
	"sort"
)

// Extractor turns free-text documentation into conditions drawn from the
// closed lexicon vocabulary. Implementations must tolerate malformed or
// empty text: an empty input yields an empty result, never an error.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]ExtractedCondition, error)
	Name() string
}

// RuleExtractor is the deterministic pattern-matching strategy. It is always
// available and produces byte-identical output for identical input and
// lexicon.
type RuleExtractor struct {
	lexicon *Lexicon
	// window is the maximum token distance across which a qualifier phrase
	// attaches to the preceding condition match.
	window int
}

// NewRuleExtractor builds the rule strategy over a compiled lexicon.
func NewRuleExtractor(lexicon *Lexicon, qualifierWindow int) *RuleExtractor {
	if qualifierWindow <= 0 {
		qualifierWindow = 12
	}
	return &RuleExtractor{lexicon: lexicon, window: qualifierWindow}
}

// Name identifies the strategy in rationale output.
func (r *RuleExtractor) Name() string { return "pattern-matched" }

type conditionMatch struct {
	entry      LexiconEntry
	span       Span
	endToken   int
	qualifiers map[string]struct{}
}

// Extract scans the normalized text for lexicon patterns. Longer patterns
// win at each position; qualifier phrases attach to the nearest preceding
// condition match within the token window and are dropped otherwise.
func (r *RuleExtractor) Extract(_ context.Context, text string) ([]ExtractedCondition, error) {
	normalized := NormalizeText(text)
	toks := tokenize(normalized)
	if len(toks) == 0 {
		return nil, nil
	}

	var matches []*conditionMatch
	pos := 0
	for pos < len(toks) {
		if cp, ok := matchLongest(toks, pos, r.lexicon.conditions); ok {
			m := &conditionMatch{
				entry:      cp.entry,
				span:       Span{Start: toks[pos].start, End: toks[pos+len(cp.tokens)-1].end},
				endToken:   pos + len(cp.tokens) - 1,
				qualifiers: make(map[string]struct{}),
			}
			for _, tag := range cp.entry.QualifierTags {
				m.qualifiers[tag] = struct{}{}
			}
			matches = append(matches, m)
			pos += len(cp.tokens)
			continue
		}
		if cp, ok := matchLongest(toks, pos, r.lexicon.qualifiers); ok {
			if m := nearestPreceding(matches, pos, r.window); m != nil {
				for _, tag := range cp.entry.QualifierTags {
					m.qualifiers[tag] = struct{}{}
				}
				pos += len(cp.tokens)
				continue
			}
			// Nothing to attach to; step one token so a condition pattern
			// inside the phrase can still match.
		}
		pos++
	}
	return mergeMatches(matches), nil
}

// matchLongest tries the compiled patterns at pos. Patterns are stored
// longest-first, so the first hit is the most specific one.
func matchLongest(toks []token, pos int, patterns []compiledPattern) (compiledPattern, bool) {
	for _, cp := range patterns {
		if pos+len(cp.tokens) > len(toks) {
			continue
		}
		hit := true
		for i, word := range cp.tokens {
			if toks[pos+i].text != word {
				hit = false
				break
			}
		}
		if hit {
			return cp, true
		}
	}
	return compiledPattern{}, false
}

func nearestPreceding(matches []*conditionMatch, pos, window int) *conditionMatch {
	if len(matches) == 0 {
		return nil
	}
	last := matches[len(matches)-1]
	if pos-last.endToken > window {
		return nil
	}
	return last
}

// mergeMatches collapses repeated mentions of the same condition into one
// ExtractedCondition, keeping the strongest confidence, the earliest span
// and the union of qualifiers.
func mergeMatches(matches []*conditionMatch) []ExtractedCondition {
	byLabel := make(map[string]*ExtractedCondition)
	var order []string
	for _, m := range matches {
		label := m.entry.ConditionLabel
		ec, ok := byLabel[label]
		if !ok {
			span := m.span
			byLabel[label] = &ExtractedCondition{
				Label:      label,
				Confidence: m.entry.BaseConfidence,
				Span:       &span,
				Evidence:   m.entry.Pattern,
			}
			ec = byLabel[label]
			order = append(order, label)
		} else if m.entry.BaseConfidence > ec.Confidence {
			ec.Confidence = m.entry.BaseConfidence
			ec.Evidence = m.entry.Pattern
		}
		for tag := range m.qualifiers {
			ec.Qualifiers = appendUnique(ec.Qualifiers, tag)
		}
	}
	out := make([]ExtractedCondition, 0, len(order))
	for _, label := range order {
		ec := byLabel[label]
		sort.Strings(ec.Qualifiers)
		out = append(out, *ec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
