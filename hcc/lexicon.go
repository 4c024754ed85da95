package hcc

import (
	"fmt"
	"sort"
	"strings"
)

// LexiconEntry is one row of the condition lexicon. Entries with a
// ConditionLabel are condition patterns; entries with only QualifierTags are
// qualifier patterns that attach to the nearest preceding condition match.
type LexiconEntry struct {
	Pattern        string   `json:"pattern"`
	ConditionLabel string   `json:"conditionLabel,omitempty"`
	QualifierTags  []string `json:"qualifierTags,omitempty"`
	BaseConfidence float64  `json:"baseConfidence,omitempty"`
}

type compiledPattern struct {
	tokens []string
	entry  LexiconEntry
}

// Lexicon is the compiled, read-only pattern table. It is built once and is
// safe for unsynchronized concurrent reads.
type Lexicon struct {
	conditions []compiledPattern
	qualifiers []compiledPattern
	labels     map[string]struct{}
}

// NewLexicon compiles raw entries into a matchable lexicon. Entries with an
// empty pattern or with neither a condition label nor qualifier tags are
// rejected.
func NewLexicon(entries []LexiconEntry) (*Lexicon, error) {
	if len(entries) == 0 {
		return nil, ErrLexiconUnavailable
	}
	lex := &Lexicon{labels: make(map[string]struct{})}
	for i, entry := range entries {
		toks := tokenize(NormalizeText(entry.Pattern))
		if len(toks) == 0 {
			return nil, fmt.Errorf("lexicon entry %d: empty pattern", i)
		}
		if entry.ConditionLabel == "" && len(entry.QualifierTags) == 0 {
			return nil, fmt.Errorf("lexicon entry %d (%q): no condition label or qualifier tags", i, entry.Pattern)
		}
		words := make([]string, len(toks))
		for j, t := range toks {
			words[j] = t.text
		}
		entry.Pattern = strings.Join(words, " ")
		if entry.BaseConfidence <= 0 {
			entry.BaseConfidence = defaultPatternConfidence(len(words))
		}
		if entry.BaseConfidence > 1 {
			entry.BaseConfidence = 1
		}
		cp := compiledPattern{tokens: words, entry: entry}
		if entry.ConditionLabel != "" {
			lex.conditions = append(lex.conditions, cp)
			lex.labels[entry.ConditionLabel] = struct{}{}
		} else {
			lex.qualifiers = append(lex.qualifiers, cp)
		}
	}
	// Longer patterns match first so "type 2 diabetes mellitus" wins over a
	// bare "diabetes" keyword at the same position.
	sortPatterns(lex.conditions)
	sortPatterns(lex.qualifiers)
	return lex, nil
}

func sortPatterns(ps []compiledPattern) {
	sort.SliceStable(ps, func(i, j int) bool {
		if len(ps[i].tokens) != len(ps[j].tokens) {
			return len(ps[i].tokens) > len(ps[j].tokens)
		}
		return ps[i].entry.Pattern < ps[j].entry.Pattern
	})
}

// defaultPatternConfidence reflects pattern specificity: an exact multi-word
// phrase is stronger evidence than a single keyword.
func defaultPatternConfidence(arity int) float64 {
	if arity >= 2 {
		return 0.9
	}
	return 0.7
}

// Contains reports whether label is part of the closed condition vocabulary.
func (l *Lexicon) Contains(label string) bool {
	_, ok := l.labels[label]
	return ok
}

// Labels returns the closed condition vocabulary in sorted order.
func (l *Lexicon) Labels() []string {
	out := make([]string, 0, len(l.labels))
	for label := range l.labels {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// Size returns the number of compiled patterns.
func (l *Lexicon) Size() int {
	return len(l.conditions) + len(l.qualifiers)
}
