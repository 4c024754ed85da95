package hcc

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText performs Unicode normalization, lowercases and collapses
// whitespace so lexicon patterns match regardless of the note's formatting.
func NormalizeText(text string) string {
	normed := norm.NFKC.String(text)
	normed = strings.ToLower(normed)
	normed = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, normed)
	return strings.Join(strings.Fields(normed), " ")
}

// token is a normalized word with its byte range in the normalized text.
type token struct {
	text  string
	start int
	end   int
}

// tokenize splits normalized text into word tokens, stripping surrounding
// punctuation but keeping intra-word characters such as "e11.9" or "3a".
func tokenize(normalized string) []token {
	var out []token
	i := 0
	for i < len(normalized) {
		for i < len(normalized) && normalized[i] == ' ' {
			i++
		}
		if i >= len(normalized) {
			break
		}
		start := i
		for i < len(normalized) && normalized[i] != ' ' {
			i++
		}
		word := strings.TrimFunc(normalized[start:i], func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word == "" {
			continue
		}
		off := strings.Index(normalized[start:i], word)
		out = append(out, token{text: word, start: start + off, end: start + off + len(word)})
	}
	return out
}
