package hcc

import "errors"

// Structural failures surfaced to the caller. Everything else the pipeline
// recovers from locally: an unreachable AI endpoint falls back to the rule
// strategy, and notes that yield no conditions or no eligible mappings
// produce an empty recommendation list, not an error.
var (
	// ErrInvalidInput is returned when the note text is not processable at
	// all (e.g. not valid UTF-8). No pipeline stage runs in that case.
	ErrInvalidInput = errors.New("hcc: invalid input")
	// ErrCatalogUnavailable is returned when the pipeline has no code
	// catalog to map against.
	ErrCatalogUnavailable = errors.New("hcc: code catalog unavailable")
	// ErrLexiconUnavailable is returned when the pipeline has no condition
	// lexicon to extract with.
	ErrLexiconUnavailable = errors.New("hcc: condition lexicon unavailable")
)

// errAIUnavailable signals that the AI strategy could not produce a usable
// result for this call. It never escapes the pipeline; the run falls back
// to the rule strategy instead.
var errAIUnavailable = errors.New("hcc: ai extraction unavailable")
