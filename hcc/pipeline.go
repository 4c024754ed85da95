package hcc

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// RunState tracks a pipeline run through its stages.
type RunState string

const (
	StateReceived    RunState = "received"
	StateExtracting  RunState = "extracting"
	StateMapping     RunState = "mapping"
	StateScoring     RunState = "scoring"
	StateAggregating RunState = "aggregating"
	StateComplete    RunState = "complete"
	StateFailed      RunState = "failed"
)

// Pipeline orchestrates one analysis run: extraction, mapping, scoring,
// impact calculation and aggregation. The lexicon and catalog handles are
// read-only, so a single Pipeline serves any number of concurrent runs.
type Pipeline struct {
	cfg     Config
	lexicon *Lexicon
	catalog *Catalog

	rule *RuleExtractor
	ai   Extractor

	mapper *Mapper
	scorer *Scorer

	// cache is the optional note-hash extraction cache. Only rule-strategy
	// results are stored: a hit must be observably identical to a miss.
	cache  *gocache.Cache
	logger *log.Logger
}

// NewPipeline wires the pipeline components over the given lexicon and
// catalog. The AI strategy is only constructed when an endpoint is
// configured; without one every run uses the rule strategy directly.
func NewPipeline(cfg Config, lexicon *Lexicon, catalog *Catalog, logger *log.Logger) (*Pipeline, error) {
	if lexicon == nil || lexicon.Size() == 0 {
		return nil, ErrLexiconUnavailable
	}
	if catalog == nil || catalog.Size() == 0 {
		return nil, ErrCatalogUnavailable
	}
	cfg.ApplyDefaults()
	p := &Pipeline{
		cfg:     cfg,
		lexicon: lexicon,
		catalog: catalog,
		rule:    NewRuleExtractor(lexicon, cfg.QualifierWindow),
		mapper:  NewMapper(catalog, logger),
		scorer:  NewScorer(catalog),
		logger:  logger,
	}
	if cfg.AIEndpoint != "" {
		timeout := time.Duration(cfg.AITimeoutMs) * time.Millisecond
		p.ai = NewAIExtractor(cfg.AIEndpoint, cfg.AIModel, timeout, nil, lexicon)
	}
	if cfg.CacheTTLSeconds > 0 {
		ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
		p.cache = gocache.New(ttl, 2*ttl)
	}
	return p, nil
}

// Config returns a copy of the pipeline configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Analyze runs the full pipeline for one note and returns the ranked
// recommendation list. It never fails on note content short of structurally
// invalid input: notes yielding no conditions or no eligible mappings
// produce an empty list.
func (p *Pipeline) Analyze(ctx context.Context, note ClinicalNote) ([]Recommendation, error) {
	run := uuid.NewString()[:8]
	p.transition(run, StateReceived)

	if !utf8.ValidString(note.Text) || !utf8.ValidString(note.Context.History) {
		p.transition(run, StateFailed)
		return nil, fmt.Errorf("%w: note text is not valid UTF-8", ErrInvalidInput)
	}
	text := strings.TrimSpace(strings.Join([]string{note.Text, note.Context.History}, " "))

	p.transition(run, StateExtracting)
	conditions, provenance, err := p.extract(ctx, run, text)
	if err != nil {
		p.transition(run, StateFailed)
		return nil, err
	}

	p.transition(run, StateMapping)
	candidates := p.mapper.Map(conditions, note.Context)

	p.transition(run, StateScoring)
	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, ScoredCandidate{
			CodeCandidate: c,
			Score:         p.scorer.Score(c),
			Impact:        Impact(c, p.cfg.ConversionFactor),
		})
	}

	p.transition(run, StateAggregating)
	recs := Aggregate(scored, p.cfg.MinConfidence, provenance)

	p.transition(run, StateComplete)
	p.logf("[run %s] %d conditions, %d candidates, %d recommendations", run, len(conditions), len(candidates), len(recs))
	return recs, nil
}

// extract selects the strategy for this call: AI first when configured,
// with a per-call fallback to the rule strategy on any AI failure. A
// transient outage therefore never disables AI extraction for later runs.
func (p *Pipeline) extract(ctx context.Context, run, text string) ([]ExtractedCondition, string, error) {
	if p.ai != nil {
		conditions, err := p.ai.Extract(ctx, text)
		if err == nil {
			return conditions, p.ai.Name(), nil
		}
		if ctx.Err() != nil {
			// The caller cancelled the run; partial results are discarded.
			return nil, "", ctx.Err()
		}
		p.logf("[run %s] ai extraction failed (%v), falling back to rule strategy", run, err)
	}
	conditions, err := p.ruleExtract(ctx, text)
	if err != nil {
		return nil, "", err
	}
	return conditions, p.rule.Name(), nil
}

// ruleExtract runs the deterministic strategy through the optional cache.
func (p *Pipeline) ruleExtract(ctx context.Context, text string) ([]ExtractedCondition, error) {
	if p.cache == nil {
		return p.rule.Extract(ctx, text)
	}
	key := noteHash(text)
	if cached, ok := p.cache.Get(key); ok {
		if conditions, ok := cached.([]ExtractedCondition); ok {
			return conditions, nil
		}
	}
	conditions, err := p.rule.Extract(ctx, text)
	if err != nil {
		return nil, err
	}
	p.cache.Set(key, conditions, gocache.DefaultExpiration)
	return conditions, nil
}

func noteHash(text string) string {
	sum := sha1.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

func (p *Pipeline) transition(run string, state RunState) {
	p.logf("[run %s] %s", run, state)
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}
