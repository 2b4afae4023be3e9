package pipeline

import (
	"context"
	"fmt"

	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/npillmayer/ccgsrl/ccg/chart"
	"github.com/npillmayer/ccgsrl/ccg/model"
	"github.com/npillmayer/ccgsrl/ccg/nbest"
	"github.com/npillmayer/ccgsrl/ccg/packed"
	"github.com/npillmayer/ccgsrl/constraint"
	"github.com/npillmayer/ccgsrl/reparse"
	"github.com/npillmayer/ccgsrl/supertag"
)

// Parser parses single sentences. A parser is read-only after construction
// and may be shared between goroutines, provided its supertag source is safe
// for concurrent use.
type Parser struct {
	source  supertag.Source
	grammar *ccg.Grammar
	roots   *ccg.RootSet
	scorer  model.Scorer
	conf    ccgsrl.Config
}

// Option configures a parser.
type Option func(*Parser)

// WithScorer sets the scoring model. The default is the supertag-factored model.
func WithScorer(scorer model.Scorer) Option {
	return func(p *Parser) {
		p.scorer = scorer
	}
}

// WithGrammar sets the grammar. The default is derived from the configuration.
func WithGrammar(g *ccg.Grammar) Option {
	return func(p *Parser) {
		p.grammar = g
	}
}

// WithCache memoizes the supertag source of the parser, using a cache of
// conf.SupertagCacheBytes.
func WithCache() Option {
	return func(p *Parser) {
		p.source = supertag.NewCache(p.source, p.conf.SupertagCacheBytes)
	}
}

// NewParser creates a parser for a supertag source and a configuration.
func NewParser(source supertag.Source, conf ccgsrl.Config, opts ...Option) (*Parser, error) {
	if source == nil {
		return nil, fmt.Errorf("parser needs a supertag source")
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	p := &Parser{
		source: source,
		conf:   conf,
		scorer: model.SupertagFactoredFor(conf),
	}
	for _, opt := range opts {
		opt(p)
	}
	var err error
	if p.grammar == nil {
		if p.grammar, err = ccg.GrammarFor(conf); err != nil {
			return nil, err
		}
	}
	if p.roots, err = ccg.NewRootSet(conf.RootCategories); err != nil {
		return nil, err
	}
	return p, nil
}

// Config returns the configuration of p.
func (p *Parser) Config() ccgsrl.Config {
	return p.conf
}

// Scorer returns the scoring model of p.
func (p *Parser) Scorer() model.Scorer {
	return p.scorer
}

// Result is the outcome of parsing a sentence. If Err is set, Forest and
// NBest are nil.
type Result struct {
	Index    int // position in a batch
	Words    []string
	Forest   *packed.Forest
	NBest    *nbest.NBestList
	Beam     float64 // β of the successful attempt
	Attempts int
	Err      error
}

// OK is true for successfully parsed sentences.
func (r *Result) OK() bool {
	return r.Err == nil
}

// Reparse selects the best parse of r under constraints cs. For a failed
// sentence the error wraps ccgsrl.ErrNoParseAvailable.
func (r *Result) Reparse(cs *constraint.Set) (*nbest.Parse, error) {
	if r.Err != nil {
		return nil, fmt.Errorf("sentence %d: %w (%v)", r.Index, ccgsrl.ErrNoParseAvailable, r.Err)
	}
	return reparse.Reparse(r.NBest, cs)
}

// Parse parses a sentence. It returns an error wrapping ccgsrl.ErrParseFailure
// if the chart exceeds its budget at every beam setting, or if no derivation
// spans the sentence, and one wrapping ccgsrl.ErrNoRootDerivation if no
// derivation has a permitted root category. Errors of the supertag source are
// passed through.
func (p *Parser) Parse(ctx context.Context, words []string) (*Result, error) {
	res := &Result{Words: words}
	tags, err := p.source.Tag(words)
	if err != nil {
		return res, err
	}
	beta := p.conf.BeamRatio
	for {
		if err = ctx.Err(); err != nil {
			return res, err
		}
		res.Attempts++
		res.Beam = beta
		pruned := supertag.Prune(tags, beta, p.conf.MaxTagsPerWord)
		tracer().Debugf("attempt %d with β=%g, %d supertags", res.Attempts, beta, supertag.Count(pruned))
		outcome, err := chart.Build(words, pruned, p.grammar, p.conf)
		if err != nil {
			return res, err
		}
		switch outcome.Status {
		case chart.Success:
			return p.extract(res, outcome.Chart)
		case chart.NoDerivation:
			return res, fmt.Errorf("%w: no derivation spans the sentence", ccgsrl.ErrParseFailure)
		}
		if beta*2 >= p.conf.BeamCutoff {
			return res, fmt.Errorf("%w: chart too large for β=%g", ccgsrl.ErrParseFailure, beta)
		}
		beta *= 2
	}
}

func (p *Parser) extract(res *Result, ch *chart.Chart) (*Result, error) {
	f, err := packed.Compact(ch, p.roots)
	if err != nil {
		return res, err
	}
	res.Forest = f
	res.NBest = nbest.Extract(f, p.scorer, p.conf.NBest)
	tracer().Debugf("%d parses for sentence of %d words", res.NBest.Len(), len(res.Words))
	return res, nil
}
