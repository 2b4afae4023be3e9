package chart

import (
	"fmt"
	"strings"

	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/npillmayer/ccgsrl/supertag"
	"github.com/npillmayer/schuko/gconf"
)

// Status is the kind of outcome of chart construction.
type Status int

// Chart construction either succeeds, exceeds the size budget or ends without
// an entry spanning the whole sentence.
const (
	Success Status = iota
	TooLarge
	NoDerivation
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case TooLarge:
		return "too large"
	case NoDerivation:
		return "no derivation"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Outcome is the result of Build. Chart is set for Success and NoDerivation,
// and nil for TooLarge.
type Outcome struct {
	Status Status
	Chart  *Chart
}

// Build fills a CKY chart for a sentence. tags holds, for every word, its
// beam-pruned supertags, best first. The size of the chart is limited by
// conf.MaxChartSize; the budget is checked after every insertion.
//
// An error is returned for malformed input only, i.e. if tags does not match
// the words of the sentence.
func Build(words []string, tags [][]supertag.Tagged, g *ccg.Grammar, conf ccgsrl.Config) (Outcome, error) {
	if len(words) == 0 {
		return Outcome{}, fmt.Errorf("cannot build chart for empty sentence")
	}
	if len(tags) != len(words) {
		return Outcome{}, fmt.Errorf("have %d supertag lists for %d words", len(tags), len(words))
	}
	b := &builder{
		chart:   newChart(words),
		grammar: g,
		budget:  conf.MaxChartSize,
	}
	tracer().Debugf("building chart for %d words, budget %d", len(words), b.budget)
	for i, wordTags := range tags {
		if len(wordTags) == 0 {
			return Outcome{}, fmt.Errorf("no supertags for word #%d %q", i, words[i])
		}
		if !b.lexical(i, wordTags) {
			return b.overflow(), nil
		}
	}
	n := len(words)
	for length := 2; length <= n; length++ {
		for start := 0; start+length <= n; start++ {
			if !b.fill(ccgsrl.Span{start, start + length}) {
				return b.overflow(), nil
			}
		}
	}
	ch := b.chart
	tracer().Infof("chart has %d keys, %d entries", ch.KeyCount(), ch.Size())
	if len(ch.FullSpan()) == 0 {
		return Outcome{Status: NoDerivation, Chart: ch}, nil
	}
	return Outcome{Status: Success, Chart: ch}, nil
}

type builder struct {
	chart   *Chart
	grammar *ccg.Grammar
	budget  int
}

func (b *builder) exceeded() bool {
	return b.budget > 0 && b.chart.entries > b.budget
}

func (b *builder) overflow() Outcome {
	msg := fmt.Sprintf("chart size %d exceeds budget of %d entries", b.chart.entries, b.budget)
	tracer().Infof("%s", msg)
	if gconf.GetBool("panic-on-chart-overflow") {
		panic(`Chart overflow.

Configuration flag panic-on-chart-overflow is set to true. It is aimed at helping
to debug a grammar and to do a post-mortem of spurious ambiguity. If this is a
production environment and you did not expect this to panic, please unset
panic-on-chart-overflow to its default (false).

` + msg)
	}
	return Outcome{Status: TooLarge}
}

// lexical fills the cell of word i from its supertags, then applies unary rules.
func (b *builder) lexical(i int, tags []supertag.Tagged) bool {
	span := ccgsrl.SpanOf(i, i)
	for _, t := range tags {
		st := ccg.LexicalState(i, t.Category)
		b.chart.add(span, t.Category, ccg.Lexical, st, Lexical{Word: i, LogProb: t.LogProb})
		if b.exceeded() {
			return false
		}
	}
	return b.unary(span)
}

// fill combines all pairs of adjacent cells making up span, then applies unary
// rules to the new keys.
func (b *builder) fill(span ccgsrl.Span) bool {
	start, end := span.From(), span.To()
	for split := start + 1; split < end; split++ {
		left := b.chart.Cell(ccgsrl.Span{start, split})
		right := b.chart.Cell(ccgsrl.Span{split, end})
		for _, l := range left {
			lkey := b.chart.Key(l)
			for _, r := range right {
				rkey := b.chart.Key(r)
				for _, res := range b.grammar.Combine(lkey.Entry(), rkey.Entry()) {
					deps := b.withPrepositions(res.Deps)
					v := Binary{Left: l, Right: r, Rule: res.Rule, Deps: deps}
					b.chart.add(span, res.Category, res.Rule, res.State, v)
					if b.exceeded() {
						return false
					}
				}
			}
		}
	}
	return b.unary(span)
}

// unary applies unary rules to the keys of a span. Keys created by unary
// rules are appended to the cell, but not considered again.
func (b *builder) unary(span ccgsrl.Span) bool {
	for _, id := range b.chart.Cell(span) {
		key := b.chart.Key(id)
		for _, res := range b.grammar.ApplyUnary(key.Entry()) {
			b.chart.add(span, res.Category, res.Rule, res.State, Unary{Child: id, RuleID: res.UnaryID})
			if b.exceeded() {
				return false
			}
		}
	}
	return true
}

// withPrepositions sets the preposition of dependencies whose argument slot
// is a PP: the argument word heads the PP.
func (b *builder) withPrepositions(deps []ccg.ResolvedDependency) []ccg.ResolvedDependency {
	for i, d := range deps {
		if a := d.Category.Arg(d.ArgNum); a != nil && a.IsAtomic() && a.Base() == "PP" {
			deps[i].Preposition = strings.ToLower(b.chart.words[d.Arg])
		}
	}
	return deps
}
