package model

import (
	"strings"
	"testing"

	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/npillmayer/ccgsrl/ccg/chart"
	"github.com/npillmayer/ccgsrl/ccg/packed"
	"github.com/npillmayer/ccgsrl/supertag"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func forestFor(t *testing.T, words []string, cats ...[]string) *packed.Forest {
	tags := make([][]supertag.Tagged, len(cats))
	for i, word := range cats {
		for j, c := range word {
			tags[i] = append(tags[i], supertag.Tagged{Category: ccg.MustParse(c), LogProb: -0.5 * float64(j+1)})
		}
	}
	outcome, err := chart.Build(words, tags, ccg.MustGrammar(), ccgsrl.DefaultConfig())
	if err != nil || outcome.Status != chart.Success {
		t.Fatalf("chart construction failed: %v, %v", err, outcome.Status)
	}
	f, err := packed.Compact(outcome.Chart, ccg.MustRootSet(ccgsrl.DefaultRootCategories...))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

// score of the derivation selected by sel, computed by a listener
type scoring struct {
	f *packed.Forest
	m Scorer
}

func (s scoring) EnterNode(*packed.Node, *packed.Alternative, packed.RuleCtxt) bool { return true }

func (s scoring) ExitNode(n *packed.Node, alt *packed.Alternative, children []interface{},
	ctxt packed.RuleCtxt) interface{} {
	score := s.m.Local(s.f, n, alt)
	for _, c := range children {
		score += c.(float64)
	}
	return score
}

func (s scoring) Leaf(n *packed.Node, lex chart.Lexical, ctxt packed.RuleCtxt) interface{} {
	return s.m.Local(s.f, n, &n.Alternatives[ctxt.AltIndex])
}

func derivationScore(f *packed.Forest, m Scorer, d packed.Derivation) float64 {
	score := f.TopDown(d.Root, scoring{f: f, m: m}, d.Selection, packed.LtoR, packed.Continue).(float64)
	return score + m.Root(f, f.Node(d.Root))
}

func TestSupertagFactored(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.chart")
	defer teardown()
	//
	f := forestFor(t, []string{"I", "saw", "squirrels"}, []string{"NP"}, []string{`(S[dcl]\NP)/NP`}, []string{"NP"})
	derivs := packed.Enumerate(f, 0)
	if len(derivs) != 1 {
		t.Fatalf("expected a single derivation, have %d", len(derivs))
	}
	if s := derivationScore(f, SupertagFactored{}, derivs[0]); s != -1.5 {
		t.Errorf("expected sum of supertag log-probs -1.5, have %g", s)
	}
	// heads: saw(1)–squirrels(2), I(0)–saw(1)
	m := SupertagFactored{AttachLowPenalty: 0.1}
	if s := derivationScore(f, m, derivs[0]); s > -1.69 || s < -1.71 {
		t.Errorf("expected attach-low penalty of 0.2, score is %g", s)
	}
}

func TestConstrainedPenalties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.chart")
	defer teardown()
	//
	f := forestFor(t, []string{"I", "saw", "squirrels"}, []string{"NP"}, []string{`(S[dcl]\NP)/NP`}, []string{"NP"})
	d := packed.Enumerate(f, 0)[0]
	base := SupertagFactored{}
	p := NewPenalties(3)
	p.CannotLink.Accumulate(1, 2, 2.0) // saw→squirrels is created
	p.MustLink.Accumulate(0, 2, 1.0)   // I–squirrels is never created
	p.PenalizeSupertag(1, ccg.MustParse(`(S[dcl]\NP)/NP`), 0.5)
	m := Constrained{Base: base, Penalties: p}
	expected := derivationScore(f, base, d) - 3.5
	if s := derivationScore(f, m, d); s != expected {
		t.Errorf("expected penalized score %g, have %g", expected, s)
	}
}

func TestDisjunctivePenalty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.chart")
	defer teardown()
	//
	vt := ccg.MustParse(`(S[dcl]\NP)/NP`)
	deps := []ccg.ResolvedDependency{
		{Head: 1, Category: vt, ArgNum: 2, Arg: 2},
		{Head: 1, Category: vt, ArgNum: 2, Arg: 4},
		{Head: 1, Category: vt, ArgNum: 1, Arg: 0},
	}
	dj := DisjunctivePenalty{Head: 1, Args: []int{2, 4, 0}, Weight: 1.5}
	if p := dj.penalty(deps); p != 1.5 {
		t.Errorf("expected penalty for one additional argument, have %g", p)
	}
}

func TestSRLFactored(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.chart")
	defer teardown()
	//
	weights := `
labels: [ARG0, ARG1]
features:
  'dep:(S[dcl]\NP)/NP|1|ARG0': 2.0
  'dep:(S[dcl]\NP)/NP|2|ARG1': 1.0
  'root:S[dcl]': 0.25
`
	w, err := LoadWeights(strings.NewReader(weights))
	if err != nil {
		t.Fatal(err)
	}
	m := SRLFactored{W: w}
	f := forestFor(t, []string{"I", "saw", "squirrels"}, []string{"NP"}, []string{`(S[dcl]\NP)/NP`}, []string{"NP"})
	d := packed.Enumerate(f, 0)[0]
	if s := derivationScore(f, m, d); s != -1.5+3.25 {
		t.Errorf("expected score %g, have %g", -1.5+3.25, s)
	}
	for _, dep := range d.Deps {
		l := m.Label(f.Words(), dep)
		if dep.ArgNum == 1 && l != "ARG0" || dep.ArgNum == 2 && l != "ARG1" {
			t.Errorf("unexpected label %s for %s", l, dep)
		}
	}
}
