package reparse

import (
	"errors"
	"testing"

	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/npillmayer/ccgsrl/ccg/chart"
	"github.com/npillmayer/ccgsrl/ccg/model"
	"github.com/npillmayer/ccgsrl/ccg/nbest"
	"github.com/npillmayer/ccgsrl/ccg/packed"
	"github.com/npillmayer/ccgsrl/constraint"
	"github.com/npillmayer/ccgsrl/supertag"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var vt = ccg.MustParse(`(S[dcl]\NP)/NP`)

func candidate(score float64, edges ...[2]int) *nbest.Parse {
	p := &nbest.Parse{
		Words:      []string{"w0", "w1", "w2"},
		Categories: make([]*ccg.Category, 3),
		Score:      score,
	}
	for i, e := range edges {
		p.Deps = append(p.Deps, ccg.ResolvedDependency{Head: e[0], Category: vt, ArgNum: i + 1, Arg: e[1]})
	}
	return p
}

// candidates A (score 10, edge 1→0) and B (score 11, edge 1→2).
func candidatesAB() *nbest.NBestList {
	return &nbest.NBestList{
		Words:  []string{"w0", "w1", "w2"},
		Parses: []*nbest.Parse{candidate(11, [2]int{1, 2}), candidate(10, [2]int{1, 0})},
	}
}

func TestIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.rerank")
	defer teardown()
	//
	list := candidatesAB()
	list.Parses[1].Score = 11 // tie
	for _, cs := range []*constraint.Set{nil, constraint.NewSet()} {
		p, err := Reparse(list, cs)
		if err != nil {
			t.Fatal(err)
		}
		if p != list.Best() {
			t.Errorf("expected empty constraint set to select the best parse")
		}
	}
}

func TestScenarioAB(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.rerank")
	defer teardown()
	//
	list := candidatesAB()
	cs := constraint.NewSet(
		constraint.Attachment{Head: 1, Arg: 0, IsPositive: true, Strength: 2},
		constraint.Attachment{Head: 1, Arg: 2, IsPositive: false, Strength: 5},
	)
	p, err := Reparse(list, cs)
	if err != nil {
		t.Fatal(err)
	}
	if p != list.Parse(1) {
		t.Errorf("expected candidate A to win, have %s", p)
	}
	scores := AdjustedScores(list, cs)
	if scores[0] != 4 || scores[1] != 10 {
		t.Errorf("expected adjusted scores B=4, A=10, have %v", scores)
	}
	ranked, _ := Rerank(list, cs)
	if ranked[0].Rank != 1 || len(ranked[1].Violations) != 2 {
		t.Errorf("unexpected ranking %v", ranked)
	}
}

func TestMonotonicity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.rerank")
	defer teardown()
	//
	list := candidatesAB()
	cs := constraint.NewSet(constraint.Attachment{Head: 1, Arg: 0, IsPositive: true, Strength: 0.5})
	p, _ := Reparse(list, cs)
	if p != list.Best() {
		t.Fatalf("expected B to remain best")
	}
	// a satisfied positive constraint on an edge of the winner keeps it
	cs.Add(constraint.Attachment{Head: 2, Arg: 1, IsPositive: true, Strength: 3})
	if q, _ := Reparse(list, cs); q != p {
		t.Errorf("satisfied constraint changed the selected parse")
	}
}

func TestAdditivity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.rerank")
	defer teardown()
	//
	list := &nbest.NBestList{Words: []string{"w0", "w1", "w2"},
		Parses: []*nbest.Parse{candidate(7, [2]int{1, 0}, [2]int{1, 2})}}
	cs := constraint.NewSet(
		constraint.Attachment{Head: 0, Arg: 2, IsPositive: true, Strength: 1},
		constraint.Attachment{Head: 0, Arg: 1, IsPositive: false, Strength: 0.25},
		constraint.DisjunctiveAttachment{Head: 2, Args: []int{0}, IsPositive: true, Strength: 2},
		constraint.Attachment{Head: 1, Arg: 2, IsPositive: true, Strength: 8}, // satisfied
	)
	if s := AdjustedScores(list, cs)[0]; s != 7-1-0.25-2 {
		t.Errorf("expected adjusted score 3.75, have %g", s)
	}
}

func TestEmptyList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.rerank")
	defer teardown()
	//
	_, err := Reparse(&nbest.NBestList{}, nil)
	if !errors.Is(err, ccgsrl.ErrNoParseAvailable) {
		t.Errorf("expected NoParseAvailable, have %v", err)
	}
	if _, err = Reparse(nil, nil); !errors.Is(err, ccgsrl.ErrNoParseAvailable) {
		t.Errorf("expected NoParseAvailable for nil list, have %v", err)
	}
}

func TestMalformed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.rerank")
	defer teardown()
	//
	cs := constraint.NewSet(constraint.Attachment{Head: 1, Arg: 3, IsPositive: true, Strength: 1})
	if _, err := Reparse(candidatesAB(), cs); !errors.Is(err, ccgsrl.ErrMalformedConstraint) {
		t.Errorf("expected MalformedConstraint, have %v", err)
	}
}

func telescopes(t *testing.T) *packed.Forest {
	words := []string{"John", "saw", "the", "man", "with", "telescopes"}
	cats := [][]string{{"NP"}, {`(S[dcl]\NP)/NP`}, {`NP[nb]/N`}, {"N"},
		{`(NP\NP)/NP`, `((S\NP)\(S\NP))/NP`}, {"NP"}}
	tags := make([][]supertag.Tagged, len(cats))
	for i, cs := range cats {
		for j, c := range cs {
			tags[i] = append(tags[i], supertag.Tagged{Category: ccg.MustParse(c), LogProb: -float64(j)})
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

func TestRedecode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.rerank")
	defer teardown()
	//
	f := telescopes(t)
	base := model.SupertagFactored{}
	plain, err := Redecode(f, base, nil, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !plain.Best().HasEdge(4, 3) {
		t.Fatalf("expected noun attachment without constraints, have %v", plain.Best().Deps)
	}
	cs := constraint.NewSet(constraint.Attachment{Head: 4, Arg: 1, IsPositive: true, Strength: 5})
	list, err := Redecode(f, base, cs, 5)
	if err != nil {
		t.Fatal(err)
	}
	best := list.Best()
	if !best.HasEdge(4, 1) || best.HasEdge(4, 3) {
		t.Errorf("expected verb attachment under constraint, have %v", best.Deps)
	}
	if best.Score != -1 {
		t.Errorf("expected constrained score -1, have %g", best.Score)
	}
	neg := constraint.NewSet(constraint.Attachment{Head: 3, Arg: 4, IsPositive: false, Strength: 5})
	if list, _ = Redecode(f, base, neg, 5); !list.Best().HasEdge(4, 1) {
		t.Errorf("expected negative constraint to prevent noun attachment")
	}
	dj := constraint.NewSet(constraint.DisjunctiveAttachment{Head: 4, Args: []int{1}, IsPositive: true, Strength: 10})
	list, err = Redecode(f, base, dj, 5)
	if err != nil {
		t.Fatal(err)
	}
	if best = list.Best(); !best.HasEdge(4, 1) || best.HasEdge(4, 3) || best.Score != -1 {
		t.Errorf("expected disjunctive constraint to force verb attachment, have %v at %g", best.Deps, best.Score)
	}
	ranked, err := Reparse(plain, dj)
	if err != nil || !ranked.HasEdge(4, 1) {
		t.Errorf("expected re-ranking and re-decoding to agree, have %v", ranked)
	}
}
