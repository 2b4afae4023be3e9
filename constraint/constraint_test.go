package constraint

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/npillmayer/ccgsrl/ccg/chart"
	"github.com/npillmayer/ccgsrl/ccg/nbest"
	"github.com/npillmayer/ccgsrl/ccg/packed"
	"github.com/npillmayer/ccgsrl/ccg/sparse"
	"github.com/npillmayer/ccgsrl/supertag"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var vt = ccg.MustParse(`(S[dcl]\NP)/NP`)

// iSawSquirrels is the parse of "I saw squirrels".
func iSawSquirrels() *nbest.Parse {
	np := ccg.MustParse("NP")
	return &nbest.Parse{
		Words:      []string{"I", "saw", "squirrels"},
		Categories: []*ccg.Category{np, vt, np},
		Deps: []ccg.ResolvedDependency{
			{Head: 1, Category: vt, ArgNum: 1, Arg: 0},
			{Head: 1, Category: vt, ArgNum: 2, Arg: 2},
		},
	}
}

func TestViolations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.rerank")
	defer teardown()
	//
	p := iSawSquirrels()
	np := ccg.MustParse("NP")
	tests := []struct {
		c        Constraint
		violated bool
	}{
		{Attachment{Head: 1, Arg: 2, IsPositive: true, Strength: 1}, false},
		{Attachment{Head: 2, Arg: 1, IsPositive: true, Strength: 1}, false}, // undirected
		{Attachment{Head: 0, Arg: 2, IsPositive: true, Strength: 1}, true},
		{Attachment{Head: 0, Arg: 1, IsPositive: false, Strength: 1}, true},
		{Attachment{Head: 0, Arg: 2, IsPositive: false, Strength: 1}, false},
		{DisjunctiveAttachment{Head: 1, Args: []int{0, 2}, IsPositive: true, Strength: 1}, false},
		{DisjunctiveAttachment{Head: 0, Args: []int{2}, IsPositive: true, Strength: 1}, true},
		{DisjunctiveAttachment{Head: 1, Args: []int{2}, IsPositive: false, Strength: 1}, true},
		{DisjunctiveAttachment{Head: 0, Args: []int{2}, IsPositive: false, Strength: 1}, false},
		{Supertag{Word: 1, Category: vt, IsPositive: true, Strength: 1}, false},
		{Supertag{Word: 1, Category: np, IsPositive: true, Strength: 1}, true},
		{Supertag{Word: 2, Category: np, IsPositive: false, Strength: 1}, true},
	}
	for i, test := range tests {
		if test.c.Violated(p) != test.violated {
			t.Errorf("%d: expected %s to be violated=%v", i, test.c, test.violated)
		}
	}
}

func TestPenaltyAdditivity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.rerank")
	defer teardown()
	//
	p := iSawSquirrels()
	s := NewSet(
		Attachment{Head: 0, Arg: 2, IsPositive: true, Strength: 1.5},
		Attachment{Head: 1, Arg: 2, IsPositive: false, Strength: 2},
		Attachment{Head: 1, Arg: 0, IsPositive: true, Strength: 4}, // satisfied
	)
	if pen := s.Penalty(p); pen != 3.5 {
		t.Errorf("expected penalty 3.5, have %g", pen)
	}
	if len(s.Violations(p)) != 2 {
		t.Errorf("expected 2 violations, have %v", s.Violations(p))
	}
	var empty *Set
	if empty.Penalty(p) != 0 || empty.Len() != 0 {
		t.Errorf("expected nil set to be empty")
	}
}

func TestSetDeduplication(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.rerank")
	defer teardown()
	//
	s := NewSet(
		Attachment{Head: 0, Arg: 2, IsPositive: true, Strength: 1},
		Attachment{Head: 0, Arg: 2, IsPositive: true, Strength: 1},
		DisjunctiveAttachment{Head: 1, Args: []int{2, 0}, IsPositive: true, Strength: 1},
		DisjunctiveAttachment{Head: 1, Args: []int{0, 2}, IsPositive: true, Strength: 1},
		Supertag{Word: 1, Category: vt, IsPositive: true, Strength: 1},
		Supertag{Word: 1, Category: ccg.MustParse(`(S[dcl]\NP)/NP`), IsPositive: true, Strength: 1},
		Supertag{Word: 1, Category: vt, IsPositive: false, Strength: 1},
	)
	if s.Len() != 4 {
		t.Errorf("expected 4 distinct constraints, have %d: %v", s.Len(), s.Constraints())
	}
}

func TestValidate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.rerank")
	defer teardown()
	//
	bad := []Constraint{
		Attachment{Head: 0, Arg: 3, IsPositive: true, Strength: 1},
		Attachment{Head: -1, Arg: 1, IsPositive: true, Strength: 1},
		DisjunctiveAttachment{Head: 1, IsPositive: true, Strength: 1},
		DisjunctiveAttachment{Head: 1, Args: []int{0, 7}, IsPositive: true, Strength: 1},
		Supertag{Word: 1, IsPositive: true, Strength: 1},
		Attachment{Head: 0, Arg: 1, IsPositive: true, Strength: -1},
		Attachment{Head: 0, Arg: 1, IsPositive: true, Strength: math.Inf(1)},
		Supertag{Word: 1, Category: vt, IsPositive: true, Strength: math.NaN()},
	}
	for i, c := range bad {
		if err := NewSet(c).Validate(3); !errors.Is(err, ccgsrl.ErrMalformedConstraint) {
			t.Errorf("%d: expected %s to be malformed, error is %v", i, c, err)
		}
	}
	good := NewSet(
		Attachment{Head: 0, Arg: 2, IsPositive: true, Strength: 1},
		DisjunctiveAttachment{Head: 1, Args: []int{0, 2}, IsPositive: false, Strength: 1},
		Supertag{Word: 2, Category: vt, IsPositive: false, Strength: 0.5},
	)
	if err := good.Validate(3); err != nil {
		t.Errorf("expected constraints to be valid, error is %v", err)
	}
}

func TestNormalize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.rerank")
	defer teardown()
	//
	s := NewSet(
		Attachment{Head: 1, Arg: 1, IsPositive: true, Strength: 1},   // self-link
		Attachment{Head: 0, Arg: 2, IsPositive: true, Strength: 1},   // kept
		Attachment{Head: 2, Arg: 0, IsPositive: false, Strength: 1},  // overridden
		Attachment{Head: 1, Arg: 2, IsPositive: false, Strength: 1},  // kept
		DisjunctiveAttachment{Head: 2, Args: []int{0, 1}, IsPositive: true, Strength: 1},
		DisjunctiveAttachment{Head: 1, Args: []int{1, 0}, IsPositive: true, Strength: 1},
	)
	norm := s.Normalize()
	if norm.Len() != 3 {
		t.Fatalf("expected 3 constraints after normalization, have %v", norm.Constraints())
	}
	dj, ok := norm.Constraints()[2].(DisjunctiveAttachment)
	if !ok || len(dj.Args) != 1 || dj.Args[0] != 0 {
		t.Errorf("expected disjunctive attachment 1→{0}, have %v", norm.Constraints()[2])
	}
}

func TestPenaltyTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.rerank")
	defer teardown()
	//
	np, n := ccg.MustParse("NP"), ccg.MustParse("N")
	words := []string{"I", "saw", "squirrels"}
	tags := [][]supertag.Tagged{
		{{Category: np}}, {{Category: vt}}, {{Category: np}, {Category: n, LogProb: -1}},
	}
	outcome, err := chart.Build(words, tags, ccg.MustGrammar(), ccgsrl.DefaultConfig())
	if err != nil || outcome.Status != chart.Success {
		t.Fatalf("chart construction failed: %v, %v", err, outcome.Status)
	}
	f, err := packed.Compact(outcome.Chart, ccg.MustRootSet(ccgsrl.DefaultRootCategories...))
	if err != nil {
		t.Fatal(err)
	}
	pen := NewSet(
		Attachment{Head: 0, Arg: 2, IsPositive: true, Strength: 1},
		Attachment{Head: 1, Arg: 2, IsPositive: false, Strength: 2},
		Supertag{Word: 2, Category: np, IsPositive: true, Strength: 3},
	).Penalties(f)
	if weightAt(pen.MustLink, 0, 2) != 1 {
		t.Errorf("expected must-link 0–2 with weight 1")
	}
	if weightAt(pen.CannotLink, 1, 2) != 2 || weightAt(pen.CannotLink, 2, 1) != 2 {
		t.Errorf("expected cannot-link 1–2 in both directions")
	}
	if pen.Supertags[2][np] != 0 || pen.Supertags[2][n] != 3 {
		t.Errorf("expected penalty 3 for 'squirrels' as N, have %v", pen.Supertags[2])
	}
}

func TestDisjunctivePenalties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.rerank")
	defer teardown()
	//
	np := ccg.MustParse("NP")
	words := []string{"I", "saw", "squirrels"}
	tags := [][]supertag.Tagged{{{Category: np}}, {{Category: vt}}, {{Category: np}}}
	outcome, err := chart.Build(words, tags, ccg.MustGrammar(), ccgsrl.DefaultConfig())
	if err != nil || outcome.Status != chart.Success {
		t.Fatalf("chart construction failed: %v, %v", err, outcome.Status)
	}
	f, err := packed.Compact(outcome.Chart, ccg.MustRootSet(ccgsrl.DefaultRootCategories...))
	if err != nil {
		t.Fatal(err)
	}
	pen := NewSet(
		DisjunctiveAttachment{Head: 1, Args: []int{0, 2}, IsPositive: true, Strength: 2},
	).Penalties(f)
	if weightAt(pen.MustLink, 1, 0) != 2 || weightAt(pen.MustLink, 1, 2) != 2 {
		t.Errorf("expected must-links 1–0 and 1–2 with weight 2, have %v", pen.MustLink.Entries())
	}
	if len(pen.Disjunctive) != 1 || pen.Disjunctive[0].Weight != 2 {
		t.Errorf("expected one double-attachment penalty, have %v", pen.Disjunctive)
	}
	neg := NewSet(
		DisjunctiveAttachment{Head: 1, Args: []int{0, 2}, IsPositive: false, Strength: 1},
	).Penalties(f)
	if neg.MustLink.ValueCount() != 0 || neg.CannotLink.ValueCount() != 4 {
		t.Errorf("expected 4 cannot-links only, have %v / %v", neg.MustLink.Entries(), neg.CannotLink.Entries())
	}
}

func weightAt(m *sparse.FloatMatrix, i, j int) float64 {
	for _, e := range m.Entries() {
		if e.Row == i && e.Col == j {
			return e.Value
		}
	}
	return 0
}

func TestSpecs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.rerank")
	defer teardown()
	//
	specs := []Spec{
		{Kind: "attach", Head: 1, Arg: 0, Positive: true, Weight: 2},
		{Kind: "disjunctive", Head: 4, Args: []int{1, 3}, Weight: 1},
		{Kind: "tag", Word: 1, Category: `(S[dcl]\NP)/NP`, Positive: true, Weight: 0.5},
	}
	s, err := FromSpecs(specs)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 constraints, have %d", s.Len())
	}
	if tag, ok := s.Constraints()[2].(Supertag); !ok || tag.Category != vt {
		t.Errorf("unexpected supertag constraint %v", s.Constraints()[2])
	}
	if back := s.Specs(); len(back) != 3 || back[1].Kind != "disjunctive" || back[2].Category != specs[2].Category {
		t.Errorf("unexpected specs %v", back)
	}
	for _, bad := range []Spec{{Kind: "link"}, {Kind: "tag", Category: `(S`}} {
		if _, err := FromSpecs([]Spec{bad}); !errors.Is(err, ccgsrl.ErrMalformedConstraint) {
			t.Errorf("expected %v to be malformed, error is %v", bad, err)
		}
	}
}
