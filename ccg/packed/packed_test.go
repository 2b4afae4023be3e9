package packed

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/npillmayer/ccgsrl/ccg/chart"
	"github.com/npillmayer/ccgsrl/supertag"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var telescopeWords = []string{"John", "saw", "the", "man", "with", "telescopes"}

func telescopeChart(t *testing.T) *chart.Chart {
	cats := [][]string{
		{"NP"},
		{`(S[dcl]\NP)/NP`},
		{`NP[nb]/N`},
		{"N"},
		{`(NP\NP)/NP`, `((S\NP)\(S\NP))/NP`},
		{"N", "NP"},
	}
	tags := make([][]supertag.Tagged, len(cats))
	for i, word := range cats {
		for j, c := range word {
			tags[i] = append(tags[i], supertag.Tagged{Category: ccg.MustParse(c), LogProb: -float64(j)})
		}
	}
	outcome, err := chart.Build(telescopeWords, tags, ccg.MustGrammar(), ccgsrl.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Status != chart.Success {
		t.Fatalf("expected chart construction to succeed, is %s", outcome.Status)
	}
	return outcome.Chart
}

// naive enumeration of chart derivations, as sets of dependency signatures
func chartSignatures(ch *chart.Chart, id chart.KeyID) []string {
	var sigs [][]ccg.ResolvedDependency
	var collect func(id chart.KeyID) [][]ccg.ResolvedDependency
	collect = func(id chart.KeyID) [][]ccg.ResolvedDependency {
		var result [][]ccg.ResolvedDependency
		for _, v := range ch.Values(id) {
			combined := [][]ccg.ResolvedDependency{chart.Dependencies(v)}
			for _, c := range v.Children() {
				var next [][]ccg.ResolvedDependency
				for _, l := range combined {
					for _, r := range collect(c) {
						d := append(append([]ccg.ResolvedDependency{}, l...), r...)
						next = append(next, d)
					}
				}
				combined = next
			}
			result = append(result, combined...)
		}
		return result
	}
	sigs = collect(id)
	s := make([]string, len(sigs))
	for i, deps := range sigs {
		s[i] = ccg.Signature(deps)
	}
	return s
}

func TestCompactionSoundness(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.chart")
	defer teardown()
	//
	ch := telescopeChart(t)
	roots := ccg.MustRootSet(ccgsrl.DefaultRootCategories...)
	f, err := Compact(ch, roots)
	if err != nil {
		t.Fatal(err)
	}
	if f.NodeCount() > ch.KeyCount() {
		t.Errorf("forest has more nodes (%d) than chart keys (%d)", f.NodeCount(), ch.KeyCount())
	}
	expected := map[string]bool{}
	for _, id := range ch.FullSpan() {
		if roots.Contains(ch.Key(id).Category) {
			for _, s := range chartSignatures(ch, id) {
				expected[s] = true
			}
		}
	}
	derivs := Enumerate(f, 0)
	have := map[string]bool{}
	for _, d := range derivs {
		have[ccg.Signature(d.Deps)] = true
		for i, c := range d.Categories {
			if c == nil {
				t.Errorf("derivation has no category for word %d", i)
			}
		}
	}
	if len(expected) < 2 {
		t.Errorf("expected PP attachment ambiguity, have %d dependency sets", len(expected))
	}
	if len(have) != len(expected) {
		t.Errorf("forest yields %d dependency sets, chart yields %d", len(have), len(expected))
	}
	for s := range expected {
		if !have[s] {
			t.Errorf("chart derivation %s missing from forest", s)
		}
	}
	for id := NodeID(0); int(id) < f.NodeCount(); id++ {
		for _, alt := range f.Node(id).Alternatives {
			for _, c := range alt.Children {
				if c >= id {
					t.Errorf("node %d has child %d not ordered before it", id, c)
				}
			}
		}
	}
}

func TestNoRootDerivation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.chart")
	defer teardown()
	//
	ch := telescopeChart(t)
	_, err := Compact(ch, ccg.MustRootSet(`S[wq]`))
	if !errors.Is(err, ccgsrl.ErrNoRootDerivation) {
		t.Errorf("expected ErrNoRootDerivation, have %v", err)
	}
}

func TestGoldFinder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.chart")
	defer teardown()
	//
	f, err := Compact(telescopeChart(t), ccg.MustRootSet(ccgsrl.DefaultRootCategories...))
	if err != nil {
		t.Fatal(err)
	}
	nounMod := ccg.MustParse(`(NP\NP)/NP`)
	vt := ccg.MustParse(`(S[dcl]\NP)/NP`)
	target := []ccg.ResolvedDependency{
		{Head: 4, Category: nounMod, ArgNum: 1, Arg: 3, Label: "ARGM-LOC"},
		{Head: 1, Category: vt, ArgNum: 1, Arg: 0, Label: "ARG0"},
	}
	gold, score := FindBestConsistent(f, target, MatchEdge)
	if gold == nil || score != 2 {
		t.Fatalf("expected both target dependencies to be matched, score is %d", score)
	}
	for _, d := range Enumerate(gold, 0) {
		labels := map[ccg.Label]bool{}
		for _, dep := range d.Deps {
			labels[dep.Label] = true
			if dep.Head == 4 && dep.Category != nounMod {
				t.Errorf("gold forest attaches 'with' as %s", dep.Category)
			}
		}
		if !labels["ARGM-LOC"] || !labels["ARG0"] {
			t.Errorf("expected gold labels in derivation, have %v", d.Deps)
		}
	}
	// unreachable dependency: bound by what derivations contain
	target = append(target, ccg.ResolvedDependency{Head: 5, Category: vt, ArgNum: 2, Arg: 2})
	_, score = FindBestConsistent(f, target, MatchEdge)
	if score != 2 {
		t.Errorf("expected score to be bound by matchable dependencies, is %d", score)
	}
	if g, s := FindBestConsistent(f, nil, nil); g != nil || s != 0 {
		t.Errorf("expected no gold forest for empty target")
	}
}

func TestGoldMemoKey(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.chart")
	defer teardown()
	//
	vt := ccg.MustParse(`(S[dcl]\NP)/NP`)
	arg0 := ccg.ResolvedDependency{Head: 1, Category: vt, ArgNum: 1, Arg: 0, Label: "ARG0"}
	arg1 := arg0.WithLabel("ARG1")
	obj := ccg.ResolvedDependency{Head: 1, Category: vt, ArgNum: 2, Arg: 2, Label: "ARG1"}
	if targetKey(3, []ccg.ResolvedDependency{arg0}) == targetKey(3, []ccg.ResolvedDependency{arg1}) {
		t.Errorf("expected targets differing in labels to have different keys")
	}
	if targetKey(3, []ccg.ResolvedDependency{arg0}) == targetKey(3, []ccg.ResolvedDependency{arg0, arg0}) {
		t.Errorf("expected duplicate target dependencies to be part of the key")
	}
	if targetKey(3, []ccg.ResolvedDependency{arg0, obj}) != targetKey(3, []ccg.ResolvedDependency{obj, arg0}) {
		t.Errorf("expected keys to be independent of target order")
	}
	if targetKey(3, nil) == targetKey(4, nil) {
		t.Errorf("expected keys to differ by node")
	}
}

func TestRender(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.chart")
	defer teardown()
	//
	f, err := Compact(telescopeChart(t), ccg.MustRootSet(ccgsrl.DefaultRootCategories...))
	if err != nil {
		t.Fatal(err)
	}
	derivs := Enumerate(f, 0)
	if len(derivs) == 0 {
		t.Fatal("no derivations")
	}
	out := f.Render(derivs[0].Root, derivs[0].Selection)
	t.Logf("\n%s", out)
	if !strings.Contains(out, `"telescopes"`) || !strings.HasPrefix(out, "S[dcl]") {
		t.Errorf("unexpected rendering of derivation:\n%s", out)
	}
}
