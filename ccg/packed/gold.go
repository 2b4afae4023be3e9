package packed

import (
	"fmt"
	"strings"

	"github.com/npillmayer/ccgsrl/ccg"
)

// Matcher decides whether a dependency resolved in a derivation matches a
// target dependency.
type Matcher func(derived, target ccg.ResolvedDependency) bool

// MatchEdge matches dependencies denoting the same edge.
func MatchEdge(derived, target ccg.ResolvedDependency) bool {
	return derived.Edge() == target.Edge()
}

// MatchHeadArg matches dependencies between the same head and argument words,
// regardless of category and slot.
func MatchHeadArg(derived, target ccg.ResolvedDependency) bool {
	return derived.Head == target.Head && derived.Arg == target.Arg
}

// FindBestConsistent restricts a forest to the derivations matching the largest
// number of target dependencies. All equally good alternatives are kept, so the
// result is a forest again. Dependencies of the result carry the label of the
// target dependency they match, all others carry ccg.NoLabel.
//
// The score returned is the number of matched target dependencies. If no
// derivation matches any target dependency, FindBestConsistent returns nil.
func FindBestConsistent(f *Forest, target []ccg.ResolvedDependency, match Matcher) (*Forest, int) {
	if match == nil {
		match = MatchEdge
	}
	gf := &goldFinder{
		source: f,
		result: newForest(f.words),
		match:  match,
		memo:   make(map[string]scoredNode),
	}
	best := -1
	var bestRoots []NodeID
	for _, r := range f.roots {
		sn := gf.bestNode(r, target)
		if sn.score > best {
			best = sn.score
			bestRoots = []NodeID{sn.node}
		} else if sn.score == best {
			bestRoots = append(bestRoots, sn.node)
		}
	}
	if best > len(target) {
		panic(fmt.Sprintf("gold finder matched %d of %d target dependencies", best, len(target)))
	}
	tracer().Debugf("gold finder matched %d of %d target dependencies", best, len(target))
	if best <= 0 {
		return nil, 0
	}
	gf.result.roots = bestRoots
	return gf.result, best
}

type scoredNode struct {
	node  NodeID // in the result forest
	score int
}

type goldFinder struct {
	source *Forest
	result *Forest
	match  Matcher
	memo   map[string]scoredNode
}

// bestNode creates a node in the result forest for source node id, keeping the
// alternatives which match the most target dependencies.
func (gf *goldFinder) bestNode(id NodeID, target []ccg.ResolvedDependency) scoredNode {
	n := gf.source.Node(id)
	possible := restrict(target, n)
	key := targetKey(id, possible)
	if sn, ok := gf.memo[key]; ok {
		return sn
	}
	best := -1
	var alts []Alternative
	for _, alt := range n.Alternatives {
		a, score := gf.bestAlternative(alt, possible)
		if score > best {
			best = score
			alts = []Alternative{a}
		} else if score == best {
			alts = append(alts, a)
		}
	}
	node := gf.result.addNode(n.Span, n.Category, n.Rule, n.State)
	node.Alternatives = alts
	sn := scoredNode{node: node.ID, score: best}
	gf.memo[key] = sn
	return sn
}

func (gf *goldFinder) bestAlternative(alt Alternative, target []ccg.ResolvedDependency) (Alternative, int) {
	if len(alt.Children) == 0 {
		return alt, 0
	}
	labelled := make([]ccg.ResolvedDependency, len(alt.Deps))
	matched := make([]bool, len(target))
	score := 0
	for i, d := range alt.Deps {
		labelled[i] = d.WithLabel(ccg.NoLabel)
		for j, t := range target {
			if !matched[j] && gf.match(d, t) {
				matched[j] = true
				labelled[i] = d.WithLabel(t.Label)
				score++
				break
			}
		}
	}
	var missing []ccg.ResolvedDependency
	for j, t := range target {
		if !matched[j] {
			missing = append(missing, t)
		}
	}
	a := Alternative{Value: alt.Value, Deps: labelled}
	for _, c := range alt.Children {
		sn := gf.bestNode(c, missing)
		score += sn.score
		a.Children = append(a.Children, sn.node)
	}
	if score > len(target) { // dependencies may be resolved more than once
		score = len(target)
	}
	return a, score
}

// restrict returns the target dependencies which may be resolved below node n:
// both head and argument have to lie within its span.
func restrict(target []ccg.ResolvedDependency, n *Node) []ccg.ResolvedDependency {
	var possible []ccg.ResolvedDependency
	for _, t := range target {
		if n.Span.Contains(t.Head) && n.Span.Contains(t.Arg) {
			possible = append(possible, t)
		}
	}
	return possible
}

// targetKey identifies a source node together with the target dependencies
// still to be matched below it. Labels and duplicates are part of the key.
func targetKey(id NodeID, target []ccg.ResolvedDependency) string {
	sorted := append([]ccg.ResolvedDependency(nil), target...)
	ccg.SortDeps(sorted)
	var b strings.Builder
	fmt.Fprintf(&b, "%d", id)
	for _, d := range sorted {
		fmt.Fprintf(&b, "|%d:%s.%d:%d:%s", d.Head, d.Category, d.ArgNum, d.Arg, d.Label)
	}
	return b.String()
}
