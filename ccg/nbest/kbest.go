package nbest

import (
	"fmt"
	"math"
	"strings"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/npillmayer/ccgsrl/ccg/chart"
	"github.com/npillmayer/ccgsrl/ccg/model"
	"github.com/npillmayer/ccgsrl/ccg/packed"
)

// derivation is a (sub-)derivation of a node: an alternative and, for every
// child, the rank of the child derivation used.
type derivation struct {
	alt   int
	ranks []int
	score float64
	deps  []ccg.ResolvedDependency // of the whole sub-tree
}

// candidates are ordered by descending score; ties by alternative, then by
// child ranks.
func compareDerivations(a, b interface{}) int {
	x, y := a.(*derivation), b.(*derivation)
	switch {
	case x.score > y.score:
		return -1
	case x.score < y.score:
		return 1
	case x.alt != y.alt:
		if x.alt < y.alt {
			return -1
		}
		return 1
	}
	for i := range x.ranks {
		if x.ranks[i] != y.ranks[i] {
			if x.ranks[i] < y.ranks[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (d *derivation) key() string {
	return fmt.Sprintf("%d:%v", d.alt, d.ranks)
}

type nodeState struct {
	cands  *binaryheap.Heap
	kbest  []*derivation
	pushed map[string]bool // candidates ever pushed
	sigs   map[string]bool // dependency sets of kbest
}

// Extractor computes k-best lists for the nodes of a forest. An extractor
// caches its results and is not safe for concurrent use.
type Extractor struct {
	forest *packed.Forest
	scorer model.Scorer
	local  [][]float64 // local score per node and alternative
	nodes  []*nodeState
}

// NewExtractor creates an extractor for a forest and a scoring model.
func NewExtractor(f *packed.Forest, scorer model.Scorer) *Extractor {
	x := &Extractor{
		forest: f,
		scorer: scorer,
		local:  make([][]float64, f.NodeCount()),
		nodes:  make([]*nodeState, f.NodeCount()),
	}
	for id := packed.NodeID(0); int(id) < f.NodeCount(); id++ {
		n := f.Node(id)
		x.local[id] = make([]float64, len(n.Alternatives))
		for i := range n.Alternatives {
			x.local[id][i] = scorer.Local(f, n, &n.Alternatives[i])
		}
	}
	return x
}

// Inside returns the Viterbi inside score of every node, i.e. the score of
// its best sub-derivation.
func (x *Extractor) Inside() []float64 {
	inside := make([]float64, x.forest.NodeCount())
	for id := packed.NodeID(0); int(id) < x.forest.NodeCount(); id++ {
		n := x.forest.Node(id)
		best := math.Inf(-1)
		for i, alt := range n.Alternatives {
			s := x.local[id][i]
			for _, c := range alt.Children { // children come first
				s += inside[c]
			}
			if s > best {
				best = s
			}
		}
		inside[id] = best
	}
	return inside
}

// kth returns the k-th best sub-derivation of a node, or nil.
func (x *Extractor) kth(id packed.NodeID, k int) *derivation {
	st := x.state(id)
	for len(st.kbest) <= k && !st.cands.Empty() {
		v, _ := st.cands.Pop()
		d := v.(*derivation)
		x.next(id, d)
		d.deps = x.collectDeps(id, d)
		sig := ccg.Signature(d.deps)
		if st.sigs[sig] {
			continue
		}
		st.sigs[sig] = true
		st.kbest = append(st.kbest, d)
	}
	if k < len(st.kbest) {
		return st.kbest[k]
	}
	return nil
}

func (x *Extractor) state(id packed.NodeID) *nodeState {
	if x.nodes[id] != nil {
		return x.nodes[id]
	}
	st := &nodeState{
		cands:  binaryheap.NewWith(compareDerivations),
		pushed: make(map[string]bool),
		sigs:   make(map[string]bool),
	}
	x.nodes[id] = st
	n := x.forest.Node(id)
	for i, alt := range n.Alternatives {
		x.push(id, st, &derivation{alt: i, ranks: make([]int, len(alt.Children))})
	}
	return st
}

// push scores a candidate and adds it to the heap of a node, if all the child
// derivations it refers to exist.
func (x *Extractor) push(id packed.NodeID, st *nodeState, d *derivation) {
	if st.pushed[d.key()] {
		return
	}
	alt := &x.forest.Node(id).Alternatives[d.alt]
	score := x.local[id][d.alt]
	for i, c := range alt.Children {
		cd := x.kth(c, d.ranks[i])
		if cd == nil {
			return
		}
		score += cd.score
	}
	d.score = score
	st.pushed[d.key()] = true
	st.cands.Push(d)
}

// next pushes the neighbours of d: for every child, the derivation using the
// next best sub-derivation of that child.
func (x *Extractor) next(id packed.NodeID, d *derivation) {
	st := x.nodes[id]
	for i := range d.ranks {
		ranks := append([]int(nil), d.ranks...)
		ranks[i]++
		x.push(id, st, &derivation{alt: d.alt, ranks: ranks})
	}
}

func (x *Extractor) collectDeps(id packed.NodeID, d *derivation) []ccg.ResolvedDependency {
	alt := &x.forest.Node(id).Alternatives[d.alt]
	var deps []ccg.ResolvedDependency
	for i, c := range alt.Children {
		deps = append(deps, x.nodes[c].kbest[d.ranks[i]].deps...)
	}
	return append(deps, alt.Deps...)
}

// --- Root level ------------------------------------------------------------

type rootCandidate struct {
	root  int // index into forest roots
	rank  int
	score float64
}

func compareRoots(a, b interface{}) int {
	x, y := a.(rootCandidate), b.(rootCandidate)
	switch {
	case x.score > y.score:
		return -1
	case x.score < y.score:
		return 1
	case x.root != y.root:
		if x.root < y.root {
			return -1
		}
		return 1
	case x.rank != y.rank:
		if x.rank < y.rank {
			return -1
		}
		return 1
	}
	return 0
}

// Extract returns the k best derivations of a forest with pairwise distinct
// dependency sets. If the forest has fewer than k distinct derivations, all of
// them are returned.
func Extract(f *packed.Forest, scorer model.Scorer, k int) *NBestList {
	return NewExtractor(f, scorer).Extract(k)
}

// Extract returns the k best derivations, see function Extract.
func (x *Extractor) Extract(k int) *NBestList {
	f := x.forest
	list := &NBestList{Words: f.Words()}
	heap := binaryheap.NewWith(compareRoots)
	rootScore := make([]float64, len(f.Roots()))
	for i, r := range f.Roots() {
		rootScore[i] = x.scorer.Root(f, f.Node(r))
		if d := x.kth(r, 0); d != nil {
			heap.Push(rootCandidate{root: i, rank: 0, score: d.score + rootScore[i]})
		}
	}
	seen := make(map[string]bool)
	for list.Len() < k && !heap.Empty() {
		v, _ := heap.Pop()
		rc := v.(rootCandidate)
		r := f.Roots()[rc.root]
		d := x.kth(r, rc.rank)
		if nd := x.kth(r, rc.rank+1); nd != nil {
			heap.Push(rootCandidate{root: rc.root, rank: rc.rank + 1, score: nd.score + rootScore[rc.root]})
		}
		sig := ccg.Signature(d.deps)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		list.Parses = append(list.Parses, x.parse(r, d, rc.score))
	}
	tracer().Debugf("extracted %d of %d parses", list.Len(), k)
	return list
}

// parse creates a Parse from a derivation of root r.
func (x *Extractor) parse(r packed.NodeID, d *derivation, score float64) *Parse {
	f := x.forest
	p := &Parse{
		Words:      f.Words(),
		Categories: make([]*ccg.Category, f.Len()),
		Score:      score,
		Root:       r,
		Selection:  packed.Selection{},
		forest:     f,
	}
	var walk func(id packed.NodeID, d *derivation)
	walk = func(id packed.NodeID, d *derivation) {
		n := f.Node(id)
		p.Selection[id] = d.alt
		alt := &n.Alternatives[d.alt]
		if lex, ok := alt.Value.(chart.Lexical); ok {
			p.Categories[lex.Word] = n.Category
		}
		for i, c := range alt.Children {
			walk(c, x.nodes[c].kbest[d.ranks[i]])
		}
	}
	walk(r, d)
	p.Deps = append([]ccg.ResolvedDependency(nil), d.deps...)
	if labeler, ok := x.scorer.(model.Labeler); ok {
		for i, dep := range p.Deps {
			p.Deps[i] = dep.WithLabel(labeler.Label(p.Words, dep))
		}
	}
	ccg.SortDeps(p.Deps)
	return p
}

// Best returns the best derivation of a forest, or nil for an empty forest.
func Best(f *packed.Forest, scorer model.Scorer) *Parse {
	return Extract(f, scorer, 1).Best()
}

func (d *derivation) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "alt=%d ranks=%v score=%.4f", d.alt, d.ranks, d.score)
	return b.String()
}
