package model

import (
	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/npillmayer/ccgsrl/ccg/chart"
	"github.com/npillmayer/ccgsrl/ccg/packed"
	"github.com/npillmayer/ccgsrl/ccg/sparse"
)

// Penalties are the constraint penalties of a sentence, ready for decoding.
//
// MustLink(h,a) is subtracted at the derivation step which joins a span
// containing h with one containing a without creating a dependency between h and
// a, in either direction. CannotLink(h,a) is subtracted at the step which creates
// the dependency h→a. Disjunctive penalties are subtracted for every additional
// argument attached to the same slot of the head. Supertags penalizes the
// supertags of words.
type Penalties struct {
	MustLink    *sparse.FloatMatrix
	CannotLink  *sparse.FloatMatrix
	Disjunctive []DisjunctivePenalty
	Supertags   map[int]map[*ccg.Category]float64
}

// DisjunctivePenalty penalizes attaching more than one of Args to Head.
type DisjunctivePenalty struct {
	Head   int
	Args   []int
	Weight float64
}

// NewPenalties creates empty penalty tables for a sentence of n words.
func NewPenalties(n int) *Penalties {
	return &Penalties{
		MustLink:   sparse.NewFloatMatrix(n, n),
		CannotLink: sparse.NewFloatMatrix(n, n),
		Supertags:  make(map[int]map[*ccg.Category]float64),
	}
}

// PenalizeSupertag adds a penalty for word i carrying category c.
func (p *Penalties) PenalizeSupertag(i int, c *ccg.Category, weight float64) {
	if p.Supertags[i] == nil {
		p.Supertags[i] = make(map[*ccg.Category]float64)
	}
	p.Supertags[i][c] += weight
}

// IsEmpty is true if there is nothing to penalize.
func (p *Penalties) IsEmpty() bool {
	return p.MustLink.ValueCount() == 0 && p.CannotLink.ValueCount() == 0 &&
		len(p.Disjunctive) == 0 && len(p.Supertags) == 0
}

// Constrained subtracts constraint penalties from the scores of a base model.
type Constrained struct {
	Base      Scorer
	Penalties *Penalties
}

// Local implements Scorer.
func (m Constrained) Local(f *packed.Forest, n *packed.Node, alt *packed.Alternative) float64 {
	return m.Base.Local(f, n, alt) - m.Penalty(f, n, alt)
}

// Root implements Scorer.
func (m Constrained) Root(f *packed.Forest, n *packed.Node) float64 {
	return m.Base.Root(f, n)
}

// Label implements Labeler if the base model does.
func (m Constrained) Label(words []string, d ccg.ResolvedDependency) ccg.Label {
	if l, ok := m.Base.(Labeler); ok {
		return l.Label(words, d)
	}
	return ccg.NoLabel
}

// Penalty returns the constraint penalty of a derivation step.
func (m Constrained) Penalty(f *packed.Forest, n *packed.Node, alt *packed.Alternative) float64 {
	p := m.Penalties
	switch v := alt.Value.(type) {
	case chart.Lexical:
		return p.Supertags[v.Word][n.Category]
	case chart.Binary:
		left, right := f.Node(alt.Children[0]).Span, f.Node(alt.Children[1]).Span
		penalty := 0.0
		for _, e := range p.CannotLink.Entries() {
			if creates(alt.Deps, e.Row, e.Col) {
				penalty += e.Value
			}
		}
		for _, e := range p.MustLink.Entries() {
			joins := left.Contains(e.Row) && right.Contains(e.Col) ||
				left.Contains(e.Col) && right.Contains(e.Row)
			if joins && !creates(alt.Deps, e.Row, e.Col) && !creates(alt.Deps, e.Col, e.Row) {
				penalty += e.Value
			}
		}
		for _, dj := range p.Disjunctive {
			penalty += dj.penalty(alt.Deps)
		}
		return penalty
	}
	return 0
}

func creates(deps []ccg.ResolvedDependency, head, arg int) bool {
	for _, d := range deps {
		if d.Head == head && d.Arg == arg {
			return true
		}
	}
	return false
}

type slot struct {
	category *ccg.Category
	argNum   int
}

// penalty is Weight for every argument beyond the first attached to a slot
// of the head.
func (dj DisjunctivePenalty) penalty(deps []ccg.ResolvedDependency) float64 {
	matched := make(map[slot]int)
	for _, d := range deps {
		if d.Head != dj.Head {
			continue
		}
		for _, a := range dj.Args {
			if d.Arg == a {
				matched[slot{d.Category, d.ArgNum}]++
				break
			}
		}
	}
	penalty := 0.0
	for _, cnt := range matched {
		if cnt > 1 {
			penalty += dj.Weight * float64(cnt-1)
		}
	}
	return penalty
}
