package packed

import (
	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/npillmayer/ccgsrl/ccg/chart"
)

// Derivation is a single derivation tree of a forest, flattened to what
// clients compare derivations by: the supertags and the dependencies.
type Derivation struct {
	Root       NodeID
	Categories []*ccg.Category // per word
	Deps       []ccg.ResolvedDependency
	Selection  Selection // alternatives chosen, for rendering
}

// partial is a derivation of a sub-tree.
type partial struct {
	cats map[int]*ccg.Category
	deps []ccg.ResolvedDependency
	sel  Selection
}

// Enumerate lists the derivations of all roots of a forest. The number of
// derivations is exponential in sentence length; enumeration stops after limit
// derivations have been produced for any node (limit ≤ 0 means no limit).
// Enumerate is intended for tests and for debugging small sentences.
func Enumerate(f *Forest, limit int) []Derivation {
	memo := make(map[NodeID][]partial)
	var derivs []Derivation
	for _, r := range f.roots {
		for _, p := range enumerate(f, r, limit, memo) {
			d := Derivation{
				Root:       r,
				Categories: make([]*ccg.Category, f.Len()),
				Deps:       p.deps,
				Selection:  p.sel,
			}
			for i, c := range p.cats {
				d.Categories[i] = c
			}
			ccg.SortDeps(d.Deps)
			derivs = append(derivs, d)
		}
	}
	return derivs
}

func enumerate(f *Forest, id NodeID, limit int, memo map[NodeID][]partial) []partial {
	if ps, ok := memo[id]; ok {
		return ps
	}
	n := f.Node(id)
	var result []partial
	for i, alt := range n.Alternatives {
		if limit > 0 && len(result) >= limit {
			break
		}
		here := partial{cats: map[int]*ccg.Category{}, sel: Selection{id: i}}
		if lex, ok := alt.Value.(chart.Lexical); ok {
			here.cats[lex.Word] = n.Category
		}
		here.deps = append(here.deps, alt.Deps...)
		combined := []partial{here}
		for _, c := range alt.Children {
			var next []partial
			for _, left := range combined {
				for _, right := range enumerate(f, c, limit, memo) {
					next = append(next, merge(left, right))
					if limit > 0 && len(next) >= limit {
						break
					}
				}
			}
			combined = next
		}
		result = append(result, combined...)
	}
	memo[id] = result
	return result
}

func merge(a, b partial) partial {
	p := partial{
		cats: make(map[int]*ccg.Category, len(a.cats)+len(b.cats)),
		deps: make([]ccg.ResolvedDependency, 0, len(a.deps)+len(b.deps)),
		sel:  make(Selection, len(a.sel)+len(b.sel)),
	}
	for _, x := range []partial{a, b} {
		for k, v := range x.cats {
			p.cats[k] = v
		}
		for k, v := range x.sel {
			p.sel[k] = v
		}
		p.deps = append(p.deps, x.deps...)
	}
	return p
}
