package nbest

import (
	"fmt"
	"strings"

	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/npillmayer/ccgsrl/ccg/packed"
)

// Parse is a single derivation of a sentence: its supertags, its dependencies
// and its score.
type Parse struct {
	Words      []string
	Categories []*ccg.Category // supertag per word
	Deps       []ccg.ResolvedDependency
	Score      float64
	Root       packed.NodeID
	Selection  packed.Selection // alternatives chosen in the forest
	forest     *packed.Forest
}

// Category returns the supertag of word i, or nil.
func (p *Parse) Category(i int) *ccg.Category {
	if i < 0 || i >= len(p.Categories) {
		return nil
	}
	return p.Categories[i]
}

// HasEdge is true if p has a dependency between words a and b, in either
// direction.
func (p *Parse) HasEdge(a, b int) bool {
	for _, d := range p.Deps {
		if d.Links(a, b) {
			return true
		}
	}
	return false
}

// Signature identifies the dependency set of p.
func (p *Parse) Signature() string {
	return ccg.Signature(p.Deps)
}

// Derivation renders the derivation tree of p. It is empty for parses which
// have been created without a forest.
func (p *Parse) Derivation() string {
	if p.forest == nil {
		return ""
	}
	return p.forest.Render(p.Root, p.Selection)
}

func (p *Parse) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "score=%.4f", p.Score)
	for i, w := range p.Words {
		fmt.Fprintf(&b, " %s/%s", w, p.Category(i))
	}
	return b.String()
}

// NBestList is a list of parses of a sentence, sorted by descending score,
// with pairwise distinct dependency sets.
type NBestList struct {
	Words  []string
	Parses []*Parse
}

// Len returns the number of parses.
func (l *NBestList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Parses)
}

// Best returns the parse of rank 0, or nil.
func (l *NBestList) Best() *Parse {
	if l.Len() == 0 {
		return nil
	}
	return l.Parses[0]
}

// Parse returns the parse of rank k.
func (l *NBestList) Parse(k int) *Parse {
	return l.Parses[k]
}
