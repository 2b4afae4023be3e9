package packed

import (
	"fmt"

	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/npillmayer/ccgsrl/ccg/chart"
)

// NodeID addresses a node within the arena of a forest.
type NodeID int

// Node is a chart key which is part of at least one derivation of a permitted
// root category.
type Node struct {
	ID           NodeID
	Span         ccgsrl.Span
	Category     *ccg.Category
	Rule         ccg.RuleClass
	State        ccg.DepState
	Alternatives []Alternative
}

func (n *Node) String() string {
	return fmt.Sprintf("[%d] %s %s %s", n.ID, n.Span, n.Category, n.Rule)
}

// IsLeaf is true for nodes of supertags.
func (n *Node) IsLeaf() bool {
	return n.Rule == ccg.Lexical
}

// Alternative is a derivation of a node. Value is the chart value it stems
// from, Children are the forest nodes of its children (in the order of
// Value.Children()). Deps are the dependencies resolved by this derivation step.
type Alternative struct {
	Value    chart.Value
	Children []NodeID
	Deps     []ccg.ResolvedDependency
}

// Rule returns the rule class applied by an alternative.
func (a *Alternative) Rule() ccg.RuleClass {
	switch v := a.Value.(type) {
	case chart.Binary:
		return v.Rule
	case chart.Unary:
		return ccg.Unary
	}
	return ccg.Lexical
}

// Forest is a packed forest. It is read-only after construction.
type Forest struct {
	words []string
	nodes []*Node
	roots []NodeID
}

func newForest(words []string) *Forest {
	return &Forest{words: words}
}

func (f *Forest) addNode(span ccgsrl.Span, c *ccg.Category, rule ccg.RuleClass, st ccg.DepState) *Node {
	n := &Node{ID: NodeID(len(f.nodes)), Span: span, Category: c, Rule: rule, State: st}
	f.nodes = append(f.nodes, n)
	return n
}

// Words returns the words of the sentence.
func (f *Forest) Words() []string {
	return f.words
}

// Len returns the number of words of the sentence.
func (f *Forest) Len() int {
	return len(f.words)
}

// NodeCount returns the number of nodes.
func (f *Forest) NodeCount() int {
	return len(f.nodes)
}

// Node returns the node with a given ID.
func (f *Forest) Node(id NodeID) *Node {
	return f.nodes[id]
}

// Roots returns the root nodes, i.e. nodes spanning the sentence with a
// permitted root category.
func (f *Forest) Roots() []NodeID {
	return f.roots
}

// AlternativeCount returns the number of alternatives over all nodes.
func (f *Forest) AlternativeCount() int {
	n := 0
	for _, node := range f.nodes {
		n += len(node.Alternatives)
	}
	return n
}

// Compact creates the forest of all derivations in a chart whose root category
// is in roots. If no key spanning the sentence has a permitted category,
// Compact returns an error wrapping ccgsrl.ErrNoRootDerivation.
func Compact(ch *chart.Chart, roots *ccg.RootSet) (*Forest, error) {
	var rootKeys []chart.KeyID
	for _, id := range ch.FullSpan() {
		if roots.Contains(ch.Key(id).Category) {
			rootKeys = append(rootKeys, id)
		}
	}
	if len(rootKeys) == 0 {
		return nil, fmt.Errorf("%w: %d candidates spanning the sentence, roots are %s",
			ccgsrl.ErrNoRootDerivation, len(ch.FullSpan()), roots)
	}
	reachable := make([]bool, ch.KeyCount())
	stack := append([]chart.KeyID(nil), rootKeys...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reachable[id] {
			continue
		}
		reachable[id] = true
		for _, v := range ch.Values(id) {
			stack = append(stack, v.Children()...)
		}
	}
	// chart keys are ordered children first, so are the nodes
	f := newForest(ch.Words())
	nodeOf := make(map[chart.KeyID]NodeID)
	for k := chart.KeyID(0); int(k) < ch.KeyCount(); k++ {
		if !reachable[k] {
			continue
		}
		key := ch.Key(k)
		n := f.addNode(key.Span, key.Category, key.Rule, key.State)
		for _, v := range ch.Values(k) {
			alt := Alternative{Value: v, Deps: chart.Dependencies(v)}
			for _, c := range v.Children() {
				alt.Children = append(alt.Children, nodeOf[c])
			}
			n.Alternatives = append(n.Alternatives, alt)
		}
		nodeOf[k] = n.ID
	}
	for _, k := range rootKeys {
		f.roots = append(f.roots, nodeOf[k])
	}
	tracer().Debugf("compacted %d chart keys to %d nodes, %d roots", ch.KeyCount(), f.NodeCount(), len(f.roots))
	return f, nil
}
