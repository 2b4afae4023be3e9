package packed

import (
	"fmt"
	"strings"

	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/ccg/chart"
)

/*
Traversing a packed forest in practice mainly comes in two variants:

- The client knows which derivation it is interested in, e.g. the k-th best
  one, and prunes all other alternatives at every node.

- The choice of derivation is irrelevant, e.g. when rendering the categories of
  an arbitrary derivation for debugging.

A Pruner selects the alternative to follow at ambiguous nodes. Listeners receive
enter/exit-events for the nodes of the selected derivation.
*/

// Pruner is an interface type for an entity to help prune ambiguous
// alternatives of a node.
type Pruner interface {
	Prune(n *Node, alt int) bool
}

type dcp struct{}

func (p dcp) Prune(n *Node, alt int) bool {
	return false // do not prune anything
}

// DontCarePruner never prunes an alternative, thus resulting in always selecting
// the first alternative considered.
// It is the default Pruner if none is given.
var DontCarePruner dcp = dcp{}

// Selection is a Pruner which keeps one alternative per node, as recorded in a
// map from nodes to alternative indices. Nodes without an entry keep their
// first alternative.
type Selection map[NodeID]int

// Prune prunes every alternative but the selected one.
func (s Selection) Prune(n *Node, alt int) bool {
	if sel, ok := s[n.ID]; ok {
		return alt != sel
	}
	return alt != 0
}

// disambiguate returns the index of the first alternative not pruned, or -1.
func (f *Forest) disambiguate(n *Node, pruner Pruner) int {
	if len(n.Alternatives) == 1 {
		return 0
	}
	for i := range n.Alternatives {
		if !pruner.Prune(n, i) {
			return i
		}
	}
	return -1
}

// Direction lets clients decide wether children nodes should be traversed
// left-to-right (default) or right-to-left.
type Direction int

// Children nodes may be traversed left-to-right (default) or right-to-left.
const (
	LtoR Direction = 1
	RtoL Direction = -1
)

// Breakmode is a client hint wether to stop traversing on break-signals or not.
type Breakmode int

// Setting Continue will always traverse a complete (sub-)tree. Break will skip
// traversing sub-tree as soon as an Enter-function signals a break.
const (
	Continue Breakmode = iota
	Break
)

// --- Listener --------------------------------------------------------------

// Listener is a type for walking a derivation in a forest.
//
// EnterNode returns a boolean value indicating if the traversal should continue
// to the children of this node. ExitNode and Leaf may return user-defined values
// to be propagated upwards of the tree; ExitNode receives the values of the
// children, in left-to-right order.
type Listener interface {
	EnterNode(*Node, *Alternative, RuleCtxt) bool
	ExitNode(*Node, *Alternative, []interface{}, RuleCtxt) interface{}
	Leaf(*Node, chart.Lexical, RuleCtxt) interface{}
}

// RuleCtxt is a context structure for Listeners.
type RuleCtxt struct {
	Span     ccgsrl.Span // span of words covered by this node
	Level    int         // nesting level
	AltIndex int         // alternative selected at this node
}

// TopDown traverses the derivation below node root top-down, applying Listener
// methods for all nodes encountered. If pruner is nil, DontCarePruner is used.
// It returns a user-defined value, calculated by the listener.
func (f *Forest) TopDown(root NodeID, listener Listener, pruner Pruner, dir Direction,
	breakmode Breakmode) interface{} {
	//
	if pruner == nil {
		pruner = DontCarePruner
	}
	return f.traverseTopDown(f.Node(root), listener, pruner, dir, breakmode, 0)
}

func (f *Forest) traverseTopDown(n *Node, listener Listener, pruner Pruner, dir Direction,
	breakmode Breakmode, level int) interface{} {
	//
	i := f.disambiguate(n, pruner)
	if i < 0 {
		tracer().Errorf("all alternatives of node %v pruned", n)
		return nil
	}
	alt := &n.Alternatives[i]
	ctxt := RuleCtxt{Span: n.Span, Level: level, AltIndex: i}
	if lex, ok := alt.Value.(chart.Lexical); ok {
		return listener.Leaf(n, lex, ctxt)
	}
	values := make([]interface{}, len(alt.Children))
	doContinue := listener.EnterNode(n, alt, ctxt)
	if doContinue || breakmode == Continue {
		for k := range alt.Children {
			j := k
			if dir == RtoL {
				j = len(alt.Children) - 1 - k
			}
			values[j] = f.traverseTopDown(f.Node(alt.Children[j]), listener, pruner, dir, breakmode, level+1)
		}
	}
	return listener.ExitNode(n, alt, values, ctxt)
}

// --- Rendering derivations -------------------------------------------------

// DerivationPrinter is a Listener which renders a derivation as an indented
// list of categories and rules, one node per line.
type DerivationPrinter struct {
	Words []string
}

// EnterNode always continues.
func (p DerivationPrinter) EnterNode(*Node, *Alternative, RuleCtxt) bool {
	return true
}

// ExitNode renders a node and appends the renderings of its children.
func (p DerivationPrinter) ExitNode(n *Node, alt *Alternative, children []interface{},
	ctxt RuleCtxt) interface{} {
	//
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s  %s", strings.Repeat("  ", ctxt.Level), n.Category, n.Rule)
	for _, d := range alt.Deps {
		fmt.Fprintf(&b, "  %s", d)
	}
	b.WriteByte('\n')
	for _, c := range children {
		if s, ok := c.(string); ok {
			b.WriteString(s)
		}
	}
	return b.String()
}

// Leaf renders a word with its supertag.
func (p DerivationPrinter) Leaf(n *Node, lex chart.Lexical, ctxt RuleCtxt) interface{} {
	word := ""
	if lex.Word < len(p.Words) {
		word = p.Words[lex.Word]
	}
	return fmt.Sprintf("%s%s  %q\n", strings.Repeat("  ", ctxt.Level), n.Category, word)
}

// Render returns the rendering of a single derivation below root, selected by
// pruner.
func (f *Forest) Render(root NodeID, pruner Pruner) string {
	s, _ := f.TopDown(root, DerivationPrinter{Words: f.words}, pruner, LtoR, Continue).(string)
	return s
}
