package ccg

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cnf/structhash"
)

// Label is a semantic role label attached to a dependency.
type Label string

// NoLabel marks unlabeled dependencies, NoPreposition dependencies without
// a prepositional argument.
const (
	NoLabel       Label = "NONE"
	NoPreposition       = "NONE"
)

// ResolvedDependency is a resolved predicate-argument edge: the word at Head,
// carrying category Category, takes the word at Arg as its argument number ArgNum.
type ResolvedDependency struct {
	Head        int
	Category    *Category
	ArgNum      int
	Arg         int
	Label       Label
	Preposition string
}

// Edge is the identity of a dependency, ignoring its label.
type Edge struct {
	Head     int
	Category *Category
	ArgNum   int
	Arg      int
}

// Edge returns the identity of d. Two dependencies denote the same edge if their
// head, category, argument number and argument index match.
func (d ResolvedDependency) Edge() Edge {
	return Edge{Head: d.Head, Category: d.Category, ArgNum: d.ArgNum, Arg: d.Arg}
}

// WithLabel returns a copy of d carrying label l.
func (d ResolvedDependency) WithLabel(l Label) ResolvedDependency {
	d.Label = l
	return d
}

// Links is true if d connects words a and b, in either direction.
func (d ResolvedDependency) Links(a, b int) bool {
	return (d.Head == a && d.Arg == b) || (d.Head == b && d.Arg == a)
}

func (d ResolvedDependency) label() Label {
	if d.Label == "" {
		return NoLabel
	}
	return d.Label
}

func (d ResolvedDependency) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%s.%d→%d", d.Head, d.Category, d.ArgNum, d.Arg)
	if d.label() != NoLabel {
		fmt.Fprintf(&b, "[%s]", d.Label)
	}
	if d.Preposition != "" && d.Preposition != NoPreposition {
		fmt.Fprintf(&b, "(%s)", d.Preposition)
	}
	return b.String()
}

// LessDeps is a total order on dependencies: by head, argument, argument number,
// category, label.
func LessDeps(a, b ResolvedDependency) bool {
	switch {
	case a.Head != b.Head:
		return a.Head < b.Head
	case a.Arg != b.Arg:
		return a.Arg < b.Arg
	case a.ArgNum != b.ArgNum:
		return a.ArgNum < b.ArgNum
	case a.Category != b.Category:
		return a.Category.ID() < b.Category.ID()
	}
	return a.label() < b.label()
}

// SortDeps sorts dependencies in place, using LessDeps.
func SortDeps(deps []ResolvedDependency) {
	sort.Slice(deps, func(i, j int) bool { return LessDeps(deps[i], deps[j]) })
}

// hashableDep is the structhash view of a dependency. structhash only looks
// at exported fields, so categories are represented by their canonical string.
type hashableDep struct {
	Head     int
	Category string
	ArgNum   int
	Arg      int
}

// Signature returns a hash string for a set of dependencies. Signatures are
// equal if and only if the sets of edges are equal (labels are ignored and
// duplicates are collapsed), independent of order.
func Signature(deps []ResolvedDependency) string {
	edges := make([]hashableDep, 0, len(deps))
	seen := make(map[Edge]bool, len(deps))
	for _, d := range deps {
		if seen[d.Edge()] {
			continue
		}
		seen[d.Edge()] = true
		edges = append(edges, hashableDep{
			Head:     d.Head,
			Category: d.Category.String(),
			ArgNum:   d.ArgNum,
			Arg:      d.Arg,
		})
	}
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		switch {
		case a.Head != b.Head:
			return a.Head < b.Head
		case a.Arg != b.Arg:
			return a.Arg < b.Arg
		case a.ArgNum != b.ArgNum:
			return a.ArgNum < b.ArgNum
		}
		return a.Category < b.Category
	})
	return fmt.Sprintf("%x", structhash.Md5(edges, 1))
}

// --- Dependency state of chart entries -------------------------------------

// Filler is a predicate waiting for an argument: the word at Head with category
// Category expects its argument number ArgNum.
type Filler struct {
	Head     int
	Category *Category
	ArgNum   int
}

// DepState is the dependency state of a constituent: its lexical heads and,
// for each outstanding argument i (1-based), the fillers waiting in Slots[i-1].
// Constituents resulting from coordination have more than one head.
//
// A DepState is treated as immutable once it has been stored in a chart.
type DepState struct {
	Heads []int
	Slots [][]Filler
}

// LexicalState returns the dependency state of a word carrying category c.
func LexicalState(word int, c *Category) DepState {
	st := DepState{
		Heads: []int{word},
		Slots: make([][]Filler, c.Arity()),
	}
	for i := range st.Slots {
		st.Slots[i] = []Filler{{Head: word, Category: c, ArgNum: i + 1}}
	}
	return st
}

// fill resolves the fillers of a slot with the given argument heads.
func fill(fillers []Filler, heads []int) []ResolvedDependency {
	if len(fillers) == 0 || len(heads) == 0 {
		return nil
	}
	deps := make([]ResolvedDependency, 0, len(fillers)*len(heads))
	for _, f := range fillers {
		for _, h := range heads {
			if f.Head == h {
				continue
			}
			deps = append(deps, ResolvedDependency{
				Head:        f.Head,
				Category:    f.Category,
				ArgNum:      f.ArgNum,
				Arg:         h,
				Label:       NoLabel,
				Preposition: NoPreposition,
			})
		}
	}
	return deps
}

// mergeSlots returns slots a[i] ∪ b[i] for i < n; missing slots count as empty.
func mergeSlots(n int, a, b [][]Filler) [][]Filler {
	slots := make([][]Filler, n)
	for i := 0; i < n; i++ {
		var s []Filler
		if i < len(a) {
			s = append(s, a[i]...)
		}
		if i < len(b) {
			for _, f := range b[i] {
				if !containsFiller(s, f) {
					s = append(s, f)
				}
			}
		}
		slots[i] = s
	}
	return slots
}

func containsFiller(fillers []Filler, f Filler) bool {
	for _, x := range fillers {
		if x == f {
			return true
		}
	}
	return false
}

// truncSlots returns a copy of the first n slots, padding with empty slots.
func truncSlots(slots [][]Filler, n int) [][]Filler {
	return mergeSlots(n, slots, nil)
}

// unionHeads returns the sorted union of two head lists.
func unionHeads(a, b []int) []int {
	heads := make([]int, 0, len(a)+len(b))
	heads = append(heads, a...)
	for _, h := range b {
		found := false
		for _, x := range heads {
			if x == h {
				found = true
				break
			}
		}
		if !found {
			heads = append(heads, h)
		}
	}
	sort.Ints(heads)
	return heads
}

// Head returns the leftmost head of a constituent, or -1.
func (st DepState) Head() int {
	if len(st.Heads) == 0 {
		return -1
	}
	return st.Heads[0]
}

// hashableState is the structhash view of a DepState.
type hashableState struct {
	Heads []int
	Slots [][]hashableFiller
}

type hashableFiller struct {
	Head     int
	Category int
	ArgNum   int
}

// Signature returns a hash string identifying a dependency state.
// Chart entries with equal category, rule and span are shared only if their
// dependency states have equal signatures.
func (st DepState) Signature() string {
	h := hashableState{Heads: st.Heads, Slots: make([][]hashableFiller, len(st.Slots))}
	for i, slot := range st.Slots {
		fs := make([]hashableFiller, len(slot))
		for j, f := range slot {
			fs[j] = hashableFiller{Head: f.Head, Category: f.Category.ID(), ArgNum: f.ArgNum}
		}
		sort.Slice(fs, func(a, b int) bool {
			if fs[a].Head != fs[b].Head {
				return fs[a].Head < fs[b].Head
			}
			if fs[a].ArgNum != fs[b].ArgNum {
				return fs[a].ArgNum < fs[b].ArgNum
			}
			return fs[a].Category < fs[b].Category
		})
		h.Slots[i] = fs
	}
	return fmt.Sprintf("%x", structhash.Md5(h, 1))
}
