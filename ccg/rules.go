package ccg

import (
	"fmt"

	"github.com/npillmayer/ccgsrl"
)

// RuleClass identifies the rule which produced a chart entry.
type RuleClass int8

// Rule classes. Lexical marks entries for words, all other classes are
// unary or binary rules.
const (
	Lexical RuleClass = iota
	Unary
	FwdTypeRaise
	BwdTypeRaise
	FwdApp
	BwdApp
	FwdComp
	BwdComp
	FwdXComp
	BwdXComp
	Conjunction
	Coordination
	LeftPunct
	RightPunct
	numRuleClasses
)

var ruleNames = [numRuleClasses]string{"lex", "unary", ">T", "<T", ">", "<", ">B", "<B",
	">Bx", "<Bx", "conj", "Φ", "lp", "rp"}

func (r RuleClass) String() string {
	if r < 0 || r >= numRuleClasses {
		return fmt.Sprintf("rule(%d)", int(r))
	}
	return ruleNames[r]
}

// IsUnary is true for rule classes of unary rules.
func (r RuleClass) IsUnary() bool {
	return r == Unary || r == FwdTypeRaise || r == BwdTypeRaise
}

// IsBinary is true for rule classes of binary combinators.
func (r RuleClass) IsBinary() bool {
	return r >= FwdApp && r < numRuleClasses
}

// Entry is the view of a chart entry the grammar needs to combine it.
type Entry struct {
	Category *Category
	Rule     RuleClass
	State    DepState
	Span     ccgsrl.Span
}

// Result is the outcome of a successful rule application.
type Result struct {
	Category *Category
	Rule     RuleClass
	State    DepState
	Deps     []ResolvedDependency // dependencies resolved by this application
	UnaryID  int                  // rule ID for results of unary rules
}

// Combination is a category-level rule application, ignoring dependencies
// and normal form.
type Combination struct {
	Category *Category
	Rule     RuleClass
}

// CombineCategories returns all results of combining two adjacent categories
// with the binary combinators of g. Coordination is not included, as it
// depends on the rule which produced the right category.
func (g *Grammar) CombineCategories(left, right *Category) []Combination {
	var combs []Combination
	for _, rule := range g.binary {
		if c := combineCats(rule, left, right); c != nil {
			combs = append(combs, Combination{Category: c, Rule: rule})
		}
	}
	return combs
}

// combineCats applies a single combinator on the category level.
func combineCats(rule RuleClass, left, right *Category) *Category {
	switch rule {
	case FwdApp: // X/Y Y ⇒ X
		if left.slash == Fwd && left.arg.Matches(right) {
			if left.IsModifier() {
				return right
			}
			return left.result
		}
	case BwdApp: // Y X\Y ⇒ X
		if right.slash == Bwd && right.arg.Matches(left) {
			if right.IsModifier() {
				return left
			}
			return right.result
		}
	case FwdComp: // X/Y Y/Z ⇒ X/Z
		if left.slash == Fwd && right.slash == Fwd && left.arg.Matches(right.result) {
			if left.IsModifier() {
				return right
			}
			return Functor(left.result, Fwd, right.arg)
		}
	case BwdComp: // Y\Z X\Y ⇒ X\Z
		if left.slash == Bwd && right.slash == Bwd && right.arg.Matches(left.result) {
			if right.IsModifier() {
				return left
			}
			return Functor(right.result, Bwd, left.arg)
		}
	case FwdXComp: // X/Y Y\Z ⇒ X\Z
		if left.slash == Fwd && right.slash == Bwd && left.arg.Matches(right.result) &&
			left.arg.HasFinalResult("S") {
			if left.IsModifier() {
				return right
			}
			return Functor(left.result, Bwd, right.arg)
		}
	case BwdXComp: // Y/Z X\Y ⇒ X/Z
		if left.slash == Fwd && right.slash == Bwd && right.arg.Matches(left.result) &&
			right.arg.HasFinalResult("S") {
			if right.IsModifier() {
				return left
			}
			return Functor(right.result, Fwd, left.arg)
		}
	case Conjunction: // conj X ⇒ X\X
		if left.IsConj() && !right.IsPunctuation() && !right.IsConj() {
			return Functor(right, Bwd, right)
		}
	case LeftPunct: // , X ⇒ X
		if left.IsPunctuation() && !right.IsPunctuation() && !right.IsConj() {
			return right
		}
	case RightPunct: // X , ⇒ X
		if right.IsPunctuation() && !left.IsPunctuation() && !left.IsConj() {
			return left
		}
	}
	return nil
}

// Combine combines two adjacent chart entries. It respects the normal form
// (see Licensed) and resolves the dependencies created by every application.
func (g *Grammar) Combine(left, right Entry) []Result {
	var results []Result
	if right.Rule == Conjunction {
		if Licensed(Coordination, left.Rule, right.Rule) {
			if r, ok := coordinate(left, right); ok {
				results = append(results, r)
			}
		}
		return results
	}
	for _, rule := range g.binary {
		if !Licensed(rule, left.Rule, right.Rule) {
			continue
		}
		c := combineCats(rule, left.Category, right.Category)
		if c == nil {
			continue
		}
		r, ok := resolve(rule, c, left, right)
		if !ok {
			continue
		}
		results = append(results, r)
	}
	return results
}

// resolve computes the dependency state and the resolved dependencies of
// a binary rule application with result category c.
func resolve(rule RuleClass, c *Category, left, right Entry) (Result, bool) {
	r := Result{Category: c, Rule: rule}
	switch rule {
	case FwdApp:
		r.State, r.Deps = apply(left, right, c)
	case BwdApp:
		r.State, r.Deps = apply(right, left, c)
	case FwdComp, FwdXComp:
		if left.Rule == FwdTypeRaise {
			return composeRaised(rule, left, right)
		}
		r.State, r.Deps = compose(left, right, c)
	case BwdComp, BwdXComp:
		if right.Rule == BwdTypeRaise {
			return composeRaised(rule, right, left)
		}
		r.State, r.Deps = compose(right, left, c)
	case Conjunction:
		r.State = DepState{
			Heads: right.State.Heads,
			Slots: truncSlots(right.State.Slots, c.Arity()),
		}
	case LeftPunct:
		r.State = right.State
	case RightPunct:
		r.State = left.State
	default:
		return r, false
	}
	return r, true
}

// apply resolves functor application: the outermost slot of the functor is
// filled with the heads of the argument. A modifier passes on the heads of
// its argument and adds its own fillers to the argument's slots. Determiners
// pass on the head of their noun as well.
func apply(functor, arg Entry, c *Category) (DepState, []ResolvedDependency) {
	n := functor.Category.Arity()
	deps := fill(functor.State.Slots[n-1], arg.State.Heads)
	if functor.Category.IsModifier() || isDeterminer(functor.Category) {
		return DepState{
			Heads: arg.State.Heads,
			Slots: mergeSlots(c.Arity(), arg.State.Slots, functor.State.Slots[:n-1]),
		}, deps
	}
	return DepState{
		Heads: functor.State.Heads,
		Slots: truncSlots(functor.State.Slots, n-1),
	}, deps
}

// isDeterminer is true for NP/N, with any features.
func isDeterminer(c *Category) bool {
	return c.slash == Fwd && c.result.IsAtomic() && c.result.base == "NP" &&
		c.arg.IsAtomic() && c.arg.base == "N"
}

// compose resolves composition X|Y Y|Z ⇒ X|Z: the functor's outermost slot is
// filled with the heads of the secondary functor, whose own outermost slot (Z)
// becomes the outermost slot of the result.
func compose(functor, secondary Entry, c *Category) (DepState, []ResolvedDependency) {
	n := functor.Category.Arity()
	m := secondary.Category.Arity()
	deps := fill(functor.State.Slots[n-1], secondary.State.Heads)
	z := secondary.State.Slots[m-1]
	if functor.Category.IsModifier() || isDeterminer(functor.Category) {
		slots := mergeSlots(m-1, secondary.State.Slots[:m-1], functor.State.Slots[:n-1])
		return DepState{
			Heads: secondary.State.Heads,
			Slots: append(slots, z),
		}, deps
	}
	slots := truncSlots(functor.State.Slots, n-1)
	return DepState{
		Heads: functor.State.Heads,
		Slots: append(slots, z),
	}, deps
}

// composeRaised resolves composition with a type-raised functor T|(T|A). The
// raised constituent fills slot A of the secondary functor (T|A)|Z; the result
// T|Z is headed by the secondary functor. The result category is rebuilt from the
// secondary functor's T, to propagate its features.
func composeRaised(rule RuleClass, raised, secondary Entry) (Result, bool) {
	m := secondary.Category.Arity()
	inner := secondary.Category.result // T|A
	if m < 2 || inner.IsAtomic() {
		return Result{}, false
	}
	t := inner.result
	var c *Category
	switch rule {
	case FwdComp:
		c = Functor(t, Fwd, secondary.Category.arg)
	case FwdXComp:
		c = Functor(t, Bwd, secondary.Category.arg)
	case BwdComp:
		c = Functor(t, Bwd, secondary.Category.arg)
	case BwdXComp:
		c = Functor(t, Fwd, secondary.Category.arg)
	}
	deps := fill(secondary.State.Slots[m-2], raised.State.Heads)
	slots := truncSlots(secondary.State.Slots, m-2)
	slots = append(slots, secondary.State.Slots[m-1])
	return Result{
		Category: c,
		Rule:     rule,
		State:    DepState{Heads: secondary.State.Heads, Slots: slots},
		Deps:     deps,
	}, true
}

// coordinate resolves X X[conj] ⇒ X. Heads and slots of the conjuncts are
// united, thus arguments outside the coordination later attach to both.
func coordinate(left, right Entry) (Result, bool) {
	rc := right.Category
	if !rc.IsModifier() || rc.slash != Bwd || !rc.arg.Matches(left.Category) {
		return Result{}, false
	}
	n := left.Category.Arity()
	return Result{
		Category: left.Category,
		Rule:     Coordination,
		State: DepState{
			Heads: unionHeads(left.State.Heads, right.State.Heads),
			Slots: mergeSlots(n, left.State.Slots, right.State.Slots),
		},
	}, true
}

// --- Normal form -----------------------------------------------------------

// normalForm[rule][left][right] is false for combinations which would produce
// derivations equivalent to ones the chart already contains.
var normalForm [numRuleClasses][numRuleClasses][numRuleClasses]bool

func init() {
	for rule := FwdApp; rule < numRuleClasses; rule++ {
		for l := Lexical; l < numRuleClasses; l++ {
			for r := Lexical; r < numRuleClasses; r++ {
				normalForm[rule][l][r] = licensed(rule, l, r)
			}
		}
	}
}

func licensed(rule, left, right RuleClass) bool {
	switch {
	case left == Conjunction: // X[conj] only as right conjunct
		return false
	case right == Conjunction:
		return rule == Coordination
	case rule == Coordination:
		return false
	}
	// Eisner normal form: the output of forward composition is not the primary
	// functor of a forward rule, same for backward.
	if (left == FwdComp || left == FwdXComp) && (rule == FwdApp || rule == FwdComp || rule == FwdXComp) {
		return false
	}
	if (right == BwdComp || right == BwdXComp) && (rule == BwdApp || rule == BwdComp || rule == BwdXComp) {
		return false
	}
	// a type-raised functor does not apply to its argument
	if left == FwdTypeRaise && rule == FwdApp || right == BwdTypeRaise && rule == BwdApp {
		return false
	}
	// punctuation: absorb right punctuation first
	if rule == LeftPunct && right == RightPunct {
		return false
	}
	return true
}

// Licensed is true if rule may combine a left child produced by rule class left
// with a right child produced by rule class right.
func Licensed(rule, left, right RuleClass) bool {
	if rule < 0 || rule >= numRuleClasses || left < 0 || left >= numRuleClasses ||
		right < 0 || right >= numRuleClasses {
		return false
	}
	return normalForm[rule][left][right]
}
