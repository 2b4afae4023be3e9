package ccg

import (
	"fmt"
	"strings"

	"github.com/npillmayer/ccgsrl"
)

// UnaryRule is a type-changing or type-raising rule From ⇒ To.
type UnaryRule struct {
	ID   int
	From *Category
	To   *Category
	Rule RuleClass // Unary, FwdTypeRaise or BwdTypeRaise
}

func (u UnaryRule) String() string {
	return fmt.Sprintf("#%d %s ⇒ %s (%s)", u.ID, u.From, u.To, u.Rule)
}

// DefaultUnaryRules are the type-changing rules used if a client does not
// configure any. Every rule is written as "from  to".
var DefaultUnaryRules = []string{
	`N  NP`,
	`S[pss]\NP  NP\NP`,
	`S[ng]\NP  NP\NP`,
	`S[adj]\NP  NP\NP`,
	`S[to]\NP  NP\NP`,
	`S[to]\NP  N\N`,
	`S[dcl]/NP  NP\NP`,
	`S[ng]\NP  (S\NP)\(S\NP)`,
	`S[pss]\NP  (S\NP)\(S\NP)`,
}

// TypeRaisingRules are added to the unary rules if type raising is enabled.
var TypeRaisingRules = []string{
	`NP  S/(S\NP)`,
	`NP  (S\NP)\((S\NP)/NP)`,
	`PP  (S\NP)\((S\NP)/PP)`,
}

// DefaultCombinators are the binary rules of a grammar created without options.
var DefaultCombinators = []RuleClass{FwdApp, BwdApp, FwdComp, BwdComp, BwdXComp,
	Conjunction, LeftPunct, RightPunct}

// Grammar is a rule table: binary combinators and unary rules. A grammar is
// read-only after construction and may be shared between goroutines.
type Grammar struct {
	binary []RuleClass
	unary  []UnaryRule
}

// Option configures a grammar.
type Option func(*Grammar) error

// NewGrammar creates a grammar with the default combinators and unary rules,
// modified by options.
func NewGrammar(opts ...Option) (*Grammar, error) {
	g := &Grammar{
		binary: append([]RuleClass(nil), DefaultCombinators...),
	}
	if err := WithUnaryRules(DefaultUnaryRules)(g); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// MustGrammar is like NewGrammar, but panics on error.
func MustGrammar(opts ...Option) *Grammar {
	g, err := NewGrammar(opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// GrammarFor creates a grammar from a run configuration.
func GrammarFor(conf ccgsrl.Config) (*Grammar, error) {
	var opts []Option
	if conf.UnaryRules != nil {
		opts = append(opts, WithUnaryRules(conf.UnaryRules))
	}
	if conf.TypeRaising {
		opts = append(opts, WithTypeRaising())
	}
	return NewGrammar(opts...)
}

// WithCombinators replaces the binary rules of a grammar.
func WithCombinators(rules ...RuleClass) Option {
	return func(g *Grammar) error {
		for _, r := range rules {
			if !r.IsBinary() {
				return fmt.Errorf("%s is not a binary rule", r)
			}
		}
		g.binary = append([]RuleClass(nil), rules...)
		return nil
	}
}

// WithUnaryRules replaces the type-changing rules of a grammar.
func WithUnaryRules(rules []string) Option {
	return func(g *Grammar) error {
		var kept []UnaryRule
		for _, u := range g.unary {
			if u.Rule != Unary {
				u.ID = len(kept)
				kept = append(kept, u)
			}
		}
		g.unary = kept
		return g.addUnary(rules, Unary)
	}
}

// WithTypeRaising adds the type-raising rules to a grammar.
func WithTypeRaising() Option {
	return func(g *Grammar) error {
		return g.addUnary(TypeRaisingRules, FwdTypeRaise)
	}
}

func (g *Grammar) addUnary(rules []string, class RuleClass) error {
	for _, line := range rules {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return fmt.Errorf("malformed unary rule %q", line)
		}
		from, err := Parse(fields[0])
		if err != nil {
			return err
		}
		to, err := Parse(fields[1])
		if err != nil {
			return err
		}
		rule := class
		if class != Unary && to.slash == Bwd {
			rule = BwdTypeRaise
		}
		u := UnaryRule{ID: len(g.unary), From: from, To: to, Rule: rule}
		tracer().Debugf("unary rule %s", u)
		g.unary = append(g.unary, u)
	}
	return nil
}

// Combinators returns the binary rules of g.
func (g *Grammar) Combinators() []RuleClass {
	return append([]RuleClass(nil), g.binary...)
}

// UnaryRules returns all unary rules of g, ordered by ID.
func (g *Grammar) UnaryRules() []UnaryRule {
	return append([]UnaryRule(nil), g.unary...)
}

// UnaryRule returns the unary rule with a given ID.
func (g *Grammar) UnaryRule(id int) (UnaryRule, bool) {
	if id < 0 || id >= len(g.unary) {
		return UnaryRule{}, false
	}
	return g.unary[id], true
}

// UnaryRulesFor returns the unary rules applicable to category c.
func (g *Grammar) UnaryRulesFor(c *Category) []UnaryRule {
	var rules []UnaryRule
	for _, u := range g.unary {
		if u.From.Matches(c) {
			rules = append(rules, u)
		}
	}
	return rules
}

// ApplyUnary applies the unary rules of g to a chart entry. Outputs of unary
// rules are not subject to further unary rules, so no rule is ever applied to
// its own output.
func (g *Grammar) ApplyUnary(e Entry) []Result {
	if e.Rule.IsUnary() || e.Rule == Conjunction {
		return nil
	}
	var results []Result
	for _, u := range g.UnaryRulesFor(e.Category) {
		if u.To == e.Category {
			continue
		}
		st := DepState{Heads: e.State.Heads}
		if u.Rule == Unary {
			st.Slots = truncSlots(e.State.Slots, u.To.Arity())
		} else {
			st.Slots = make([][]Filler, u.To.Arity())
		}
		results = append(results, Result{Category: u.To, Rule: u.Rule, State: st, UnaryID: u.ID})
	}
	return results
}
