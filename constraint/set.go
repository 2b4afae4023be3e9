package constraint

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/npillmayer/ccgsrl/ccg/chart"
	"github.com/npillmayer/ccgsrl/ccg/model"
	"github.com/npillmayer/ccgsrl/ccg/nbest"
	"github.com/npillmayer/ccgsrl/ccg/packed"
)

// Set is a collection of constraints for one sentence, free of duplicates and
// in insertion order. A nil *Set is an empty set.
type Set struct {
	items []Constraint
	index map[string]int
}

// NewSet creates a set from a list of constraints, dropping duplicates.
func NewSet(cs ...Constraint) *Set {
	s := &Set{index: make(map[string]int)}
	for _, c := range cs {
		s.Add(c)
	}
	return s
}

func identity(c Constraint) string {
	return fmt.Sprintf("%x", structhash.Md5(c.hashable(), 1))
}

// Add inserts c, if an identical constraint is not yet part of s. It returns
// true if c has been inserted.
func (s *Set) Add(c Constraint) bool {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	id := identity(c)
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = len(s.items)
	s.items = append(s.items, c)
	return true
}

// Len returns the number of constraints in s.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Constraints returns the constraints of s in insertion order.
func (s *Set) Constraints() []Constraint {
	if s == nil {
		return nil
	}
	return append([]Constraint(nil), s.items...)
}

// Validate checks every constraint of s against a sentence of n words and
// returns the first error found, wrapping ccgsrl.ErrMalformedConstraint.
func (s *Set) Validate(n int) error {
	for i, c := range s.Constraints() {
		if err := c.Validate(n); err != nil {
			return fmt.Errorf("constraint #%d (%s): %w", i, c, err)
		}
	}
	return nil
}

// Violations returns the constraints of s which p violates.
func (s *Set) Violations(p *nbest.Parse) []Constraint {
	var violated []Constraint
	for _, c := range s.Constraints() {
		if c.Violated(p) {
			violated = append(violated, c)
		}
	}
	return violated
}

// Penalty is the sum of the weights of the constraints which p violates.
func (s *Set) Penalty(p *nbest.Parse) float64 {
	penalty := 0.0
	for _, c := range s.Violations(p) {
		penalty += c.Weight()
	}
	return penalty
}

// --- Normalization ---------------------------------------------------------

type pair struct{ lo, hi int }

func pairOf(a, b int) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

// Normalize returns a copy of s with contradicting or redundant evidence
// removed:
//
// ■ attachments of a word to itself are dropped, as are such arguments of
// disjunctive attachments,
//
// ■ a negative attachment is dropped if a positive one exists for the same pair
// of words,
//
// ■ a disjunctive attachment is dropped if any of its pairs is subject to an
// explicit attachment constraint.
func (s *Set) Normalize() *Set {
	positive := make(map[pair]bool)
	explicit := make(map[pair]bool)
	for _, c := range s.Constraints() {
		if a, ok := c.(Attachment); ok && a.Head != a.Arg {
			explicit[pairOf(a.Head, a.Arg)] = true
			if a.IsPositive {
				positive[pairOf(a.Head, a.Arg)] = true
			}
		}
	}
	norm := NewSet()
	for _, c := range s.Constraints() {
		switch c := c.(type) {
		case Attachment:
			if c.Head == c.Arg || !c.IsPositive && positive[pairOf(c.Head, c.Arg)] {
				tracer().Debugf("dropping constraint %s", c)
				continue
			}
			norm.Add(c)
		case DisjunctiveAttachment:
			var args []int
			overlaps := false
			for _, a := range c.Args {
				if a == c.Head {
					continue
				}
				overlaps = overlaps || explicit[pairOf(c.Head, a)]
				args = append(args, a)
			}
			if overlaps || len(args) == 0 {
				tracer().Debugf("dropping constraint %s", c)
				continue
			}
			c.Args = args
			norm.Add(c)
		case Supertag:
			norm.Add(c)
		}
	}
	return norm
}

// Penalties converts the normalized constraints of s into penalty tables for
// constrained decoding of forest f:
//
// ■ a positive attachment becomes a must-link,
//
// ■ a negative attachment becomes a cannot-link in both directions, as does
// every pair of a negative disjunctive attachment,
//
// ■ a positive disjunctive attachment becomes a must-link for each of its
// arguments and penalizes attaching more than one of them,
//
// ■ a supertag constraint penalizes every leaf category of the word in f which
// contradicts it.
func (s *Set) Penalties(f *packed.Forest) *model.Penalties {
	pen := model.NewPenalties(f.Len())
	leaves := leafCategories(f)
	for _, c := range s.Normalize().Constraints() {
		switch c := c.(type) {
		case Attachment:
			if c.IsPositive {
				pen.MustLink.Accumulate(c.Head, c.Arg, c.Strength)
			} else {
				pen.CannotLink.Accumulate(c.Head, c.Arg, c.Strength)
				pen.CannotLink.Accumulate(c.Arg, c.Head, c.Strength)
			}
		case DisjunctiveAttachment:
			if c.IsPositive {
				// a must-link per argument, plus a penalty for attaching more than one
				pen.Disjunctive = append(pen.Disjunctive, model.DisjunctivePenalty{
					Head: c.Head, Args: c.Args, Weight: c.Strength,
				})
				for _, a := range c.Args {
					pen.MustLink.Accumulate(c.Head, a, c.Strength)
				}
				continue
			}
			for _, a := range c.Args {
				pen.CannotLink.Accumulate(c.Head, a, c.Strength)
				pen.CannotLink.Accumulate(a, c.Head, c.Strength)
			}
		case Supertag:
			for _, cat := range leaves[c.Word] {
				if (cat == c.Category) != c.IsPositive {
					pen.PenalizeSupertag(c.Word, cat, c.Strength)
				}
			}
		}
	}
	return pen
}

// leafCategories collects the supertags per word present in f.
func leafCategories(f *packed.Forest) map[int][]*ccg.Category {
	leaves := make(map[int][]*ccg.Category)
	for id := packed.NodeID(0); int(id) < f.NodeCount(); id++ {
		n := f.Node(id)
		for _, alt := range n.Alternatives {
			if lex, ok := alt.Value.(chart.Lexical); ok {
				leaves[lex.Word] = append(leaves[lex.Word], n.Category)
				break
			}
		}
	}
	return leaves
}
