package constraint

import (
	"fmt"
	"math"
	"sort"

	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/npillmayer/ccgsrl/ccg/nbest"
)

// Constraint is one of Attachment, DisjunctiveAttachment or Supertag.
type Constraint interface {
	Positive() bool
	Weight() float64
	// Violated is true if parse p does not satisfy the constraint.
	Violated(p *nbest.Parse) bool
	// Validate checks the constraint against a sentence of n words.
	Validate(n int) error
	String() string
	hashable() hashableConstraint
}

// Attachment requires (or forbids) a dependency between Head and Arg.
type Attachment struct {
	Head, Arg  int
	IsPositive bool
	Strength   float64
}

// DisjunctiveAttachment requires Head to attach to at least one of Args, or
// forbids it to attach to any of them.
type DisjunctiveAttachment struct {
	Head       int
	Args       []int
	IsPositive bool
	Strength   float64
}

// Supertag requires (or forbids) category Category for word Word.
type Supertag struct {
	Word       int
	Category   *ccg.Category
	IsPositive bool
	Strength   float64
}

// Positive is true for constraints requiring an attachment.
func (c Attachment) Positive() bool { return c.IsPositive }

// Weight returns the penalty for violating c.
func (c Attachment) Weight() float64 { return c.Strength }

// Violated is true if the presence of the dependency contradicts c.
func (c Attachment) Violated(p *nbest.Parse) bool {
	return p.HasEdge(c.Head, c.Arg) != c.IsPositive
}

// Validate checks the word indices of c.
func (c Attachment) Validate(n int) error {
	if err := checkWord(c.Head, n); err != nil {
		return err
	}
	if err := checkWord(c.Arg, n); err != nil {
		return err
	}
	return checkWeight(c.Strength)
}

func (c Attachment) String() string {
	return fmt.Sprintf("%s attach(%d,%d) w=%g", sign(c.IsPositive), c.Head, c.Arg, c.Strength)
}

// Positive is true for constraints requiring an attachment.
func (c DisjunctiveAttachment) Positive() bool { return c.IsPositive }

// Weight returns the penalty for violating c.
func (c DisjunctiveAttachment) Weight() float64 { return c.Strength }

// Violated is true if a positive c has none of its dependencies in p, or a
// negative c has any of them.
func (c DisjunctiveAttachment) Violated(p *nbest.Parse) bool {
	any := false
	for _, a := range c.Args {
		if p.HasEdge(c.Head, a) {
			any = true
			break
		}
	}
	return any != c.IsPositive
}

// Validate checks the word indices of c.
func (c DisjunctiveAttachment) Validate(n int) error {
	if err := checkWord(c.Head, n); err != nil {
		return err
	}
	if len(c.Args) == 0 {
		return fmt.Errorf("%w: disjunctive attachment without arguments", ccgsrl.ErrMalformedConstraint)
	}
	for _, a := range c.Args {
		if err := checkWord(a, n); err != nil {
			return err
		}
	}
	return checkWeight(c.Strength)
}

func (c DisjunctiveAttachment) String() string {
	return fmt.Sprintf("%s attach(%d,%v) w=%g", sign(c.IsPositive), c.Head, c.Args, c.Strength)
}

// Positive is true for constraints requiring a category.
func (c Supertag) Positive() bool { return c.IsPositive }

// Weight returns the penalty for violating c.
func (c Supertag) Weight() float64 { return c.Strength }

// Violated is true if the supertag of the word contradicts c.
func (c Supertag) Violated(p *nbest.Parse) bool {
	return (p.Category(c.Word) == c.Category) != c.IsPositive
}

// Validate checks the word index and the category of c.
func (c Supertag) Validate(n int) error {
	if err := checkWord(c.Word, n); err != nil {
		return err
	}
	if c.Category == nil {
		return fmt.Errorf("%w: supertag constraint without category", ccgsrl.ErrMalformedConstraint)
	}
	return checkWeight(c.Strength)
}

func (c Supertag) String() string {
	return fmt.Sprintf("%s tag(%d,%s) w=%g", sign(c.IsPositive), c.Word, c.Category, c.Strength)
}

func checkWord(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: word index %d outside of sentence of length %d",
			ccgsrl.ErrMalformedConstraint, i, n)
	}
	return nil
}

func checkWeight(w float64) error {
	if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return fmt.Errorf("%w: weight %g", ccgsrl.ErrMalformedConstraint, w)
	}
	return nil
}

func sign(positive bool) string {
	if positive {
		return "+"
	}
	return "-"
}

// --- Structural identity ---------------------------------------------------

type hashableConstraint struct {
	Kind     string
	Head     int
	Args     []int
	Category string
	Positive bool
	Weight   float64
}

func (c Attachment) hashable() hashableConstraint {
	return hashableConstraint{Kind: "attach", Head: c.Head, Args: []int{c.Arg},
		Positive: c.IsPositive, Weight: c.Strength}
}

func (c DisjunctiveAttachment) hashable() hashableConstraint {
	args := append([]int(nil), c.Args...)
	sort.Ints(args)
	return hashableConstraint{Kind: "disjunctive", Head: c.Head, Args: args,
		Positive: c.IsPositive, Weight: c.Strength}
}

func (c Supertag) hashable() hashableConstraint {
	return hashableConstraint{Kind: "tag", Head: c.Word, Category: c.Category.String(),
		Positive: c.IsPositive, Weight: c.Strength}
}
