package ccg

import (
	"fmt"
	"strings"
)

// Slash is the direction a functor category looks for its argument.
type Slash int8

// Functors take their argument either from the right (/) or from the left (\).
const (
	NoSlash Slash = iota
	Fwd
	Bwd
)

func (s Slash) String() string {
	switch s {
	case Fwd:
		return "/"
	case Bwd:
		return `\`
	}
	return ""
}

// Category is a CCG category. Categories are immutable and interned: create them
// with Parse, Atom or Functor only.
type Category struct {
	id      int // serial number of interning
	base    string
	feature string
	result  *Category
	arg     *Category
	slash   Slash
	arity   int
	str     string
}

// ID returns the interning serial of a category. IDs are stable for the lifetime
// of the process and are used for deterministic ordering.
func (c *Category) ID() int {
	return c.id
}

// IsAtomic is true for categories without arguments, e.g. NP or S[dcl].
func (c *Category) IsAtomic() bool {
	return c.slash == NoSlash
}

// IsFunctor is true for categories with arguments.
func (c *Category) IsFunctor() bool {
	return c.slash != NoSlash
}

// Base returns the atom of an atomic category, without features.
func (c *Category) Base() string {
	return c.base
}

// Feature returns the feature of an atomic category (e.g., 'dcl' for S[dcl])
// or "".
func (c *Category) Feature() string {
	return c.feature
}

// Result returns X for X/Y and X\Y, and nil for atomic categories.
func (c *Category) Result() *Category {
	return c.result
}

// Argument returns Y for X/Y and X\Y, and nil for atomic categories.
func (c *Category) Argument() *Category {
	return c.arg
}

// Slash returns the direction of a functor.
func (c *Category) Slash() Slash {
	return c.slash
}

// Arity is the number of arguments of a category.
func (c *Category) Arity() int {
	return c.arity
}

// Arg returns the category of argument n, with 1 ≤ n ≤ Arity(). Argument 1 is
// the innermost one. Arg(0) returns the innermost result, i.e. the atomic
// category the functor finally yields. Out-of-range arguments return nil.
func (c *Category) Arg(n int) *Category {
	if n < 0 || n > c.arity {
		return nil
	}
	for c.arity > n {
		c = c.result
	}
	if n == 0 {
		return c
	}
	return c.arg
}

// IsModifier is true for categories X/X and X\X.
func (c *Category) IsModifier() bool {
	return c.IsFunctor() && c.result == c.arg
}

// IsPunctuation is true for the punctuation atoms of CCGbank.
func (c *Category) IsPunctuation() bool {
	if !c.IsAtomic() {
		return false
	}
	switch c.base {
	case ",", ".", ";", ":", "LRB", "RRB", "LQU", "RQU":
		return true
	}
	return false
}

// IsConj is true for the conjunction atom and for punctuation acting as one.
func (c *Category) IsConj() bool {
	return c.IsAtomic() && (c.base == "conj" || c.base == "," || c.base == ";")
}

// Matches is true if c and other are structurally equal, treating a missing
// feature (and the variable feature X) as a wildcard.
// Matches is symmetric.
func (c *Category) Matches(other *Category) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil || c.slash != other.slash {
		return false
	}
	if c.IsAtomic() {
		if c.base != other.base {
			return false
		}
		return c.feature == other.feature || isVariable(c.feature) || isVariable(other.feature)
	}
	return c.result.Matches(other.result) && c.arg.Matches(other.arg)
}

func isVariable(feature string) bool {
	return feature == "" || feature == "X"
}

// HasFinalResult is true if the innermost result of c has the given base atom.
func (c *Category) HasFinalResult(base string) bool {
	return c.Arg(0).base == base
}

// String returns the canonical textual form of a category.
func (c *Category) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.str
}

func canonical(base, feature string, result *Category, slash Slash, arg *Category) string {
	if slash == NoSlash {
		if feature == "" {
			return base
		}
		return fmt.Sprintf("%s[%s]", base, feature)
	}
	var b strings.Builder
	b.WriteString(parenthesized(result))
	b.WriteString(slash.String())
	b.WriteString(parenthesized(arg))
	return b.String()
}

func parenthesized(c *Category) string {
	if c.IsFunctor() {
		return "(" + c.str + ")"
	}
	return c.str
}
