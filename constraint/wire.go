package constraint

import (
	"fmt"

	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/ccg"
)

// Spec is the serialized form of a constraint, used by configuration files
// and the web API. Kind is one of "attach", "disjunctive" or "tag".
type Spec struct {
	Kind     string  `yaml:"kind" json:"kind"`
	Head     int     `yaml:"head,omitempty" json:"head,omitempty"`
	Arg      int     `yaml:"arg,omitempty" json:"arg,omitempty"`
	Args     []int   `yaml:"args,omitempty" json:"args,omitempty"`
	Word     int     `yaml:"word,omitempty" json:"word,omitempty"`
	Category string  `yaml:"cat,omitempty" json:"cat,omitempty"`
	Positive bool    `yaml:"positive" json:"positive"`
	Weight   float64 `yaml:"weight" json:"weight"`
}

// Constraint converts a spec to a constraint.
func (s Spec) Constraint() (Constraint, error) {
	switch s.Kind {
	case "attach", "attachment":
		return Attachment{Head: s.Head, Arg: s.Arg, IsPositive: s.Positive, Strength: s.Weight}, nil
	case "disjunctive":
		return DisjunctiveAttachment{Head: s.Head, Args: s.Args, IsPositive: s.Positive,
			Strength: s.Weight}, nil
	case "tag", "supertag":
		c, err := ccg.Parse(s.Category)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ccgsrl.ErrMalformedConstraint, err)
		}
		return Supertag{Word: s.Word, Category: c, IsPositive: s.Positive, Strength: s.Weight}, nil
	}
	return nil, fmt.Errorf("%w: unknown kind of constraint %q", ccgsrl.ErrMalformedConstraint, s.Kind)
}

// FromSpecs creates a set from serialized constraints.
func FromSpecs(specs []Spec) (*Set, error) {
	s := NewSet()
	for i, spec := range specs {
		c, err := spec.Constraint()
		if err != nil {
			return nil, fmt.Errorf("constraint #%d: %w", i, err)
		}
		s.Add(c)
	}
	return s, nil
}

// Specs serializes the constraints of s.
func (s *Set) Specs() []Spec {
	var specs []Spec
	for _, c := range s.Constraints() {
		switch c := c.(type) {
		case Attachment:
			specs = append(specs, Spec{Kind: "attach", Head: c.Head, Arg: c.Arg,
				Positive: c.IsPositive, Weight: c.Strength})
		case DisjunctiveAttachment:
			specs = append(specs, Spec{Kind: "disjunctive", Head: c.Head, Args: c.Args,
				Positive: c.IsPositive, Weight: c.Strength})
		case Supertag:
			specs = append(specs, Spec{Kind: "tag", Word: c.Word, Category: c.Category.String(),
				Positive: c.IsPositive, Weight: c.Strength})
		}
	}
	return specs
}
