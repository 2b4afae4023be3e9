package ccg

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// RootSet is the set of categories permitted at the root of a derivation.
// It is ordered by interning serial, which makes iteration deterministic.
type RootSet struct {
	set *treeset.Set
}

func categoryComparator(a, b interface{}) int {
	return utils.IntComparator(a.(*Category).ID(), b.(*Category).ID())
}

// NewRootSet creates a root set from the textual form of categories.
func NewRootSet(names []string) (*RootSet, error) {
	cats, err := ParseAll(names)
	if err != nil {
		return nil, err
	}
	return RootSetOf(cats...), nil
}

// MustRootSet is like NewRootSet, but panics on error.
func MustRootSet(names ...string) *RootSet {
	rs, err := NewRootSet(names)
	if err != nil {
		panic(err)
	}
	return rs
}

// RootSetOf creates a root set from categories.
func RootSetOf(cats ...*Category) *RootSet {
	rs := &RootSet{set: treeset.NewWith(categoryComparator)}
	for _, c := range cats {
		rs.set.Add(c)
	}
	return rs
}

// Contains is true if c is a permitted root category.
func (rs *RootSet) Contains(c *Category) bool {
	if rs == nil || c == nil {
		return false
	}
	return rs.set.Contains(c)
}

// Size returns the number of root categories.
func (rs *RootSet) Size() int {
	return rs.set.Size()
}

// Categories returns the root categories in deterministic order.
func (rs *RootSet) Categories() []*Category {
	values := rs.set.Values()
	cats := make([]*Category, len(values))
	for i, v := range values {
		cats[i] = v.(*Category)
	}
	return cats
}

func (rs *RootSet) String() string {
	var names []string
	for _, c := range rs.Categories() {
		names = append(names, c.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}
