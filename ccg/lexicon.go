package ccg

import (
	"sync"
)

// Categories are interned in a process-wide table. Chart construction creates
// new categories during composition, possibly for many sentences in parallel,
// therefore the table is guarded by a lock.

// categoryTable is a table to store interned categories (map-like semantics).
type categoryTable struct {
	sync.RWMutex
	table  map[string]*Category
	serial int
}

var categories = newCategoryTable()

func newCategoryTable() *categoryTable {
	return &categoryTable{
		table: make(map[string]*Category, 512),
	}
}

// resolve checks for a category in the table.
// Returns a category or nil.
func (t *categoryTable) resolve(name string) *Category {
	t.RLock()
	c := t.table[name]
	t.RUnlock()
	return c
}

// resolveOrDefine finds a category in the table, inserts a new one if not found.
// Returns the category and a flag, signalling whether it has already been present.
func (t *categoryTable) resolveOrDefine(base, feature string, result *Category, slash Slash,
	arg *Category) (*Category, bool) {
	//
	name := canonical(base, feature, result, slash, arg)
	if c := t.resolve(name); c != nil {
		return c, true
	}
	t.Lock()
	defer t.Unlock()
	if c, ok := t.table[name]; ok { // inserted concurrently
		return c, true
	}
	c := &Category{
		id:      t.serial,
		base:    base,
		feature: feature,
		result:  result,
		arg:     arg,
		slash:   slash,
		str:     name,
	}
	if slash != NoSlash {
		c.arity = result.arity + 1
	}
	t.serial++
	t.table[name] = c
	return c, false
}

// size counts the categories in the table.
func (t *categoryTable) size() int {
	t.RLock()
	defer t.RUnlock()
	return len(t.table)
}

// --- Constructors ----------------------------------------------------------

// Atom returns the interned atomic category with a given base and feature.
// feature may be empty.
func Atom(base, feature string) *Category {
	c, _ := categories.resolveOrDefine(base, feature, nil, NoSlash, nil)
	return c
}

// Functor returns the interned functor category result/arg or result\arg.
func Functor(result *Category, slash Slash, arg *Category) *Category {
	if result == nil || arg == nil || slash == NoSlash {
		panic("ccg.Functor called with incomplete arguments")
	}
	c, _ := categories.resolveOrDefine("", "", result, slash, arg)
	return c
}

// Lookup finds an already interned category by its canonical textual form.
func Lookup(name string) *Category {
	return categories.resolve(name)
}

// CategoryCount returns the number of categories interned so far.
func CategoryCount() int {
	return categories.size()
}

// Frequently used atoms.
var (
	NP   = Atom("NP", "")
	N    = Atom("N", "")
	PP   = Atom("PP", "")
	S    = Atom("S", "")
	Conj = Atom("conj", "")
	SDcl = Atom("S", "dcl")
)
