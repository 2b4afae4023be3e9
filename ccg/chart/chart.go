package chart

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/ccg"
)

// KeyID addresses a Key within the arena of a chart.
type KeyID int

// NoKey is the null value for KeyIDs.
const NoKey KeyID = -1

// Key is a chart entry: a category derived over a span by a rule class. Keys
// with equal span, category and rule class are distinct only if they carry
// different dependency states.
type Key struct {
	ID       KeyID
	Span     ccgsrl.Span
	Category *ccg.Category
	Rule     ccg.RuleClass
	State    ccg.DepState
}

// Entry returns the view of k which the grammar combines.
func (k *Key) Entry() ccg.Entry {
	return ccg.Entry{Category: k.Category, Rule: k.Rule, State: k.State, Span: k.Span}
}

func (k *Key) String() string {
	return fmt.Sprintf("#%d %s %s %s", k.ID, k.Span, k.Category, k.Rule)
}

// Value is a derivation of a key. It is one of Lexical, Unary or Binary.
type Value interface {
	Children() []KeyID
	isValue()
}

// Lexical is a supertag of the word at index Word.
type Lexical struct {
	Word    int
	LogProb float64
}

// Unary applies the unary rule RuleID to Child, which has the same span.
type Unary struct {
	Child  KeyID
	RuleID int
}

// Binary combines two adjacent children with Rule. Deps are the dependencies
// resolved by this combination.
type Binary struct {
	Left, Right KeyID
	Rule        ccg.RuleClass
	Deps        []ccg.ResolvedDependency
}

func (Lexical) isValue() {}
func (Unary) isValue()   {}
func (Binary) isValue()  {}

// Children returns nil.
func (Lexical) Children() []KeyID { return nil }

// Children returns the child key.
func (u Unary) Children() []KeyID { return []KeyID{u.Child} }

// Children returns left and right child keys.
func (b Binary) Children() []KeyID { return []KeyID{b.Left, b.Right} }

// Chart is the CKY chart of a sentence. After Build has returned it is
// read-only and may be shared between goroutines.
type Chart struct {
	words   []string
	keys    []*Key
	values  [][]Value
	cells   [][]*arraylist.List // cells[start][length-1] holds KeyIDs
	index   map[keyIdent]KeyID
	entries int // number of keys plus alternative values
}

type keyIdent struct {
	span     ccgsrl.Span
	category int
	rule     ccg.RuleClass
	state    string
}

func newChart(words []string) *Chart {
	n := len(words)
	ch := &Chart{
		words: words,
		cells: make([][]*arraylist.List, n),
		index: make(map[keyIdent]KeyID),
	}
	for start := 0; start < n; start++ {
		ch.cells[start] = make([]*arraylist.List, n-start)
		for l := range ch.cells[start] {
			ch.cells[start][l] = arraylist.New()
		}
	}
	return ch
}

// Words returns the words of the sentence the chart has been built for.
func (ch *Chart) Words() []string {
	return ch.words
}

// Len returns the number of words.
func (ch *Chart) Len() int {
	return len(ch.words)
}

// KeyCount returns the number of keys in the chart.
func (ch *Chart) KeyCount() int {
	return len(ch.keys)
}

// Size returns the number of chart entries, i.e. keys plus alternative values.
// Size is the quantity limited by the chart size budget.
func (ch *Chart) Size() int {
	return ch.entries
}

// Key returns the key with a given ID.
func (ch *Chart) Key(id KeyID) *Key {
	return ch.keys[id]
}

// Values returns the alternative derivations of a key, in order of creation.
func (ch *Chart) Values(id KeyID) []Value {
	return ch.values[id]
}

// Cell returns the keys of span (start…last), in order of creation.
func (ch *Chart) Cell(span ccgsrl.Span) []KeyID {
	if span.From() < 0 || span.Len() <= 0 || span.To() > len(ch.words) {
		return nil
	}
	cell := ch.cells[span.From()][span.Len()-1]
	ids := make([]KeyID, 0, cell.Size())
	it := cell.Iterator()
	for it.Next() {
		ids = append(ids, it.Value().(KeyID))
	}
	return ids
}

// FullSpan returns the keys spanning the whole sentence.
func (ch *Chart) FullSpan() []KeyID {
	return ch.Cell(ccgsrl.Span{0, len(ch.words)})
}

// Word returns the word at index i.
func (ch *Chart) Word(i int) string {
	return ch.words[i]
}

// add inserts a derivation v for key (span, category, rule, state). It returns
// the key ID and a flag indicating whether the key has been newly created.
func (ch *Chart) add(span ccgsrl.Span, c *ccg.Category, rule ccg.RuleClass, st ccg.DepState,
	v Value) (KeyID, bool) {
	//
	ident := keyIdent{span: span, category: c.ID(), rule: rule, state: st.Signature()}
	if id, ok := ch.index[ident]; ok {
		ch.values[id] = append(ch.values[id], v)
		ch.entries++
		return id, false
	}
	id := KeyID(len(ch.keys))
	ch.keys = append(ch.keys, &Key{ID: id, Span: span, Category: c, Rule: rule, State: st})
	ch.values = append(ch.values, []Value{v})
	ch.index[ident] = id
	ch.cells[span.From()][span.Len()-1].Add(id)
	ch.entries += 2
	return id, true
}

// Dependencies returns the dependencies resolved by a value.
func Dependencies(v Value) []ccg.ResolvedDependency {
	if b, ok := v.(Binary); ok {
		return b.Deps
	}
	return nil
}
