package eval

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/npillmayer/ccgsrl/ccg/nbest"
	"golang.org/x/exp/maps"
)

// Counts are the raw numbers of an evaluation.
type Counts struct {
	Matched   int // predicted and in gold
	Predicted int
	Gold      int
}

// Precision is Matched/Predicted, or 0 for no predictions.
func (c Counts) Precision() float64 {
	if c.Predicted == 0 {
		return 0
	}
	return float64(c.Matched) / float64(c.Predicted)
}

// Recall is Matched/Gold, or 0 for no gold dependencies.
func (c Counts) Recall() float64 {
	if c.Gold == 0 {
		return 0
	}
	return float64(c.Matched) / float64(c.Gold)
}

// F1 is the harmonic mean of precision and recall.
func (c Counts) F1() float64 {
	p, r := c.Precision(), c.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

func (c Counts) add(other Counts) Counts {
	return Counts{
		Matched:   c.Matched + other.Matched,
		Predicted: c.Predicted + other.Predicted,
		Gold:      c.Gold + other.Gold,
	}
}

func (c Counts) String() string {
	return fmt.Sprintf("P=%.2f R=%.2f F1=%.2f (%d/%d/%d)", 100*c.Precision(), 100*c.Recall(),
		100*c.F1(), c.Matched, c.Predicted, c.Gold)
}

// Results are the unlabeled and labeled counts of an evaluation.
type Results struct {
	Unlabeled Counts
	Labeled   Counts
}

func (r Results) add(other Results) Results {
	return Results{Unlabeled: r.Unlabeled.add(other.Unlabeled), Labeled: r.Labeled.add(other.Labeled)}
}

func (r Results) String() string {
	return fmt.Sprintf("unlabeled %s, labeled %s", r.Unlabeled, r.Labeled)
}

// edge is the identity of a dependency: head, predicate category, argument
// slot and argument. Categories are compared by their canonical string.
type edge struct {
	head     int
	category string
	argNum   int
	arg      int
}

type labeled struct {
	edge
	label ccg.Label
}

func edgeOf(d ccg.ResolvedDependency) edge {
	e := edge{head: d.Head, argNum: d.ArgNum, arg: d.Arg}
	if d.Category != nil {
		e.category = d.Category.String()
	}
	return e
}

func labeledOf(d ccg.ResolvedDependency) labeled {
	return labeled{edgeOf(d), labelOf(d)}
}

func labelOf(d ccg.ResolvedDependency) ccg.Label {
	if d.Label == "" {
		return ccg.NoLabel
	}
	return d.Label
}

// Evaluate compares candidate dependencies against gold dependencies.
//
// Unlabeled scores compare the sets of edges (head, category, argument slot,
// argument). Labeled scores compare edges together with their role label;
// NONE is a label like any other.
func Evaluate(candidate, gold []ccg.ResolvedDependency) Results {
	goldEdges := make(map[edge]bool)
	goldTriples := make(map[labeled]bool)
	for _, d := range gold {
		goldEdges[edgeOf(d)] = true
		goldTriples[labeledOf(d)] = true
	}
	candEdges := make(map[edge]bool)
	candTriples := make(map[labeled]bool)
	for _, d := range candidate {
		candEdges[edgeOf(d)] = true
		candTriples[labeledOf(d)] = true
	}
	r := Results{
		Unlabeled: Counts{Predicted: len(candEdges), Gold: len(goldEdges)},
		Labeled:   Counts{Predicted: len(candTriples), Gold: len(goldTriples)},
	}
	for e := range candEdges {
		if goldEdges[e] {
			r.Unlabeled.Matched++
		}
	}
	for t := range candTriples {
		if goldTriples[t] {
			r.Labeled.Matched++
		}
	}
	return r
}

// Accumulator micro-averages evaluation results over a corpus. The zero value
// is ready to use.
type Accumulator struct {
	total     Results
	sentences int
	byLabel   map[ccg.Label]Counts
}

// Add evaluates candidate against gold and adds the result to a.
func (a *Accumulator) Add(candidate, gold []ccg.ResolvedDependency) Results {
	r := Evaluate(candidate, gold)
	a.total = a.total.add(r)
	a.sentences++
	if a.byLabel == nil {
		a.byLabel = make(map[ccg.Label]Counts)
	}
	for l, c := range perLabel(candidate, gold) {
		a.byLabel[l] = a.byLabel[l].add(c)
	}
	return r
}

// Sentences returns the number of sentences evaluated.
func (a *Accumulator) Sentences() int {
	return a.sentences
}

// Results returns the micro-averaged results.
func (a *Accumulator) Results() Results {
	return a.total
}

// Labels returns the role labels seen so far, sorted.
func (a *Accumulator) Labels() []ccg.Label {
	labels := maps.Keys(a.byLabel)
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}

// ForLabel returns the labeled counts of a single role label.
func (a *Accumulator) ForLabel(l ccg.Label) Counts {
	return a.byLabel[l]
}

func (a *Accumulator) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d sentences: %s\n", a.sentences, a.total)
	for _, l := range a.Labels() {
		fmt.Fprintf(&b, "  %-10s %s\n", l, a.byLabel[l])
	}
	return b.String()
}

func perLabel(candidate, gold []ccg.ResolvedDependency) map[ccg.Label]Counts {
	counts := make(map[ccg.Label]Counts)
	goldTriples := make(map[labeled]bool)
	for _, d := range gold {
		t := labeledOf(d)
		if !goldTriples[t] {
			goldTriples[t] = true
			c := counts[t.label]
			c.Gold++
			counts[t.label] = c
		}
	}
	seen := make(map[labeled]bool)
	for _, d := range candidate {
		t := labeledOf(d)
		if seen[t] {
			continue
		}
		seen[t] = true
		c := counts[t.label]
		c.Predicted++
		if goldTriples[t] {
			c.Matched++
		}
		counts[t.label] = c
	}
	return counts
}

// --- Oracle ----------------------------------------------------------------

// Oracle returns the rank of the parse of list with the best F1 against gold,
// using labeled F1 if labeled is set. Ties are won by the lower rank. Oracle
// returns -1 for an empty list.
func Oracle(list *nbest.NBestList, gold []ccg.ResolvedDependency, labeled bool) (int, Results) {
	best, bestF1 := -1, -1.0
	var bestResults Results
	if list == nil || list.Len() == 0 {
		return best, bestResults
	}
	for k, p := range list.Parses {
		r := Evaluate(p.Deps, gold)
		f1 := r.Unlabeled.F1()
		if labeled {
			f1 = r.Labeled.F1()
		}
		if f1 > bestF1 {
			best, bestF1, bestResults = k, f1, r
		}
	}
	return best, bestResults
}

// NBestResults accumulates oracle results for prefixes of n-best lists: for
// every k up to a maximum, the best parse among the first k parses is
// evaluated.
type NBestResults struct {
	Labeled bool
	accs    []Accumulator
	empty   int
}

// NewNBestResults tracks prefixes of n-best lists up to length k.
func NewNBestResults(k int, labeled bool) *NBestResults {
	return &NBestResults{Labeled: labeled, accs: make([]Accumulator, k)}
}

// Add evaluates all prefixes of list. Empty lists count with an empty
// candidate dependency set.
func (nr *NBestResults) Add(list *nbest.NBestList, gold []ccg.ResolvedDependency) {
	if list.Len() == 0 {
		nr.empty++
	}
	for k := range nr.accs {
		var prefix nbest.NBestList
		if list != nil {
			prefix.Parses = list.Parses[:min(k+1, list.Len())]
		}
		rank, _ := Oracle(&prefix, gold, nr.Labeled)
		if rank < 0 {
			nr.accs[k].Add(nil, gold)
			continue
		}
		nr.accs[k].Add(prefix.Parses[rank].Deps, gold)
	}
	tracer().Debugf("n-best oracle: %d lists evaluated", nr.accs[0].Sentences())
}

// At returns the accumulated oracle results for lists cut to length k ≥ 1.
func (nr *NBestResults) At(k int) Results {
	return nr.accs[k-1].Results()
}

// Len returns the maximum list length tracked.
func (nr *NBestResults) Len() int {
	return len(nr.accs)
}

func (nr *NBestResults) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%6s  %s\n", "k", "oracle")
	for k := 1; k <= nr.Len(); k++ {
		fmt.Fprintf(&b, "%6d  %s\n", k, nr.At(k))
	}
	if nr.empty > 0 {
		fmt.Fprintf(&b, "%d empty lists\n", nr.empty)
	}
	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// --- Supertags -------------------------------------------------------------

// TagAccuracy counts correctly assigned supertags. The zero value is ready to
// use.
type TagAccuracy struct {
	Correct, Total int
}

// Add compares predicted supertags to gold ones. Missing predictions count as
// errors.
func (ta *TagAccuracy) Add(predicted, gold []*ccg.Category) {
	for i, g := range gold {
		ta.Total++
		if i < len(predicted) && predicted[i] == g {
			ta.Correct++
		}
	}
}

// Accuracy returns Correct/Total, or 0 if nothing has been counted.
func (ta TagAccuracy) Accuracy() float64 {
	if ta.Total == 0 {
		return 0
	}
	return float64(ta.Correct) / float64(ta.Total)
}
