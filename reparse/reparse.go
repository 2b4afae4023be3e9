package reparse

import (
	"fmt"
	"sort"

	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/ccg/model"
	"github.com/npillmayer/ccgsrl/ccg/nbest"
	"github.com/npillmayer/ccgsrl/ccg/packed"
	"github.com/npillmayer/ccgsrl/constraint"
)

// Ranked is a parse of an n-best list together with its constraint-adjusted
// score.
type Ranked struct {
	Parse      *nbest.Parse
	Rank       int     // rank in the original list
	Adjusted   float64 // score minus penalties
	Violations []constraint.Constraint
}

// Rerank computes the adjusted scores of all parses of list and sorts them by
// descending adjusted score. Parses with equal adjusted score keep their
// original order.
//
// Rerank fails with ccgsrl.ErrNoParseAvailable for an empty list and with
// ccgsrl.ErrMalformedConstraint if a constraint does not fit the sentence.
func Rerank(list *nbest.NBestList, cs *constraint.Set) ([]Ranked, error) {
	if list.Len() == 0 {
		return nil, fmt.Errorf("reparse: %w", ccgsrl.ErrNoParseAvailable)
	}
	if err := cs.Validate(len(list.Words)); err != nil {
		return nil, err
	}
	ranked := make([]Ranked, list.Len())
	for k, p := range list.Parses {
		violated := cs.Violations(p)
		penalty := 0.0
		for _, c := range violated {
			penalty += c.Weight()
		}
		ranked[k] = Ranked{Parse: p, Rank: k, Adjusted: p.Score - penalty, Violations: violated}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Adjusted > ranked[j].Adjusted
	})
	return ranked, nil
}

// Reparse selects the parse of list with the highest adjusted score. Ties are
// won by the parse with the lower original rank, so for an empty constraint
// set Reparse returns the best parse of list.
func Reparse(list *nbest.NBestList, cs *constraint.Set) (*nbest.Parse, error) {
	ranked, err := Rerank(list, cs)
	if err != nil {
		return nil, err
	}
	best := ranked[0]
	if best.Rank > 0 {
		tracer().Infof("constraints promoted parse #%d (%.4f → %.4f)", best.Rank,
			best.Parse.Score, best.Adjusted)
	}
	return best.Parse, nil
}

// AdjustedScores returns the adjusted score of every parse of list, in the
// order of list.
func AdjustedScores(list *nbest.NBestList, cs *constraint.Set) []float64 {
	scores := make([]float64, list.Len())
	for k, p := range list.Parses {
		scores[k] = p.Score - cs.Penalty(p)
	}
	return scores
}

// Redecode extracts the k best parses of f under scorer base with the
// penalties of cs folded into the derivation scores.
//
// Scores of the resulting parses are constrained scores. Contrary to Reparse,
// Redecode may return parses which are not part of an n-best list extracted
// from f without constraints.
func Redecode(f *packed.Forest, base model.Scorer, cs *constraint.Set, k int) (*nbest.NBestList, error) {
	if err := cs.Validate(f.Len()); err != nil {
		return nil, err
	}
	scorer := base
	if cs.Len() > 0 {
		if pen := cs.Penalties(f); !pen.IsEmpty() {
			scorer = model.Constrained{Base: base, Penalties: pen}
		}
	}
	list := nbest.Extract(f, scorer, k)
	if list.Len() == 0 {
		return nil, fmt.Errorf("redecode: %w", ccgsrl.ErrNoParseAvailable)
	}
	return list, nil
}
