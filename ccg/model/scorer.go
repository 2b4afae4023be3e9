package model

import (
	"math"

	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/npillmayer/ccgsrl/ccg/chart"
	"github.com/npillmayer/ccgsrl/ccg/packed"
)

// Scorer is the interface of scoring models.
//
// Local returns the score of a derivation step, excluding the scores of the
// children. Root returns an additional score for a node used as the root of
// a derivation. Scorers are read-only and may be shared between goroutines.
type Scorer interface {
	Local(f *packed.Forest, n *packed.Node, alt *packed.Alternative) float64
	Root(f *packed.Forest, n *packed.Node) float64
}

// Labeler is implemented by scorers which assign role labels to dependencies.
type Labeler interface {
	Label(words []string, d ccg.ResolvedDependency) ccg.Label
}

// SupertagFactored scores derivations by the log-probabilities of their
// supertags. Unary rule applications are penalized by UnaryPenalty, binary
// ones by AttachLowPenalty times the distance between the heads of the
// children. Both penalties default to 0.
type SupertagFactored struct {
	AttachLowPenalty float64
	UnaryPenalty     float64
}

// SupertagFactoredFor creates a supertag-factored model with the penalties
// of a configuration.
func SupertagFactoredFor(conf ccgsrl.Config) SupertagFactored {
	return SupertagFactored{
		AttachLowPenalty: conf.AttachLowPenalty,
		UnaryPenalty:     conf.UnaryPenalty,
	}
}

// Local implements Scorer.
func (m SupertagFactored) Local(f *packed.Forest, n *packed.Node, alt *packed.Alternative) float64 {
	switch v := alt.Value.(type) {
	case chart.Lexical:
		return v.LogProb
	case chart.Unary:
		return -m.UnaryPenalty
	case chart.Binary:
		if m.AttachLowPenalty == 0 {
			return 0
		}
		l, r := f.Node(alt.Children[0]).State.Head(), f.Node(alt.Children[1]).State.Head()
		return -m.AttachLowPenalty * math.Abs(float64(l-r))
	}
	return 0
}

// Root implements Scorer.
func (m SupertagFactored) Root(*packed.Forest, *packed.Node) float64 {
	return 0
}
