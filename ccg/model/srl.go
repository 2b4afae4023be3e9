package model

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/npillmayer/ccgsrl/ccg/chart"
	"github.com/npillmayer/ccgsrl/ccg/packed"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Weights are the parameters of the SRL-factored model: a weight per sparse
// feature, and the role labels the model chooses from.
type Weights struct {
	Features map[string]float64 `yaml:"features"`
	Labels   []ccg.Label        `yaml:"labels"`
}

// LoadWeights reads weights from YAML:
//
//     labels: [ARG0, ARG1, ARGM-LOC]
//     features:
//       'dep:(S[dcl]\NP)/NP|1|ARG0': 1.2
//       'root:S[dcl]': 0.5
//
func LoadWeights(r io.Reader) (*Weights, error) {
	w := &Weights{}
	if err := yaml.NewDecoder(r).Decode(w); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "reading model weights")
	}
	if w.Features == nil {
		w.Features = map[string]float64{}
	}
	tracer().Infof("loaded %d feature weights, %d labels", len(w.Features), len(w.Labels))
	return w, nil
}

func (w *Weights) weight(feature string) float64 {
	return w.Features[feature]
}

// SRLFactored extends the supertag-factored model with weighted sparse features:
// for every dependency its predicate category and slot, the distance between head
// and argument and the lexical bigram of head and argument, each conjoined with
// the role label; for rule applications the rule and result category; and the
// category of the root. Every dependency is scored with its best label.
type SRLFactored struct {
	SupertagFactored
	W *Weights
}

// Local implements Scorer.
func (m SRLFactored) Local(f *packed.Forest, n *packed.Node, alt *packed.Alternative) float64 {
	score := m.SupertagFactored.Local(f, n, alt)
	switch v := alt.Value.(type) {
	case chart.Lexical:
		score += m.W.weight(fmt.Sprintf("lex:%s|%s", strings.ToLower(f.Words()[v.Word]), n.Category))
	case chart.Unary:
		score += m.W.weight(fmt.Sprintf("unary:%d", v.RuleID))
	case chart.Binary:
		score += m.W.weight(fmt.Sprintf("rule:%s|%s", v.Rule, n.Category))
		for _, d := range alt.Deps {
			_, s := m.bestLabel(f.Words(), d)
			score += s
		}
	}
	return score
}

// Root implements Scorer.
func (m SRLFactored) Root(f *packed.Forest, n *packed.Node) float64 {
	return m.W.weight("root:" + n.Category.String())
}

// Label implements Labeler.
func (m SRLFactored) Label(words []string, d ccg.ResolvedDependency) ccg.Label {
	l, _ := m.bestLabel(words, d)
	return l
}

// bestLabel returns the label with the best score for d; NoLabel wins ties.
func (m SRLFactored) bestLabel(words []string, d ccg.ResolvedDependency) (ccg.Label, float64) {
	best, bestScore := ccg.NoLabel, m.depScore(words, d, ccg.NoLabel)
	for _, l := range m.W.Labels {
		if s := m.depScore(words, d, l); s > bestScore {
			best, bestScore = l, s
		}
	}
	return best, bestScore
}

func (m SRLFactored) depScore(words []string, d ccg.ResolvedDependency, l ccg.Label) float64 {
	score := 0.0
	for _, feature := range DependencyFeatures(words, d, l) {
		score += m.W.weight(feature)
	}
	return score
}

// DependencyFeatures returns the sparse features of a dependency carrying
// label l.
func DependencyFeatures(words []string, d ccg.ResolvedDependency, l ccg.Label) []string {
	head, arg := strings.ToLower(words[d.Head]), strings.ToLower(words[d.Arg])
	features := []string{
		fmt.Sprintf("dep:%s|%d|%s", d.Category, d.ArgNum, l),
		fmt.Sprintf("dist:%s|%s", distanceBucket(d.Head, d.Arg), l),
		fmt.Sprintf("bigram:%s|%s|%s", head, arg, l),
		fmt.Sprintf("pred:%s|%d|%s", head, d.ArgNum, l),
	}
	if d.Preposition != "" && d.Preposition != ccg.NoPreposition {
		features = append(features, fmt.Sprintf("prep:%s|%s", d.Preposition, l))
	}
	return features
}

// distanceBucket maps the distance between two words to one of a few buckets.
func distanceBucket(head, arg int) string {
	dir := "R"
	dist := arg - head
	if dist < 0 {
		dir, dist = "L", -dist
	}
	switch {
	case dist == 1:
		return dir + "1"
	case dist == 2:
		return dir + "2"
	case dist <= 4:
		return dir + "3-4"
	case dist <= 8:
		return dir + "5-8"
	}
	return dir + "9+"
}
