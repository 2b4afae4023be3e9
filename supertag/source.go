package supertag

import (
	"fmt"
	"math"
	"sort"

	"github.com/npillmayer/ccgsrl/ccg"
)

// Tagged is a lexical category for a word, together with its log-probability.
type Tagged struct {
	Category *ccg.Category
	LogProb  float64
}

func (t Tagged) String() string {
	return fmt.Sprintf("%s:%.4f", t.Category, t.LogProb)
}

// Source is the interface of supertaggers. Tag returns one list per word,
// sorted by descending log-probability. Implementations must be safe for
// concurrent use.
type Source interface {
	Tag(words []string) ([][]Tagged, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(words []string) ([][]Tagged, error)

// Tag calls f(words).
func (f SourceFunc) Tag(words []string) ([][]Tagged, error) {
	return f(words)
}

// SortTags sorts a list of tags by descending log-probability. Ties are ordered
// by category to keep results deterministic.
func SortTags(tags []Tagged) {
	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].LogProb != tags[j].LogProb {
			return tags[i].LogProb > tags[j].LogProb
		}
		return tags[i].Category.ID() < tags[j].Category.ID()
	})
}

// Prune applies a beam of ratio beta to the tags of every word: a category
// survives iff its probability is at least beta times the probability of the
// best category of the word. The best category always survives. If maxTags is
// positive, at most maxTags categories are kept per word. Input lists must be
// sorted (see SortTags); they are not modified.
func Prune(tags [][]Tagged, beta float64, maxTags int) [][]Tagged {
	threshold := math.Log(beta)
	pruned := make([][]Tagged, len(tags))
	for i, word := range tags {
		if len(word) == 0 {
			continue
		}
		best := word[0].LogProb
		kept := make([]Tagged, 0, len(word))
		for _, t := range word {
			if t.LogProb < best+threshold {
				break
			}
			if maxTags > 0 && len(kept) == maxTags {
				break
			}
			kept = append(kept, t)
		}
		pruned[i] = kept
	}
	return pruned
}

// Count returns the total number of categories over all words.
func Count(tags [][]Tagged) int {
	n := 0
	for _, w := range tags {
		n += len(w)
	}
	return n
}
