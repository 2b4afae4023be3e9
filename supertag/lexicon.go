package supertag

import (
	"io"
	"strings"

	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Lexicon is a dictionary tagger: every word is assigned a fixed list of
// categories. Words not in the dictionary are looked up in lowercase, then get
// the categories for unknown words.
type Lexicon struct {
	entries map[string][]Tagged
	unknown []Tagged
}

// A lexicon file maps words to categories and log-probabilities:
//
//     words:
//       saw: {'(S[dcl]\NP)/NP': -0.1, 'N': -4}
//       the: {'NP[nb]/N': 0}
//     unknown: {N: -0.5, NP: -1}
type wireLexicon struct {
	Words   map[string]map[string]float64 `yaml:"words"`
	Unknown map[string]float64            `yaml:"unknown"`
}

// LoadLexicon reads a lexicon in YAML format.
func LoadLexicon(r io.Reader) (*Lexicon, error) {
	var wire wireLexicon
	if err := yaml.NewDecoder(r).Decode(&wire); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "reading lexicon")
	}
	lex := NewLexicon()
	for word, cats := range wire.Words {
		for cat, p := range cats {
			if err := lex.Add(word, cat, p); err != nil {
				return nil, err
			}
		}
	}
	for cat, p := range wire.Unknown {
		if err := lex.AddUnknown(cat, p); err != nil {
			return nil, err
		}
	}
	tracer().Infof("lexicon with %d words", len(lex.entries))
	return lex, nil
}

// NewLexicon creates an empty lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{entries: make(map[string][]Tagged)}
}

// Add adds category cat with log-probability p to word.
func (lex *Lexicon) Add(word, cat string, p float64) error {
	c, err := ccg.Parse(cat)
	if err != nil {
		return errors.Wrapf(err, "lexicon entry for %q", word)
	}
	lex.entries[word] = append(lex.entries[word], Tagged{Category: c, LogProb: p})
	SortTags(lex.entries[word])
	return nil
}

// AddUnknown adds a category for unknown words.
func (lex *Lexicon) AddUnknown(cat string, p float64) error {
	c, err := ccg.Parse(cat)
	if err != nil {
		return errors.Wrap(err, "lexicon entry for unknown words")
	}
	lex.unknown = append(lex.unknown, Tagged{Category: c, LogProb: p})
	SortTags(lex.unknown)
	return nil
}

// Tag implements Source. It fails for words which are neither in the
// dictionary nor covered by categories for unknown words.
func (lex *Lexicon) Tag(words []string) ([][]Tagged, error) {
	tags := make([][]Tagged, len(words))
	for i, w := range words {
		entry, ok := lex.entries[w]
		if !ok {
			entry, ok = lex.entries[strings.ToLower(w)]
		}
		if !ok {
			entry = lex.unknown
		}
		if len(entry) == 0 {
			return nil, errors.Errorf("no category for word %q", w)
		}
		tags[i] = append([]Tagged(nil), entry...)
	}
	return tags, nil
}
