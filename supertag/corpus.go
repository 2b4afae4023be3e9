package supertag

import (
	"fmt"
	"io"

	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Sentence is a sentence of a pre-tagged corpus, optionally with its gold
// standard supertags and dependencies.
type Sentence struct {
	Words          []string
	Tags           [][]Tagged
	GoldCategories []*ccg.Category
	GoldDeps       []ccg.ResolvedDependency
}

// A corpus file is a YAML sequence of sentences:
//
//     - words: [I, saw, squirrels]
//       tags:
//         - [{cat: NP, p: 0}]
//         - [{cat: '(S[dcl]\NP)/NP', p: -0.1}, {cat: 'N', p: -4}]
//         - [{cat: NP, p: -0.2}]
//       gold:
//         categories: [NP, '(S[dcl]\NP)/NP', NP]
//         deps:
//           - {head: 1, arg: 0, label: ARG0}
//           - {head: 1, arg: 2, label: ARG1, cat: '(S[dcl]\NP)/NP', argnum: 2}
type wireSentence struct {
	Words []string    `yaml:"words"`
	Tags  [][]wireTag `yaml:"tags"`
	Gold  struct {
		Categories []string  `yaml:"categories"`
		Deps       []wireDep `yaml:"deps"`
	} `yaml:"gold"`
}

type wireDep struct {
	Head     int    `yaml:"head"`
	Arg      int    `yaml:"arg"`
	Label    string `yaml:"label"`
	Category string `yaml:"cat"`
	ArgNum   int    `yaml:"argnum"`
}

// ReadCorpus reads a pre-tagged corpus in YAML format.
func ReadCorpus(r io.Reader) ([]*Sentence, error) {
	var wire []wireSentence
	if err := yaml.NewDecoder(r).Decode(&wire); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "reading corpus")
	}
	corpus := make([]*Sentence, 0, len(wire))
	for i, ws := range wire {
		s, err := ws.sentence()
		if err != nil {
			return nil, errors.Wrapf(err, "corpus sentence #%d", i)
		}
		corpus = append(corpus, s)
	}
	tracer().Infof("read corpus of %d sentences", len(corpus))
	return corpus, nil
}

func (ws wireSentence) sentence() (*Sentence, error) {
	if len(ws.Tags) > 0 && len(ws.Tags) != len(ws.Words) {
		return nil, errors.Errorf("%d words, but supertags for %d", len(ws.Words), len(ws.Tags))
	}
	tags, err := fromWire(ws.Tags)
	if err != nil {
		return nil, err
	}
	s := &Sentence{Words: ws.Words, Tags: tags}
	if s.GoldCategories, err = ccg.ParseAll(ws.Gold.Categories); err != nil {
		return nil, errors.Wrap(err, "gold categories")
	}
	for _, d := range ws.Gold.Deps {
		if d.Head < 0 || d.Head >= len(ws.Words) || d.Arg < 0 || d.Arg >= len(ws.Words) {
			return nil, errors.Errorf("gold dependency %d→%d outside of sentence", d.Head, d.Arg)
		}
		dep := ccg.ResolvedDependency{Head: d.Head, Arg: d.Arg, ArgNum: d.ArgNum, Label: ccg.NoLabel}
		if d.Label != "" {
			dep.Label = ccg.Label(d.Label)
		}
		if d.Category != "" {
			if dep.Category, err = ccg.Parse(d.Category); err != nil {
				return nil, errors.Wrap(err, "gold dependency")
			}
		}
		s.GoldDeps = append(s.GoldDeps, dep)
	}
	return s, nil
}

// FileSource serves the supertags of a pre-tagged corpus. Sentences are
// identified by their exact word sequence.
type FileSource struct {
	tags map[string][][]Tagged
}

// NewFileSource creates a source for the sentences of a corpus.
func NewFileSource(corpus []*Sentence) *FileSource {
	fs := &FileSource{tags: make(map[string][][]Tagged, len(corpus))}
	for _, s := range corpus {
		if len(s.Tags) > 0 {
			fs.tags[sentenceKey(s.Words)] = s.Tags
		}
	}
	return fs
}

// ErrUnknownSentence is returned by FileSource for sentences not in its corpus.
var ErrUnknownSentence = errors.New("sentence not in corpus")

// Tag implements Source.
func (fs *FileSource) Tag(words []string) ([][]Tagged, error) {
	tags, ok := fs.tags[sentenceKey(words)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSentence, words)
	}
	return tags, nil
}

// Len returns the number of tagged sentences.
func (fs *FileSource) Len() int {
	return len(fs.tags)
}
