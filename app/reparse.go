package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"

	"github.com/gonuts/commander"
	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/ccg/nbest"
	"github.com/npillmayer/ccgsrl/constraint"
	"github.com/npillmayer/ccgsrl/reparse"
	perrors "github.com/pkg/errors"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

var (
	constraintsFile string
	redecode        bool
)

// ReparseCmd creates the reparse command.
func ReparseCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runReparse,
		UsageLine: "reparse <flags>",
		Short:     "select parses according to constraints",
		Long: `
select parses according to constraints

	$ ccgsrl reparse -in <corpus.yaml> -constraints <constraints.yaml> [-redecode]

The constraints file lists constraints per sentence:

	- sentence: 0
	  constraints:
	    - {kind: attach, head: 1, arg: 0, positive: true, weight: 2}
	    - {kind: tag, word: 1, cat: '(S[dcl]\NP)/NP', positive: false, weight: 1}

Without -redecode, the n-best list of every sentence is re-ranked. With
-redecode, constraint penalties are applied during a new n-best extraction.
`,
		Flag: *flag.NewFlagSet("reparse", flag.ExitOnError),
	}
	CommonFlags(cmd)
	cmd.Flag.StringVar(&corpusFile, "in", "", "Corpus file (YAML)")
	cmd.Flag.StringVar(&textFile, "text", "", "Text file, one tokenized sentence per line")
	cmd.Flag.StringVar(&constraintsFile, "constraints", "", "Constraints file (YAML)")
	cmd.Flag.BoolVar(&redecode, "redecode", false, "Apply constraints during decoding")
	return cmd
}

type sentenceConstraints struct {
	Sentence    int               `yaml:"sentence"`
	Constraints []constraint.Spec `yaml:"constraints"`
}

// ReadConstraints reads constraints per sentence for a corpus of n sentences.
func ReadConstraints(r io.Reader, n int) ([]*constraint.Set, error) {
	var wire []sentenceConstraints
	if err := yaml.NewDecoder(r).Decode(&wire); err != nil && err != io.EOF {
		return nil, perrors.Wrap(err, "reading constraints")
	}
	sets := make([]*constraint.Set, n)
	for _, sc := range wire {
		if sc.Sentence < 0 || sc.Sentence >= n {
			return nil, perrors.Errorf("constraints for sentence %d, corpus has %d", sc.Sentence, n)
		}
		cs, err := constraint.FromSpecs(sc.Constraints)
		if err != nil {
			return nil, perrors.Wrapf(err, "sentence %d", sc.Sentence)
		}
		if sets[sc.Sentence] == nil {
			sets[sc.Sentence] = cs
			continue
		}
		for _, c := range cs.Constraints() {
			sets[sc.Sentence].Add(c)
		}
	}
	return sets, nil
}

func runReparse(cmd *commander.Command, args []string) error {
	InitTracing(traceLevel)
	if constraintsFile == "" {
		return perrors.New("no constraints: use -constraints")
	}
	p, corpus, err := Setup()
	if err != nil {
		return err
	}
	f, err := os.Open(constraintsFile)
	if err != nil {
		return perrors.Wrap(err, "opening constraints")
	}
	defer f.Close()
	sets, err := ReadConstraints(f, len(corpus))
	if err != nil {
		return err
	}
	report := p.ParseAll(context.Background(), words(corpus))
	before := newEvaluation(p.Config().NBest)
	after := newEvaluation(p.Config().NBest)
	for i, res := range report.Results {
		var selected *nbest.Parse
		list := res.NBest
		switch {
		case !res.OK():
			err = res.Err
		case redecode:
			list, err = reparse.Redecode(res.Forest, p.Scorer(), sets[i], p.Config().NBest)
			if err == nil {
				selected = list.Best()
			}
		default:
			selected, err = res.Reparse(sets[i])
		}
		printResult(res, 1)
		switch {
		case errors.Is(err, ccgsrl.ErrMalformedConstraint):
			pterm.Error.Println(err.Error())
		case selected != nil && selected.Signature() != res.NBest.Best().Signature():
			pterm.Info.Println("constraints changed the selected parse:")
			printParse(0, selected)
		}
		before.add(corpus[i], res.NBest, bestOf(res))
		after.add(corpus[i], list, selected)
	}
	pterm.Info.Println(report.String())
	pterm.Info.Println("Before applying constraints")
	before.print()
	pterm.Info.Println("After applying constraints")
	after.print()
	return nil
}
