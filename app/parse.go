package app

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/gonuts/commander"
	"github.com/npillmayer/ccgsrl/ccg/nbest"
	"github.com/npillmayer/ccgsrl/eval"
	"github.com/npillmayer/ccgsrl/pipeline"
	"github.com/npillmayer/ccgsrl/supertag"
	"github.com/pterm/pterm"
)

// ParseCmd creates the parse command.
func ParseCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runParse,
		UsageLine: "parse <flags>",
		Short:     "parse sentences and print n-best lists",
		Long: `
parse sentences and print n-best lists

	$ ccgsrl parse -in <corpus.yaml> [-lex <lexicon.yaml>] [-weights <weights.yaml>] [-show <k>]

Sentences of the corpus carrying gold dependencies are evaluated: the best
parse, the oracle parse of every n-best prefix, and the supertags.
`,
		Flag: *flag.NewFlagSet("parse", flag.ExitOnError),
	}
	CommonFlags(cmd)
	cmd.Flag.StringVar(&corpusFile, "in", "", "Corpus file (YAML)")
	cmd.Flag.StringVar(&textFile, "text", "", "Text file, one tokenized sentence per line")
	cmd.Flag.IntVar(&showK, "show", 1, "Number of parses printed per sentence")
	return cmd
}

// Setup loads configuration, corpus and models, and creates a parser.
func Setup() (*pipeline.Parser, []*supertag.Sentence, error) {
	conf, err := LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	corpus, err := LoadCorpus()
	if err != nil {
		return nil, nil, err
	}
	source, err := SourceFor(corpus)
	if err != nil {
		return nil, nil, err
	}
	scorer, err := LoadScorer(conf)
	if err != nil {
		return nil, nil, err
	}
	opts := []pipeline.Option{pipeline.WithScorer(scorer)}
	if useCache {
		opts = append(opts, pipeline.WithCache())
	}
	p, err := pipeline.NewParser(source, conf, opts...)
	return p, corpus, err
}

func runParse(cmd *commander.Command, args []string) error {
	InitTracing(traceLevel)
	p, corpus, err := Setup()
	if err != nil {
		return err
	}
	report := p.ParseAll(context.Background(), words(corpus))
	ev := newEvaluation(p.Config().NBest)
	for i, res := range report.Results {
		printResult(res, showK)
		ev.add(corpus[i], res.NBest, bestOf(res))
	}
	pterm.Info.Println(report.String())
	ev.print()
	return nil
}

func words(corpus []*supertag.Sentence) [][]string {
	sentences := make([][]string, len(corpus))
	for i, s := range corpus {
		sentences[i] = s.Words
	}
	return sentences
}

func bestOf(res *pipeline.Result) *nbest.Parse {
	if !res.OK() {
		return nil
	}
	return res.NBest.Best()
}

func printResult(res *pipeline.Result, k int) {
	pterm.Println(fmt.Sprintf("#%d %s", res.Index, strings.Join(res.Words, " ")))
	if !res.OK() {
		pterm.Error.Println(res.Err.Error())
		return
	}
	for rank, p := range res.NBest.Parses {
		if rank >= k {
			break
		}
		printParse(rank, p)
	}
}

func printParse(rank int, p *nbest.Parse) {
	pterm.Info.Println(fmt.Sprintf("[%d] %s", rank, p))
	for _, d := range p.Deps {
		pterm.Println(fmt.Sprintf("      %s(%s) → %s", p.Words[d.Head], d, p.Words[d.Arg]))
	}
}

// evaluation collects the evaluation of a corpus run.
type evaluation struct {
	best   eval.Accumulator
	oracle *eval.NBestResults
	tags   eval.TagAccuracy
	count  int
}

func newEvaluation(k int) *evaluation {
	return &evaluation{oracle: eval.NewNBestResults(k, true)}
}

// add evaluates the selected parse of a sentence and its n-best list. Sentences
// without gold dependencies are skipped.
func (ev *evaluation) add(s *supertag.Sentence, list *nbest.NBestList, selected *nbest.Parse) {
	if len(s.GoldDeps) == 0 {
		return
	}
	ev.count++
	if selected == nil {
		ev.best.Add(nil, s.GoldDeps)
	} else {
		ev.best.Add(selected.Deps, s.GoldDeps)
		ev.tags.Add(selected.Categories, s.GoldCategories)
	}
	ev.oracle.Add(list, s.GoldDeps)
}

func (ev *evaluation) print() {
	if ev.count == 0 {
		return
	}
	pterm.Info.Println("Evaluation of selected parses")
	pterm.Println(ev.best.String())
	if ev.tags.Total > 0 {
		pterm.Println(fmt.Sprintf("supertag accuracy %.2f%%", 100*ev.tags.Accuracy()))
	}
	pterm.Info.Println("Oracle results")
	pterm.Println(ev.oracle.String())
}
