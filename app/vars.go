package app

import (
	"bufio"
	"os"
	"strings"

	"github.com/gonuts/commander"
	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/ccg/model"
	"github.com/npillmayer/ccgsrl/supertag"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
)

var (
	// input files
	configFile  string
	corpusFile  string
	textFile    string
	lexiconFile string
	weightsFile string

	// processing options
	nbestK     int
	beamRatio  float64
	workers    int
	showK      int
	traceLevel string
	useCache   bool
)

// traceKeys are the tracers of this module.
var traceKeys = []string{"ccgsrl.grammar", "ccgsrl.chart", "ccgsrl.rerank",
	"ccgsrl.pipeline", "ccgsrl.cli"}

// AllCommands returns the commands of the command line tool.
func AllCommands() *commander.Command {
	cmd := &commander.Command{
		UsageLine: "ccgsrl <command>",
		Short:     "constrained CCG parsing and re-ranking",
		Subcommands: []*commander.Command{
			ParseCmd(),
			ReparseCmd(),
			ReplCmd(),
		},
	}
	return cmd
}

// CommonFlags registers the flags shared by all commands.
func CommonFlags(cmd *commander.Command) {
	cmd.Flag.StringVar(&configFile, "conf", "", "YAML configuration file")
	cmd.Flag.StringVar(&lexiconFile, "lex", "", "Lexicon file for dictionary supertagging")
	cmd.Flag.StringVar(&weightsFile, "weights", "", "Optional - weights of the SRL model")
	cmd.Flag.IntVar(&nbestK, "k", 0, "Optional - length of n-best lists (overrides configuration)")
	cmd.Flag.Float64Var(&beamRatio, "beta", 0, "Optional - supertagger beam (overrides configuration)")
	cmd.Flag.IntVar(&workers, "j", 0, "Optional - sentences parsed concurrently (overrides configuration)")
	cmd.Flag.StringVar(&traceLevel, "trace", "Info", "Trace level [Debug|Info|Error]")
	cmd.Flag.BoolVar(&useCache, "cache", false, "Cache supertags")
}

// InitTracing sets up logging for all tracers of this module.
func InitTracing(level string) {
	InitDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	l := tracing.TraceLevelFromString(level)
	gtrace.SyntaxTracer.SetTraceLevel(l)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
}

// InitDisplay sets up pterm for moderately fancy output.
func InitDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// LoadConfig reads the configuration file, if any, and applies the flags
// overriding it.
func LoadConfig() (ccgsrl.Config, error) {
	conf := ccgsrl.DefaultConfig()
	if configFile != "" {
		f, err := os.Open(configFile)
		if err != nil {
			return conf, errors.Wrap(err, "opening configuration")
		}
		defer f.Close()
		if conf, err = ccgsrl.LoadConfig(f); err != nil {
			return conf, err
		}
	}
	if nbestK > 0 {
		conf = conf.WithNBest(nbestK)
	}
	if beamRatio > 0 {
		conf = conf.WithBeam(beamRatio)
	}
	if workers > 0 {
		conf.Workers = workers
	}
	return conf, conf.Validate()
}

// LoadScorer creates the scoring model: the SRL-factored model if a weights
// file is given, the supertag-factored model otherwise.
func LoadScorer(conf ccgsrl.Config) (model.Scorer, error) {
	base := model.SupertagFactoredFor(conf)
	if weightsFile == "" {
		return base, nil
	}
	f, err := os.Open(weightsFile)
	if err != nil {
		return nil, errors.Wrap(err, "opening model weights")
	}
	defer f.Close()
	w, err := model.LoadWeights(f)
	if err != nil {
		return nil, err
	}
	tracer().Infof("SRL model with %d features, %d labels", len(w.Features), len(w.Labels))
	return model.SRLFactored{SupertagFactored: base, W: w}, nil
}

// LoadLexicon reads the lexicon file, or returns nil if none is given.
func LoadLexicon() (*supertag.Lexicon, error) {
	if lexiconFile == "" {
		return nil, nil
	}
	f, err := os.Open(lexiconFile)
	if err != nil {
		return nil, errors.Wrap(err, "opening lexicon")
	}
	defer f.Close()
	return supertag.LoadLexicon(f)
}

// LoadCorpus reads the input sentences, either from a pre-tagged corpus or
// from a text file with one tokenized sentence per line.
func LoadCorpus() ([]*supertag.Sentence, error) {
	switch {
	case corpusFile != "":
		f, err := os.Open(corpusFile)
		if err != nil {
			return nil, errors.Wrap(err, "opening corpus")
		}
		defer f.Close()
		return supertag.ReadCorpus(f)
	case textFile != "":
		f, err := os.Open(textFile)
		if err != nil {
			return nil, errors.Wrap(err, "opening text")
		}
		defer f.Close()
		var corpus []*supertag.Sentence
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if words := strings.Fields(scanner.Text()); len(words) > 0 {
				corpus = append(corpus, &supertag.Sentence{Words: words})
			}
		}
		return corpus, errors.Wrap(scanner.Err(), "reading text")
	}
	return nil, errors.New("no input: use -in or -text")
}

// SourceFor selects the supertag source: the lexicon if given, the corpus
// otherwise.
func SourceFor(corpus []*supertag.Sentence) (supertag.Source, error) {
	lex, err := LoadLexicon()
	if err != nil {
		return nil, err
	}
	if lex != nil {
		return lex, nil
	}
	src := supertag.NewFileSource(corpus)
	if src.Len() == 0 {
		return nil, errors.New("corpus has no supertags, use -lex")
	}
	return src, nil
}

// TraceLevel returns the trace level given by flag.
func TraceLevel() string {
	return traceLevel
}
