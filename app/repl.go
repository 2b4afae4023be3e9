package app

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/gonuts/commander"
	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/npillmayer/ccgsrl/ccg/chart"
	"github.com/npillmayer/ccgsrl/ccg/nbest"
	"github.com/npillmayer/ccgsrl/ccg/packed"
	"github.com/npillmayer/ccgsrl/constraint"
	"github.com/npillmayer/ccgsrl/pipeline"
	"github.com/npillmayer/ccgsrl/reparse"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
)

var initFile string

// ReplCmd creates the repl command.
func ReplCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runRepl,
		UsageLine: "repl <flags>",
		Short:     "parse sentences interactively",
		Long: `
parse sentences interactively

	$ ccgsrl repl -lex <lexicon.yaml> [-init <file>]

Enter a tokenized sentence to parse it, or one of the commands

	:show <k>                   number of parses to print
	+attach <head> <arg> [w]    add a positive attachment constraint
	-attach <head> <arg> [w]    add a negative attachment constraint
	+tag <word> <cat> [w]       add a positive supertag constraint
	-tag <word> <cat> [w]       add a negative supertag constraint
	:constraints                list constraints
	:clear                      remove all constraints
	:reparse                    re-rank the n-best list of the last sentence
	:redecode                   decode the last sentence with constraints
	:tree                       print the derivation of the best parse
	:quit

Quit with <ctrl>D.
`,
		Flag: *flag.NewFlagSet("repl", flag.ExitOnError),
	}
	CommonFlags(cmd)
	cmd.Flag.StringVar(&initFile, "init", "", "Initial load")
	return cmd
}

// Intp is our interpreter object.
type Intp struct {
	parser      *pipeline.Parser
	repl        *readline.Instance
	last        *pipeline.Result
	selected    *nbest.Parse
	constraints *constraint.Set
	show        int
}

func runRepl(cmd *commander.Command, args []string) error {
	InitTracing(traceLevel)
	pterm.Info.Println("Welcome to the CCG shell")
	conf, err := LoadConfig()
	if err != nil {
		return err
	}
	lex, err := LoadLexicon()
	if err != nil {
		return err
	}
	if lex == nil {
		return errors.New("interactive parsing needs a lexicon: use -lex")
	}
	scorer, err := LoadScorer(conf)
	if err != nil {
		return err
	}
	p, err := pipeline.NewParser(lex, conf, pipeline.WithScorer(scorer), pipeline.WithCache())
	if err != nil {
		return err
	}
	repl, err := readline.New("ccg> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := NewIntp(p)
	intp.repl = repl
	tracer().Infof("Quit with <ctrl>D")
	intp.loadInitFile(initFile)
	intp.REPL()
	return nil
}

// NewIntp creates an interpreter for a parser.
func NewIntp(p *pipeline.Parser) *Intp {
	return &Intp{
		parser:      p,
		constraints: constraint.NewSet(),
		show:        1,
	}
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	lineno := 1
	for scanner.Scan() {
		line := scanner.Text()
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if _, err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: %v", lineno, err)
		}
		lineno++
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval evaluates a command or parses a sentence, given on a line by itself.
func (intp *Intp) Eval(line string) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return true, nil
	case ":show":
		if len(fields) != 2 {
			return false, errors.New("usage: :show <k>")
		}
		k, err := strconv.Atoi(fields[1])
		if err != nil || k < 1 {
			return false, errors.Errorf("not a valid number of parses: %s", fields[1])
		}
		intp.show = k
	case "+attach", "-attach", "+tag", "-tag":
		c, err := parseConstraint(fields)
		if err != nil {
			return false, err
		}
		if intp.constraints.Add(c) {
			pterm.Info.Println(c.String())
		}
	case ":constraints":
		for _, c := range intp.constraints.Constraints() {
			pterm.Println(c.String())
		}
	case ":clear":
		intp.constraints = constraint.NewSet()
	case ":reparse":
		if intp.last == nil {
			return false, errors.New("no sentence parsed yet")
		}
		p, err := intp.last.Reparse(intp.constraints)
		if err != nil {
			return false, err
		}
		intp.selected = p
		printParse(0, p)
	case ":redecode":
		if intp.last == nil || !intp.last.OK() {
			return false, errors.New("no parse forest available")
		}
		conf := intp.parser.Config()
		list, err := reparse.Redecode(intp.last.Forest, intp.parser.Scorer(), intp.constraints, conf.NBest)
		if err != nil {
			return false, err
		}
		intp.selected = list.Best()
		for rank, p := range list.Parses {
			if rank >= intp.show {
				break
			}
			printParse(rank, p)
		}
	case ":tree":
		if intp.selected == nil || intp.last == nil || !intp.last.OK() {
			return false, errors.New("no parse selected")
		}
		pterm.DefaultTree.WithRoot(DerivationTree(intp.last.Forest, intp.selected)).Render()
	default:
		if strings.HasPrefix(fields[0], ":") {
			return false, errors.Errorf("unknown command %s", fields[0])
		}
		return false, intp.parse(fields)
	}
	return false, nil
}

func (intp *Intp) parse(words []string) error {
	res, err := intp.parser.Parse(context.Background(), words)
	res.Err = err
	intp.last, intp.selected = res, nil
	printResult(res, intp.show)
	if err != nil {
		return nil // already printed
	}
	intp.selected = res.NBest.Best()
	if intp.constraints.Len() > 0 {
		if err := intp.constraints.Validate(len(words)); err != nil {
			pterm.Info.Println("constraints do not fit the sentence, use :clear")
		}
	}
	return nil
}

// parseConstraint reads constraints of the form
//
//     +attach 1 0 2.0
//     -tag 2 'N'
func parseConstraint(fields []string) (constraint.Constraint, error) {
	if len(fields) < 3 || len(fields) > 4 {
		return nil, errors.Errorf("usage: %s <index> <index|category> [weight]", fields[0])
	}
	positive := fields[0][0] == '+'
	weight := 1.0
	if len(fields) == 4 {
		w, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, errors.Wrap(err, "weight")
		}
		weight = w
	}
	i, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, errors.Wrap(err, "word index")
	}
	if fields[0][1:] == "tag" {
		c, err := ccg.Parse(strings.Trim(fields[2], "'"))
		if err != nil {
			return nil, err
		}
		return constraint.Supertag{Word: i, Category: c, IsPositive: positive, Strength: weight}, nil
	}
	j, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, errors.Wrap(err, "word index")
	}
	return constraint.Attachment{Head: i, Arg: j, IsPositive: positive, Strength: weight}, nil
}

// --- Derivation trees ------------------------------------------------------

// treeBuilder is a listener collecting the nodes of a derivation as a pterm
// leveled list.
type treeBuilder struct {
	words []string
	list  pterm.LeveledList
}

func (tb *treeBuilder) EnterNode(n *packed.Node, alt *packed.Alternative, ctxt packed.RuleCtxt) bool {
	text := fmt.Sprintf("%s  (%s)", n.Category, n.Rule)
	for _, d := range alt.Deps {
		text += fmt.Sprintf("  %s→%s", tb.words[d.Head], tb.words[d.Arg])
	}
	tb.list = append(tb.list, pterm.LeveledListItem{Level: ctxt.Level, Text: text})
	return true
}

func (tb *treeBuilder) ExitNode(*packed.Node, *packed.Alternative, []interface{}, packed.RuleCtxt) interface{} {
	return nil
}

func (tb *treeBuilder) Leaf(n *packed.Node, lex chart.Lexical, ctxt packed.RuleCtxt) interface{} {
	text := fmt.Sprintf("%s  %q", n.Category, tb.words[lex.Word])
	tb.list = append(tb.list, pterm.LeveledListItem{Level: ctxt.Level, Text: text})
	return nil
}

// DerivationTree creates a pterm tree for the derivation of a parse.
func DerivationTree(f *packed.Forest, p *nbest.Parse) pterm.TreeNode {
	tb := &treeBuilder{words: f.Words()}
	f.TopDown(p.Root, tb, p.Selection, packed.LtoR, packed.Continue)
	return pterm.NewTreeFromLeveledList(tb.list)
}
