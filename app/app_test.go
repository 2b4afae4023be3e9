package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/constraint"
	"github.com/npillmayer/ccgsrl/pipeline"
	"github.com/npillmayer/ccgsrl/supertag"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const lexicon = `
words:
  john: {NP: 0}
  saw: {'(S[dcl]\NP)/NP': 0}
  the: {'NP[nb]/N': 0}
  man: {N: 0}
  with: {'(NP\NP)/NP': 0, '((S\NP)\(S\NP))/NP': -0.5}
  telescopes: {NP: 0}
`

func testIntp(t *testing.T) *Intp {
	lex, err := supertag.LoadLexicon(strings.NewReader(lexicon))
	if err != nil {
		t.Fatal(err)
	}
	p, err := pipeline.NewParser(lex, ccgsrl.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return NewIntp(p)
}

func TestIntpSession(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.cli")
	defer teardown()
	//
	intp := testIntp(t)
	for _, line := range []string{
		"John saw the man with telescopes",
		":show 2",
		"+attach 4 1 5",
		"+attach 4 1 5", // duplicate
		":reparse",
	} {
		if _, err := intp.Eval(line); err != nil {
			t.Fatalf("%q: %v", line, err)
		}
	}
	if intp.constraints.Len() != 1 || intp.show != 2 {
		t.Errorf("unexpected interpreter state")
	}
	if intp.selected == nil || !intp.selected.HasEdge(4, 1) {
		t.Errorf("expected re-ranking to select verb attachment")
	}
	if _, err := intp.Eval(":redecode"); err != nil || !intp.selected.HasEdge(4, 1) {
		t.Errorf("expected re-decoding to select verb attachment, error is %v", err)
	}
	if _, err := intp.Eval(":tree"); err != nil {
		t.Error(err)
	}
	if quit, _ := intp.Eval(":quit"); !quit {
		t.Errorf("expected :quit to end the session")
	}
	if _, err := intp.Eval(":nonsense"); err == nil {
		t.Errorf("expected error for unknown command")
	}
}

func TestParseConstraint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.cli")
	defer teardown()
	//
	c, err := parseConstraint(strings.Fields(`-tag 2 'N' 0.5`))
	if err != nil {
		t.Fatal(err)
	}
	if tag, ok := c.(constraint.Supertag); !ok || tag.IsPositive || tag.Strength != 0.5 || tag.Word != 2 {
		t.Errorf("unexpected constraint %v", c)
	}
	if _, err = parseConstraint(strings.Fields("+attach 1")); err == nil {
		t.Errorf("expected error for incomplete constraint")
	}
}

const constraintsYAML = `
- sentence: 1
  constraints:
    - {kind: attach, head: 1, arg: 0, positive: true, weight: 2}
- sentence: 1
  constraints:
    - {kind: tag, word: 1, cat: '(S[dcl]\NP)/NP', positive: false, weight: 1}
`

func TestReadConstraints(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.cli")
	defer teardown()
	//
	sets, err := ReadConstraints(strings.NewReader(constraintsYAML), 2)
	if err != nil {
		t.Fatal(err)
	}
	if sets[0] != nil || sets[1].Len() != 2 {
		t.Errorf("unexpected constraint sets %v", sets)
	}
	if _, err = ReadConstraints(strings.NewReader(constraintsYAML), 1); err == nil {
		t.Errorf("expected error for sentence outside of corpus")
	}
	bad := "- sentence: 0\n  constraints: [{kind: link}]\n"
	if _, err = ReadConstraints(strings.NewReader(bad), 1); !errors.Is(err, ccgsrl.ErrMalformedConstraint) {
		t.Errorf("expected malformed constraint, have %v", err)
	}
}
