package ccg

import (
	"fmt"

	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/ccg/catlex"
)

// Parse creates an interned category from its textual form. Slashes associate
// to the left, i.e. `S\NP/NP` is read as `(S\NP)/NP`.
//
//    category ::= primary { slash primary }
//    primary  ::= Atom [ Feature ]  |  '(' category ')'
//
func Parse(s string) (*Category, error) {
	if c := Lookup(s); c != nil {
		return c, nil
	}
	tokens, err := catlex.Tokenize(s)
	if err != nil {
		return nil, err
	}
	p := &catParser{input: s, tokens: tokens}
	c, err := p.category()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, p.errorf("unexpected %q", p.peek().Lexeme())
	}
	return c, nil
}

// MustParse is like Parse, but panics on malformed input. It is intended for
// initializing tables and for tests.
func MustParse(s string) *Category {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseAll parses a list of categories.
func ParseAll(names []string) ([]*Category, error) {
	cats := make([]*Category, len(names))
	for i, name := range names {
		c, err := Parse(name)
		if err != nil {
			return nil, err
		}
		cats[i] = c
	}
	return cats, nil
}

type catParser struct {
	input  string
	tokens []ccgsrl.Token
	pos    int
}

func (p *catParser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *catParser) peek() ccgsrl.Token {
	return p.tokens[p.pos]
}

func (p *catParser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("malformed category %q: %s", p.input, fmt.Sprintf(format, args...))
}

func (p *catParser) category() (*Category, error) {
	c, err := p.primary()
	if err != nil {
		return nil, err
	}
	for !p.atEnd() {
		var slash Slash
		switch p.peek().TokType() {
		case catlex.FwdSlash:
			slash = Fwd
		case catlex.BwdSlash:
			slash = Bwd
		default:
			return c, nil
		}
		p.pos++
		arg, err := p.primary()
		if err != nil {
			return nil, err
		}
		c = Functor(c, slash, arg)
	}
	return c, nil
}

func (p *catParser) primary() (*Category, error) {
	if p.atEnd() {
		return nil, p.errorf("premature end")
	}
	tok := p.peek()
	switch tok.TokType() {
	case catlex.Atom:
		p.pos++
		feature := ""
		if !p.atEnd() && p.peek().TokType() == catlex.Feature {
			feature = p.peek().Value().(string)
			p.pos++
		}
		return Atom(tok.Lexeme(), feature), nil
	case catlex.LParen:
		p.pos++
		c, err := p.category()
		if err != nil {
			return nil, err
		}
		if p.atEnd() || p.peek().TokType() != catlex.RParen {
			return nil, p.errorf("missing ')'")
		}
		p.pos++
		return c, nil
	}
	return nil, p.errorf("unexpected %q at position %d", tok.Lexeme(), tok.Span().From())
}
