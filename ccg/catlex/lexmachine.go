package catlex

import (
	"fmt"
	"sync"

	"github.com/npillmayer/ccgsrl"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token types of category strings.
const (
	EOF ccgsrl.TokType = iota - 1
	Unknown
	Atom
	Feature
	LParen
	RParen
	FwdSlash
	BwdSlash
)

var tokenNames = map[ccgsrl.TokType]string{
	EOF:      "EOF",
	Unknown:  "?",
	Atom:     "Atom",
	Feature:  "Feature",
	LParen:   "(",
	RParen:   ")",
	FwdSlash: "/",
	BwdSlash: `\`,
}

// TokenName returns a printable name for a token type.
func TokenName(t ccgsrl.TokType) string {
	return tokenNames[t]
}

var (
	lexer     *lexmachine.Lexer
	lexerErr  error
	setupOnce sync.Once
)

// categoryLexer returns the compiled lexer, compiling the DFA on first use.
func categoryLexer() (*lexmachine.Lexer, error) {
	setupOnce.Do(func() {
		lx := lexmachine.NewLexer()
		lx.Add([]byte(`( |\t|\n|\r)+`), Skip)
		lx.Add([]byte(`\(`), MakeToken(LParen))
		lx.Add([]byte(`\)`), MakeToken(RParen))
		lx.Add([]byte(`/`), MakeToken(FwdSlash))
		lx.Add([]byte(`\\`), MakeToken(BwdSlash))
		lx.Add([]byte(`\[([a-z]|[A-Z]|[0-9])+\]`), makeFeature)
		lx.Add([]byte(`([a-z]|[A-Z])+`), MakeToken(Atom))
		lx.Add([]byte(`,|\.|;|:`), MakeToken(Atom))
		if err := lx.Compile(); err != nil {
			tracer().Errorf("Error compiling category DFA: %v", err)
			lexerErr = err
			return
		}
		lexer = lx
	})
	return lexer, lexerErr
}

// CatScanner is a scanner for a single category string.
type CatScanner struct {
	scanner *lexmachine.Scanner
	input   string
	Error   func(error)
	failed  error
}

// Scanner creates a scanner for a given category string.
func Scanner(input string) (*CatScanner, error) {
	lx, err := categoryLexer()
	if err != nil {
		return nil, err
	}
	s, err := lx.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &CatScanner{scanner: s, input: input, Error: logError}, nil
}

// SetErrorHandler sets an error handler for the scanner.
func (cs *CatScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		cs.Error = logError
		return
	}
	cs.Error = h
}

// Default error reporting function for category scanners
func logError(e error) {
	tracer().Errorf("category scanner error: " + e.Error())
}

// Err returns the first error the scanner ran into, if any.
func (cs *CatScanner) Err() error {
	return cs.failed
}

// NextToken returns the next token of the input, or a token of type EOF.
// Unconsumable input is reported to the error handler and yields an Unknown
// token; after that the scanner is exhausted.
func (cs *CatScanner) NextToken() ccgsrl.Token {
	if cs.failed != nil {
		return MakeCatToken(EOF, "", ccgsrl.Span{len(cs.input), len(cs.input)})
	}
	tok, err, eof := cs.scanner.Next()
	if err != nil {
		cs.failed = fmt.Errorf("cannot scan category %q: %w", cs.input, err)
		cs.Error(err)
		at := cs.scanner.TC
		if ui, is := err.(*machines.UnconsumedInput); is {
			at = ui.StartTC
		}
		return MakeCatToken(Unknown, "", ccgsrl.Span{at, at})
	}
	if eof {
		return MakeCatToken(EOF, "", ccgsrl.Span{len(cs.input), len(cs.input)})
	}
	token := tok.(*lexmachine.Token)
	ct := MakeCatToken(ccgsrl.TokType(token.Type), string(token.Lexeme),
		ccgsrl.Span{token.TC, token.TC + len(token.Lexeme)})
	ct.Val = token.Value
	return ct
}

// Tokenize splits a category string into its tokens, excluding EOF.
func Tokenize(input string) ([]ccgsrl.Token, error) {
	scan, err := Scanner(input)
	if err != nil {
		return nil, err
	}
	scan.SetErrorHandler(func(error) {})
	var tokens []ccgsrl.Token
	for token := scan.NextToken(); token.TokType() != EOF; token = scan.NextToken() {
		tokens = append(tokens, token)
	}
	return tokens, scan.Err()
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(typ ccgsrl.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(typ), string(m.Bytes), m), nil
	}
}

// makeFeature strips the brackets off a feature.
func makeFeature(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	feature := string(m.Bytes[1 : len(m.Bytes)-1])
	return s.Token(int(Feature), feature, m), nil
}

// --- Tokens ----------------------------------------------------------------

// CatToken is the token type produced by category scanners.
type CatToken struct {
	kind   ccgsrl.TokType
	lexeme string
	Val    interface{}
	span   ccgsrl.Span
}

// MakeCatToken creates a token.
func MakeCatToken(typ ccgsrl.TokType, lexeme string, span ccgsrl.Span) CatToken {
	return CatToken{
		kind:   typ,
		lexeme: lexeme,
		Val:    lexeme,
		span:   span,
	}
}

func (t CatToken) TokType() ccgsrl.TokType {
	return t.kind
}

func (t CatToken) Value() interface{} {
	return t.Val
}

func (t CatToken) Lexeme() string {
	return t.lexeme
}

func (t CatToken) Span() ccgsrl.Span {
	return t.span
}

func (t CatToken) String() string {
	return fmt.Sprintf("%s%q", TokenName(t.kind), t.lexeme)
}

var _ ccgsrl.Token = CatToken{}
