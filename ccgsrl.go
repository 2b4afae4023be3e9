package ccgsrl

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. We do not define any constants here, as
// it is up to scanners to define them.
type TokType int

// Tokens represent input tokens. They are produced by scanners, e.g. the category
// lexer in package catlex.
//
// An example would be a token for an atomic category:
//
//    TokType = Atom        // identifier for this kind of tokens (scanner specific)
//    Lexeme  = "NP"        // lexeme how it appeared in the input stream
//    Value   = "NP"        // value, possibly converted by the scanner
//    Span    = 3…5         // occured from position 3 in the input stream
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of words of a sentence. Every chart
// entry tracks which word positions it covers. A span denotes a start position
// and the position just behind the end.
type Span [2]int // (x…y)

// SpanOf creates a span covering words start to last, inclusive.
func SpanOf(start, last int) Span {
	return Span{start, last + 1}
}

// From returns the start value of a span.
func (s Span) From() int {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() int {
	return s[1]
}

// Last returns the index of the last word covered by a span.
func (s Span) Last() int {
	return s[1] - 1
}

// Len returns the length of (x…y)
func (s Span) Len() int {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Contains is true if word position i is covered by s.
func (s Span) Contains(i int) bool {
	return i >= s[0] && i < s[1]
}

// Adjacent is true if other starts right behind s.
func (s Span) Adjacent(other Span) bool {
	return s[1] == other[0]
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
