package ccgsrl

import "errors"

// Errors reported by the engine. Callers test with errors.Is, as all of them
// are wrapped with sentence-specific context.
var (
	// ErrParseFailure: the chart exceeded its size budget even after beam
	// relaxation, or no derivation spans the full sentence.
	ErrParseFailure = errors.New("parse failure")

	// ErrNoRootDerivation: the chart spans the sentence, but no full-span
	// category is in the permitted root set.
	ErrNoRootDerivation = errors.New("no derivation with a permitted root category")

	// ErrNoParseAvailable: an empty n-best list has been handed to the reparser.
	ErrNoParseAvailable = errors.New("no parse available")

	// ErrMalformedConstraint: a constraint references a word outside the sentence
	// or a dependency slot which does not exist.
	ErrMalformedConstraint = errors.New("malformed constraint")
)

// IsParseFailure is true for errors which callers treat as a failed parse of a
// sentence, i.e. ErrParseFailure and ErrNoRootDerivation.
func IsParseFailure(err error) bool {
	return errors.Is(err, ErrParseFailure) || errors.Is(err, ErrNoRootDerivation)
}
