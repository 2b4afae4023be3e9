/*
Package catlex provides a tokenizer for the textual form of CCG categories,
based on the lexmachine scanner generator.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Categories are written the way CCGbank writes them:

    (S[dcl]\NP)/NP     ⇒   ( Atom Feature \ Atom ) / Atom

The lexer DFA is compiled once and shared; a scanner is instantiated for each
concrete input string.

	scan, err := catlex.Scanner(`(S[dcl]\NP)/NP`)
	if err != nil {
		// do error handling
	}
	for token := scan.NextToken(); token.TokType() != catlex.EOF; token = scan.NextToken() {
		…
	}

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package catlex

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ccgsrl.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("ccgsrl.grammar")
}
