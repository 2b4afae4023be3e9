/*
Package app implements the commands of the ccgsrl command line tool.

■ parse: parse a corpus and print the n-best parses of every sentence,
evaluating them against gold dependencies if the corpus provides them.

■ reparse: parse a corpus, then select parses according to constraints,
either by re-ranking the n-best lists or by constrained re-decoding.

■ repl: an interactive shell to parse sentences and experiment with
constraints.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package app

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ccgsrl.cli'.
func tracer() tracing.Trace {
	return tracing.Select("ccgsrl.cli")
}
