/*
Package supertag provides lexical category distributions for sentences.

A Source assigns to every word of a sentence a ranked list of CCG categories
with log-probabilities. The supertagging model itself is not part of this
module: sources either read pre-tagged corpora (FileSource), look up a
dictionary (Lexicon) or wrap an external tagger. Cache memoizes any source,
keyed by the exact word sequence.

Prune applies the supertagger beam: a category is kept for a word iff

    p(category) ≥ β · p(best category of the word)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package supertag

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ccgsrl.pipeline'.
func tracer() tracing.Trace {
	return tracing.Select("ccgsrl.pipeline")
}
