/*
Package chart implements CKY chart construction for CCG.

The chart holds, for every span of a sentence, the distinct entries (Keys) which
the grammar can derive over it. A Key is identified by its span, its category,
the rule class which produced it and its dependency state. All derivations of a
Key are stored as alternative Values:

    Lexical   a supertag of a word
    Unary     a unary rule applied to a child key of the same span
    Binary    a binary combinator applied to two adjacent child keys

Keys and values live in an arena and are addressed by index. Children are
always created before their parents.

Build returns an Outcome rather than failing: a chart may grow beyond its size
budget (TooLarge), or there may be no entry spanning the whole sentence
(NoDerivation). Callers decide whether to retry with a tighter supertagger beam.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package chart

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ccgsrl.chart'.
func tracer() tracing.Trace {
	return tracing.Select("ccgsrl.chart")
}
