/*
Package nbest extracts the k best derivations from a packed forest.

Extraction follows the lazy k-best algorithm of Huang & Chiang (2005,
"Better k-best parsing", algorithm 3): every node keeps a heap of candidate
derivations, and the k-th best derivation of a child is only computed when a
parent asks for it.

Derivations are distinct by their sets of dependencies. Two derivations
differing only in rule applications or in supertags, but resolving the same
dependencies, count as one; the better one is kept.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package nbest

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ccgsrl.chart'.
func tracer() tracing.Trace {
	return tracing.Select("ccgsrl.chart")
}
