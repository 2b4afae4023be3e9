/*
Package reparse selects parses according to constraints.

Reparse re-ranks an n-best list: every parse is penalized with the weights of
the constraints it violates, and the parse with the best adjusted score wins.
Re-ranking never produces a derivation which is not part of the list, and all
constraints are soft.

Redecode folds the constraints into the scores of a packed forest instead and
extracts new k-best lists from it. It may therefore find parses which have
not been in the original list.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package reparse

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ccgsrl.rerank'.
func tracer() tracing.Trace {
	return tracing.Select("ccgsrl.rerank")
}
