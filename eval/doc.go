/*
Package eval measures parses against gold standard dependencies.

Dependencies are compared by head and argument word, labeled dependencies
additionally by their role label. Precision, recall and F1 may be computed per
sentence (Evaluate) or micro-averaged over a corpus (Accumulator). Oracle
finds the best parse of an n-best list, NBestResults tracks oracle scores per
list length.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package eval

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ccgsrl.rerank'.
func tracer() tracing.Trace {
	return tracing.Select("ccgsrl.rerank")
}
