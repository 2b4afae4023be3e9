/*
Package model implements scoring models for packed forests.

Scores are local and additive: the score of a derivation is the sum of the
local scores of its nodes, plus a root score. A Scorer therefore only ever sees
a single derivation step (a node together with one of its alternatives), which
makes dynamic programming over a forest possible.

Models:

■ SupertagFactored scores leaves with their supertag log-probabilities. It may
penalize unary rules and long attachments.

■ SRLFactored adds weighted sparse features over dependencies, rules and root
categories, and chooses role labels for dependencies.

■ Constrained wraps another model and subtracts constraint penalties.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package model

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ccgsrl.chart'.
func tracer() tracing.Trace {
	return tracing.Select("ccgsrl.chart")
}
