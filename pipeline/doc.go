/*
Package pipeline parses sentences end to end.

For every sentence, a Parser fetches supertags from a source, prunes them with
the supertagger beam, builds the chart, compacts it to a forest and extracts
the n-best list. If the chart grows beyond its size budget, the beam is
narrowed by doubling β and the sentence is parsed again, until 2β reaches the
configured cutoff.

ParseAll parses a batch of sentences concurrently. Sentences do not share any
mutable state, apart from an optional supertag cache. Failures are reported
per sentence and never abort a batch.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pipeline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ccgsrl.pipeline'.
func tracer() tracing.Trace {
	return tracing.Select("ccgsrl.pipeline")
}
