/*
Package packed implements a packed forest of CCG derivations.

A forest is the part of a chart reachable from the entries which span the whole
sentence with a permitted root category. Like a shared packed parse forest it
re-uses sub-derivations: every node (a chart key) is stored once, with its
alternative derivations. Nodes live in an arena, children before parents, thus
bottom-up passes over a forest are plain loops over node IDs.

Clients walk single derivations with a Listener, pruning alternatives as they
see fit, or enumerate all derivations of small forests. FindBestConsistent
restricts a forest to the derivations which agree best with a set of target
dependencies.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package packed

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ccgsrl.chart'.
func tracer() tracing.Trace {
	return tracing.Select("ccgsrl.chart")
}
