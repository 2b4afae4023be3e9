/*
Package constraint implements constraints on parses.

Constraints carry evidence about the correct parse of a sentence, typically
from human annotators answering questions about it:

■ Attachment(head, arg): words head and arg are (or are not) connected by a
dependency, in either direction.

■ DisjunctiveAttachment(head, {args}): head attaches to (or does not attach to)
at least one of args.

■ Supertag(word, category): word does (or does not) carry category.

Every constraint is either positive or negative and has a weight, the penalty
for parses which violate it. Constraints are immutable values; a Set collects
them without duplicates.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package constraint

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ccgsrl.rerank'.
func tracer() tracing.Trace {
	return tracing.Select("ccgsrl.rerank")
}
