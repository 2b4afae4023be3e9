/*
Package ccg implements the grammar side of CCG chart parsing: categories, the
combinatory rules and the predicate-argument dependencies resolved when rules
apply.

Categories

Categories are created from their textual form and interned, i.e. two
categories are structurally equal if and only if they are the same pointer.

    vt := ccg.MustParse(`(S[dcl]\NP)/NP`)
    vt.Arity()     // 2
    vt.Arg(1)      // NP, the subject
    vt.Arg(2)      // NP, the object

Arguments are numbered from the innermost argument outwards, as in CCGbank:
argument Arity() is the one a functor consumes next.

Combining Categories

A Grammar holds the binary combinators and unary rules in use. Combine works on
chart entries, as it has to respect the normal-form rules (which depend on the
rule that produced a child) and has to carry the dependency state of the
children:

    g := ccg.NewGrammar()
    for _, r := range g.Combine(left, right) {
        // r.Category, r.Rule, r.State, r.Deps
    }

Every entry carries a DepState: the lexical heads of the constituent and, for
each of its outstanding arguments, the predicates waiting for that argument.
Applying or composing a functor fills the waiting slots with the heads of the
argument, resulting in ResolvedDependency values.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ccg

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ccgsrl.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("ccgsrl.grammar")
}
