/*
Package ccgsrl is a constrained chart-parsing and rescoring engine for
Combinatory Categorial Grammar (CCG).

Given supertagger output for a sentence, ccgsrl builds a CKY chart, packs the
derivations reachable from a set of permitted root categories into a shared
forest, extracts the k best derivations (distinct by their predicate-argument
dependencies) and re-ranks or re-decodes them under attachment and supertag
constraints. Package structure is as follows:

■ ccg: Package ccg implements categories, the combinatory rules and the
dependency slots they resolve. Sub-packages contain the chart builder, the packed
forest, scoring models and k-best extraction.

■ constraint: Package constraint implements the constraint values which bias
re-scoring towards or away from dependencies and supertags.

■ reparse: Package reparse re-ranks n-best lists under constraints or re-decodes
a packed forest with constraint penalties folded into the scores.

■ eval: Package eval computes labeled and unlabeled precision, recall and F1.

■ supertag and pipeline: supertag sources and the per-sentence / batch driver
including the beam relaxation loop.

■ app and webapi: command line tool, interactive shell and a JSON web service,
dispatched from cmd/ccgsrl.

The base package contains data types which are used throughout all the other
packages: spans, tokens, the configuration value and the error taxonomy.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ccgsrl
