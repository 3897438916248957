/*
Package grammar extracts RCG/PMCFG-style grammars from treebank trees.

Extraction walks one derivation tree at a time and accumulates syntactic
rule occurrences — a function, its linearization and a vertical context —
and lexical rule occurrences into a pair of shared stores (Grammar and
Lexicon). Constituents may be discontinuous: the linearization of a rule
records how the argument fragments of the right-hand-side children are
concatenated into the blocks of the parent's span.

A completed Grammar of unbounded rule arity may be binarized into an
equivalent Grammar containing only unary and binary rules. Binarization is
parameterized by markovization depths (vertical and horizontal) and by a
reordering strategy which chooses the combination order for rules of
arity > 2; strategy 'optimal' minimizes the maximum fan-out of the
synthesized intermediate nonterminals.

Extraction is invoked once per tree of a corpus against shared mutable
accumulators; callers must serialize successive calls against the same
accumulators. Binarization never mutates its input.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'treegram.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("treegram.grammar")
}
