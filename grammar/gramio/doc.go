/*
Package gramio serializes grammars and lexicons as text.

Two line-oriented formats are supported: an RCG clause format, where each
line carries the rule count, the LHS predicate with its argument mapping
and the RHS predicates, and a PMCFG format, where the LHS linearization is
spelled out behind the rule. Both come with a companion lexicon format of
one (preterminal, word, count) triple per line, and both round-trip: a
written grammar parses back to the same (function, linearization) ⟶ count
mapping, with vertical contexts collapsed into the default context.

Output is UTF-8 by default; other character encodings may be requested by
IANA name.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gramio

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'treegram.gramio'.
func tracer() tracing.Trace {
	return tracing.Select("treegram.gramio")
}
