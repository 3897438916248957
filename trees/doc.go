/*
Package trees provides the tree data model for treebank trees.

Trees are represented as arenas of nodes, indexed by arena-local sequential
IDs. Each node carries a parent index, an ordered child index list and the
usual treebank node fields (word, lemma, label, morphology, edge label,
terminal position). Constituents may be discontinuous, i.e. the terminal
yield of a node need not be a contiguous span of the sentence.

The package offers ordered traversal, terminal-yield computation,
contiguous-block segmentation and parsing/formatting of treebank node
labels (grammatical functions, coindices, gapping indices, head markers).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package trees

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'treegram.trees'.
func tracer() tracing.Trace {
	return tracing.Select("treegram.trees")
}
