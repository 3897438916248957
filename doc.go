/*
Package treegram extracts formal grammars from treebank trees.

treegram reads constituency trees — possibly with discontinuous
constituents — and extracts grammars in Range Concatenation Grammar (RCG)
resp. Parallel Multiple Context-Free Grammar (PMCFG) style, together with a
lexicon of preterminal/word occurrences. Extracted grammars of unbounded
rule arity may be transformed into equivalent unary/binary grammars, with
markovization of the synthesized labels and a configurable reordering
strategy for the combination order. Package structure is as follows:

■ trees: Package trees provides the tree data model, ordered traversal,
terminal yields, contiguous-block segmentation, and treebank label parsing.

■ trees/treeio: Package treeio reads treebank trees from bracket and
export formats.

■ grammar: Package grammar implements grammar extraction, binarization and
reordering strategies.

■ grammar/gramio: Package gramio serializes grammar and lexicon in RCG and
PMCFG text formats.

The base package contains data types which are used throughout all the
other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package treegram
