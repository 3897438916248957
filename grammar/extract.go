package grammar

import (
	"fmt"
	"strings"

	"github.com/npillmayer/treegram/trees"
)

// Extractor extracts grammar rules from treebank trees. The zero value is
// not usable, create extractors with NewExtractor.
type Extractor struct {
	Sep    trees.Separators // separators for node-label decomposition
	DropGF bool             // strip grammatical functions from rule labels
}

// NewExtractor creates an extractor with default label separators.
// Grammatical functions are kept as part of the rule labels; coindices,
// gapping indices and head markers are always stripped.
func NewExtractor() *Extractor {
	return &Extractor{Sep: trees.DefaultSeparators()}
}

// Extract extracts rules from one tree into the given accumulators, using
// a default extractor. See Extractor.Extract.
func Extract(t *trees.Tree, g *Grammar, lex *Lexicon) error {
	return NewExtractor().Extract(t, g, lex)
}

// Extract walks one derivation tree and adds its syntactic rule
// occurrences to g and its lexical rule occurrences to lex. Extraction
// over a whole corpus repeatedly calls Extract on shared accumulators;
// counts are the only cumulative state, so call order does not matter.
//
// Extract fails with a malformed-tree error when a terminal lacks its
// position number or a node covers an empty span. On failure neither
// accumulator is mutated; corpus-level callers may skip the tree and
// continue.
func (x *Extractor) Extract(t *trees.Tree, g *Grammar, lex *Lexicon) error {
	root := t.Root()
	if root == trees.NoNode {
		return fmt.Errorf("%w: empty tree", trees.ErrMalformedTree)
	}
	// stage into scratch stores, merge only on success
	scratchG := NewGrammar("")
	scratchL := NewLexicon()
	err := t.Postorder(root, func(id trees.NodeID) error {
		return x.extractNode(t, id, scratchG, scratchL)
	})
	if err != nil {
		return err
	}
	g.Merge(scratchG)
	lex.Merge(scratchL)
	tracer().Debugf("extracted %d grammar entries, %d lexicon entries",
		scratchG.Size(), scratchL.Size())
	return nil
}

// extractNode emits the rule occurrence for a single nonterminal node.
// Extraction is purely local to a node and its immediate children.
//
// Terminals come in two shapes. Bracketed input puts untagged words below
// their own tag node; such a tag node is a preterminal and contributes a
// lexicon entry instead of a syntactic rule. Export input tags the
// terminal itself (word and category on one leaf) and attaches it to a
// phrase directly; such a leaf is a terminal under an implicit
// preterminal: it contributes a lexicon entry keyed by its own tag, and
// the tag is what the parent's rule references.
func (x *Extractor) extractNode(t *trees.Tree, id trees.NodeID, g *Grammar, lex *Lexicon) error {
	if t.IsLeaf(id) {
		term := t.Node(id)
		if term.Label == trees.DefaultLabel {
			return nil // untagged word, handled by its preterminal parent
		}
		if term.Num == trees.NoNum {
			return fmt.Errorf("%w: no position number for terminal %s/%s",
				trees.ErrMalformedTree, term.Word, term.Label)
		}
		tag, err := x.ruleLabel(term.Label)
		if err != nil {
			return err
		}
		lex.Add(tag, term.Word, 1)
		return nil
	}
	children := t.Children(id)
	if len(children) == 1 && t.IsLeaf(children[0]) &&
		t.Node(children[0]).Label == trees.DefaultLabel { // id is a preterminal
		term := t.Node(children[0])
		if term.Num == trees.NoNum {
			return fmt.Errorf("%w: no position number for terminal %s/%s",
				trees.ErrMalformedTree, term.Word, term.Label)
		}
		pret, err := x.ruleLabel(t.Node(id).Label)
		if err != nil {
			return err
		}
		lex.Add(pret, term.Word, 1)
		return nil
	}
	terms, err := t.Terminals(id)
	if err != nil {
		return err
	}
	if len(terms) == 0 {
		return fmt.Errorf("%w: empty span", trees.ErrMalformedTree)
	}
	// which (child, child-argument) owns which terminal position?
	owner := make(map[trees.NodeID]ArgElem)
	for ci, child := range children {
		blocks, err := t.TerminalBlocks(child)
		if err != nil {
			return err
		}
		for ai, block := range blocks {
			for _, term := range block {
				owner[term] = ArgElem{Child: ci, Arg: ai}
			}
		}
	}
	// scan the yield in position order and record how the children's
	// argument fragments concatenate into the blocks of the own span
	lin := Linearization{{}}
	prevNum := 0
	var prevOwner ArgElem
	for i, term := range terms {
		el, ok := owner[term]
		if !ok {
			return fmt.Errorf("%w: terminal %d not covered by any child",
				trees.ErrMalformedTree, t.Node(term).Num)
		}
		num := t.Node(term).Num
		switch {
		case i == 0:
			lin[0] = append(lin[0], el)
		case num > prevNum+1: // gap in the own span: a new LHS argument starts
			lin = append(lin, Arg{el})
		case el != prevOwner: // a new child fragment continues the block
			lin[len(lin)-1] = append(lin[len(lin)-1], el)
		}
		prevNum = num
		prevOwner = el
	}
	f := make(Function, 0, len(children)+1)
	lhs, err := x.ruleLabel(t.Node(id).Label)
	if err != nil {
		return err
	}
	f = append(f, lhs)
	for _, child := range children {
		label, err := x.ruleLabel(t.Node(child).Label)
		if err != nil {
			return err
		}
		f = append(f, label)
	}
	vert, err := x.vertContext(t, id)
	if err != nil {
		return err
	}
	g.Add(f, lin, vert, 1)
	return nil
}

// ruleLabel derives the grammar-rule label from a treebank node label:
// coindices, gapping indices and head markers are stripped, grammatical
// functions are kept unless DropGF is set.
func (x *Extractor) ruleLabel(label string) (string, error) {
	parsed, err := trees.ParseLabel(label, x.Sep)
	if err != nil {
		return "", fmt.Errorf("%w: %v", trees.ErrMalformedTree, err)
	}
	if x.DropGF || parsed.GF == trees.DefaultEdge {
		return parsed.Base, nil
	}
	return parsed.Base + parsed.GFSeparator + parsed.GF, nil
}

// vertContext concatenates the ancestor labels of a node, nearest
// ancestor first. Nodes without ancestors get the sentinel context.
func (x *Extractor) vertContext(t *trees.Tree, id trees.NodeID) (string, error) {
	chain := t.Dominance(id)
	if len(chain) <= 1 {
		return DefaultVert, nil
	}
	labels := make([]string, 0, len(chain)-1)
	for _, ancestor := range chain[1:] {
		label, err := x.ruleLabel(t.Node(ancestor).Label)
		if err != nil {
			return "", err
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, VertSep), nil
}
