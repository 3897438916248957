package trees

import (
	"errors"
	"fmt"
	"sort"

	"github.com/npillmayer/treegram"
)

// ErrMalformedTree flags trees which cannot be interpreted as treebank
// sentences, e.g. because a terminal node lacks its position number.
// Callers iterating over a corpus will usually skip the offending sentence
// and continue.
var ErrMalformedTree = errors.New("malformed tree")

// Default values for node fields, following common treebank conventions.
const (
	DefaultLemma = "--"
	DefaultLabel = "--"
	DefaultMorph = "--"
	DefaultEdge  = "--"
)

// NoNum marks a node without a terminal position (i.e. a nonterminal).
const NoNum = -1

// NodeID identifies a node within one tree arena. IDs are sequential and
// only comparable within the lifetime of their arena.
type NodeID int

// NoNode is the null value for node IDs, e.g. the parent of the root.
const NoNode NodeID = -1

// NodeData holds the payload fields of a tree node.
type NodeData struct {
	Word  string
	Lemma string
	Label string
	Morph string
	Edge  string
	Num   int // terminal position, NoNum for nonterminals
}

// DefaultNodeData creates a node payload pre-initialized with default
// field values and no terminal position.
func DefaultNodeData() NodeData {
	return NodeData{
		Lemma: DefaultLemma,
		Label: DefaultLabel,
		Morph: DefaultMorph,
		Edge:  DefaultEdge,
		Num:   NoNum,
	}
}

type node struct {
	parent   NodeID
	children []NodeID
	data     NodeData
}

// Tree is an arena of nodes forming one treebank tree. The zero node (the
// first one added) is the root. Create trees with NewTree, then grow them
// with AddNode and AddChild.
type Tree struct {
	nodes []node
}

// NewTree creates an empty tree arena.
func NewTree() *Tree {
	return &Tree{nodes: make([]node, 0, 32)}
}

// AddNode inserts a parent-less node into the arena and returns its ID.
// The first node added is the root of the tree.
func (t *Tree) AddNode(data NodeData) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{parent: NoNode, data: data})
	return id
}

// AddChild inserts a node as the last child of parent and returns its ID.
func (t *Tree) AddChild(parent NodeID, data NodeData) NodeID {
	id := t.AddNode(data)
	t.Link(parent, id)
	return id
}

// Link attaches an existing node as the last child of parent.
func (t *Tree) Link(parent, child NodeID) {
	t.nodes[child].parent = parent
	t.nodes[parent].children = append(t.nodes[parent].children, child)
}

// Size returns the number of nodes in the arena.
func (t *Tree) Size() int {
	return len(t.nodes)
}

// Root returns the root node of the tree, or NoNode for an empty arena.
func (t *Tree) Root() NodeID {
	if len(t.nodes) == 0 {
		return NoNode
	}
	return 0
}

// Node gives access to the payload of a node. The returned pointer points
// into the arena, field updates are visible to subsequent calls.
func (t *Tree) Node(id NodeID) *NodeData {
	return &t.nodes[id].data
}

// Parent returns the parent of a node, NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	return t.nodes[id].parent
}

// IsLeaf checks whether a node has no children.
func (t *Tree) IsLeaf(id NodeID) bool {
	return len(t.nodes[id].children) == 0
}

// Children returns the children of a node, ordered by the position of
// their leftmost terminal. Nodes without any numbered terminal keep their
// insertion order, after all numbered siblings.
func (t *Tree) Children(id NodeID) []NodeID {
	ch := append([]NodeID(nil), t.nodes[id].children...)
	sort.SliceStable(ch, func(i, j int) bool {
		return t.leftmost(ch[i]) < t.leftmost(ch[j])
	})
	return ch
}

// leftmost finds the smallest terminal position below a node. Nodes
// covering no numbered terminal sort to the right.
func (t *Tree) leftmost(id NodeID) int {
	min := int(^uint(0) >> 1)
	for _, term := range t.UnorderedTerminals(id) {
		if num := t.nodes[term].data.Num; num != NoNum && num < min {
			min = num
		}
	}
	return min
}

// Preorder walks the subtree below id in preorder (parents before
// children, children in terminal order) and calls visit for every node.
// A non-nil error from visit aborts the walk.
func (t *Tree) Preorder(id NodeID, visit func(NodeID) error) error {
	if err := visit(id); err != nil {
		return err
	}
	for _, child := range t.Children(id) {
		if err := t.Preorder(child, visit); err != nil {
			return err
		}
	}
	return nil
}

// Postorder walks the subtree below id in postorder (children before
// parents) and calls visit for every node. A non-nil error from visit
// aborts the walk.
func (t *Tree) Postorder(id NodeID, visit func(NodeID) error) error {
	for _, child := range t.Children(id) {
		if err := t.Postorder(child, visit); err != nil {
			return err
		}
	}
	return visit(id)
}

// UnorderedTerminals collects the leaves below a node in insertion order.
func (t *Tree) UnorderedTerminals(id NodeID) []NodeID {
	if t.IsLeaf(id) {
		return []NodeID{id}
	}
	var result []NodeID
	for _, child := range t.nodes[id].children {
		result = append(result, t.UnorderedTerminals(child)...)
	}
	return result
}

// Terminals collects the leaves below a node, sorted by terminal position.
// It fails with ErrMalformedTree when a leaf lacks its position number.
func (t *Tree) Terminals(id NodeID) ([]NodeID, error) {
	terms := t.UnorderedTerminals(id)
	for _, term := range terms {
		if t.nodes[term].data.Num == NoNum {
			data := t.nodes[term].data
			return nil, fmt.Errorf("%w: no position number for terminal %s/%s",
				ErrMalformedTree, data.Word, data.Label)
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		return t.nodes[terms[i]].data.Num < t.nodes[terms[j]].data.Num
	})
	return terms, nil
}

// TerminalBlocks segments the terminal yield of a node into the maximal
// continuous blocks it covers, each block being a run of terminals with
// consecutive position numbers.
func (t *Tree) TerminalBlocks(id NodeID) ([][]NodeID, error) {
	terms, err := t.Terminals(id)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: empty terminal yield", ErrMalformedTree)
	}
	blocks := [][]NodeID{{}}
	for i, term := range terms {
		blocks[len(blocks)-1] = append(blocks[len(blocks)-1], term)
		if i+1 < len(terms) &&
			t.nodes[term].data.Num+1 < t.nodes[terms[i+1]].data.Num {
			blocks = append(blocks, []NodeID{})
		}
	}
	return blocks, nil
}

// Span computes the span of a node as a sorted sequence of position
// blocks. The fan-out of the node is the length of its span.
func (t *Tree) Span(id NodeID) ([]treegram.Block, error) {
	terms, err := t.Terminals(id)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: empty span", ErrMalformedTree)
	}
	positions := make([]int, len(terms))
	for i, term := range terms {
		positions[i] = t.nodes[term].data.Num
	}
	return treegram.CoverBlocks(positions), nil
}

// RightSibling returns the sibling immediately to the right of a node, in
// terminal order, and NoNode if there is none.
func (t *Tree) RightSibling(id NodeID) NodeID {
	parent := t.nodes[id].parent
	if parent == NoNode {
		return NoNode
	}
	siblings := t.Children(parent)
	for i, sib := range siblings[:len(siblings)-1] {
		if sib == id {
			return siblings[i+1]
		}
	}
	return NoNode
}

// Dominance returns all ancestors of a node, including the node itself,
// ordered bottom-up.
func (t *Tree) Dominance(id NodeID) []NodeID {
	chain := []NodeID{id}
	for t.nodes[id].parent != NoNode {
		id = t.nodes[id].parent
		chain = append(chain, id)
	}
	return chain
}

// LCA returns the least common ancestor of two nodes, NoNode if the nodes
// live in disjoint trees of the arena.
func (t *Tree) LCA(a, b NodeID) NodeID {
	domA := t.Dominance(a)
	domB := t.Dominance(b)
	lca := NoNode
	i, j := len(domA)-1, len(domB)-1
	for i >= 0 && j >= 0 && domA[i] == domB[j] {
		lca = domA[i]
		i--
		j--
	}
	return lca
}
