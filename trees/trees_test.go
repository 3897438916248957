package trees

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/treegram"
)

// buildDiscont creates the tree for the sentence w0 w1 w2 w3 w4 with a
// discontinuous constituent X covering positions {0,1,3,4} through its
// children A = {0,3} and B = {1,4}; position 2 sits under a separate
// preterminal C.
//
//    VROOT
//    ├── X
//    │   ├── A ── PA/w0@0, PA/w3@3
//    │   └── B ── PB/w1@1, PB/w4@4
//    └── C ── w2@2
//
func buildDiscont(t *testing.T) (*Tree, NodeID, NodeID, NodeID) {
	tree := NewTree()
	root := tree.AddNode(nt("VROOT"))
	x := tree.AddChild(root, nt("X"))
	a := tree.AddChild(x, nt("A"))
	b := tree.AddChild(x, nt("B"))
	c := tree.AddChild(root, nt("C"))
	addWord(tree, tree.AddChild(a, nt("PA")), "w0", 0)
	addWord(tree, tree.AddChild(a, nt("PA")), "w3", 3)
	addWord(tree, tree.AddChild(b, nt("PB")), "w1", 1)
	addWord(tree, tree.AddChild(b, nt("PB")), "w4", 4)
	addWord(tree, c, "w2", 2)
	return tree, x, a, b
}

func nt(label string) NodeData {
	data := DefaultNodeData()
	data.Label = label
	return data
}

func addWord(tree *Tree, preterminal NodeID, word string, num int) NodeID {
	data := DefaultNodeData()
	data.Word = word
	data.Num = num
	return tree.AddChild(preterminal, data)
}

func TestTerminalsOrdered(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treegram.trees")
	defer teardown()
	//
	tree, x, _, _ := buildDiscont(t)
	terms, err := tree.Terminals(x)
	if err != nil {
		t.Fatal(err)
	}
	nums := []int{}
	for _, term := range terms {
		nums = append(nums, tree.Node(term).Num)
	}
	t.Logf("yield of X = %v", nums)
	expected := []int{0, 1, 3, 4}
	if len(nums) != len(expected) {
		t.Fatalf("expected %d terminals below X, got %d", len(expected), len(nums))
	}
	for i, num := range nums {
		if num != expected[i] {
			t.Errorf("terminal #%d should have position %d, has %d", i, expected[i], num)
		}
	}
}

func TestTerminalsMissingNum(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treegram.trees")
	defer teardown()
	//
	tree := NewTree()
	root := tree.AddNode(nt("S"))
	p := tree.AddChild(root, nt("NN"))
	leaf := DefaultNodeData()
	leaf.Word = "cat" // no position number
	tree.AddChild(p, leaf)
	if _, err := tree.Terminals(root); !errors.Is(err, ErrMalformedTree) {
		t.Errorf("expected malformed-tree error, got %v", err)
	}
}

func TestChildrenOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treegram.trees")
	defer teardown()
	//
	tree, x, a, b := buildDiscont(t)
	children := tree.Children(x)
	if len(children) != 2 || children[0] != a || children[1] != b {
		t.Errorf("children of X should be [A B], are %v", children)
	}
	// children of the root: X (leftmost terminal 0) before C (2),
	// although C was inserted later anyway — reverse insertion order
	// below pins the sorting
	tree2 := NewTree()
	root := tree2.AddNode(nt("VROOT"))
	late := tree2.AddChild(root, nt("NN"))
	early := tree2.AddChild(root, nt("DT"))
	addWord(tree2, late, "cat", 1)
	addWord(tree2, early, "the", 0)
	children = tree2.Children(root)
	if children[0] != early || children[1] != late {
		t.Errorf("children should be ordered by leftmost terminal, are %v", children)
	}
}

func TestTerminalBlocks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treegram.trees")
	defer teardown()
	//
	tree, x, a, _ := buildDiscont(t)
	blocks, err := tree.TerminalBlocks(x)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 2 {
		t.Fatalf("X should cover 2 blocks, covers %d", len(blocks))
	}
	if len(blocks[0]) != 2 || len(blocks[1]) != 2 {
		t.Errorf("blocks of X should hold 2 terminals each, hold %d/%d",
			len(blocks[0]), len(blocks[1]))
	}
	blocks, err = tree.TerminalBlocks(a)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 2 {
		t.Errorf("A should cover 2 blocks, covers %d", len(blocks))
	}
}

func TestSpanAndFanout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treegram.trees")
	defer teardown()
	//
	tree, x, _, _ := buildDiscont(t)
	span, err := tree.Span(x)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("span of X = %v", span)
	if treegram.Fanout(span) != 2 {
		t.Fatalf("fan-out of X should be 2, is %d", treegram.Fanout(span))
	}
	if span[0] != (treegram.Block{0, 1}) || span[1] != (treegram.Block{3, 4}) {
		t.Errorf("span of X should be [(0…1) (3…4)], is %v", span)
	}
	root := tree.Root()
	span, err = tree.Span(root)
	if err != nil {
		t.Fatal(err)
	}
	if treegram.Fanout(span) != 1 {
		t.Errorf("fan-out of the root should be 1, is %d", treegram.Fanout(span))
	}
}

func TestRightSibling(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treegram.trees")
	defer teardown()
	//
	tree, _, a, b := buildDiscont(t)
	if sib := tree.RightSibling(a); sib != b {
		t.Errorf("right sibling of A should be B, is %v", sib)
	}
	if sib := tree.RightSibling(b); sib != NoNode {
		t.Errorf("B should have no right sibling, has %v", sib)
	}
	if sib := tree.RightSibling(tree.Root()); sib != NoNode {
		t.Errorf("the root should have no right sibling, has %v", sib)
	}
}

func TestDominanceAndLCA(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treegram.trees")
	defer teardown()
	//
	tree, x, a, b := buildDiscont(t)
	dom := tree.Dominance(a)
	if len(dom) != 3 || dom[0] != a || dom[1] != x || dom[2] != tree.Root() {
		t.Errorf("dominance of A should be [A X VROOT], is %v", dom)
	}
	if lca := tree.LCA(a, b); lca != x {
		t.Errorf("LCA of A and B should be X, is %v", lca)
	}
	terms, _ := tree.Terminals(tree.Root())
	if lca := tree.LCA(terms[0], terms[2]); lca != tree.Root() {
		t.Errorf("LCA of w0 and w2 should be the root, is %v", lca)
	}
}

func TestTraversalOrders(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treegram.trees")
	defer teardown()
	//
	tree, _, _, _ := buildDiscont(t)
	var pre, post []string
	tree.Preorder(tree.Root(), func(id NodeID) error {
		pre = append(pre, tree.Node(id).Label+tree.Node(id).Word)
		return nil
	})
	tree.Postorder(tree.Root(), func(id NodeID) error {
		post = append(post, tree.Node(id).Label+tree.Node(id).Word)
		return nil
	})
	if len(pre) != tree.Size() || len(post) != tree.Size() {
		t.Fatalf("traversals should visit %d nodes, visited %d/%d",
			tree.Size(), len(pre), len(post))
	}
	if pre[0] != "VROOT" {
		t.Errorf("preorder should start at the root, starts at %s", pre[0])
	}
	if post[len(post)-1] != "VROOT" {
		t.Errorf("postorder should end at the root, ends at %s", post[len(post)-1])
	}
}
