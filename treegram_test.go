package treegram

import "testing"

func TestCoverBlocks(t *testing.T) {
	blocks := CoverBlocks([]int{0, 1, 3, 4, 7})
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	if blocks[0] != (Block{0, 1}) || blocks[1] != (Block{3, 4}) || blocks[2] != (Block{7, 7}) {
		t.Errorf("unexpected blocks %v", blocks)
	}
	if Fanout(blocks) != 3 {
		t.Errorf("fan-out should be 3, is %d", Fanout(blocks))
	}
	if CoverBlocks(nil) != nil {
		t.Errorf("empty position sequence should yield no blocks")
	}
}

func TestBlock(t *testing.T) {
	b := Block{3, 5}
	if b.From() != 3 || b.To() != 5 || b.Len() != 3 {
		t.Errorf("unexpected block geometry for %v", b)
	}
	if !b.Contains(4) || b.Contains(6) {
		t.Errorf("containment check failed for %v", b)
	}
	if b.String() != "(3…5)" {
		t.Errorf("unexpected string form %q", b.String())
	}
}
