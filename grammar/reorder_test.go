package grammar

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestReorderLeftToRight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treegram.grammar")
	defer teardown()
	//
	f := NewFunction("X", "A", "B", "C")
	perm := ReorderLeftToRight(f, Linearization{{{0, 0}, {1, 0}, {2, 0}}})
	if len(perm) != 3 || perm[0] != 0 || perm[1] != 1 || perm[2] != 2 {
		t.Errorf("expected identity order, got %v", perm)
	}
}

func TestReorderOptimalKeepsIdentityWhenBest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treegram.grammar")
	defer teardown()
	//
	f := NewFunction("X", "A", "B", "C")
	lin := Linearization{{{0, 0}, {1, 0}, {2, 0}}}
	perm := ReorderOptimal(f, lin)
	if perm[0] != 0 || perm[1] != 1 || perm[2] != 2 {
		t.Errorf("ties should break towards the identity order, got %v", perm)
	}
}

func TestReorderOptimalBeatsLeftToRight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treegram.grammar")
	defer teardown()
	//
	// surface order A C B C A C: combining A and B first fragments the
	// synthesized node into three blocks, combining A and C first into two
	f := NewFunction("X", "A", "B", "C")
	lin := Linearization{
		{{0, 0}, {2, 0}, {1, 0}, {2, 1}, {0, 1}, {2, 2}},
	}
	ltr := spineFanout(lin, ReorderLeftToRight(f, lin))
	if ltr != 3 {
		t.Fatalf("left-to-right spine fan-out should be 3, is %d", ltr)
	}
	perm := ReorderOptimal(f, lin)
	t.Logf("optimal order is %v", perm)
	if got := spineFanout(lin, perm); got > ltr {
		t.Errorf("optimal order must never be worse than left-to-right (%d > %d)", got, ltr)
	}
	if got := spineFanout(lin, perm); got != 2 {
		t.Errorf("optimal spine fan-out should be 2, is %d", got)
	}
	if perm[0] != 0 || perm[1] != 2 || perm[2] != 1 {
		t.Errorf("lexicographically first optimal order is [0 2 1], got %v", perm)
	}
}

func TestReorderingByName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treegram.grammar")
	defer teardown()
	//
	for _, name := range []string{"", "left_to_right", "optimal"} {
		if _, err := ReorderingByName(name); err != nil {
			t.Errorf("strategy %q should resolve, got %v", name, err)
		}
	}
	if _, err := ReorderingByName("right_to_left"); !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected configuration error for unknown strategy, got %v", err)
	}
}

func TestNextPermutation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treegram.grammar")
	defer teardown()
	//
	perm := []int{0, 1, 2}
	count := 1
	for nextPermutation(perm) {
		count++
	}
	if count != 6 {
		t.Errorf("expected 6 permutations of 3 elements, got %d", count)
	}
	if perm[0] != 2 || perm[1] != 1 || perm[2] != 0 {
		t.Errorf("last permutation should be [2 1 0], is %v", perm)
	}
}

func TestPermuteLin(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treegram.grammar")
	defer teardown()
	//
	lin := Linearization{{{0, 0}, {2, 0}, {1, 0}}}
	renamed := permuteLin(lin, []int{0, 2, 1})
	want := Linearization{{{0, 0}, {1, 0}, {2, 0}}}
	if renamed.String() != want.String() {
		t.Errorf("expected %v, got %v", want, renamed)
	}
	if lin.String() != "[0.0 2.0 1.0]" {
		t.Errorf("permuteLin must not mutate its input, input is %v", lin)
	}
}
