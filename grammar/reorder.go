package grammar

import (
	"fmt"
)

// A Reordering chooses the combination order the binarizer uses for a
// rule of arity > 2. It is a pure function from the rule's RHS (with the
// children's fan-outs derivable from the linearization) to a permutation
// of the RHS positions; the binarizer then combines the permuted elements
// left to right. Strategies must be deterministic.
type Reordering func(f Function, lin Linearization) []int

// ReorderLeftToRight is the identity order: elements combine in their
// original left-to-right sequence, producing a single left-branching
// spine. This is the default strategy.
func ReorderLeftToRight(f Function, lin Linearization) []int {
	perm := make([]int, f.Arity())
	for i := range perm {
		perm[i] = i
	}
	return perm
}

// ReorderOptimal enumerates all permutations of the RHS in lexicographic
// order and selects the one minimizing the maximum fan-out of the
// synthesized intermediate nonterminals produced during binarization.
// Ties break towards the lexicographically first candidate, so the result
// is reproducible. Since the identity permutation is among the
// candidates, the result is never worse than ReorderLeftToRight.
func ReorderOptimal(f Function, lin Linearization) []int {
	n := f.Arity()
	best := ReorderLeftToRight(f, lin)
	if n <= 2 {
		return best
	}
	bestFanout := spineFanout(lin, best)
	perm := append([]int(nil), best...)
	for nextPermutation(perm) {
		if fanout := spineFanout(lin, perm); fanout < bestFanout {
			bestFanout = fanout
			best = append([]int(nil), perm...)
		}
	}
	tracer().Debugf("optimal order for %v is %v (max fan-out %d)", f, best, bestFanout)
	return best
}

// ReorderingByName resolves a strategy name. Unknown names are a
// configuration error.
func ReorderingByName(name string) (Reordering, error) {
	switch name {
	case "left_to_right", "":
		return ReorderLeftToRight, nil
	case "optimal":
		return ReorderOptimal, nil
	}
	return nil, fmt.Errorf("%w: unknown reordering strategy %q", ErrConfiguration, name)
}

// spineFanout simulates the left-branching combination of a permuted RHS
// and returns the maximum fan-out among the synthesized intermediate
// nonterminals. The final combination carries the original LHS and is not
// synthesized, so it does not count.
func spineFanout(lin Linearization, perm []int) int {
	work := permuteLin(lin, perm)
	max := 0
	for m := len(perm); m > 2; m-- {
		pairLin, merged := combineFirstTwo(work)
		if fanout := pairLin.Fanout(); fanout > max {
			max = fanout
		}
		work = merged
	}
	return max
}

// permuteLin renames the child positions of a linearization according to
// a permutation of the RHS: the child at original position perm[i] becomes
// working position i. The surface order of the argument fragments is
// unchanged.
func permuteLin(lin Linearization, perm []int) Linearization {
	inverse := make([]int, len(perm))
	for i, p := range perm {
		inverse[p] = i
	}
	renamed := make(Linearization, len(lin))
	for a, arg := range lin {
		renamed[a] = make(Arg, len(arg))
		for i, el := range arg {
			renamed[a][i] = ArgElem{Child: inverse[el.Child], Arg: el.Arg}
		}
	}
	return renamed
}

// nextPermutation advances perm to its lexicographic successor, in place.
// It returns false when perm already was the last permutation.
func nextPermutation(perm []int) bool {
	i := len(perm) - 2
	for i >= 0 && perm[i] >= perm[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(perm) - 1
	for perm[j] <= perm[i] {
		j--
	}
	perm[i], perm[j] = perm[j], perm[i]
	for l, r := i+1, len(perm)-1; l < r; l, r = l+1, r-1 {
		perm[l], perm[r] = perm[r], perm[l]
	}
	return true
}
