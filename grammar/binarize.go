package grammar

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
)

// MarkovOpts bounds the context encoded into synthesized nonterminal
// labels during binarization: V the number of ancestor-vertical markers,
// H the number of most recently combined sibling labels. Both must be
// non-negative.
type MarkovOpts struct {
	V int
	H int
}

// Markers distinguishing the position of a synthesized nonterminal within
// its binarization spine. The topmost synthesized node of a chain (the
// one appearing in the rule with the original LHS) is marked differently
// from the intermediate and bottommost ones.
const (
	BinTopMarker = "BT"
	BinBotMarker = "BB"
)

// binPrefix starts every synthesized label, keeping them apart from
// treebank categories.
const binPrefix = "@"

// Binarize transforms a grammar into an equivalent one containing only
// unary and binary rules. The input grammar is not mutated. Rules of
// arity ≤ 2 are copied unchanged; longer right-hand sides are combined
// pairwise into a spine of synthesized nonterminals, in the order chosen
// by the reordering strategy (nil means left-to-right). Synthesized
// labels are reproducible functions of the markovization options, the
// combined siblings and the position in the chain.
//
// The lexicon is not part of binarization's input; lexical entries of the
// source grammar's companion lexicon remain valid as they are.
func Binarize(g *Grammar, opts MarkovOpts, reorder Reordering) (*Grammar, error) {
	if opts.V < 0 || opts.H < 0 {
		return nil, fmt.Errorf("%w: negative markovization depth (v=%d, h=%d)",
			ErrConfiguration, opts.V, opts.H)
	}
	if reorder == nil {
		reorder = ReorderLeftToRight
	}
	name := g.Name
	if name != "" {
		name += "-bin"
	}
	out := NewGrammar(name)
	err := g.EachRule(func(rule Rule) error {
		return binarizeRule(out, rule, opts, reorder)
	})
	if err != nil {
		return nil, err
	}
	tracer().Infof("binarized %d entries into %d", g.Size(), out.Size())
	return out, nil
}

// binarizeRule emits the binarization of one rule into out. For a given
// reordering strategy the same input always yields the same synthesized
// labels and binary rules.
func binarizeRule(out *Grammar, rule Rule, opts MarkovOpts, reorder Reordering) error {
	n := rule.Func.Arity()
	if err := rule.Lin.Validate(n); err != nil {
		return fmt.Errorf("cannot binarize %v: %w", rule.Func, err)
	}
	if n <= 2 {
		out.Add(rule.Func, rule.Lin, rule.Vert, rule.Count)
		return nil
	}
	perm := reorder(rule.Func, rule.Lin)
	if !isPermutation(perm, n) {
		return fmt.Errorf("%w: reordering returned invalid order %v for arity %d",
			ErrConfiguration, perm, n)
	}
	rhs := rule.Func.RHS()
	permRHS := make([]string, n)
	for i, p := range perm {
		permRHS[i] = rhs[p]
	}
	verts := vertLabels(rule.Vert)
	if len(verts) > opts.V {
		verts = verts[:opts.V]
	}
	work := permuteLin(rule.Lin, perm)
	seq := arraylist.New() // working sequence of RHS labels
	for _, label := range permRHS {
		seq.Add(label)
	}
	for m := n; m > 2; m-- {
		pairLin, merged := combineFirstTwo(work)
		step := n - m // 0-based combination step
		sibs := permRHS[:step+2]
		if len(sibs) > opts.H {
			sibs = sibs[len(sibs)-opts.H:]
		}
		marker := BinBotMarker
		if m == 3 { // next element up carries the original LHS
			marker = BinTopMarker
		}
		lhs := synthLabel(rule.Func.LHS(), marker, verts, sibs)
		first, _ := seq.Get(0)
		second, _ := seq.Get(1)
		out.Add(NewFunction(lhs, first.(string), second.(string)),
			pairLin, rule.Vert, rule.Count)
		seq.Remove(1)
		seq.Remove(0)
		seq.Insert(0, lhs)
		work = merged
	}
	first, _ := seq.Get(0)
	second, _ := seq.Get(1)
	out.Add(NewFunction(rule.Func.LHS(), first.(string), second.(string)),
		work, rule.Vert, rule.Count)
	return nil
}

// combineFirstTwo merges the working elements 0 and 1 into a single
// element. It returns the linearization of the emitted binary rule (the
// restriction of work to the two elements' arguments, renumbered
// contiguously — its fan-out is the merged element's fan-out) and the new
// working linearization, in which the merged pair appears as element 0
// and all later elements shift down by one.
func combineFirstTwo(work Linearization) (pairLin, merged Linearization) {
	run := -1 // argument index of the merged element
	for _, arg := range work {
		inRun := false
		margs := make(Arg, 0, len(arg))
		for _, el := range arg {
			if el.Child <= 1 {
				if !inRun {
					run++
					pairLin = append(pairLin, Arg{})
					margs = append(margs, ArgElem{Child: 0, Arg: run})
					inRun = true
				}
				pairLin[run] = append(pairLin[run], el)
			} else {
				margs = append(margs, ArgElem{Child: el.Child - 1, Arg: el.Arg})
				inRun = false
			}
		}
		merged = append(merged, margs)
	}
	return pairLin, merged
}

// synthLabel composes the label of a synthesized nonterminal from the
// original LHS base, the positional marker, up to v vertical markers and
// up to h sibling labels.
func synthLabel(base, marker string, verts, sibs []string) string {
	var b strings.Builder
	b.WriteString(binPrefix)
	b.WriteString(base)
	b.WriteString("-")
	b.WriteString(marker)
	for _, v := range verts {
		b.WriteString(VertSep)
		b.WriteString(v)
	}
	for _, s := range sibs {
		b.WriteString("~")
		b.WriteString(s)
	}
	return b.String()
}

func isPermutation(perm []int, n int) bool {
	if len(perm) != n {
		return false
	}
	seen := make([]bool, n)
	for _, p := range perm {
		if p < 0 || p >= n || seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}
