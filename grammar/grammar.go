package grammar

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Error categories of this package. Extraction additionally surfaces
// trees.ErrMalformedTree for sentence-scoped failures.
var (
	// ErrMalformedRule flags linearizations which are not a bijection
	// between the children's arguments and the parent's argument slots.
	ErrMalformedRule = errors.New("malformed rule")
	// ErrConfiguration flags invalid parameters, e.g. negative
	// markovization depths. Fatal for the whole run.
	ErrConfiguration = errors.New("invalid configuration")
)

// DefaultVert is the sentinel vertical context, used when no ancestor
// history is attached to a rule occurrence.
const DefaultVert = "--"

// VertSep joins ancestor labels within a vertical context, nearest
// ancestor first.
const VertSep = "^"

// vertLabels splits a vertical context into its ancestor labels. The
// sentinel context has no labels.
func vertLabels(vert string) []string {
	if vert == "" || vert == DefaultVert {
		return nil
	}
	return strings.Split(vert, VertSep)
}

// --- Functions and linearizations ------------------------------------------

// A Function is the identity of a grammar rule: element 0 is the label of
// the left-hand side, the remaining elements are the labels of the
// right-hand-side children, in terminal order. All occurrences with equal
// label sequences are counted as one rule.
type Function []string

// NewFunction builds a function from an LHS label and RHS labels.
func NewFunction(lhs string, rhs ...string) Function {
	return append(Function{lhs}, rhs...)
}

// LHS returns the left-hand-side label of a function.
func (f Function) LHS() string {
	return f[0]
}

// RHS returns the right-hand-side labels of a function.
func (f Function) RHS() []string {
	return f[1:]
}

// Arity returns the number of right-hand-side elements.
func (f Function) Arity() int {
	return len(f) - 1
}

func (f Function) String() string {
	if len(f) == 0 {
		return "⟨empty⟩"
	}
	return f[0] + " ⟶ " + strings.Join(f[1:], " ")
}

// ArgElem addresses one argument of one right-hand-side child: child
// number Child contributes its argument number Arg.
type ArgElem struct {
	Child int
	Arg   int
}

func (el ArgElem) String() string {
	return fmt.Sprintf("%d.%d", el.Child, el.Arg)
}

// An Arg is one argument of the left-hand side of a rule: an ordered
// concatenation of child arguments.
type Arg []ArgElem

// A Linearization describes, for every block of the parent's span, which
// argument fragments of which children are concatenated, in order, to
// produce that block. Across one linearization every (child, argument)
// pair of the right-hand side appears exactly once.
type Linearization []Arg

// Fanout returns the number of left-hand-side arguments, i.e. the fan-out
// of the rule's LHS.
func (lin Linearization) Fanout() int {
	return len(lin)
}

// FanoutOf counts the arguments a right-hand-side child contributes, i.e.
// the fan-out of that child.
func (lin Linearization) FanoutOf(child int) int {
	n := 0
	for _, arg := range lin {
		for _, el := range arg {
			if el.Child == child {
				n++
			}
		}
	}
	return n
}

func (lin Linearization) String() string {
	var b strings.Builder
	for _, arg := range lin {
		b.WriteString("[")
		for i, el := range arg {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(el.String())
		}
		b.WriteString("]")
	}
	return b.String()
}

// Validate checks the bijection property of a linearization against a
// right-hand-side arity: every child in [0,arity) contributes a
// contiguous argument range 0…fanout-1 and every (child, argument) pair
// appears exactly once. Violations are reported as ErrMalformedRule.
func (lin Linearization) Validate(arity int) error {
	seen := make(map[ArgElem]bool)
	maxarg := make([]int, arity)
	for i := range maxarg {
		maxarg[i] = -1
	}
	for _, arg := range lin {
		if len(arg) == 0 {
			return fmt.Errorf("%w: empty LHS argument in %s", ErrMalformedRule, lin)
		}
		for _, el := range arg {
			if el.Child < 0 || el.Child >= arity {
				return fmt.Errorf("%w: argument %s references nonexistent RHS position (arity %d)",
					ErrMalformedRule, el, arity)
			}
			if el.Arg < 0 {
				return fmt.Errorf("%w: negative argument index %s", ErrMalformedRule, el)
			}
			if seen[el] {
				return fmt.Errorf("%w: duplicate argument %s in %s", ErrMalformedRule, el, lin)
			}
			seen[el] = true
			if el.Arg > maxarg[el.Child] {
				maxarg[el.Child] = el.Arg
			}
		}
	}
	for child, max := range maxarg {
		for a := 0; a <= max; a++ {
			if !seen[ArgElem{child, a}] {
				return fmt.Errorf("%w: argument %d.%d skipped in %s",
					ErrMalformedRule, child, a, lin)
			}
		}
		if max < 0 {
			return fmt.Errorf("%w: RHS position %d contributes no argument in %s",
				ErrMalformedRule, child, lin)
		}
	}
	return nil
}

// --- Rules ------------------------------------------------------------------

// A Rule is one countable grammar rule occurrence class: a function, its
// linearization, the originating vertical context and an occurrence
// count. Rules are the unit the binarizer consumes and produces.
type Rule struct {
	Func  Function
	Lin   Linearization
	Vert  string
	Count int
}

func (r Rule) String() string {
	return fmt.Sprintf("%d × %v %v ⟨%s⟩", r.Count, r.Func, r.Lin, r.Vert)
}

// --- The grammar store ------------------------------------------------------

// Entry groups all occurrence counts of one (function, linearization)
// pair, keyed by vertical context.
type Entry struct {
	Func   Function
	Lin    Linearization
	Counts map[string]int // vertical context ⟶ occurrence count
}

// TotalCount sums the counts of an entry over all vertical contexts.
func (e *Entry) TotalCount() int {
	total := 0
	for _, c := range e.Counts {
		total += c
	}
	return total
}

// ruleKey is the composite identity of a grammar entry. Entries are keyed
// by a structhash over this struct, which spares us a hand-rolled
// canonical encoding of the nested linearization.
type ruleKey struct {
	Func Function
	Lin  Linearization
}

func keyOf(f Function, lin Linearization) [20]byte {
	var key [20]byte
	copy(key[:], structhash.Sha1(ruleKey{Func: f, Lin: lin}, 1))
	return key
}

// Grammar is the store for extracted syntactic rules: a mapping from
// (function, linearization) to per-vertical-context occurrence counts.
// The store is purely additive; extraction only ever increments counts.
// Create one with NewGrammar.
type Grammar struct {
	Name    string
	entries map[[20]byte]*Entry
}

// NewGrammar creates an empty grammar store.
func NewGrammar(name string) *Grammar {
	return &Grammar{
		Name:    name,
		entries: make(map[[20]byte]*Entry),
	}
}

// Add increments the count of (f, lin, vert) by count.
func (g *Grammar) Add(f Function, lin Linearization, vert string, count int) {
	if vert == "" {
		vert = DefaultVert
	}
	key := keyOf(f, lin)
	entry, ok := g.entries[key]
	if !ok {
		entry = &Entry{Func: f, Lin: lin, Counts: make(map[string]int)}
		g.entries[key] = entry
	}
	entry.Counts[vert] += count
}

// Merge adds all entries of another grammar into g. Merging commutes with
// repeated extraction since only counts accumulate.
func (g *Grammar) Merge(other *Grammar) {
	for _, entry := range other.entries {
		for vert, count := range entry.Counts {
			g.Add(entry.Func, entry.Lin, vert, count)
		}
	}
}

// Size returns the number of distinct (function, linearization) entries.
func (g *Grammar) Size() int {
	return len(g.entries)
}

// Count returns the occurrence count for (f, lin, vert).
func (g *Grammar) Count(f Function, lin Linearization, vert string) int {
	if vert == "" {
		vert = DefaultVert
	}
	if entry, ok := g.entries[keyOf(f, lin)]; ok {
		return entry.Counts[vert]
	}
	return 0
}

// TotalCount returns the occurrence count for (f, lin), summed over all
// vertical contexts.
func (g *Grammar) TotalCount(f Function, lin Linearization) int {
	if entry, ok := g.entries[keyOf(f, lin)]; ok {
		return entry.TotalCount()
	}
	return 0
}

// entryComparator orders entries by their function labels, then by their
// linearization. This gives Each a reproducible iteration order.
func entryComparator(a, b interface{}) int {
	ea := a.(*Entry)
	eb := b.(*Entry)
	sa := strings.Join(ea.Func, "\x00") + "\x00" + ea.Lin.String()
	sb := strings.Join(eb.Func, "\x00") + "\x00" + eb.Lin.String()
	return utils.StringComparator(sa, sb)
}

// Each visits every entry of the grammar in a deterministic order, sorted
// by function and linearization. A non-nil error from visit aborts the
// iteration and is returned.
func (g *Grammar) Each(visit func(*Entry) error) error {
	sorted := treeset.NewWith(entryComparator)
	for _, entry := range g.entries {
		sorted.Add(entry)
	}
	it := sorted.Iterator()
	for it.Next() {
		if err := visit(it.Value().(*Entry)); err != nil {
			return err
		}
	}
	return nil
}

// EachRule visits every (function, linearization, vertical context)
// occurrence class as a Rule, in a deterministic order.
func (g *Grammar) EachRule(visit func(Rule) error) error {
	return g.Each(func(entry *Entry) error {
		verts := make([]string, 0, len(entry.Counts))
		for vert := range entry.Counts {
			verts = append(verts, vert)
		}
		sort.Strings(verts)
		for _, vert := range verts {
			rule := Rule{
				Func:  entry.Func,
				Lin:   entry.Lin,
				Vert:  vert,
				Count: entry.Counts[vert],
			}
			if err := visit(rule); err != nil {
				return err
			}
		}
		return nil
	})
}

// EntriesFor collects all entries with a given left-hand-side label, in
// deterministic order. Mainly used by interactive tooling.
func (g *Grammar) EntriesFor(lhs string) []*Entry {
	var result []*Entry
	g.Each(func(entry *Entry) error {
		if entry.Func.LHS() == lhs {
			result = append(result, entry)
		}
		return nil
	})
	return result
}

// --- The lexicon ------------------------------------------------------------

// Lexicon is the store for extracted lexical rules: a mapping from
// preterminal label to surface form to occurrence count. It is kept apart
// from the syntactic Grammar since lexical rules have arity 0 on the
// syntactic side. Create one with NewLexicon.
type Lexicon struct {
	entries map[string]map[string]int
}

// NewLexicon creates an empty lexicon store.
func NewLexicon() *Lexicon {
	return &Lexicon{entries: make(map[string]map[string]int)}
}

// Add increments the count for a (preterminal, word) pair.
func (l *Lexicon) Add(preterminal, word string, count int) {
	words, ok := l.entries[preterminal]
	if !ok {
		words = make(map[string]int)
		l.entries[preterminal] = words
	}
	words[word] += count
}

// Merge adds all entries of another lexicon into l.
func (l *Lexicon) Merge(other *Lexicon) {
	for pret, words := range other.entries {
		for word, count := range words {
			l.Add(pret, word, count)
		}
	}
}

// Count returns the occurrence count for a (preterminal, word) pair.
func (l *Lexicon) Count(preterminal, word string) int {
	return l.entries[preterminal][word]
}

// Size returns the number of distinct (preterminal, word) pairs.
func (l *Lexicon) Size() int {
	n := 0
	for _, words := range l.entries {
		n += len(words)
	}
	return n
}

// Each visits every (preterminal, word, count) triple in a deterministic
// order, sorted by preterminal and word.
func (l *Lexicon) Each(visit func(preterminal, word string, count int) error) error {
	sorted := treeset.NewWithStringComparator()
	for pret := range l.entries {
		sorted.Add(pret)
	}
	it := sorted.Iterator()
	for it.Next() {
		pret := it.Value().(string)
		words := treeset.NewWithStringComparator()
		for word := range l.entries[pret] {
			words.Add(word)
		}
		wit := words.Iterator()
		for wit.Next() {
			word := wit.Value().(string)
			if err := visit(pret, word, l.entries[pret][word]); err != nil {
				return err
			}
		}
	}
	return nil
}
