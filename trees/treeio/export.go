package treeio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/treegram/trees"
)

// VRootLabel is the label of the virtual root node added on top of every
// export-format sentence.
const VRootLabel = "VROOT"

// ReadExport reads treebank trees in NeGra/TIGER export format.
// Sentences are delimited by '#BOS n' / '#EOS n' lines; each line in
// between describes either a terminal
//
//    word (lemma)? tag morph edge parent
//
// or a nonterminal ('#500' …). Parent number 0 refers to the virtual
// root. Since parents are referenced explicitly, constituents may be
// discontinuous. Terminal positions are assigned in line order, starting
// at 0. Both export format 3 (without lemma) and 4 (with lemma) are
// accepted.
func ReadExport(r io.Reader) ([]*trees.Tree, error) {
	var result []*trees.Tree
	scanner := bufio.NewScanner(r)
	var sentence []string
	var sentno string
	inSentence := false
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "#BOS"):
			if inSentence {
				return nil, fmt.Errorf("line %d: %w: nested #BOS", lineno, ErrFormat)
			}
			inSentence = true
			sentno = strings.TrimSpace(line[len("#BOS"):])
			sentence = sentence[:0]
		case strings.HasPrefix(line, "#EOS"):
			if !inSentence {
				return nil, fmt.Errorf("line %d: %w: #EOS without #BOS", lineno, ErrFormat)
			}
			inSentence = false
			tree, err := buildExportTree(sentence)
			if err != nil {
				return nil, fmt.Errorf("sentence %s: %w", sentno, err)
			}
			result = append(result, tree)
		case inSentence && line != "":
			sentence = append(sentence, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if inSentence {
		return nil, fmt.Errorf("%w: missing #EOS for sentence %s", ErrFormat, sentno)
	}
	tracer().Debugf("read %d export-format trees", len(result))
	return result, nil
}

// exportLine is one decoded line of an export-format sentence.
type exportLine struct {
	data   trees.NodeData
	number int // nonterminal number, or terminal position
	parent int
}

// buildExportTree assembles one tree from the lines of a sentence. All
// nodes are created first, then linked to their parents, so that forward
// references work.
func buildExportTree(lines []string) (*trees.Tree, error) {
	decoded := make([]exportLine, 0, len(lines))
	pos := 0
	for _, line := range lines {
		el, terminal, err := parseExportLine(line)
		if err != nil {
			return nil, err
		}
		if terminal {
			el.data.Num = pos
			el.number = pos
			pos++
		}
		decoded = append(decoded, el)
	}
	tree := trees.NewTree()
	root := tree.AddNode(trees.NodeData{
		Label: VRootLabel,
		Lemma: trees.DefaultLemma,
		Morph: trees.DefaultMorph,
		Edge:  trees.DefaultEdge,
		Num:   trees.NoNum,
	})
	nodes := map[int]trees.NodeID{0: root}
	for _, el := range decoded {
		if el.data.Num == trees.NoNum { // nonterminal
			nodes[el.number] = tree.AddNode(el.data)
		}
	}
	for _, el := range decoded {
		var id trees.NodeID
		if el.data.Num == trees.NoNum {
			id = nodes[el.number]
		} else {
			id = tree.AddNode(el.data)
		}
		parent, ok := nodes[el.parent]
		if !ok {
			return nil, fmt.Errorf("%w: unknown parent number %d", ErrFormat, el.parent)
		}
		tree.Link(parent, id)
	}
	return tree, nil
}

// parseExportLine decodes a single export line into node data, reporting
// whether the line describes a terminal.
func parseExportLine(line string) (exportLine, bool, error) {
	fields := strings.Fields(line)
	el := exportLine{data: trees.DefaultNodeData()}
	// trailing comment fields (%% …) are ignored
	for i, f := range fields {
		if f == "%%" {
			fields = fields[:i]
			break
		}
	}
	n := len(fields)
	if n < 5 {
		return el, false, fmt.Errorf("%w: too few fields in %q", ErrFormat, line)
	}
	haveLemma := n >= 6
	get := func(i int) string { // field i, counted without the lemma column
		if haveLemma && i >= 1 {
			return fields[i+1]
		}
		return fields[i]
	}
	parent, err := strconv.Atoi(get(4))
	if err != nil {
		return el, false, fmt.Errorf("%w: malformed parent number in %q", ErrFormat, line)
	}
	el.parent = parent
	if haveLemma {
		el.data.Lemma = fields[1]
	}
	el.data.Label = get(1)
	el.data.Morph = get(2)
	el.data.Edge = get(3)
	name := fields[0]
	if strings.HasPrefix(name, "#") && isNumber(name[1:]) { // nonterminal
		num, _ := strconv.Atoi(name[1:])
		el.number = num
		return el, false, nil
	}
	el.data.Word = name
	return el, true, nil
}

func isNumber(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
