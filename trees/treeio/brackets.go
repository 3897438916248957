package treeio

import (
	"fmt"
	"io"
	"io/ioutil"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/npillmayer/treegram/trees"
)

// Token types of the bracket lexer.
const (
	tokLParen = iota + 1
	tokRParen
	tokAtom
)

// bracketLexer tokenizes bracketed trees into parentheses and atoms.
// Compiling the DFA is done once, lazily.
var bracketLexer *lexmachine.Lexer

func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func lexer() (*lexmachine.Lexer, error) {
	if bracketLexer != nil {
		return bracketLexer, nil
	}
	l := lexmachine.NewLexer()
	l.Add([]byte(`\(`), makeToken(tokLParen))
	l.Add([]byte(`\)`), makeToken(tokRParen))
	l.Add([]byte(`[^ \t\n\r\(\)]+`), makeToken(tokAtom))
	l.Add([]byte(`[ \t\n\r]+`), skip)
	if err := l.Compile(); err != nil {
		tracer().Errorf("error compiling bracket DFA: %v", err)
		return nil, err
	}
	bracketLexer = l
	return bracketLexer, nil
}

// ReadBrackets reads a sequence of bracketed trees, e.g.
//
//    (S (NP (DT the) (NN cat)) (VP (VB sat)))
//
// Every top-level bracketing becomes one tree; terminal positions are
// assigned left to right, starting at 0, per tree. Constituents read
// from bracketed input are always continuous.
func ReadBrackets(r io.Reader) ([]*trees.Tree, error) {
	input, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	l, err := lexer()
	if err != nil {
		return nil, err
	}
	scanner, err := l.Scanner(input)
	if err != nil {
		return nil, err
	}
	p := &bracketParser{}
	for {
		tok, err := p.next(scanner)
		if err != nil {
			return nil, err
		}
		if tok == nil { // end of input
			break
		}
		if tok.Type != tokLParen {
			return nil, fmt.Errorf("%w: expected '(' at top level, got %q",
				ErrFormat, tok.Lexeme)
		}
		tree := trees.NewTree()
		p.pos = 0
		if _, err := p.parseNode(scanner, tree, trees.NoNode); err != nil {
			return nil, err
		}
		p.trees = append(p.trees, tree)
	}
	tracer().Debugf("read %d bracketed trees", len(p.trees))
	return p.trees, nil
}

type bracketParser struct {
	trees []*trees.Tree
	pos   int // next terminal position
}

// next returns the next token, nil at end of input.
func (p *bracketParser) next(scanner *lexmachine.Scanner) (*lexmachine.Token, error) {
	tok, err, eof := scanner.Next()
	if err != nil {
		if ui, is := err.(*machines.UnconsumedInput); is {
			return nil, fmt.Errorf("%w: unexpected input at offset %d",
				ErrFormat, ui.FailTC)
		}
		return nil, err
	}
	if eof {
		return nil, nil
	}
	return tok.(*lexmachine.Token), nil
}

// parseNode parses the remainder of a bracketing '(' label element… ')'.
// The opening parenthesis has already been consumed.
func (p *bracketParser) parseNode(scanner *lexmachine.Scanner, t *trees.Tree,
	parent trees.NodeID) (trees.NodeID, error) {
	//
	tok, err := p.next(scanner)
	if err != nil {
		return trees.NoNode, err
	}
	if tok == nil || tok.Type != tokAtom {
		return trees.NoNode, fmt.Errorf("%w: expected node label after '('", ErrFormat)
	}
	data := trees.DefaultNodeData()
	data.Label = string(tok.Lexeme)
	var node trees.NodeID
	if parent == trees.NoNode {
		node = t.AddNode(data)
	} else {
		node = t.AddChild(parent, data)
	}
	children := 0
	for {
		tok, err := p.next(scanner)
		if err != nil {
			return trees.NoNode, err
		}
		if tok == nil {
			return trees.NoNode, fmt.Errorf("%w: unbalanced brackets", ErrFormat)
		}
		switch tok.Type {
		case tokRParen:
			if children == 0 {
				return trees.NoNode, fmt.Errorf("%w: empty bracketing for %q",
					ErrFormat, t.Node(node).Label)
			}
			return node, nil
		case tokLParen:
			if _, err := p.parseNode(scanner, t, node); err != nil {
				return trees.NoNode, err
			}
			children++
		case tokAtom: // a terminal word
			leaf := trees.DefaultNodeData()
			leaf.Word = string(tok.Lexeme)
			leaf.Num = p.pos
			p.pos++
			t.AddChild(node, leaf)
			children++
		}
	}
}
