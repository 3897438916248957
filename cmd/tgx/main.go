package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/treegram/grammar"
	"github.com/npillmayer/treegram/grammar/gramio"
	"github.com/npillmayer/treegram/trees"
	"github.com/npillmayer/treegram/trees/treeio"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// tracer traces with key 'treegram.tgx'.
func tracer() tracing.Trace {
	return tracing.Select("treegram.tgx")
}

// main() extracts a grammar and a lexicon from a treebank file and writes
// them in RCG or PMCFG format, optionally binarized. With -interactive,
// the extracted grammar may be explored in a small CLI before the
// program exits.
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	input := flag.String("input", "", "Treebank input file")
	informat := flag.String("informat", "export", "Input format [export|brackets]")
	dest := flag.String("dest", "grammar", "Destination base name for output files")
	outformat := flag.String("outformat", "rcg", "Output format [rcg|pmcfg]")
	encoding := flag.String("encoding", gramio.UTF8, "Character encoding for output files")
	binarize := flag.Bool("binarize", false, "Binarize the extracted grammar")
	markovV := flag.Int("markov-v", 1, "Vertical markovization depth (with -binarize)")
	markovH := flag.Int("markov-h", 2, "Horizontal markovization depth (with -binarize)")
	reorder := flag.String("reorder", "left_to_right",
		"Reordering strategy for binarization [left_to_right|optimal]")
	interactive := flag.Bool("interactive", false, "Explore the grammar interactively")
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracing.Select("treegram.tgx").SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	if *input == "" {
		pterm.Error.Println("no input file given (-input)")
		os.Exit(1)
	}
	corpus, err := readCorpus(*input, *informat)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	pterm.Info.Printf("read %d trees from %s\n", len(corpus), *input)
	//
	// extraction over the corpus; malformed sentences are skipped
	g := grammar.NewGrammar(*input)
	lex := grammar.NewLexicon()
	skipped := 0
	for i, tree := range corpus {
		if err := grammar.Extract(tree, g, lex); err != nil {
			if errors.Is(err, trees.ErrMalformedTree) {
				tracer().Errorf("skipping sentence %d: %v", i+1, err)
				skipped++
				continue
			}
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
	}
	pterm.Info.Printf("extracted %d grammar entries, %d lexicon entries (%d sentences skipped)\n",
		g.Size(), lex.Size(), skipped)
	//
	if *binarize {
		strategy, err := grammar.ReorderingByName(*reorder)
		if err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		opts := grammar.MarkovOpts{V: *markovV, H: *markovH}
		g, err = grammar.Binarize(g, opts, strategy)
		if err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
		pterm.Info.Printf("binarized grammar has %d entries\n", g.Size())
	}
	//
	if err := export(*dest, *outformat, g, lex, *encoding); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	pterm.Info.Printf("wrote %s grammar to %s\n", *outformat, *dest)
	if *interactive {
		explore(g)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func readCorpus(path, format string) ([]*trees.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch format {
	case "export":
		return treeio.ReadExport(f)
	case "brackets":
		return treeio.ReadBrackets(f)
	}
	return nil, fmt.Errorf("unknown input format %q", format)
}

func export(dest, format string, g *grammar.Grammar, lex *grammar.Lexicon,
	enc string) error {
	//
	switch format {
	case "rcg":
		return gramio.ExportRCG(dest, g, lex, enc)
	case "pmcfg":
		return gramio.ExportPMCFG(dest, g, lex, enc)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// explore starts a small interactive CLI: entering a nonterminal label
// lists its rules, counts summed over vertical contexts.
func explore(g *grammar.Grammar) {
	repl, err := readline.New("tgx> ")
	if err != nil {
		tracer().Errorf(err.Error())
		return
	}
	tracer().Infof("Quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		entries := g.EntriesFor(line)
		if len(entries) == 0 {
			pterm.Info.Printf("no rules with LHS %q\n", line)
			continue
		}
		ll := pterm.LeveledList{{Level: 0, Text: line}}
		for _, entry := range entries {
			text := fmt.Sprintf("%d × %s %s", entry.TotalCount(),
				strings.Join(entry.Func.RHS(), " "), entry.Lin)
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: text})
		}
		pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
	}
	println("Good bye!")
}
