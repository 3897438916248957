package gramio

import (
	"os"

	"github.com/npillmayer/treegram/grammar"
)

// File name extensions for exported grammars and lexicons.
const (
	RCGExtension     = ".rcg"
	PMCFGExtension   = ".pmcfg"
	LexiconExtension = ".lex"
)

// ExportRCG writes a grammar and its companion lexicon to dest+".rcg"
// and dest+".lex".
func ExportRCG(dest string, g *grammar.Grammar, lex *grammar.Lexicon, enc string) error {
	if err := exportFile(dest+RCGExtension, func(f *os.File) error {
		return WriteRCG(f, g, enc)
	}); err != nil {
		return err
	}
	return exportFile(dest+LexiconExtension, func(f *os.File) error {
		return WriteLexicon(f, lex, enc)
	})
}

// ExportPMCFG writes a grammar and its companion lexicon to dest+".pmcfg"
// and dest+".lex".
func ExportPMCFG(dest string, g *grammar.Grammar, lex *grammar.Lexicon, enc string) error {
	if err := exportFile(dest+PMCFGExtension, func(f *os.File) error {
		return WritePMCFG(f, g, enc)
	}); err != nil {
		return err
	}
	return exportFile(dest+LexiconExtension, func(f *os.File) error {
		return WriteLexicon(f, lex, enc)
	})
}

func exportFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := write(f); err != nil {
		return err
	}
	tracer().Infof("wrote %s", path)
	return nil
}

// ImportRCG reads a grammar from src+".rcg" and its companion lexicon
// from src+".lex".
func ImportRCG(src string, enc string) (*grammar.Grammar, *grammar.Lexicon, error) {
	gf, err := os.Open(src + RCGExtension)
	if err != nil {
		return nil, nil, err
	}
	defer gf.Close()
	g, err := ReadRCG(gf, enc)
	if err != nil {
		return nil, nil, err
	}
	lf, err := os.Open(src + LexiconExtension)
	if err != nil {
		return nil, nil, err
	}
	defer lf.Close()
	lex, err := ReadLexicon(lf, enc)
	if err != nil {
		return nil, nil, err
	}
	return g, lex, nil
}

// ImportPMCFG reads a grammar from src+".pmcfg" and its companion
// lexicon from src+".lex".
func ImportPMCFG(src string, enc string) (*grammar.Grammar, *grammar.Lexicon, error) {
	gf, err := os.Open(src + PMCFGExtension)
	if err != nil {
		return nil, nil, err
	}
	defer gf.Close()
	g, err := ReadPMCFG(gf, enc)
	if err != nil {
		return nil, nil, err
	}
	lf, err := os.Open(src + LexiconExtension)
	if err != nil {
		return nil, nil, err
	}
	defer lf.Close()
	lex, err := ReadLexicon(lf, enc)
	if err != nil {
		return nil, nil, err
	}
	return g, lex, nil
}
