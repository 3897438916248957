package gramio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/npillmayer/treegram/grammar"
)

// ErrFormat flags unparseable grammar or lexicon lines. The error message
// identifies the offending line.
var ErrFormat = errors.New("format error")

// UTF8 is the default character encoding.
const UTF8 = "UTF-8"

// encodingByName resolves an IANA encoding name. Empty names and UTF-8
// aliases resolve to nil, meaning no transformation.
func encodingByName(name string) (encoding.Encoding, error) {
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: unknown character encoding %q",
			grammar.ErrConfiguration, name)
	}
	return enc, nil
}

func encode(w io.Writer, name string) (io.Writer, error) {
	enc, err := encodingByName(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return w, nil
	}
	return transform.NewWriter(w, enc.NewEncoder()), nil
}

func decode(r io.Reader, name string) (io.Reader, error) {
	enc, err := encodingByName(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// --- Linearization text form ------------------------------------------------

// formatLin renders a linearization as text: arguments are separated by
// commas, the elements of an argument by '+', each element is
// 'child.argument'. Example for a fan-out-2 rule over two fan-out-2
// children: 0.0+1.0,0.1+1.1
func formatLin(lin grammar.Linearization) string {
	var b strings.Builder
	for a, arg := range lin {
		if a > 0 {
			b.WriteString(",")
		}
		for i, el := range arg {
			if i > 0 {
				b.WriteString("+")
			}
			fmt.Fprintf(&b, "%d.%d", el.Child, el.Arg)
		}
	}
	return b.String()
}

// parseLin is the inverse of formatLin.
func parseLin(s string) (grammar.Linearization, error) {
	var lin grammar.Linearization
	for _, argstr := range strings.Split(s, ",") {
		var arg grammar.Arg
		for _, elstr := range strings.Split(argstr, "+") {
			dot := strings.IndexByte(elstr, '.')
			if dot < 0 {
				return nil, fmt.Errorf("%w: malformed argument element %q", ErrFormat, elstr)
			}
			child, err1 := strconv.Atoi(elstr[:dot])
			argidx, err2 := strconv.Atoi(elstr[dot+1:])
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("%w: malformed argument element %q", ErrFormat, elstr)
			}
			arg = append(arg, grammar.ArgElem{Child: child, Arg: argidx})
		}
		lin = append(lin, arg)
	}
	return lin, nil
}

// --- RCG clause format ------------------------------------------------------

// WriteRCG writes a grammar in RCG clause format, one line per clause:
//
//    <count> <LHS>(<linearization>) --> <RHS label> …
//
// Vertical context distinctions are collapsed: the written count is the
// sum over all contexts of a (function, linearization) entry.
func WriteRCG(w io.Writer, g *grammar.Grammar, enc string) error {
	out, err := encode(w, enc)
	if err != nil {
		return err
	}
	return g.Each(func(entry *grammar.Entry) error {
		_, err := fmt.Fprintf(out, "%d %s(%s) --> %s\n",
			entry.TotalCount(), entry.Func.LHS(), formatLin(entry.Lin),
			strings.Join(entry.Func.RHS(), " "))
		return err
	})
}

// ReadRCG parses a grammar in RCG clause format. All counts are recorded
// under the default vertical context.
func ReadRCG(r io.Reader, enc string) (*grammar.Grammar, error) {
	in, err := decode(r, enc)
	if err != nil {
		return nil, err
	}
	g := grammar.NewGrammar("")
	scanner := bufio.NewScanner(in)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		count, lhs, linstr, rhs, err := splitRCGLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		lin, err := parseLin(linstr)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		g.Add(grammar.NewFunction(lhs, rhs...), lin, grammar.DefaultVert, count)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

func splitRCGLine(line string) (count int, lhs, lin string, rhs []string, err error) {
	space := strings.IndexByte(line, ' ')
	if space < 0 {
		return 0, "", "", nil, fmt.Errorf("%w: no count field in %q", ErrFormat, line)
	}
	count, err = strconv.Atoi(line[:space])
	if err != nil {
		return 0, "", "", nil, fmt.Errorf("%w: malformed count in %q", ErrFormat, line)
	}
	rest := line[space+1:]
	arrow := strings.Index(rest, " --> ")
	if arrow < 0 {
		return 0, "", "", nil, fmt.Errorf("%w: no clause arrow in %q", ErrFormat, line)
	}
	head, tail := rest[:arrow], rest[arrow+len(" --> "):]
	open := strings.IndexByte(head, '(')
	if open < 0 || !strings.HasSuffix(head, ")") {
		return 0, "", "", nil, fmt.Errorf("%w: malformed LHS predicate in %q", ErrFormat, line)
	}
	lhs = head[:open]
	lin = head[open+1 : len(head)-1]
	rhs = strings.Fields(tail)
	if lhs == "" || lin == "" || len(rhs) == 0 {
		return 0, "", "", nil, fmt.Errorf("%w: incomplete clause in %q", ErrFormat, line)
	}
	return count, lhs, lin, rhs, nil
}

// --- PMCFG format -----------------------------------------------------------

// WritePMCFG writes a grammar in PMCFG format, one line per rule, with
// the LHS linearization spelled out behind the rule:
//
//    <count> <LHS> <- <RHS label> … = <linearization>
//
// The format is functionally equivalent to the RCG clause format and
// collapses vertical contexts the same way.
func WritePMCFG(w io.Writer, g *grammar.Grammar, enc string) error {
	out, err := encode(w, enc)
	if err != nil {
		return err
	}
	return g.Each(func(entry *grammar.Entry) error {
		_, err := fmt.Fprintf(out, "%d %s <- %s = %s\n",
			entry.TotalCount(), entry.Func.LHS(),
			strings.Join(entry.Func.RHS(), " "), formatLin(entry.Lin))
		return err
	})
}

// ReadPMCFG parses a grammar in PMCFG format. All counts are recorded
// under the default vertical context.
func ReadPMCFG(r io.Reader, enc string) (*grammar.Grammar, error) {
	in, err := decode(r, enc)
	if err != nil {
		return nil, err
	}
	g := grammar.NewGrammar("")
	scanner := bufio.NewScanner(in)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		eq := -1
		for i, f := range fields {
			if f == "=" {
				eq = i
			}
		}
		if len(fields) < 6 || fields[2] != "<-" || eq != len(fields)-2 {
			return nil, fmt.Errorf("line %d: %w: malformed PMCFG rule %q",
				lineno, ErrFormat, line)
		}
		count, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: malformed count in %q",
				lineno, ErrFormat, line)
		}
		lhs := fields[1]
		rhs := fields[3:eq]
		lin, err := parseLin(fields[len(fields)-1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		g.Add(grammar.NewFunction(lhs, rhs...), lin, grammar.DefaultVert, count)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

// --- Lexicon format ---------------------------------------------------------

// WriteLexicon writes a lexicon, one tab-separated line per entry:
// preterminal, word, count.
func WriteLexicon(w io.Writer, lex *grammar.Lexicon, enc string) error {
	out, err := encode(w, enc)
	if err != nil {
		return err
	}
	return lex.Each(func(preterminal, word string, count int) error {
		_, err := fmt.Fprintf(out, "%s\t%s\t%d\n", preterminal, word, count)
		return err
	})
}

// ReadLexicon parses a lexicon written by WriteLexicon.
func ReadLexicon(r io.Reader, enc string) (*grammar.Lexicon, error) {
	in, err := decode(r, enc)
	if err != nil {
		return nil, err
	}
	lex := grammar.NewLexicon()
	scanner := bufio.NewScanner(in)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: %w: expected 3 tab-separated fields in %q",
				lineno, ErrFormat, line)
		}
		count, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: malformed count in %q",
				lineno, ErrFormat, line)
		}
		lex.Add(fields[0], fields[1], count)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lex, nil
}
