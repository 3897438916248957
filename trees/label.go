package trees

import (
	"fmt"
	"strings"
)

// Default separator characters within treebank node labels.
const (
	DefaultGFSeparator      = "-"
	DefaultCoindexSeparator = "-"
	DefaultGapSeparator     = "="
	DefaultHeadMarker       = "'"
)

// Separators configures the separator characters used when decomposing
// resp. composing node labels. See DefaultSeparators for the usual values.
type Separators struct {
	GF         string // between base label and grammatical function
	Coindex    string // before a coindex digit sequence
	Gap        string // before a gapping-index digit sequence
	HeadMarker string // trailing head marker
}

// DefaultSeparators returns the separator characters of the PTB/NeGra
// label conventions.
func DefaultSeparators() Separators {
	return Separators{
		GF:         DefaultGFSeparator,
		Coindex:    DefaultCoindexSeparator,
		Gap:        DefaultGapSeparator,
		HeadMarker: DefaultHeadMarker,
	}
}

// Label is the decomposition of a treebank node label of the format
//
//    BASE (GFSEP GF)? ((COSEP COINDEX) | (GAPSEP GAPINDEX))? HEADMARKER?
//
// Parts which are not present in a label are left at their default resp.
// empty values.
type Label struct {
	Base        string
	GF          string
	GFSeparator string
	Coindex     string
	Gapindex    string
	HeadMarker  string
	IsTrace     bool
}

// ParseLabel decomposes a treebank node label into its parts, scanning
// from the back: head marker first, then coindex or gapping index (both
// must be all-digit suffixes, at most one of them is present), then the
// grammatical function. Gapping indices are treated exactly like
// coindices, just with their own separator character.
func ParseLabel(label string, sep Separators) (Label, error) {
	parsed := Label{GF: DefaultEdge, GFSeparator: sep.GF}
	if strings.HasSuffix(label, sep.HeadMarker) {
		parsed.HeadMarker = sep.HeadMarker
		label = label[:len(label)-len(sep.HeadMarker)]
	}
	if rest, index, ok := splitIndex(label, sep.Coindex); ok {
		parsed.Coindex = index
		label = rest
	} else if rest, index, ok := splitIndex(label, sep.Gap); ok {
		parsed.Gapindex = index
		label = rest
	}
	if len(label) == 0 {
		return parsed, fmt.Errorf("label reduced to empty string")
	}
	// gf separator is only valid from position 2 onwards, labels like
	// "-NONE-" keep their leading separator
	if pos := strings.Index(label, sep.GF); pos >= 2 {
		parsed.GF = label[pos+len(sep.GF):]
		label = label[:pos]
	}
	parsed.Base = label
	parsed.IsTrace = strings.HasPrefix(label, "*") && strings.HasSuffix(label, "*")
	return parsed, nil
}

// splitIndex checks for an all-digit suffix behind the last occurrence of
// a separator and splits it off.
func splitIndex(label string, sep string) (string, string, bool) {
	pos := strings.LastIndex(label, sep)
	if pos < 0 {
		return label, "", false
	}
	index := label[pos+len(sep):]
	if len(index) == 0 || !isDigits(index) {
		return label, "", false
	}
	return label[:pos], index, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatLabel is the inverse of ParseLabel and glues label parts back
// together. It fails when both a coindex and a gapping index are present.
func FormatLabel(label Label, sep Separators) (string, error) {
	if len(label.Coindex) > 0 && len(label.Gapindex) > 0 {
		return "", fmt.Errorf("cannot have coindex and gapping index on the same label")
	}
	var b strings.Builder
	b.WriteString(label.Base)
	if len(label.GF) > 0 && label.GF != DefaultEdge {
		gfsep := label.GFSeparator
		if gfsep == "" {
			gfsep = sep.GF
		}
		b.WriteString(gfsep)
		b.WriteString(label.GF)
	}
	if len(label.Coindex) > 0 {
		b.WriteString(sep.Coindex)
		b.WriteString(label.Coindex)
	} else if len(label.Gapindex) > 0 {
		b.WriteString(sep.Gap)
		b.WriteString(label.Gapindex)
	}
	b.WriteString(label.HeadMarker)
	return b.String(), nil
}
