package trees

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseLabel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treegram.trees")
	defer teardown()
	//
	sep := DefaultSeparators()
	cases := []struct {
		input string
		want  Label
	}{
		{"NP", Label{Base: "NP", GF: DefaultEdge}},
		{"NP-SBJ", Label{Base: "NP", GF: "SBJ"}},
		{"NP-SBJ-2", Label{Base: "NP", GF: "SBJ", Coindex: "2"}},
		{"NP-2", Label{Base: "NP", GF: DefaultEdge, Coindex: "2"}},
		{"NP=1", Label{Base: "NP", GF: DefaultEdge, Gapindex: "1"}},
		{"NP-SBJ=1", Label{Base: "NP", GF: "SBJ", Gapindex: "1"}},
		{"NP'", Label{Base: "NP", GF: DefaultEdge, HeadMarker: "'"}},
		{"NP-SBJ'", Label{Base: "NP", GF: "SBJ", HeadMarker: "'"}},
		{"-NONE-", Label{Base: "-NONE-", GF: DefaultEdge}},
		{"*T*-1", Label{Base: "*T*", GF: DefaultEdge, Coindex: "1", IsTrace: true}},
		{"VP-2ND", Label{Base: "VP", GF: "2ND"}}, // non-digit suffix is no index
	}
	for _, c := range cases {
		parsed, err := ParseLabel(c.input, sep)
		if err != nil {
			t.Fatalf("parsing %q failed: %v", c.input, err)
		}
		t.Logf("%q => %+v", c.input, parsed)
		if parsed.Base != c.want.Base || parsed.GF != c.want.GF ||
			parsed.Coindex != c.want.Coindex || parsed.Gapindex != c.want.Gapindex ||
			parsed.HeadMarker != c.want.HeadMarker || parsed.IsTrace != c.want.IsTrace {
			t.Errorf("parsing %q: expected %+v, got %+v", c.input, c.want, parsed)
		}
	}
}

func TestLabelRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treegram.trees")
	defer teardown()
	//
	sep := DefaultSeparators()
	labels := []string{"NP", "NP-SBJ", "NP-SBJ-2", "NP=1", "NP-SBJ=1", "NP'",
		"-NONE-", "*T*-1", "VP-OC'"}
	for _, label := range labels {
		parsed, err := ParseLabel(label, sep)
		if err != nil {
			t.Fatalf("parsing %q failed: %v", label, err)
		}
		restored, err := FormatLabel(parsed, sep)
		if err != nil {
			t.Fatalf("formatting %+v failed: %v", parsed, err)
		}
		if restored != label {
			t.Errorf("round trip for %q yielded %q", label, restored)
		}
	}
}

func TestFormatLabelConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treegram.trees")
	defer teardown()
	//
	label := Label{Base: "NP", Coindex: "1", Gapindex: "2"}
	if _, err := FormatLabel(label, DefaultSeparators()); err == nil {
		t.Errorf("expected error for label with coindex and gapping index")
	}
}
