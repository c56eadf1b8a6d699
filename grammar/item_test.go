package grammar

import (
	"strings"
	"testing"
)

// ccGrammar is the classic two-C grammar whose canonical LR(1) automaton is
// strictly larger than its LR(0) one, making it a good probe for the two
// item strategies.
const ccGrammar = `
S -> C C
C -> c C | d
`

func buildLR(t *testing.T, newParser func(cfg *Config, text string) (*LR, error)) *LR {
	t.Helper()
	cfg := DefaultConfig()
	g, err := newParser(cfg, ccGrammar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.Build(); err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	return g
}

func TestSLRStateCount(t *testing.T) {
	g := buildLR(t, NewSLR)
	// I0 {S'->.S, S->.CC, C->.cC, C->.d}, I1 {S'->S.}, I2 {S->C.C, ...},
	// I3 {C->c.C, ...}, I4 {C->d.}, I5 {S->CC.}, I6 {C->cC.}
	if got := g.StateCount(); got != 7 {
		t.Errorf("SLR state count = %v, want 7", got)
	}
}

func TestLR1StateCount(t *testing.T) {
	g := buildLR(t, NewLR1)
	// The canonical construction keeps lookahead-distinct copies of the
	// C states: 10 states in total, no LALR merge.
	if got := g.StateCount(); got != 10 {
		t.Errorf("LR1 state count = %v, want 10", got)
	}
}

func TestLRAutomataParseAlike(t *testing.T) {
	for _, f := range []struct {
		name string
		new  func(cfg *Config, text string) (*LR, error)
	}{
		{name: "SLR", new: NewSLR},
		{name: "LR1", new: NewLR1},
	} {
		t.Run(f.name, func(t *testing.T) {
			g := buildLR(t, f.new)
			expectParse(t, g, "c d d", []string{"S", "C", "c", "C", "d", "C", "d"})
			expectParse(t, g, "d d", []string{"S", "C", "d", "C", "d"})
			expectParseFail(t, g, "c d")
			expectParseFail(t, g, "d d d")
		})
	}
}

func TestInitialStateItems(t *testing.T) {
	g := buildLR(t, NewSLR)

	var b strings.Builder
	g.DescribeItems(&b)
	out := b.String()

	initial := out[:strings.Index(out, "I1:")]
	for _, want := range []string{
		"S' -> ・S",
		"S -> ・C C",
		"C -> ・c C",
		"C -> ・d",
	} {
		if !strings.Contains(initial, want) {
			t.Errorf("initial state misses item %q:\n%v", want, initial)
		}
	}
}

func TestLR1ItemsCarryLookaheads(t *testing.T) {
	g := buildLR(t, NewLR1)

	var b strings.Builder
	g.DescribeItems(&b)
	out := b.String()

	// The closure of the initial state derives C items with lookaheads
	// drawn from FIRST(C) = {c, d}.
	for _, want := range []string{"C -> ・d , c", "C -> ・d , d"} {
		if !strings.Contains(out, want) {
			t.Errorf("LR1 items miss %q:\n%v", want, out)
		}
	}
}

func TestItemIdentity(t *testing.T) {
	cfg := DefaultConfig()

	a := lrItem{prod: 1, dot: 1}
	b := lrItem{prod: 1, dot: 1}
	if a.id() != b.id() {
		t.Error("identical items must share an id")
	}
	if a.id() == (lrItem{prod: 1, dot: 2}).id() {
		t.Error("dot position must be part of the identity")
	}

	la1 := NewSymbol(cfg, "c")
	la2 := NewSymbol(cfg, "d")
	with1 := lrItem{prod: 1, dot: 1, lookahead: &la1}
	with2 := lrItem{prod: 1, dot: 1, lookahead: &la2}
	if with1.id() == with2.id() {
		t.Error("lookahead must be part of the identity")
	}
	if a.id() == with1.id() {
		t.Error("an LR(0) item must differ from its LR(1) refinement")
	}

	set := newItemSet()
	if !set.add(a) || set.add(b) {
		t.Error("set must deduplicate by identity")
	}
}
