package grammar

import (
	"testing"
)

func TestRightmostStepsExactTrace(t *testing.T) {
	cfg := DefaultConfig()
	g, err := NewSLR(cfg, addGrammar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.Build(); err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	if err := g.Parse(sentence("id + id")); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	want := "E => \n" +
		"T E' => \n" +
		"T + T E' => \n" +
		"T + T => \n" +
		"T + id => \n" +
		"id + id "
	if got := g.Steps().String(); got != want {
		t.Errorf("derivation trace:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestRightmostStepsEpsilonInsert(t *testing.T) {
	r := newRightmostSteps([]Symbol{
		{Kind: SymbolNonTerminal, Name: "T"},
		{Kind: SymbolTerminal, Name: "+"},
		{Kind: SymbolNonTerminal, Name: "T"},
	})

	// An epsilon reduce inserts the LHS after the rightmost non-terminal.
	r.Add(Production{
		Lhs: Symbol{Kind: SymbolNonTerminal, Name: "E'"},
		Rhs: []Symbol{{Kind: SymbolEpsilon, Name: "ε"}},
	}, 1)

	names := make([]string, len(r.symbols))
	for i, sym := range r.symbols {
		names[i] = sym.Name
	}
	want := []string{"T", "+", "T", "E'"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("form after epsilon reduce: %v, want %v", names, want)
		}
	}
}

func TestRightmostStepsInsertSymbol(t *testing.T) {
	r := newRightmostSteps([]Symbol{
		{Kind: SymbolTerminal, Name: "a"},
		{Kind: SymbolTerminal, Name: "c"},
	})

	// A handler synthesizing a missing `b` before `c` patches every
	// recorded form; ridx counts from the right end.
	r.InsertSymbol(2, Symbol{Kind: SymbolTerminal, Name: "b"})

	names := make([]string, len(r.symbols))
	for i, sym := range r.symbols {
		names[i] = sym.Name
	}
	want := []string{"a", "b", "c"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("form after insert: %v, want %v", names, want)
		}
	}
	if len(r.steps[0]) != 3 {
		t.Errorf("recorded steps must be patched too: %v", r.steps[0])
	}
}
