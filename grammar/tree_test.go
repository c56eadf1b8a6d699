package grammar

import (
	"strings"
	"testing"
)

func mustProds(t *testing.T, cfg *Config, text string) []Production {
	t.Helper()
	prods, err := ParseProductions(cfg, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return prods
}

func TestTreeTopDownAndBottomUpAgree(t *testing.T) {
	cfg := DefaultConfig()
	prods := mustProds(t, cfg, addGrammar)
	byString := map[string]Production{}
	for _, p := range prods {
		byString[strings.TrimSpace(p.String())] = p
	}

	// Leftmost derivation of "id + id".
	leftmost := []string{
		"E -> T E'",
		"T -> id",
		"E' -> + T E'",
		"T -> id",
		"E' -> ε",
	}
	top := NewTree()
	for _, s := range leftmost {
		top.Add(byString[s])
	}

	// The same derivation rightmost (as replayed by the LR accept path).
	rightmost := []string{
		"E -> T E'",
		"E' -> + T E'",
		"E' -> ε",
		"T -> id",
		"T -> id",
	}
	bottom := NewTree()
	for _, s := range rightmost {
		bottom.AddR(byString[s])
	}

	var a, b []string
	top.Visit(func(n *Node) { a = append(a, n.Symbol.Name) })
	bottom.Visit(func(n *Node) { b = append(b, n.Symbol.Name) })
	if len(a) != len(b) {
		t.Fatalf("tree shapes differ: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tree shapes differ at %v: %v vs %v", i, a, b)
		}
	}
}

func TestTreeChildrenMatchProduction(t *testing.T) {
	cfg := DefaultConfig()
	prods := mustProds(t, cfg, addGrammar)

	tree := NewTree()
	tree.Add(prods[0]) // E -> T E'
	tree.Add(prods[3]) // T -> id

	root := tree.Root()
	if root.Symbol.Name != "E" || len(root.Children) != 2 {
		t.Fatalf("unexpected root: %v with %v children", root.Symbol.Name, len(root.Children))
	}
	if root.Children[0].Symbol.Name != "T" || root.Children[1].Symbol.Name != "E'" {
		t.Fatalf("children do not match the production RHS")
	}
	if root.Children[0].Parent != root {
		t.Errorf("parent back reference is broken")
	}
	if got := len(root.Children[1].Children); got != 0 {
		t.Errorf("unexpanded node must have no children, got %v", got)
	}
}

func TestTreeUpdateBackfillsTerminals(t *testing.T) {
	cfg := DefaultConfig()
	prods := mustProds(t, cfg, addGrammar)
	byString := map[string]Production{}
	for _, p := range prods {
		byString[strings.TrimSpace(p.String())] = p
	}

	tree := NewTree()
	tree.Add(byString["E -> T E'"])
	tree.Add(byString["T -> id"])
	sym := NewSymbol(cfg, "id")
	sym.Lexval = "x"
	sym.Line = 3
	sym.Column = 7
	tree.Update(sym)

	var leaf *Node
	tree.Visit(func(n *Node) {
		if n.Symbol.Name == "id" {
			leaf = n
		}
	})
	if leaf == nil {
		t.Fatal("id leaf not found")
	}
	if leaf.Symbol.Lexval != "x" || leaf.Symbol.Line != 3 || leaf.Symbol.Column != 7 {
		t.Errorf("backfill failed: %+v", leaf.Symbol)
	}
}

func TestTreePrint(t *testing.T) {
	cfg := DefaultConfig()
	prods := mustProds(t, cfg, addGrammar)

	tree := NewTree()
	tree.Add(prods[0])
	var b strings.Builder
	tree.Print(&b)
	out := b.String()
	for _, want := range []string{"E", "T", "E'"} {
		if !strings.Contains(out, want) {
			t.Errorf("printed tree misses %q:\n%v", want, out)
		}
	}
}
