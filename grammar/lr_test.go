package grammar

import (
	"strings"
	"testing"

	"github.com/llipengda/parsekit/lexer"
)

func TestRightmostSteps(t *testing.T) {
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

	out := g.Steps().String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected several derivation steps, got:\n%v", out)
	}
	// Reading top-down, the trace starts at the most reduced form and ends
	// at the input.
	if !strings.Contains(lines[0], "E") {
		t.Errorf("first form must contain the start symbol: %q", lines[0])
	}
	last := lines[len(lines)-1]
	if !strings.Contains(last, "id") || !strings.Contains(last, "+") {
		t.Errorf("last form must be the input: %q", last)
	}
}

func TestLRErrorHandler(t *testing.T) {
	cfg := DefaultConfig()
	g, err := NewSLR(cfg, "S -> a b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	handled := false
	g.InitErrorHandlers(func(actions ActionTable, gotos GotoTable, handlers *[]ErrorHandler) {
		// In the state reached after shifting `a`, premature end of input
		// synthesizes the missing `b`.
		end := Key{Kind: SymbolEndMark, Name: cfg.EndMarkStr}
		for state, row := range actions {
			if _, ok := row[Key{Kind: SymbolTerminal, Name: "b"}]; !ok {
				continue
			}
			actions[state][end] = ErrorAction(len(*handlers))
		}
		*handlers = append(*handlers, func(stack *Stack, tokens *[]lexer.Token, pos *int) {
			handled = true
			patched := append([]lexer.Token{}, (*tokens)[:*pos]...)
			patched = append(patched, lexer.Token{Type: 0, Name: "b", Value: "b"})
			patched = append(patched, (*tokens)[*pos:]...)
			*tokens = patched
		})
	})

	if err := g.Build(); err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	if err := g.Parse(sentence("a")); err != nil {
		t.Fatalf("parse must recover, got: %v", err)
	}
	if !handled {
		t.Fatal("error handler did not run")
	}

	want := []string{"S", "a", "b"}
	got := preorder(g)
	if len(got) != len(want) {
		t.Fatalf("preorder: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("preorder: got %v, want %v", got, want)
		}
	}
}

func TestLRMissingHandlerIsParseError(t *testing.T) {
	cfg := DefaultConfig()
	g, err := NewSLR(cfg, "S -> a b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.InitErrorHandlers(func(actions ActionTable, gotos GotoTable, handlers *[]ErrorHandler) {
		end := Key{Kind: SymbolEndMark, Name: cfg.EndMarkStr}
		for state, row := range actions {
			if _, ok := row[Key{Kind: SymbolTerminal, Name: "b"}]; !ok {
				continue
			}
			// Index with no registered handler.
			actions[state][end] = ErrorAction(7)
		}
	})
	if err := g.Build(); err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	if err := g.Parse(sentence("a")); err == nil {
		t.Fatal("parse must fail on a handlerless error entry")
	}
}

func TestLRRepeatedParsesAreIndependent(t *testing.T) {
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
	first := preorder(g)

	if err := g.Parse(sentence("id")); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	second := preorder(g)
	if len(second) >= len(first) {
		t.Fatalf("second parse must yield a fresh, smaller tree: %v vs %v", second, first)
	}
}

func TestAugmentedStartStaysFresh(t *testing.T) {
	// The grammar already uses E'; augmentation must not collide with it.
	cfg := DefaultConfig()
	g, err := NewSLR(cfg, addGrammar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	aug := g.Productions()[0].Lhs.Name
	for _, prod := range g.Productions()[1:] {
		if prod.Lhs.Name == aug {
			t.Fatalf("augmented start %v collides with a grammar symbol", aug)
		}
	}
}
