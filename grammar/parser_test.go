package grammar

import (
	"errors"
	"testing"

	"github.com/llipengda/parsekit/lexer"
)

// parserFactories builds each parser variant from the same grammar text;
// the cross-algorithm tests assert all three accept the same inputs with
// identical trees.
var parserFactories = []struct {
	name string
	new  func(cfg *Config, text string) (Parser, error)
}{
	{name: "LL1", new: func(cfg *Config, text string) (Parser, error) { return NewLL1(cfg, text) }},
	{name: "SLR", new: func(cfg *Config, text string) (Parser, error) { return NewSLR(cfg, text) }},
	{name: "LR1", new: func(cfg *Config, text string) (Parser, error) { return NewLR1(cfg, text) }},
}

// sentence turns space-separated raw symbols into tokens the way the
// grammar-level tests feed parsers, bypassing the lexer.
func sentence(input string) []lexer.Token {
	var tokens []lexer.Token
	col := 1
	for _, field := range splitFields(input) {
		tokens = append(tokens, lexer.Token{
			Type:   lexer.TypeUnknown,
			Name:   field,
			Value:  field,
			Line:   1,
			Column: col,
		})
		col += len(field) + 1
	}
	return tokens
}

func splitFields(s string) []string {
	var fields []string
	cur := ""
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' {
			if cur != "" {
				fields = append(fields, cur)
				cur = ""
			}
			continue
		}
		cur += string(s[i])
	}
	if cur != "" {
		fields = append(fields, cur)
	}
	return fields
}

func preorder(p Parser) []string {
	tree, ok := p.Tree().(*Tree)
	if !ok {
		return nil
	}
	var out []string
	tree.Visit(func(n *Node) {
		out = append(out, n.Symbol.Lexval)
	})
	return out
}

func expectParse(t *testing.T, p Parser, input string, want []string) {
	t.Helper()
	if err := p.Parse(sentence(input)); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	got := preorder(p)
	if len(got) != len(want) {
		t.Fatalf("preorder length: got %v (%v), want %v (%v)", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("preorder[%v]: got %v, want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}

func expectParseFail(t *testing.T, p Parser, input string) {
	t.Helper()
	err := p.Parse(sentence(input))
	if err == nil && len(p.Diagnostics()) == 0 {
		t.Fatalf("parse of %q must fail or report diagnostics", input)
	}
}

const addGrammar = `
E -> T E'
E' -> + T E' | ε
T -> id
`

func TestParseAdditionGrammar(t *testing.T) {
	for _, f := range parserFactories {
		t.Run(f.name, func(t *testing.T) {
			cfg := DefaultConfig()
			p, err := f.new(cfg, addGrammar)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := p.Build(); err != nil {
				t.Fatalf("unexpected build error: %v", err)
			}

			expectParse(t, p, "id", []string{"E", "T", "id", "E'", "ε"})
			expectParse(t, p, "id + id", []string{"E", "T", "id", "E'", "+", "T", "id", "E'", "ε"})
			expectParse(t, p, "id + id + id", []string{"E", "T", "id", "E'", "+", "T", "id", "E'", "+", "T", "id", "E'", "ε"})
			expectParseFail(t, p, "id +")
			expectParseFail(t, p, "id * id")
		})
	}
}

func TestParseExpressionGrammar(t *testing.T) {
	for _, f := range parserFactories {
		t.Run(f.name, func(t *testing.T) {
			cfg := DefaultConfig()
			p, err := f.new(cfg, exprGrammar)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := p.Build(); err != nil {
				t.Fatalf("unexpected build error: %v", err)
			}

			expectParse(t, p, "id", []string{"E", "T", "F", "id", "T'", "ε", "E'", "ε"})
			expectParse(t, p, "id + id * id", []string{
				"E", "T", "F", "id", "T'", "ε", "E'", "+", "T", "F", "id", "T'", "*", "F", "id", "T'", "ε", "E'", "ε",
			})
			expectParse(t, p, "( id + id ) * id", []string{
				"E", "T", "F", "(", "E", "T", "F", "id", "T'", "ε", "E'", "+", "T", "F", "id", "T'", "ε", "E'", "ε", ")",
				"T'", "*", "F", "id", "T'", "ε", "E'", "ε",
			})
			expectParse(t, p, "id - id / id", []string{
				"E", "T", "F", "id", "T'", "ε", "E'", "-", "T", "F", "id", "T'", "/", "F", "id", "T'", "ε", "E'", "ε",
			})
			expectParseFail(t, p, "( id + id")
		})
	}
}

func TestParsersAgreeOnPreorder(t *testing.T) {
	cfg := DefaultConfig()
	inputs := []string{"id", "id + id", "id + id * id", "( id + id ) * id"}

	var reference [][]string
	for _, f := range parserFactories {
		p, err := f.new(cfg, exprGrammar)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", f.name, err)
		}
		if err := p.Build(); err != nil {
			t.Fatalf("%v: unexpected build error: %v", f.name, err)
		}
		var orders [][]string
		for _, input := range inputs {
			if err := p.Parse(sentence(input)); err != nil {
				t.Fatalf("%v: parse %q: %v", f.name, input, err)
			}
			orders = append(orders, preorder(p))
		}
		if reference == nil {
			reference = orders
			continue
		}
		for i := range inputs {
			if len(orders[i]) != len(reference[i]) {
				t.Fatalf("%v disagrees on %q: %v vs %v", f.name, inputs[i], orders[i], reference[i])
			}
			for j := range orders[i] {
				if orders[i][j] != reference[i][j] {
					t.Fatalf("%v disagrees on %q: %v vs %v", f.name, inputs[i], orders[i], reference[i])
				}
			}
		}
	}
}

const ifGrammar = `
S -> if ( B ) then S else S | { A }
A -> id = num ; | ε
B -> id < num
`

func TestParseIfGrammar(t *testing.T) {
	for _, f := range parserFactories {
		t.Run(f.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.TerminalRule = func(name string) bool {
				switch name {
				case "if", "(", ")", "then", "else", "{", "}", "id", "num", "=", ";", "<":
					return true
				}
				return false
			}
			p, err := f.new(cfg, ifGrammar)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := p.Build(); err != nil {
				t.Fatalf("unexpected build error: %v", err)
			}

			if err := p.Parse(sentence("if ( id < num ) then { id = num ; } else { id = num ; }")); err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			if len(p.Diagnostics()) != 0 {
				t.Fatalf("unexpected diagnostics: %v", p.Diagnostics())
			}

			expectParseFail(t, p, "{ id = num }")
		})
	}
}

func TestEmptyTokenStream(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TerminalRule = func(name string) bool { return name == "a" }

	t.Run("nullable start accepts", func(t *testing.T) {
		for _, f := range parserFactories {
			p, err := f.new(cfg, "S -> a | ε")
			if err != nil {
				t.Fatalf("%v: unexpected error: %v", f.name, err)
			}
			if err := p.Build(); err != nil {
				t.Fatalf("%v: unexpected build error: %v", f.name, err)
			}
			if err := p.Parse(nil); err != nil {
				t.Errorf("%v: empty stream must be accepted: %v", f.name, err)
			}
		}
	})

	t.Run("non-nullable start rejects", func(t *testing.T) {
		for _, f := range parserFactories {
			p, err := f.new(cfg, "S -> a")
			if err != nil {
				t.Fatalf("%v: unexpected error: %v", f.name, err)
			}
			if err := p.Build(); err != nil {
				t.Fatalf("%v: unexpected build error: %v", f.name, err)
			}
			if err := p.Parse(nil); err == nil {
				t.Errorf("%v: empty stream must be rejected", f.name)
			}
		}
	})
}

func TestLL1AmbiguousGrammar(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TerminalRule = func(name string) bool { return name == "a" }

	g, err := NewLL1(cfg, `
S -> A | B
A -> a
B -> a
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = g.Build()
	if !errors.Is(err, ErrAmbiguousGrammar) {
		t.Errorf("got %v, want ErrAmbiguousGrammar", err)
	}
}

func TestLRConflictIsFatal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TerminalRule = func(name string) bool { return name == "a" }

	// Ambiguous: a can reduce via A or B.
	for _, f := range parserFactories[1:] {
		t.Run(f.name, func(t *testing.T) {
			p, err := f.new(cfg, `
S -> A | B
A -> a
B -> a
`)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			err = p.Build()
			if !errors.Is(err, ErrConflict) {
				t.Errorf("got %v, want ErrConflict", err)
			}
		})
	}
}

func TestParseErrorCarriesPosition(t *testing.T) {
	cfg := DefaultConfig()
	g, err := NewSLR(cfg, "S -> a b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.Build(); err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	err = g.Parse([]lexer.Token{
		{Type: 0, Name: "a", Value: "a", Line: 1, Column: 1},
		{Type: 1, Name: "c", Value: "c", Line: 1, Column: 3},
	})
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *ParseError", err)
	}
	if perr.Token != "c" || perr.Line != 1 || perr.Column != 3 {
		t.Errorf("unexpected error detail: %+v", perr)
	}
}
