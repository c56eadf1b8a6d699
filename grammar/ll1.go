package grammar

import (
	"github.com/llipengda/parsekit/lexer"
)

// LL1 is a predictive table-driven parser.
type LL1 struct {
	grammarBase
	table map[Key]map[Key]Production
	built bool
}

// NewLL1 builds an LL(1) parser from BNF text.
func NewLL1(cfg *Config, text string) (*LL1, error) {
	prods, err := ParseProductions(cfg, text)
	if err != nil {
		return nil, err
	}
	return NewLL1FromProductions(cfg, prods)
}

// NewLL1FromProductions builds an LL(1) parser from a production list.
func NewLL1FromProductions(cfg *Config, prods []Production) (*LL1, error) {
	if len(prods) == 0 {
		return nil, &InvalidGrammarError{Detail: "empty grammar"}
	}
	g := &LL1{}
	g.init(cfg, prods)
	return g, nil
}

func (g *LL1) Build() error {
	if g.built {
		return nil
	}
	g.calcFirst()
	g.calcFollow()
	if err := g.buildTable(); err != nil {
		return err
	}
	g.built = true
	return nil
}

// buildTable fills M[A,t] from FIRST of each production, extended over
// FOLLOW(A) for nullable productions. A second write to any cell is an
// ambiguity and fails the build.
func (g *LL1) buildTable() error {
	g.table = map[Key]map[Key]Production{}
	set := func(lhs Symbol, on Symbol, prod Production) error {
		k := lhs.Key()
		if g.table[k] == nil {
			g.table[k] = map[Key]Production{}
		}
		if existing, ok := g.table[k][on.Key()]; ok {
			return &AmbiguityError{Prods: [2]Production{prod, existing}}
		}
		g.table[k][on.Key()] = prod
		return nil
	}

	for _, prod := range g.prods {
		fst := g.firstOfProd(prod)
		for _, sym := range fst {
			if sym.IsTerminal() && !sym.IsEpsilon() {
				if err := set(prod.Lhs, sym, prod); err != nil {
					return err
				}
			}
		}
		if fst.hasEpsilon() {
			for _, sym := range g.follow[prod.Lhs.Key()] {
				if sym.IsTerminal() || sym.IsEndMark() {
					if err := set(prod.Lhs, sym, prod); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// TableEntry returns the production selected for a non-terminal on a
// terminal, if any.
func (g *LL1) TableEntry(nonTerminal, on Symbol) (Production, bool) {
	prod, ok := g.table[nonTerminal.Key()][on.Key()]
	return prod, ok
}

// Parse drives the predictive stack over the tokens with the end-marker
// appended. On an empty table cell it attempts recovery: a nullable
// non-terminal is popped with a synthesized epsilon production; a token
// outside FOLLOW of the expected non-terminal is skipped; otherwise the
// parse fails with a grammar error. Every recovery step logs a diagnostic.
func (g *LL1) Parse(tokens []lexer.Token) error {
	g.beginParse()

	in := make([]lexer.Token, 0, len(tokens)+1)
	in = append(in, tokens...)
	in = append(in, lexer.Token{
		Type:  lexer.TypeUnknown,
		Name:  g.cfg.EndMarkStr,
		Value: g.cfg.EndMarkStr,
	})

	stack := []Symbol{g.cfg.EndMark(), g.prods[0].Lhs}
	pos := 0

	for len(stack) > 0 && pos < len(in) {
		cur := FromToken(g.cfg, in[pos])
		top := stack[len(stack)-1]

		if top.IsTerminal() || top.IsEndMark() {
			if top.Equal(cur) {
				pos++
				stack = stack[:len(stack)-1]
				g.tree.Update(cur)
			} else {
				stack = stack[:len(stack)-1]
				g.diag("expect: %v but got: %v at line %v, column %v", top.Name, cur.Name, cur.Line, cur.Column)
			}
			continue
		}

		prod, ok := g.table[top.Key()][cur.Key()]
		if !ok {
			if g.first[top.Key()].hasEpsilon() {
				stack = stack[:len(stack)-1]
				g.tree.Add(Production{
					Lhs: top,
					Rhs: []Symbol{g.cfg.Epsilon()},
				})
			} else if !g.follow[top.Key()].has(cur.Key()) {
				pos++
			} else {
				return &ParseError{Token: cur.Name, Line: cur.Line, Column: cur.Column}
			}
			g.diag("unexpected token: %v at line %v, column %v", cur.Name, cur.Line, cur.Column)
			continue
		}

		stack = stack[:len(stack)-1]
		g.tree.Add(prod)
		if prod.IsEpsilon() {
			continue
		}
		for i := len(prod.Rhs) - 1; i >= 0; i-- {
			stack = append(stack, prod.Rhs[i])
		}
	}
	return nil
}
