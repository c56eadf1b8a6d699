package grammar

import (
	"fmt"
	"strings"
)

// Production is one grammar rule. An epsilon production carries the epsilon
// sentinel as its only RHS symbol in source form; the LR item layer
// canonicalizes that to an empty RHS.
type Production struct {
	Lhs Symbol
	Rhs []Symbol
}

// NewProduction parses a single `lhs -> rhs` line.
func NewProduction(cfg *Config, str string) (Production, error) {
	idx := strings.Index(str, "->")
	if idx < 0 {
		return Production{}, &InvalidGrammarError{Detail: fmt.Sprintf("missing '->' in %q", str)}
	}

	prod := Production{
		Lhs: NewSymbol(cfg, str[:idx]),
	}
	for _, field := range strings.Fields(str[idx+2:]) {
		prod.Rhs = append(prod.Rhs, NewSymbol(cfg, field))
	}
	return prod, nil
}

// ParseProductions reads line-oriented BNF text. `|` on the RHS expands to
// multiple productions sharing the LHS; blank lines are skipped. The first
// production's LHS is the start symbol.
func ParseProductions(cfg *Config, text string) ([]Production, error) {
	var prods []Production
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		lhsPrefix := ""
		for i, alt := range strings.Split(line, "|") {
			src := alt
			if i > 0 {
				if strings.TrimSpace(alt) == "" {
					continue
				}
				src = lhsPrefix + alt
			}
			prod, err := NewProduction(cfg, src)
			if err != nil {
				return nil, err
			}
			if lhsPrefix == "" {
				lhsPrefix = prod.Lhs.Name + " -> "
			}
			prods = append(prods, prod)
		}
	}
	if len(prods) == 0 {
		return nil, &InvalidGrammarError{Detail: "empty grammar"}
	}
	return prods, nil
}

// IsEpsilon reports whether the production derives the empty string
// directly.
func (p Production) IsEpsilon() bool {
	return len(p.Rhs) == 1 && p.Rhs[0].IsEpsilon()
}

// Equal compares identity of both sides, ignoring lexemes.
func (p Production) Equal(other Production) bool {
	if !p.Lhs.Equal(other.Lhs) || len(p.Rhs) != len(other.Rhs) {
		return false
	}
	for i, sym := range p.Rhs {
		if !sym.Equal(other.Rhs[i]) {
			return false
		}
	}
	return true
}

func (p Production) String() string {
	var b strings.Builder
	b.WriteString(p.Lhs.Name)
	b.WriteString(" -> ")
	for _, sym := range p.Rhs {
		b.WriteString(sym.Name)
		b.WriteByte(' ')
	}
	return b.String()
}
