package semantic

import (
	"fmt"

	"github.com/llipengda/parsekit/grammar"
)

// Action is a deferred computation attached to a production. Actions must
// not capture per-parse mutable state: a production set is reused across
// parses, and all per-parse state belongs on the Env.
type Action func(env *Env)

// RHSValue is one element of a semantic production's RHS: either a symbol
// or an action, never both.
type RHSValue struct {
	Sym *Symbol
	Act Action
}

func (v RHSValue) IsSymbol() bool {
	return v.Sym != nil
}

func (v RHSValue) IsAction() bool {
	return v.Act != nil
}

func (v RHSValue) String() string {
	if v.IsAction() {
		return "[action]"
	}
	return v.Sym.String()
}

// Production is a grammar rule whose RHS interleaves symbols and actions.
type Production struct {
	Lhs *Symbol
	Rhs []RHSValue
}

// NewProduction builds a semantic production. RHS elements may be strings
// (symbol names, classified by cfg) or Actions.
func NewProduction(cfg *grammar.Config, lhs string, rhs ...interface{}) Production {
	prod := Production{Lhs: NewSymbol(cfg, lhs)}
	for _, v := range rhs {
		switch elem := v.(type) {
		case string:
			prod.Rhs = append(prod.Rhs, RHSValue{Sym: NewSymbol(cfg, elem)})
		case Action:
			prod.Rhs = append(prod.Rhs, RHSValue{Act: elem})
		case func(env *Env):
			prod.Rhs = append(prod.Rhs, RHSValue{Act: elem})
		default:
			panic(fmt.Sprintf("semantic: invalid RHS element %T", v))
		}
	}
	return prod
}

// Production strips the actions, yielding the plain grammar rule.
func (p Production) Production() grammar.Production {
	prod := grammar.Production{Lhs: p.Lhs.Symbol}
	for _, v := range p.Rhs {
		if v.IsSymbol() {
			prod.Rhs = append(prod.Rhs, v.Sym.Symbol)
		}
	}
	return prod
}

// Strip converts a semantic production list to plain grammar productions.
func Strip(prods []Production) []grammar.Production {
	out := make([]grammar.Production, len(prods))
	for i, p := range prods {
		out[i] = p.Production()
	}
	return out
}
