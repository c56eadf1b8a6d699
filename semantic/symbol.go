// Package semantic layers an attribute-grammar evaluator over the parsers:
// productions may interleave opaque actions between their RHS symbols, the
// parse tree keeps those actions as ordered children, and a depth-first walk
// fires them against an environment carrying a scoped symbol table, an error
// list, and emit/temp/label facilities.
package semantic

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/llipengda/parsekit/grammar"
)

func tracer() tracing.Trace {
	return tracing.Select("parsekit.semantic")
}

// Symbol is a grammar symbol extended with inherited and synthesized
// attribute maps. Actions read and write the maps; the evaluator itself
// never interprets them.
type Symbol struct {
	grammar.Symbol
	Syn map[string]string
	Inh map[string]string
}

func NewSymbol(cfg *grammar.Config, str string) *Symbol {
	return &Symbol{
		Symbol: grammar.NewSymbol(cfg, str),
		Syn:    map[string]string{},
		Inh:    map[string]string{},
	}
}

func (s *Symbol) clone() *Symbol {
	c := &Symbol{
		Symbol: s.Symbol,
		Syn:    map[string]string{},
		Inh:    map[string]string{},
	}
	for k, v := range s.Syn {
		c.Syn[k] = v
	}
	for k, v := range s.Inh {
		c.Inh[k] = v
	}
	return c
}

func (s *Symbol) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v[lexval=%v", s.Name, s.Lexval)
	if len(s.Syn) > 0 {
		fmt.Fprintf(&b, ",syn=%v", s.Syn)
	}
	if len(s.Inh) > 0 {
		fmt.Fprintf(&b, ",inh=%v", s.Inh)
	}
	b.WriteByte(']')
	return b.String()
}
