package semantic

import (
	"fmt"

	"github.com/llipengda/parsekit/grammar"
	"github.com/llipengda/parsekit/lexer"
)

// Analyzer couples a parser variant with a semantic production set. Each
// Parse materializes a fresh semantic tree; Calc on that tree fires the
// actions.
type Analyzer struct {
	parser grammar.Parser
	prods  []Production
}

// NewLL1 builds an analyzer over an LL(1) parser.
func NewLL1(cfg *grammar.Config, prods []Production) (*Analyzer, error) {
	p, err := grammar.NewLL1FromProductions(cfg, Strip(prods))
	if err != nil {
		return nil, err
	}
	return attach(p, prods), nil
}

// NewSLR builds an analyzer over an SLR(1) parser.
func NewSLR(cfg *grammar.Config, prods []Production) (*Analyzer, error) {
	p, err := grammar.NewSLRFromProductions(cfg, Strip(prods))
	if err != nil {
		return nil, err
	}
	return attach(p, prods), nil
}

// NewLR1 builds an analyzer over a canonical LR(1) parser.
func NewLR1(cfg *grammar.Config, prods []Production) (*Analyzer, error) {
	p, err := grammar.NewLR1FromProductions(cfg, Strip(prods))
	if err != nil {
		return nil, err
	}
	return attach(p, prods), nil
}

func attach(p grammar.Parser, prods []Production) *Analyzer {
	p.SetTreeFactory(func() grammar.SyntaxTree {
		return NewTree(prods)
	})
	return &Analyzer{parser: p, prods: prods}
}

func (a *Analyzer) Build() error {
	return a.parser.Build()
}

func (a *Analyzer) Parse(tokens []lexer.Token) error {
	return a.parser.Parse(tokens)
}

// Tree returns the semantic tree of the most recent Parse.
func (a *Analyzer) Tree() *Tree {
	t, ok := a.parser.Tree().(*Tree)
	if !ok {
		panic(fmt.Sprintf("semantic: parser tree is %T, not a semantic tree", a.parser.Tree()))
	}
	return t
}

// Parser exposes the underlying parser, e.g. for diagnostics or error
// handler installation.
func (a *Analyzer) Parser() grammar.Parser {
	return a.parser
}
