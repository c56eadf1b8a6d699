// Package grammar implements the analytic half of the toolkit: grammar text
// parsing, FIRST/FOLLOW computation, LL(1) predictive tables, SLR(1) and
// canonical LR(1) automata with ACTION/GOTO tables, the table-driven
// recognizers, and the parse tree both recognizers materialize.
//
// The tables a parser builds are immutable after Build; Parse may then be
// invoked repeatedly and yields a fresh tree (and rightmost-step trace, for
// LR) per call. The tree, diagnostics, and trace of the latest Parse hang
// off the parser for retrieval, so concurrent parsing needs one parser
// value per goroutine; everything below the tables is per-parse state.
package grammar

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/llipengda/parsekit/lexer"
)

func tracer() tracing.Trace {
	return tracing.Select("parsekit.grammar")
}

// SyntaxTree is the contract between the recognizers and a tree under
// construction. Add expands the leftmost unexpanded non-terminal (top-down,
// LL order); AddR the rightmost (bottom-up, LR accept order); Update and
// UpdateR backfill terminal lexemes and positions from the token stream.
type SyntaxTree interface {
	Add(prod Production)
	AddR(prod Production)
	Update(sym Symbol)
	UpdateR(sym Symbol)
}

// Parser is a built grammar that recognizes token streams.
type Parser interface {
	// Build computes the tables. Construction failures (ambiguous
	// grammar, table conflicts) surface here.
	Build() error

	// Parse recognizes one token stream, materializing a fresh tree.
	Parse(tokens []lexer.Token) error

	// Tree returns the tree of the most recent Parse.
	Tree() SyntaxTree

	// SetTreeFactory replaces the tree implementation used by Parse.
	// The semantic layer installs its action-bearing tree this way.
	SetTreeFactory(fn func() SyntaxTree)

	// Productions returns the grammar's productions in source order.
	Productions() []Production

	// Diagnostics returns the recovery diagnostics of the most recent
	// Parse.
	Diagnostics() []string
}

// grammarBase carries what every parser variant shares: the production
// list, the FIRST/FOLLOW tables, the LHS index, and the tree under
// construction.
type grammarBase struct {
	cfg       *Config
	prods     []Production
	symbolMap map[Key][]int
	first     map[Key]SymbolSet
	follow    map[Key]SymbolSet

	tree    SyntaxTree
	newTree func() SyntaxTree
	diags   []string
}

func (g *grammarBase) init(cfg *Config, prods []Production) {
	g.cfg = cfg
	g.prods = prods
	g.symbolMap = map[Key][]int{}
	for i, prod := range prods {
		k := prod.Lhs.Key()
		g.symbolMap[k] = append(g.symbolMap[k], i)
	}
	g.first = map[Key]SymbolSet{}
	g.follow = map[Key]SymbolSet{}
	g.newTree = func() SyntaxTree {
		return NewTree()
	}
}

func (g *grammarBase) Productions() []Production {
	return g.prods
}

func (g *grammarBase) Tree() SyntaxTree {
	return g.tree
}

func (g *grammarBase) SetTreeFactory(fn func() SyntaxTree) {
	g.newTree = fn
}

func (g *grammarBase) Diagnostics() []string {
	return g.diags
}

func (g *grammarBase) beginParse() {
	g.tree = g.newTree()
	g.diags = nil
}

func (g *grammarBase) diag(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	tracer().Errorf("%s", msg)
	g.diags = append(g.diags, msg)
}

// FirstSet returns FIRST of a symbol, nil when unknown.
func (g *grammarBase) FirstSet(sym Symbol) SymbolSet {
	return g.first[sym.Key()]
}

// FollowSet returns FOLLOW of a non-terminal, nil when unknown.
func (g *grammarBase) FollowSet(sym Symbol) SymbolSet {
	return g.follow[sym.Key()]
}
