package grammar

import (
	"strings"

	"github.com/llipengda/parsekit/lexer"
)

type SymbolKind int

const (
	SymbolTerminal SymbolKind = iota
	SymbolNonTerminal
	SymbolEpsilon
	SymbolEndMark
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolTerminal:
		return "terminal"
	case SymbolNonTerminal:
		return "non-terminal"
	case SymbolEpsilon:
		return "epsilon"
	case SymbolEndMark:
		return "end-mark"
	}
	return "?"
}

// Symbol is a grammar symbol. Identity is (Kind, Name); Lexval and the
// source position are runtime payload filled in from tokens and ignored by
// equality.
type Symbol struct {
	Kind   SymbolKind
	Name   string
	Lexval string
	Line   int
	Column int
}

// Key is the identity of a Symbol, suitable as a map key.
type Key struct {
	Kind SymbolKind
	Name string
}

// NewSymbol classifies a raw name with the config's terminal rule. The name
// is trimmed; the epsilon sentinel is recognized before trimming, the
// end-marker after, matching the grammar-text reader.
func NewSymbol(cfg *Config, str string) Symbol {
	trimmed := strings.TrimSpace(str)
	var kind SymbolKind
	switch {
	case str == cfg.EpsilonStr:
		kind = SymbolEpsilon
	case trimmed == cfg.EndMarkStr:
		kind = SymbolEndMark
	case cfg.TerminalRule(trimmed):
		kind = SymbolTerminal
	default:
		kind = SymbolNonTerminal
	}
	return Symbol{
		Kind:   kind,
		Name:   trimmed,
		Lexval: trimmed,
	}
}

// FromToken classifies a token's display name and carries its lexeme and
// position. Unknown tokens are classified by their raw text.
func FromToken(cfg *Config, tok lexer.Token) Symbol {
	name := tok.Name
	if tok.Type == lexer.TypeUnknown {
		name = tok.Value
	}
	sym := NewSymbol(cfg, name)
	sym.Lexval = tok.Value
	sym.Line = tok.Line
	sym.Column = tok.Column
	return sym
}

func (s Symbol) Key() Key {
	return Key{Kind: s.Kind, Name: s.Name}
}

// IsTerminal reports whether the symbol is matched literally during
// parsing; the epsilon sentinel counts as terminal.
func (s Symbol) IsTerminal() bool {
	return s.Kind == SymbolTerminal || s.Kind == SymbolEpsilon
}

func (s Symbol) IsNonTerminal() bool {
	return s.Kind == SymbolNonTerminal
}

func (s Symbol) IsEpsilon() bool {
	return s.Kind == SymbolEpsilon
}

func (s Symbol) IsEndMark() bool {
	return s.Kind == SymbolEndMark
}

// Equal compares identity only, ignoring Lexval and position.
func (s Symbol) Equal(other Symbol) bool {
	return s.Kind == other.Kind && s.Name == other.Name
}

// Update copies a token's lexeme and position into the symbol.
func (s *Symbol) Update(tok lexer.Token) {
	s.Lexval = tok.Value
	s.Line = tok.Line
	s.Column = tok.Column
}

// UpdateFrom copies another symbol's lexeme and position.
func (s *Symbol) UpdateFrom(other Symbol) {
	s.Lexval = other.Lexval
	s.Line = other.Line
	s.Column = other.Column
}

// UpdatePos copies only the position.
func (s *Symbol) UpdatePos(other Symbol) {
	s.Line = other.Line
	s.Column = other.Column
}

func (s Symbol) String() string {
	return s.Name
}

// SymbolSet is a set of symbols keyed by identity.
type SymbolSet map[Key]Symbol

func (s SymbolSet) add(sym Symbol) bool {
	k := sym.Key()
	if _, ok := s[k]; ok {
		return false
	}
	s[k] = sym
	return true
}

func (s SymbolSet) has(k Key) bool {
	_, ok := s[k]
	return ok
}

func (s SymbolSet) hasEpsilon() bool {
	for k := range s {
		if k.Kind == SymbolEpsilon {
			return true
		}
	}
	return false
}

func (s SymbolSet) merge(other SymbolSet) bool {
	changed := false
	for _, sym := range other {
		if s.add(sym) {
			changed = true
		}
	}
	return changed
}

func (s SymbolSet) mergeExceptEpsilon(other SymbolSet) bool {
	changed := false
	for _, sym := range other {
		if sym.IsEpsilon() {
			continue
		}
		if s.add(sym) {
			changed = true
		}
	}
	return changed
}

func (s SymbolSet) clone() SymbolSet {
	c := make(SymbolSet, len(s))
	for k, sym := range s {
		c[k] = sym
	}
	return c
}
