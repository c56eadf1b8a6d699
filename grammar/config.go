package grammar

import "unicode"

// Config carries the symbol-classification policy used when reading grammar
// text: the spelling of the epsilon and end-marker sentinels and the
// predicate deciding whether a name denotes a terminal. A Config must be
// fixed before any grammar text is parsed with it; all constructors take it
// explicitly, there is no process-wide state.
type Config struct {
	EpsilonStr string
	EndMarkStr string

	// TerminalRule reports whether a trimmed symbol name denotes a
	// terminal. Clients typically install "name is in my terminal set".
	TerminalRule func(name string) bool
}

// DefaultConfig treats a name as a non-terminal iff its first character is
// uppercase, spells epsilon "ε", and the end-marker "$".
func DefaultConfig() *Config {
	return &Config{
		EpsilonStr: "ε",
		EndMarkStr: "$",
		TerminalRule: func(name string) bool {
			for _, r := range name {
				return !unicode.IsUpper(r)
			}
			return true
		},
	}
}

// Epsilon returns the epsilon sentinel symbol.
func (c *Config) Epsilon() Symbol {
	return Symbol{Kind: SymbolEpsilon, Name: c.EpsilonStr, Lexval: c.EpsilonStr}
}

// EndMark returns the end-marker sentinel symbol.
func (c *Config) EndMark() Symbol {
	return Symbol{Kind: SymbolEndMark, Name: c.EndMarkStr, Lexval: c.EndMarkStr}
}
