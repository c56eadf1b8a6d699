// Package regex implements a small byte-level regular expression engine
// sufficient to drive a longest-match lexer. Patterns support concatenation,
// alternation, `*`, `+`, grouping, character classes with negation and
// ranges, the shorthands \w \d \s, and the usual byte escapes. The engine
// compiles a pattern directly to a DFA via the position/followpos
// construction, with no intermediate NFA.
package regex

import (
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("parsekit.regex")
}

// Regexp is a compiled pattern. It is immutable and safe for concurrent use.
type Regexp struct {
	pattern string
	dfa     *dfa
}

// Compile parses the pattern and builds its DFA. Malformed patterns yield an
// error wrapping ErrInvalidRegex or ErrUnknownCharacter.
func Compile(pattern string) (*Regexp, error) {
	tree, err := newPositionTree(pattern)
	if err != nil {
		return nil, err
	}
	return &Regexp{
		pattern: pattern,
		dfa:     newDFA(tree),
	}, nil
}

// MustCompile is like Compile but panics on error. It simplifies the
// declaration of fixed rule tables.
func MustCompile(pattern string) *Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

func (re *Regexp) String() string {
	return re.pattern
}

// Match reports whether the whole input is accepted.
func (re *Regexp) Match(s string) bool {
	return re.dfa.match(s)
}

// LongestMatch returns the length of the longest accepted prefix of s, or 0
// when no prefix of positive length is accepted. An empty-string match is
// reported by Match, not by LongestMatch.
func (re *Regexp) LongestMatch(s string) int {
	return re.dfa.longestMatch(s)
}
