// Package lexer provides a longest-match tokenizer driven by an ordered list
// of regular-expression rules. At every input position the rule with the
// strictly greatest match wins; ties are broken by rule-list position, so a
// keyword pattern (e.g. `int`) listed before a general identifier pattern
// wins on input both match equally far. Bytes no rule accepts are folded into
// in-band unknown tokens of
// type TypeUnknown instead of failing the whole run.
package lexer

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/llipengda/parsekit/regex"
)

func tracer() tracing.Trace {
	return tracing.Select("parsekit.lexer")
}

// TypeUnknown is the token type of lexemes no rule matched.
const TypeUnknown = -1

// Token is one lexeme with its 1-based source position. Name is the
// display name of the matching rule; for unknown tokens it equals Value.
type Token struct {
	Type   int
	Name   string
	Value  string
	Line   int
	Column int
}

func (t Token) IsUnknown() bool {
	return t.Type == TypeUnknown
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%v, %q, line: %v, column: %v)", t.Name, t.Value, t.Line, t.Column)
}

// Rule binds a pattern to a token type and a display name.
type Rule struct {
	Pattern string
	Type    int
	Name    string
}

type compiledRule struct {
	re   *regex.Regexp
	typ  int
	name string
}

type Lexer struct {
	rules      []compiledRule
	whitespace int
	names      map[int]string
}

// New compiles the rules in order. whitespace designates the token type
// whose lexemes Parse suppresses by default.
func New(rules []Rule, whitespace int) (*Lexer, error) {
	l := &Lexer{
		whitespace: whitespace,
		names:      map[int]string{},
	}
	for _, r := range rules {
		re, err := regex.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %v (%q): %w", r.Name, r.Pattern, err)
		}
		l.rules = append(l.rules, compiledRule{re: re, typ: r.Type, name: r.Name})
		l.names[r.Type] = r.Name
	}
	return l, nil
}

// TokenName returns the display name registered for a token type.
func (l *Lexer) TokenName(typ int) string {
	return l.names[typ]
}

type ParseOption func(*parseConfig)

type parseConfig struct {
	keepWhitespace bool
}

// KeepWhitespace makes Parse emit whitespace tokens instead of dropping
// them.
func KeepWhitespace() ParseOption {
	return func(c *parseConfig) {
		c.keepWhitespace = true
	}
}

// Parse tokenizes the input. It never fails: unmatchable bytes are
// accumulated into unknown tokens carried in-band in the result.
func (l *Lexer) Parse(input string, opts ...ParseOption) []Token {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var tokens []Token
	pos := 0
	line := 0
	col := 0

	var unknown *Token
	for pos < len(input) {
		rest := input[pos:]
		best := 0
		bestRule := compiledRule{}
		for _, r := range l.rules {
			if m := r.re.LongestMatch(rest); m > best {
				best = m
				bestRule = r
			}
		}

		if best == 0 {
			if unknown == nil {
				unknown = &Token{
					Type:   TypeUnknown,
					Line:   line + 1,
					Column: col + 1,
				}
			}
			unknown.Value += string(input[pos])
			col++
			pos++
			continue
		}

		if unknown != nil {
			unknown.Name = unknown.Value
			tracer().Errorf("unknown token %q at line %v, column %v", unknown.Value, unknown.Line, unknown.Column)
			tokens = append(tokens, *unknown)
			unknown = nil
		}

		lexeme := input[pos : pos+best]
		if cfg.keepWhitespace || bestRule.typ != l.whitespace {
			tokens = append(tokens, Token{
				Type:   bestRule.typ,
				Name:   bestRule.name,
				Value:  lexeme,
				Line:   line + 1,
				Column: col + 1,
			})
		}

		if newlines := strings.Count(lexeme, "\n"); newlines > 0 {
			line += newlines
			col = len(lexeme) - strings.LastIndexByte(lexeme, '\n') - 1
		} else {
			col += len(lexeme)
		}
		pos += best
	}

	if unknown != nil {
		unknown.Name = unknown.Value
		tracer().Errorf("unknown token %q at line %v, column %v", unknown.Value, unknown.Line, unknown.Column)
		tokens = append(tokens, *unknown)
	}

	return tokens
}
