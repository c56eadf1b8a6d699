package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"

	"github.com/llipengda/parsekit/grammar"
	"github.com/llipengda/parsekit/lexer"
)

var rootFlags = struct {
	epsilon   *string
	endMark   *string
	terminals *string
	trace     *string
}{}

var rootCmd = &cobra.Command{
	Use:           "parsekit",
	Short:         "A toolkit for building LL(1)/SLR(1)/LR(1) parsers from BNF grammars",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := tracing.LevelInfo
		switch strings.ToLower(*rootFlags.trace) {
		case "debug":
			level = tracing.LevelDebug
		case "error":
			level = tracing.LevelError
		}
		for _, name := range []string{"parsekit.grammar", "parsekit.lexer", "parsekit.regex", "parsekit.semantic"} {
			tracing.Select(name).SetTraceLevel(level)
		}
	},
}

func init() {
	rootFlags.epsilon = rootCmd.PersistentFlags().String("epsilon", "ε", "spelling of the epsilon sentinel in grammar text")
	rootFlags.endMark = rootCmd.PersistentFlags().String("end-mark", "$", "spelling of the end-marker sentinel")
	rootFlags.terminals = rootCmd.PersistentFlags().String("terminals", "", "comma-separated terminal names; empty means names not starting with an uppercase letter are terminals")
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "Error", "trace level [Debug|Info|Error]")
}

func Execute() error {
	return rootCmd.Execute()
}

func newConfig() *grammar.Config {
	cfg := grammar.DefaultConfig()
	cfg.EpsilonStr = *rootFlags.epsilon
	cfg.EndMarkStr = *rootFlags.endMark
	if *rootFlags.terminals != "" {
		set := map[string]struct{}{}
		for _, name := range strings.Split(*rootFlags.terminals, ",") {
			set[strings.TrimSpace(name)] = struct{}{}
		}
		cfg.TerminalRule = func(name string) bool {
			_, ok := set[name]
			return ok
		}
	}
	return cfg
}

func loadParser(path string, algo string) (grammar.Parser, *grammar.Config, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read the grammar file %s: %w", path, err)
	}

	cfg := newConfig()
	var p grammar.Parser
	switch algo {
	case "ll1":
		p, err = grammar.NewLL1(cfg, string(text))
	case "slr":
		p, err = grammar.NewSLR(cfg, string(text))
	case "lr1":
		p, err = grammar.NewLR1(cfg, string(text))
	default:
		return nil, nil, fmt.Errorf("unknown algorithm %q (want ll1, slr, or lr1)", algo)
	}
	if err != nil {
		return nil, nil, err
	}
	return p, cfg, nil
}

// sentenceTokens turns a whitespace-separated sentence into raw tokens; the
// grammar's terminal rule classifies each word.
func sentenceTokens(sentence string) []lexer.Token {
	var tokens []lexer.Token
	for _, field := range strings.Fields(sentence) {
		tokens = append(tokens, lexer.Token{
			Type:  lexer.TypeUnknown,
			Name:  field,
			Value: field,
		})
	}
	return tokens
}
