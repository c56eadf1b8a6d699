package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/llipengda/parsekit/grammar"
)

var parseFlags = struct {
	algo     *string
	sentence *string
	steps    *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar file path>",
		Short:   "Parse a sentence of space-separated tokens and print the tree",
		Example: `  parsekit parse --sentence "id + id" grammar.bnf`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.algo = cmd.Flags().String("algo", "slr", "parser algorithm [ll1|slr|lr1]")
	parseFlags.sentence = cmd.Flags().StringP("sentence", "s", "", "input sentence (default stdin)")
	parseFlags.steps = cmd.Flags().Bool("steps", false, "print the rightmost-derivation steps (LR only)")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	p, _, err := loadParser(args[0], *parseFlags.algo)
	if err != nil {
		return err
	}
	if err := p.Build(); err != nil {
		return err
	}

	sentence := *parseFlags.sentence
	if sentence == "" {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		sentence = string(src)
	}

	if err := p.Parse(sentenceTokens(sentence)); err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	for _, d := range p.Diagnostics() {
		pterm.Error.Println(d)
	}

	if tree, ok := p.Tree().(*grammar.Tree); ok {
		tree.Print(os.Stdout)
	}
	if *parseFlags.steps {
		if g, ok := p.(*grammar.LR); ok {
			fmt.Println()
			g.Steps().Print(os.Stdout)
			fmt.Println()
		}
	}
	return nil
}
