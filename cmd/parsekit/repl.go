package main

import (
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/llipengda/parsekit/grammar"
)

var replFlags = struct {
	algo *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "repl <grammar file path>",
		Short:   "Interactively parse sentences against a grammar",
		Example: `  parsekit repl --algo lr1 grammar.bnf`,
		Args:    cobra.ExactArgs(1),
		RunE:    runRepl,
	}
	replFlags.algo = cmd.Flags().String("algo", "slr", "parser algorithm [ll1|slr|lr1]")
	rootCmd.AddCommand(cmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	p, _, err := loadParser(args[0], *replFlags.algo)
	if err != nil {
		return err
	}
	if err := p.Build(); err != nil {
		return err
	}
	pterm.Info.Printf("loaded %v (%v); quit with <ctrl>D\n", args[0], *replFlags.algo)

	rl, err := readline.New("parsekit> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		if err := p.Parse(sentenceTokens(line)); err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		for _, d := range p.Diagnostics() {
			pterm.Error.Println(d)
		}
		if tree, ok := p.Tree().(*grammar.Tree); ok {
			tree.Print(os.Stdout)
		}
	}
}
