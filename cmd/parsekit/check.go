package main

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/llipengda/parsekit/grammar"
)

var checkFlags = struct {
	algo  *string
	sets  *bool
	table *bool
	items *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "check <grammar file path>",
		Short:   "Build a grammar and report table conflicts",
		Example: `  parsekit check --algo slr grammar.bnf`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCheck,
	}
	checkFlags.algo = cmd.Flags().String("algo", "slr", "parser algorithm [ll1|slr|lr1]")
	checkFlags.sets = cmd.Flags().Bool("sets", false, "print FIRST/FOLLOW sets")
	checkFlags.table = cmd.Flags().Bool("table", false, "print the parsing table")
	checkFlags.items = cmd.Flags().Bool("items", false, "print the LR item sets")
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	p, _, err := loadParser(args[0], *checkFlags.algo)
	if err != nil {
		return err
	}
	if err := p.Build(); err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	pterm.Success.Printf("%v grammar is conflict-free (%v productions)\n", *checkFlags.algo, len(p.Productions()))

	if *checkFlags.sets {
		switch g := p.(type) {
		case *grammar.LL1:
			g.DescribeSets(os.Stdout)
		case *grammar.LR:
			g.DescribeSets(os.Stdout)
		}
	}
	if *checkFlags.table {
		switch g := p.(type) {
		case *grammar.LL1:
			g.DescribeTable(os.Stdout)
		case *grammar.LR:
			g.DescribeTables(os.Stdout)
		}
	}
	if *checkFlags.items {
		if g, ok := p.(*grammar.LR); ok {
			g.DescribeItems(os.Stdout)
		}
	}
	return nil
}
