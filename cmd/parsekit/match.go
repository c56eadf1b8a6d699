package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/llipengda/parsekit/regex"
)

func init() {
	cmd := &cobra.Command{
		Use:     "match <pattern> <input>",
		Short:   "Probe a pattern against an input string",
		Example: `  parsekit match 'a+(b|c)*[de]+' abbdde`,
		Args:    cobra.ExactArgs(2),
		RunE:    runMatch,
	}
	rootCmd.AddCommand(cmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	re, err := regex.Compile(args[0])
	if err != nil {
		return err
	}

	input := args[1]
	if re.Match(input) {
		pterm.Success.Printf("%q matches %q\n", input, re)
	} else {
		pterm.Error.Printf("%q does not match %q\n", input, re)
	}
	pterm.Info.Printf("longest matched prefix: %v bytes\n", re.LongestMatch(input))
	return nil
}
