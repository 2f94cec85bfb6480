package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/utcq/soel/codegen/avr"
)

func newSymbolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols [tree_file]",
		Short: "Show the functions and stack frames of a tree",
		Args:  cobra.ExactArgs(1),
		RunE:  runSymbols,
	}
}

func runSymbols(cmd *cobra.Command, args []string) error {
	file, err := readTree(args[0])
	if err != nil {
		return err
	}

	unit, err := avr.Compile(file)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	line := func(w io.Writer) {
		fmt.Fprintf(w, "+ %[1]s + %[1]s + %[1]s + %[1]s +\n", strings.Repeat("-", 16))
	}

	line(out)
	fmt.Fprintf(out, "| %16s | %16s | %16s | %16s |\n", "function", "variable", "type/size", "offset")
	line(out)

	for _, fn := range unit.Functions.All() {
		params := "ø"
		if len(fn.Parameters) > 0 {
			params = strings.Join(fn.Parameters, ",")
		}
		fmt.Fprintf(out, "| %16s | %16s | %16s | %16s |\n", fn.Name, "("+params+")", fn.Result, "")

		for _, v := range unit.Frames[fn.Name].Variables() {
			fmt.Fprintf(out, "| %16s | %16s | %16d | %16s |\n", "", v.Name, v.Size, fmt.Sprintf("Y+%d", v.First()))
		}
	}

	line(out)
	return nil
}
