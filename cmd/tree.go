package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

func newTreeCommand() *cobra.Command {
	treeCmd := &cobra.Command{
		Use:   "tree [tree_file]",
		Short: "Show the decoded tree",
		Args:  cobra.ExactArgs(1),
		RunE:  runTree,
	}

	treeCmd.Flags().Bool("dump", false, "dump the node structure instead of the source form")
	_ = conf.BindPFlags(treeCmd.Flags())

	return treeCmd
}

func runTree(cmd *cobra.Command, args []string) error {
	file, err := readTree(args[0])
	if err != nil {
		return err
	}

	if conf.GetBool("dump") {
		spew.Fdump(cmd.OutOrStdout(), file)
		return nil
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), file)
	return err
}
