package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robinbryce/tilemmr/mmr"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <log>",
	Short: "Print the head tile id, next node index, and leaf count for a log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tl, closer, err := openLog(args[0])
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer.Close()
		}

		head, err := tl.Head(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "head tile:   %d\n", head.ID())
		fmt.Fprintf(out, "next index:  %d\n", head.NextIndex())
		if head.NextIndex() > 0 {
			fmt.Fprintf(out, "leaf count:  %d\n", mmr.LeafCount(head.NextIndex()-1))
		} else {
			fmt.Fprintf(out, "leaf count:  0\n")
		}
		return nil
	},
}
