package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/robinbryce/tilemmr/mmr"
)

var consistencyCmd = &cobra.Command{
	Use:   "consistency <log> <from-leaf-count> <to-leaf-count>",
	Short: "Print a consistency proof between two leaf counts",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		fromLeafCount, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("tilemmr: invalid from-leaf-count %q: %w", args[1], err)
		}
		toLeafCount, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("tilemmr: invalid to-leaf-count %q: %w", args[2], err)
		}
		from := mmr.CompleteMMR(mmr.MMRIndex(fromLeafCount - 1))
		to := mmr.CompleteMMR(mmr.MMRIndex(toLeafCount - 1))

		tl, closer, err := openLog(args[0])
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer.Close()
		}

		ctx := context.Background()
		paths := mmr.ConsistencyProofPaths(from, to)

		out := cmd.OutOrStdout()
		for pi, path := range paths {
			fmt.Fprintf(out, "path %d:\n", pi)
			for _, node := range path {
				v, err := tl.Get(ctx, node)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, hex.EncodeToString(v))
			}
		}
		return nil
	},
}
