package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/robinbryce/tilemmr/mmr"
)

var proveCmd = &cobra.Command{
	Use:   "prove <log> <index> <at-leaf-count>",
	Short: "Print an inclusion proof for a node index against a later complete MMR",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("tilemmr: invalid index %q: %w", args[1], err)
		}
		atLeafCount, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("tilemmr: invalid leaf count %q: %w", args[2], err)
		}
		c := mmr.CompleteMMR(mmr.MMRIndex(atLeafCount - 1))

		tl, closer, err := openLog(args[0])
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer.Close()
		}

		ctx := context.Background()
		value, err := tl.Get(ctx, index)
		if err != nil {
			return err
		}
		path := mmr.InclusionProofPath(index, c)

		fmt.Fprintf(cmd.OutOrStdout(), "value: %s\n", hex.EncodeToString(value))
		for _, sibling := range path {
			v, err := tl.Get(ctx, sibling)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(v))
		}
		return nil
	},
}
