package main

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var appendCmd = &cobra.Command{
	Use:   "append <log> <leaf-hex>...",
	Short: "Append one or more leaf hashes to a log",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tl, closer, err := openLog(args[0])
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer.Close()
		}

		var leaves [][]byte
		for _, arg := range args[1:] {
			v, err := hex.DecodeString(arg)
			if err != nil {
				return fmt.Errorf("tilemmr: leaf %q is not hex: %w", arg, err)
			}
			leaves = append(leaves, v)
		}

		if err := tl.Append(context.Background(), leaves); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "appended %d leaves\n", len(leaves))
		return nil
	},
}
