package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <log> <out-file>",
	Short: "Stream every committed tile's cropped bytes, length-prefixed, through zstd",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tl, closer, err := openLog(args[0])
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer.Close()
		}

		f, err := os.Create(args[1])
		if err != nil {
			return fmt.Errorf("tilemmr: creating %s: %w", args[1], err)
		}
		defer f.Close()

		zw, err := zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("tilemmr: opening zstd writer: %w", err)
		}
		defer zw.Close()

		ctx := context.Background()
		head, err := tl.Head(ctx)
		if err != nil {
			return err
		}

		var lenBuf [8]byte
		var n int
		for id := uint64(0); id <= head.ID(); id++ {
			t, err := tl.GetTile(ctx, id)
			if err != nil {
				return fmt.Errorf("tilemmr: loading tile %d: %w", id, err)
			}
			img := t.Bytes()
			binary.BigEndian.PutUint64(lenBuf[:], uint64(len(img)))
			if _, err := zw.Write(lenBuf[:]); err != nil {
				return fmt.Errorf("tilemmr: writing tile %d length: %w", id, err)
			}
			if _, err := zw.Write(img); err != nil {
				return fmt.Errorf("tilemmr: writing tile %d: %w", id, err)
			}
			n++
		}

		fmt.Fprintf(cmd.OutOrStdout(), "exported %d tiles to %s\n", n, args[1])
		return nil
	},
}
