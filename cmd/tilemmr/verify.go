package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/robinbryce/tilemmr/mmr"
)

// peakHashes resolves the peaks of MMR(c) to their node values: the
// accumulators verify-consistency compares.
func peakHashes(ctx context.Context, tl interface {
	Get(context.Context, uint64) ([]byte, error)
}, c uint64) ([][]byte, error) {
	var acc [][]byte
	for _, p := range mmr.Peaks(c) {
		v, err := tl.Get(ctx, p)
		if err != nil {
			return nil, err
		}
		acc = append(acc, v)
	}
	return acc, nil
}

var verifyInclusionCmd = &cobra.Command{
	Use:   "verify-inclusion <log> <index> <at-leaf-count> <proof-hex>...",
	Short: "Verify an inclusion proof for a node against a complete MMR",
	Args:  cobra.MinimumNArgs(3),
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

		var proof [][]byte
		for _, arg := range args[3:] {
			v, err := hex.DecodeString(arg)
			if err != nil {
				return fmt.Errorf("tilemmr: proof element %q is not hex: %w", arg, err)
			}
			proof = append(proof, v)
		}

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
		p, err := mmr.PeakContaining(c, index, len(proof))
		if err != nil {
			return err
		}
		root, err := tl.Get(ctx, p)
		if err != nil {
			return err
		}

		hasher := hasherFactory()()
		if mmr.VerifyInclusion(hasher, index, value, proof, root) {
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		}
		return fmt.Errorf("tilemmr: inclusion proof for %d does not verify", index)
	},
}

var verifyConsistencyCmd = &cobra.Command{
	Use:   "verify-consistency <log> <from-leaf-count> <to-leaf-count>",
	Short: "Verify a consistency proof between two leaf counts",
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
		accFrom, err := peakHashes(ctx, tl, from)
		if err != nil {
			return err
		}
		accTo, err := peakHashes(ctx, tl, to)
		if err != nil {
			return err
		}

		paths := mmr.ConsistencyProofPaths(from, to)
		proofs := make([][][]byte, len(paths))
		for pi, path := range paths {
			proof := make([][]byte, len(path))
			for ni, node := range path {
				v, err := tl.Get(ctx, node)
				if err != nil {
					return err
				}
				proof[ni] = v
			}
			proofs[pi] = proof
		}

		hasher := hasherFactory()()
		ok, err := mmr.VerifyConsistency(hasher, from, accFrom, proofs, accTo)
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		}
		return fmt.Errorf("tilemmr: consistency proof from %d to %d does not verify", fromLeafCount, toLeafCount)
	},
}
