package mmr

import (
	"bytes"
	"hash"
)

// ConsistencyProofPaths returns one inclusion path per peak of
// MMR(from), each built into MMR(to). The caller resolves each path's
// sibling indices to hash values (typically via a tiles.TileLog) before
// passing them to ConsistentRoots.
func ConsistencyProofPaths(from, to uint64) [][]uint64 {
	peaks := Peaks(from)
	paths := make([][]uint64, len(peaks))
	for idx, p := range peaks {
		paths[idx] = InclusionProofPath(p, to)
	}
	return paths
}

// ConsistentRoots replays one IncludedRoot per old peak of MMR(from)
// (whose values are accFrom, in the same descending-height order as
// Peaks(from)) against the corresponding value-proof in proofs, and
// returns the resulting roots with adjacent duplicates collapsed - many
// old peaks may hash together under one new peak of MMR(to). The result
// is a descending-height prefix of MMR(to)'s accumulator.
func ConsistentRoots(hasher hash.Hash, from uint64, accFrom [][]byte, proofs [][][]byte) ([][]byte, error) {
	peaks := Peaks(from)
	if len(accFrom) != len(peaks) || len(proofs) != len(peaks) {
		return nil, ErrInvalidProof
	}
	var roots [][]byte
	for idx, peak := range peaks {
		root := IncludedRoot(hasher, peak, accFrom[idx], proofs[idx])
		if len(roots) > 0 && bytes.Equal(roots[len(roots)-1], root) {
			continue
		}
		roots = append(roots, root)
	}
	return roots, nil
}
