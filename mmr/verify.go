package mmr

import (
	"bytes"
	"hash"
)

// VerifyInclusion reports whether replaying proof against value for
// node i reproduces root exactly.
func VerifyInclusion(hasher hash.Hash, i uint64, value []byte, proof [][]byte, root []byte) bool {
	return bytes.Equal(IncludedRoot(hasher, i, value, proof), root)
}

// VerifyConsistency reports whether MMR(from)'s accumulator (accFrom)
// is consistent with MMR(to)'s accumulator (accTo, descending-height
// order), given one value-proof per old peak in proofs. Consistency
// holds when ConsistentRoots(...) is a prefix of accTo.
func VerifyConsistency(hasher hash.Hash, from uint64, accFrom [][]byte, proofs [][][]byte, accTo [][]byte) (bool, error) {
	roots, err := ConsistentRoots(hasher, from, accFrom, proofs)
	if err != nil {
		return false, err
	}
	if len(roots) > len(accTo) {
		return false, ErrInvalidProof
	}
	for idx, root := range roots {
		if !bytes.Equal(root, accTo[idx]) {
			return false, nil
		}
	}
	return true, nil
}
