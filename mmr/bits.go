package mmr

import "math/bits"

// bitLength returns the number of bits required to represent x, i.e. the
// position of its most significant set bit plus one. bitLength(0) is 0.
func bitLength(x uint64) uint64 {
	return uint64(bits.Len64(x))
}

// allOnes reports whether x, in binary, is a contiguous run of one bits
// starting from bit 0 (0, 1, 3, 7, 15, ... including 0 itself).
func allOnes(x uint64) bool {
	return x&(x+1) == 0
}
