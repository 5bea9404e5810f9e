package mmr

// MMRIndex returns the node index i of leaf e (0-based leaf index),
// i.e. the position leaf e occupies in the MMR's postorder traversal.
//
// For each set bit of e, from the most significant down, a perfect
// subtree of that height is consumed: its full node count, (1<<h)-1,
// is added to the running sum, and the bit is cleared from e.
func MMRIndex(e uint64) uint64 {
	var sum uint64
	for e != 0 {
		h := bitLength(e)
		sum += uint64(1)<<h - 1
		e -= uint64(1) << (h - 1)
	}
	return sum
}
