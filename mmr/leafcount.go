package mmr

// LeafCount returns the number of leaves in MMR(i). Each peak of MMR(i)
// is the root of a perfect subtree of 2^g(peak) leaves, so the total is
// the sum of 2^height over the current peaks.
func LeafCount(i uint64) uint64 {
	var n uint64
	for _, p := range Peaks(i) {
		n += uint64(1) << IndexHeight(p)
	}
	return n
}

// LeafIndex returns the leaf index e of node i, which must be a leaf
// (IndexHeight(i) == 0). The result is undefined if i is not a leaf.
func LeafIndex(i uint64) uint64 {
	return LeafCount(i) - 1
}
