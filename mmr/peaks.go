package mmr

// highestPerfectSize returns the largest value of the form 2^k-1 that is
// <= s, for s >= 1.
func highestPerfectSize(s uint64) uint64 {
	k := bitLength(s+1) - 1
	return uint64(1)<<k - 1
}

// Peaks returns the descending-height-ordered node indices of the peaks
// of MMR(i): the roots of the maximal perfect subtrees that together
// cover the first i+1 nodes.
//
// Peaks greedily strips the largest perfect-tree prefix off the
// remaining size at each step; the running sum of stripped sizes lands
// exactly on each peak's 1-based postorder position, which is then
// reported 0-based.
func Peaks(i uint64) []uint64 {
	s := i + 1
	var peaks []uint64
	var cumulative uint64
	for s != 0 {
		top := highestPerfectSize(s)
		cumulative += top
		peaks = append(peaks, cumulative-1)
		s -= top
	}
	return peaks
}
