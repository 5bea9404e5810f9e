package mmr

// InclusionProofPath returns the sibling node indices that, replayed in
// order against node i's value, reconstruct the peak of MMR(c) covering
// i. c must be complete.
//
// At each step the node at the current position is either a right
// child (its sibling precedes it, found by stepping back) or a left
// child (its sibling follows it, found by stepping forward); either way
// the position advances to the parent's own index. The walk stops as
// soon as the computed sibling would fall beyond c.
func InclusionProofPath(i, c uint64) []uint64 {
	var path []uint64
	g := IndexHeight(i)
	for {
		offset := uint64(1) << (g + 1)
		var sibling uint64
		if IndexHeight(i+1) > g {
			sibling = i - offset + 1
			i = i + 1
		} else {
			sibling = i + offset - 1
			i = i + offset
		}
		if sibling > c {
			break
		}
		path = append(path, sibling)
		g++
	}
	return path
}

// PeakContaining returns the peak of MMR(c) that an inclusion proof of
// the given length, starting at node i, terminates at. It is the peak
// whose height equals g(i) plus the proof length: replay climbs exactly
// one height per proof element.
func PeakContaining(c, i uint64, proofLen int) (uint64, error) {
	targetHeight := IndexHeight(i) + uint64(proofLen)
	for _, p := range Peaks(c) {
		if IndexHeight(p) == targetHeight {
			return p, nil
		}
	}
	return 0, ErrPeakNotFound
}
