package tiles

import (
	"math/bits"

	"github.com/robinbryce/tilemmr/mmr"
)

// qualifyingAncestorPeaks returns the node indices of the peaks of
// MMR(firstIndexMinusOne) whose height is at least H-1: the peaks any
// inclusion proof for a node in a tile of height H could still reach
// before leaving that tile. Peaks() is already in descending-height
// order, so the qualifying set is its leading prefix.
func qualifyingAncestorPeaks(firstIndexMinusOne, height uint64) []uint64 {
	var qualifying []uint64
	for _, p := range mmr.Peaks(firstIndexMinusOne) {
		if mmr.IndexHeight(p)+1 < height {
			break
		}
		qualifying = append(qualifying, p)
	}
	return qualifying
}

// carriedPeakCount and discardedPeakCount compute next_peak_stack's
// bookkeeping by treating a tile id as the leaf index of a much
// smaller, logical MMR: the number of peaks a tile carries forward
// equals the popcount of its own id, and the number it discards when
// it closes and seeds the next tile equals the trailing zero count of
// (id+1). This
// is the same identity the teacher expresses as LeafMinusSpurSum /
// SpurHeightLeaf (see doc.go's final section); math/bits gives it
// directly without carrying that naming forward.
func carriedPeakCount(id uint64) int {
	return bits.OnesCount64(id)
}

func discardedPeakCount(id uint64) int {
	return bits.TrailingZeros64(id + 1)
}
