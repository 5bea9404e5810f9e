package mmr

import "hash"

// IncludedRoot replays proof against value, reconstructing the root of
// the peak that covers node i. It mirrors InclusionProofPath's walk
// exactly (same branch rule, same position and height updates) so that
// any path InclusionProofPath builds replays correctly here, for
// interior nodes as well as leaves - the property that makes inclusion
// proofs composable into consistency proofs.
func IncludedRoot(hasher hash.Hash, i uint64, value []byte, proof [][]byte) []byte {
	root := value
	g := IndexHeight(i)
	for _, sibling := range proof {
		offset := uint64(1) << (g + 1)
		var newI uint64
		if IndexHeight(i+1) > g {
			// i is a right child: sibling precedes it.
			newI = i + 1
			root = HashPosPair64(hasher, newI+1, sibling, root)
		} else {
			// i is a left child: sibling follows it.
			newI = i + offset
			root = HashPosPair64(hasher, newI+1, root, sibling)
		}
		i = newI
		g++
	}
	return root
}
