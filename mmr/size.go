package mmr

// HeightIndexSize returns the total node count of a single complete,
// perfect subtree of height h (2^h leaves): used to size a tile's node
// region for a configured tile_height.
func HeightIndexSize(h uint64) uint64 {
	return uint64(1)<<(h+1) - 1
}
