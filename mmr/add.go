package mmr

import "hash"

// NodeAppender is the minimal capability the add-leaf-hash procedure and
// a tile's own interior-node computation both need: append a node value
// and read one back by index. It is implemented by an in-memory test
// buffer and by a production tile alike.
type NodeAppender interface {
	Append(value []byte) (uint64, error)
	Get(i uint64) ([]byte, error)
}

// AddHashedLeaf appends a leaf hash to a, then folds in however many
// interior parent hashes the append completes, returning the index of
// the next free slot once the dust settles.
//
// The node just written at height g is a right child, completing its
// parent, when the next free index has height greater than g; the parent's two
// children are read back from a and hashed together with the parent's
// own 1-based position as a domain-separating prefix.
func AddHashedLeaf(hasher hash.Hash, a NodeAppender, leafValue []byte) (uint64, error) {
	g := uint64(0)
	i, err := a.Append(leafValue)
	if err != nil {
		return 0, err
	}
	for IndexHeight(i) > g {
		left, err := a.Get(i - (2 << g))
		if err != nil {
			return 0, err
		}
		right, err := a.Get(i - 1)
		if err != nil {
			return 0, err
		}
		parentValue := HashPosPair64(hasher, i+1, left, right)
		i, err = a.Append(parentValue)
		if err != nil {
			return 0, err
		}
		g++
	}
	return i, nil
}
