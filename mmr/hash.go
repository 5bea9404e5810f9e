package mmr

import (
	"encoding/binary"
	"hash"
)

// hashWriteUint64 writes v as 8 big-endian bytes into hasher.
func hashWriteUint64(hasher hash.Hash, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	hasher.Write(buf[:])
}

// HashPosPair64 computes H(be64(pos) || a || b), resetting hasher first.
// pos is always the parent node's 1-based postorder position, i.e. its
// 0-based index plus one.
func HashPosPair64(hasher hash.Hash, pos uint64, a, b []byte) []byte {
	hasher.Reset()
	hashWriteUint64(hasher, pos)
	hasher.Write(a)
	hasher.Write(b)
	return hasher.Sum(nil)
}
