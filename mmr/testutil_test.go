package mmr

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// linearAppender is the simplest possible NodeAppender: a plain slice,
// used by tests that need to build a real KAT39 MMR without any tiling.
type linearAppender struct {
	nodes [][]byte
}

func (a *linearAppender) Get(i uint64) ([]byte, error) {
	if int(i) < len(a.nodes) {
		return a.nodes[i], nil
	}
	return nil, fmt.Errorf("index %d out of range", i)
}

func (a *linearAppender) Append(value []byte) (uint64, error) {
	a.nodes = append(a.nodes, value)
	return uint64(len(a.nodes)), nil
}

func mustHex2Hash(t *testing.T, hexEncoded string) []byte {
	t.Helper()
	b, err := hex.DecodeString(hexEncoded)
	require.NoError(t, err)
	return b
}

func hexHashList(hashes [][]byte) []string {
	var hexes []string
	for _, b := range hashes {
		hexes = append(hexes, hex.EncodeToString(b))
	}
	return hexes
}

func peakHashes(a *linearAppender, i uint64) ([][]byte, error) {
	var values [][]byte
	for _, p := range Peaks(i) {
		v, err := a.Get(p)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func newCanonicalTestDB(t *testing.T) *linearAppender {
	t.Helper()
	a := &linearAppender{}
	for _, leaf := range kat39Leaves {
		_, err := AddHashedLeaf(sha256.New(), a, mustHex2Hash(t, leaf))
		require.NoError(t, err)
	}
	return a
}
